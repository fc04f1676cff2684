package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// Фейковые реализации зависимостей

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetByVetWithFilter(_ context.Context, _ domain.VetAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type fakeAvailabilityResolver struct {
	days map[string]*domain.EffectiveDay // ключ YYYY-MM-DD
	err  error
}

func (f *fakeAvailabilityResolver) ResolveDay(_ context.Context, _ int64, date time.Time) (*domain.EffectiveDay, error) {
	if f.err != nil {
		return nil, f.err
	}
	if day, ok := f.days[date.Format(domain.DateFormat)]; ok {
		return day, nil
	}
	return domain.ClosedDay(), nil
}

type fakeVetClient struct {
	vet *vetservice.Vet
	err error
}

func (f *fakeVetClient) GetVet(_ context.Context, _ int64) (*vetservice.Vet, error) {
	return f.vet, f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Вспомогательные конструкторы

func openDay(start, end string, slotDuration int, breaks ...domain.Break) *domain.EffectiveDay {
	return &domain.EffectiveDay{
		IsClosed:            false,
		StartTime:           types.MustTimeString(start),
		EndTime:             types.MustTimeString(end),
		SlotDurationMinutes: slotDuration,
		VisitTypes:          []string{"Consultation", "Vaccination"},
		Breaks:              breaks,
	}
}

func newUseCase(repo AppointmentRepository, resolver AvailabilityResolver, vc VetServiceClient, now time.Time) *UseCase {
	return NewUseCase(repo, resolver, vc, noopLogger{}).
		WithTimeProvider(&fakeTimeProvider{now: now})
}

func slotTimes(slots []Slot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.Time)
	}
	return result
}

var testVet = &vetservice.Vet{
	ID:         1,
	Name:       "Dr. Ivanova",
	ManagerIDs: []int64{100},
	VisitTypes: []string{"Consultation", "Vaccination"},
	IsActive:   true,
}

func TestExecute_BreakExclusion(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	resolver := &fakeAvailabilityResolver{
		days: map[string]*domain.EffectiveDay{
			"2026-09-10": openDay("09:00", "17:00", 30, domain.Break{
				StartTime: types.MustTimeString("12:00"),
				EndTime:   types.MustTimeString("13:00"),
			}),
		},
	}
	uc := newUseCase(&fakeAppointmentRepo{}, resolver, &fakeVetClient{vet: testVet}, now)

	resp, err := uc.Execute(context.Background(), &Request{VetID: 1, FromDate: date, RangeDays: 1})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	times := slotTimes(resp.Days[0].Slots)
	assert.NotContains(t, times, "12:00 PM")
	assert.NotContains(t, times, "12:30 PM")
	assert.Contains(t, times, "11:30 AM")
	assert.Contains(t, times, "1:00 PM")
}

func TestExecute_PartialBreakOverlapExcluded(t *testing.T) {
	// Перерыв 12:15-12:45 частично накрывает слоты 12:00 и 12:30 - оба исключаются
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	resolver := &fakeAvailabilityResolver{
		days: map[string]*domain.EffectiveDay{
			"2026-09-10": openDay("09:00", "17:00", 30, domain.Break{
				StartTime: types.MustTimeString("12:15"),
				EndTime:   types.MustTimeString("12:45"),
			}),
		},
	}
	uc := newUseCase(&fakeAppointmentRepo{}, resolver, &fakeVetClient{vet: testVet}, now)

	resp, err := uc.Execute(context.Background(), &Request{VetID: 1, FromDate: date, RangeDays: 1})
	require.NoError(t, err)

	times := slotTimes(resp.Days[0].Slots)
	assert.NotContains(t, times, "12:00 PM")
	assert.NotContains(t, times, "12:30 PM")
	assert.Contains(t, times, "11:30 AM")
	assert.Contains(t, times, "1:00 PM")
}

func TestExecute_SameDayCutoff(t *testing.T) {
	// Сегодня в 15:00 слоты до 15:00 включительно не предлагаются вовсе
	now := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	resolver := &fakeAvailabilityResolver{
		days: map[string]*domain.EffectiveDay{
			"2026-09-10": openDay("09:00", "17:00", 30),
		},
	}
	uc := newUseCase(&fakeAppointmentRepo{}, resolver, &fakeVetClient{vet: testVet}, now)

	resp, err := uc.Execute(context.Background(), &Request{VetID: 1, FromDate: date, RangeDays: 1})
	require.NoError(t, err)

	times := slotTimes(resp.Days[0].Slots)
	assert.Equal(t, []string{"3:30 PM", "4:00 PM", "4:30 PM"}, times)
}

func TestExecute_BookedSlotMarked(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	resolver := &fakeAvailabilityResolver{
		days: map[string]*domain.EffectiveDay{
			"2026-09-10": openDay("09:00", "11:00", 30),
		},
	}
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{
				ID:              1,
				VetID:           1,
				Date:            date,
				StartTime:       types.MustTimeString("09:30"),
				DurationMinutes: 30,
				Status:          domain.StatusBooked,
			},
			{
				// Отменённый приём слот не занимает
				ID:              2,
				VetID:           1,
				Date:            date,
				StartTime:       types.MustTimeString("10:00"),
				DurationMinutes: 30,
				Status:          domain.StatusCancelled,
			},
		},
	}
	uc := newUseCase(repo, resolver, &fakeVetClient{vet: testVet}, now)

	resp, err := uc.Execute(context.Background(), &Request{VetID: 1, FromDate: date, RangeDays: 1})
	require.NoError(t, err)

	slots := resp.Days[0].Slots
	require.Len(t, slots, 4)
	assert.Equal(t, string(domain.SlotAvailable), slots[0].Status) // 9:00 AM
	assert.Equal(t, string(domain.SlotBooked), slots[1].Status)    // 9:30 AM
	assert.Equal(t, string(domain.SlotAvailable), slots[2].Status) // 10:00 AM
	assert.Equal(t, string(domain.SlotAvailable), slots[3].Status) // 10:30 AM
}

func TestExecute_VisitTypeFiltering(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	day := openDay("09:00", "17:00", 30)
	day.VisitTypes = []string{"Vaccination"}

	resolver := &fakeAvailabilityResolver{
		days: map[string]*domain.EffectiveDay{"2026-09-10": day},
	}
	uc := newUseCase(&fakeAppointmentRepo{}, resolver, &fakeVetClient{vet: testVet}, now)

	visitType := "Consultation"
	resp, err := uc.Execute(context.Background(), &Request{
		VetID:     1,
		FromDate:  date,
		RangeDays: 1,
		VisitType: &visitType,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Days[0].Slots)
}

func TestExecute_ClosedDayEmitsEmptyList(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	// Резолвер не знает дату - день считается закрытым
	resolver := &fakeAvailabilityResolver{days: map[string]*domain.EffectiveDay{}}
	uc := newUseCase(&fakeAppointmentRepo{}, resolver, &fakeVetClient{vet: testVet}, now)

	resp, err := uc.Execute(context.Background(), &Request{VetID: 1, FromDate: date, RangeDays: 1})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Empty(t, resp.Days[0].Slots)
}

func TestExecute_TrailingPartialSlotNotOffered(t *testing.T) {
	// Интервал 09:00-10:45 с шагом 30: слот 10:30 закончился бы в 11:00 - не предлагается
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	resolver := &fakeAvailabilityResolver{
		days: map[string]*domain.EffectiveDay{
			"2026-09-10": openDay("09:00", "10:45", 30),
		},
	}
	uc := newUseCase(&fakeAppointmentRepo{}, resolver, &fakeVetClient{vet: testVet}, now)

	resp, err := uc.Execute(context.Background(), &Request{VetID: 1, FromDate: date, RangeDays: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "9:30 AM", "10:00 AM"}, slotTimes(resp.Days[0].Slots))
}

func TestExecute_DayEndingAtMidnight(t *testing.T) {
	// Интервал 23:00-23:59:59 с шагом 30: слот 23:30 перешёл бы через полночь -
	// сетка заканчивается, остаётся только слот 23:00
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	resolver := &fakeAvailabilityResolver{
		days: map[string]*domain.EffectiveDay{
			"2026-09-10": openDay("23:00", "23:59:59", 30),
		},
	}
	uc := newUseCase(&fakeAppointmentRepo{}, resolver, &fakeVetClient{vet: testVet}, now)

	resp, err := uc.Execute(context.Background(), &Request{VetID: 1, FromDate: date, RangeDays: 1})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, []string{"11:00 PM"}, slotTimes(resp.Days[0].Slots))
}

func TestExecute_MultiDayRangeAscending(t *testing.T) {
	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	resolver := &fakeAvailabilityResolver{
		days: map[string]*domain.EffectiveDay{
			"2026-09-10": openDay("09:00", "10:00", 30),
			"2026-09-12": openDay("09:00", "10:00", 30),
		},
	}
	uc := newUseCase(&fakeAppointmentRepo{}, resolver, &fakeVetClient{vet: testVet}, now)

	resp, err := uc.Execute(context.Background(), &Request{VetID: 1, FromDate: from, RangeDays: 3})
	require.NoError(t, err)

	require.Len(t, resp.Days, 3)
	assert.Equal(t, "2026-09-10", resp.Days[0].Date)
	assert.Equal(t, "2026-09-11", resp.Days[1].Date)
	assert.Equal(t, "2026-09-12", resp.Days[2].Date)
	assert.Len(t, resp.Days[0].Slots, 2)
	assert.Empty(t, resp.Days[1].Slots)
	assert.Len(t, resp.Days[2].Slots, 2)
}

func TestExecute_Idempotence(t *testing.T) {
	// Два вызова с одинаковыми входами и одинаковым now дают идентичный результат
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 10, 11, 0, 0, 0, time.UTC)

	resolver := &fakeAvailabilityResolver{
		days: map[string]*domain.EffectiveDay{
			"2026-09-10": openDay("09:00", "17:00", 30, domain.Break{
				StartTime: types.MustTimeString("13:00"),
				EndTime:   types.MustTimeString("14:00"),
			}),
		},
	}
	uc := newUseCase(&fakeAppointmentRepo{}, resolver, &fakeVetClient{vet: testVet}, now)

	req := &Request{VetID: 1, FromDate: date, RangeDays: 2}
	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_PastDateRejected(t *testing.T) {
	now := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	past := time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeAvailabilityResolver{}, &fakeVetClient{vet: testVet}, now)

	_, err := uc.Execute(context.Background(), &Request{VetID: 1, FromDate: past, RangeDays: 1})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_VetNotFound(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	uc := newUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityResolver{},
		&fakeVetClient{err: vetservice.ErrVetNotFound},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{VetID: 99, FromDate: date, RangeDays: 1})
	assert.ErrorIs(t, err, ErrVetNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	uc := newUseCase(&fakeAppointmentRepo{}, &fakeAvailabilityResolver{}, &fakeVetClient{vet: testVet}, now)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero vetID", &Request{VetID: 0, FromDate: date, RangeDays: 1}},
		{"zero date", &Request{VetID: 1, RangeDays: 1}},
		{"range too large", &Request{VetID: 1, FromDate: date, RangeDays: domain.MaxRangeDays + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
