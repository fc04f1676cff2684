package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/PCM-ScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
	"github.com/m04kA/PCM-ScheduleService/internal/service/availability/models"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// Фейковые реализации зависимостей

type fakeRepo struct {
	week          []*domain.WeeklyAvailability
	overrides     map[string]*domain.Override // ключ YYYY-MM-DD
	replacedWeek  []*domain.WeeklyAvailability
	deletedDates  []string
	upserted      *domain.Override
	deleteMissing bool
	rangeFrom     time.Time
	rangeTo       time.Time
}

func (f *fakeRepo) GetWeek(_ context.Context, _ int64) ([]*domain.WeeklyAvailability, error) {
	return f.week, nil
}

func (f *fakeRepo) GetDay(_ context.Context, _ int64, dayOfWeek int) (*domain.WeeklyAvailability, error) {
	for _, day := range f.week {
		if day.DayOfWeek == dayOfWeek {
			return day, nil
		}
	}
	return nil, availabilityRepo.ErrDayNotFound
}

func (f *fakeRepo) ReplaceWeek(_ context.Context, _ int64, week []*domain.WeeklyAvailability) error {
	f.replacedWeek = week
	f.week = week
	return nil
}

func (f *fakeRepo) GetOverride(_ context.Context, _ int64, date time.Time) (*domain.Override, error) {
	if o, ok := f.overrides[date.Format(domain.DateFormat)]; ok {
		return o, nil
	}
	return nil, availabilityRepo.ErrOverrideNotFound
}

func (f *fakeRepo) GetOverridesInRange(_ context.Context, _ int64, from, to time.Time) ([]*domain.Override, error) {
	f.rangeFrom = from
	f.rangeTo = to
	result := make([]*domain.Override, 0, len(f.overrides))
	for _, o := range f.overrides {
		result = append(result, o)
	}
	return result, nil
}

func (f *fakeRepo) UpsertOverride(_ context.Context, override *domain.Override) (*domain.Override, error) {
	override.ID = 1
	f.upserted = override
	return override, nil
}

func (f *fakeRepo) DeleteOverride(_ context.Context, _ int64, date time.Time) error {
	if f.deleteMissing {
		return availabilityRepo.ErrOverrideNotFound
	}
	f.deletedDates = append(f.deletedDates, date.Format(domain.DateFormat))
	return nil
}

type fakeVetClient struct {
	vet *vetservice.Vet
	err error
}

func (f *fakeVetClient) GetVet(_ context.Context, _ int64) (*vetservice.Vet, error) {
	return f.vet, f.err
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testVet = &vetservice.Vet{
	ID:         1,
	Name:       "Dr. Orlova",
	ManagerIDs: []int64{100},
	VisitTypes: []string{"Consultation", "Vaccination"},
	IsActive:   true,
}

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func newService(repo *fakeRepo, vc VetServiceClient) *Service {
	return NewService(repo, vc, fakeTxManager{}, noopLogger{}, fakeTimeProvider{now: testNow})
}

func weeklyDay(dayOfWeek int) *domain.WeeklyAvailability {
	return &domain.WeeklyAvailability{
		VetID:               1,
		DayOfWeek:           dayOfWeek,
		StartTime:           types.MustTimeString("09:00"),
		EndTime:             types.MustTimeString("17:00"),
		SlotDurationMinutes: 30,
		VisitTypes:          []string{"Consultation"},
		Breaks: []domain.Break{
			{StartTime: types.MustTimeString("12:00"), EndTime: types.MustTimeString("13:00")},
		},
	}
}

// ResolveDay

func TestResolveDay_OverrideWins(t *testing.T) {
	// 2026-09-10 - четверг (dayOfWeek=4), недельное правило есть,
	// но переопределение даты полностью его замещает, включая перерывы
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		week: []*domain.WeeklyAvailability{weeklyDay(4)},
		overrides: map[string]*domain.Override{
			"2026-09-10": {
				VetID:               1,
				Date:                date,
				StartTime:           types.MustTimeString("10:00"),
				EndTime:             types.MustTimeString("14:00"),
				SlotDurationMinutes: 60,
				VisitTypes:          []string{"Vaccination"},
			},
		},
	}
	svc := newService(repo, &fakeVetClient{vet: testVet})

	day, err := svc.ResolveDay(context.Background(), 1, date)
	require.NoError(t, err)

	assert.False(t, day.IsClosed)
	assert.Equal(t, types.MustTimeString("10:00"), day.StartTime)
	assert.Equal(t, 60, day.SlotDurationMinutes)
	assert.Equal(t, []string{"Vaccination"}, day.VisitTypes)
	assert.Empty(t, day.Breaks, "перерывы недельного правила не действуют на переопределённую дату")
}

func TestResolveDay_WeeklyFallback(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC) // четверг
	repo := &fakeRepo{week: []*domain.WeeklyAvailability{weeklyDay(4)}}
	svc := newService(repo, &fakeVetClient{vet: testVet})

	day, err := svc.ResolveDay(context.Background(), 1, date)
	require.NoError(t, err)

	assert.False(t, day.IsClosed)
	assert.Equal(t, types.MustTimeString("09:00"), day.StartTime)
	require.Len(t, day.Breaks, 1)
	assert.Equal(t, types.MustTimeString("12:00"), day.Breaks[0].StartTime)
}

func TestResolveDay_UnconfiguredDayIsClosed(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeVetClient{vet: testVet})

	day, err := svc.ResolveDay(context.Background(), 1, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, day.IsClosed)
}

// GetWeek

func TestGetWeek_OverrideHorizonFromInjectedClock(t *testing.T) {
	// Горизонт переопределений отсчитывается от инжектированных часов,
	// а не от системного времени
	repo := &fakeRepo{week: []*domain.WeeklyAvailability{weeklyDay(4)}}
	svc := newService(repo, &fakeVetClient{vet: testVet})

	_, err := svc.GetWeek(context.Background(), 1)
	require.NoError(t, err)

	wantFrom := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantFrom, repo.rangeFrom)
	assert.Equal(t, wantFrom.AddDate(0, 0, domain.MaxRangeDays), repo.rangeTo)
}

// SaveWeek

func validWeekRequest() *models.SaveWeekRequest {
	days := make([]models.DayInput, 0, domain.DaysPerWeek)
	for dow := 0; dow < domain.DaysPerWeek; dow++ {
		if dow == 0 || dow == 6 {
			days = append(days, models.DayInput{DayOfWeek: dow, IsClosed: true})
			continue
		}
		days = append(days, models.DayInput{
			DayOfWeek:           dow,
			StartTime:           types.MustTimeString("09:00"),
			EndTime:             types.MustTimeString("17:00"),
			SlotDurationMinutes: 30,
			VisitTypes:          []string{"Consultation"},
			Breaks: []models.BreakInput{
				{StartTime: types.MustTimeString("12:00"), EndTime: types.MustTimeString("13:00")},
			},
		})
	}
	return &models.SaveWeekRequest{UserID: 100, VetID: 1, Days: days}
}

func TestSaveWeek_Success(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeVetClient{vet: testVet})

	resp, err := svc.SaveWeek(context.Background(), validWeekRequest())
	require.NoError(t, err)

	require.Len(t, repo.replacedWeek, domain.DaysPerWeek)
	assert.Len(t, resp.Days, domain.DaysPerWeek)
}

func TestSaveWeek_AccessDenied(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeVetClient{vet: testVet})

	req := validWeekRequest()
	req.UserID = 999

	_, err := svc.SaveWeek(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSaveWeek_VetNotFound(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeVetClient{err: vetservice.ErrVetNotFound})

	_, err := svc.SaveWeek(context.Background(), validWeekRequest())
	assert.ErrorIs(t, err, ErrVetNotFound)
}

func TestSaveWeek_ValidationFailures(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeVetClient{vet: testVet})

	tests := []struct {
		name   string
		mutate func(req *models.SaveWeekRequest)
	}{
		{"missing day", func(req *models.SaveWeekRequest) {
			req.Days = req.Days[:6]
		}},
		{"duplicate day", func(req *models.SaveWeekRequest) {
			req.Days[0].DayOfWeek = 1
		}},
		{"start after end", func(req *models.SaveWeekRequest) {
			req.Days[1].StartTime = types.MustTimeString("18:00")
		}},
		{"slot duration too small", func(req *models.SaveWeekRequest) {
			req.Days[1].SlotDurationMinutes = 1
		}},
		{"slot duration too large", func(req *models.SaveWeekRequest) {
			req.Days[1].SlotDurationMinutes = domain.MaxSlotDurationMinutes + 1
		}},
		{"no visit types", func(req *models.SaveWeekRequest) {
			req.Days[1].VisitTypes = nil
		}},
		{"break outside working hours", func(req *models.SaveWeekRequest) {
			req.Days[1].Breaks = []models.BreakInput{
				{StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("09:30")},
			}
		}},
		{"overlapping breaks", func(req *models.SaveWeekRequest) {
			req.Days[1].Breaks = []models.BreakInput{
				{StartTime: types.MustTimeString("12:00"), EndTime: types.MustTimeString("13:00")},
				{StartTime: types.MustTimeString("12:30"), EndTime: types.MustTimeString("14:00")},
			}
		}},
		{"breaks on closed day", func(req *models.SaveWeekRequest) {
			req.Days[0].Breaks = []models.BreakInput{
				{StartTime: types.MustTimeString("12:00"), EndTime: types.MustTimeString("13:00")},
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validWeekRequest()
			tt.mutate(req)

			_, err := svc.SaveWeek(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// Переопределения дат

func TestUpsertOverride_Success(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeVetClient{vet: testVet})

	resp, err := svc.UpsertOverride(context.Background(), &models.UpsertOverrideRequest{
		UserID:              100,
		VetID:               1,
		Date:                "2026-09-10",
		StartTime:           types.MustTimeString("10:00"),
		EndTime:             types.MustTimeString("14:00"),
		SlotDurationMinutes: 60,
		VisitTypes:          []string{"Vaccination"},
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-10", resp.Date)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, 60, repo.upserted.SlotDurationMinutes)
}

func TestUpsertOverride_ClosedDayNeedsNoInterval(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeVetClient{vet: testVet})

	resp, err := svc.UpsertOverride(context.Background(), &models.UpsertOverrideRequest{
		UserID:   100,
		VetID:    1,
		Date:     "2026-09-10",
		IsClosed: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsClosed)
}

func TestUpsertOverride_InvalidDate(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeVetClient{vet: testVet})

	_, err := svc.UpsertOverride(context.Background(), &models.UpsertOverrideRequest{
		UserID:   100,
		VetID:    1,
		Date:     "10.09.2026",
		IsClosed: true,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteOverride_Success(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeVetClient{vet: testVet})

	err := svc.DeleteOverride(context.Background(), 100, 1, "2026-09-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-09-10"}, repo.deletedDates)
}

func TestDeleteOverride_NotFound(t *testing.T) {
	svc := newService(&fakeRepo{deleteMissing: true}, &fakeVetClient{vet: testVet})

	err := svc.DeleteOverride(context.Background(), 100, 1, "2026-09-10")
	assert.ErrorIs(t, err, ErrOverrideNotFound)
}

func TestDeleteOverride_AccessDenied(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeVetClient{vet: testVet})

	err := svc.DeleteOverride(context.Background(), 999, 1, "2026-09-10")
	assert.ErrorIs(t, err, ErrAccessDenied)
}
