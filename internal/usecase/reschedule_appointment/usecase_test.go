package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	storage "github.com/m04kA/PCM-ScheduleService/internal/infra/storage/appointment"
	"github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// Фейковые реализации зависимостей

type fakeAppointmentRepo struct {
	appointment     *domain.Appointment
	dayAppointments []*domain.Appointment
	rescheduleCalls int
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.appointment == nil {
		return nil, storage.ErrAppointmentNotFound
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) GetByVetWithFilter(_ context.Context, _ domain.VetAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.dayAppointments, nil
}

func (f *fakeAppointmentRepo) Reschedule(_ context.Context, _ int64, _ time.Time, _ types.TimeString, _ int) error {
	f.rescheduleCalls++
	return nil
}

type fakeAvailabilityResolver struct {
	day *domain.EffectiveDay
}

func (f *fakeAvailabilityResolver) ResolveDay(_ context.Context, _ int64, _ time.Time) (*domain.EffectiveDay, error) {
	if f.day == nil {
		return domain.ClosedDay(), nil
	}
	return f.day, nil
}

type fakeVetClient struct {
	vet *vetservice.Vet
	err error
}

func (f *fakeVetClient) GetVet(_ context.Context, _ int64) (*vetservice.Vet, error) {
	return f.vet, f.err
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

var (
	testVet = &vetservice.Vet{
		ID:         1,
		Name:       "Dr. Sidorova",
		ManagerIDs: []int64{100},
		VisitTypes: []string{"Consultation"},
		IsActive:   true,
	}
	testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
)

func bookedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              5,
		UserID:          10,
		VetID:           1,
		PetID:           7,
		Date:            time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustTimeString("11:00"),
		DurationMinutes: 30,
		VisitType:       "Consultation",
		Status:          domain.StatusBooked,
	}
}

func workingDay() *domain.EffectiveDay {
	return &domain.EffectiveDay{
		StartTime:           types.MustTimeString("09:00"),
		EndTime:             types.MustTimeString("17:00"),
		SlotDurationMinutes: 30,
		VisitTypes:          []string{"Consultation"},
	}
}

func availableSlot() *ChosenSlot {
	return &ChosenSlot{
		Date:   "2026-09-10",
		Time:   "2:30 PM",
		Status: string(domain.SlotAvailable),
	}
}

func newUseCase(repo *fakeAppointmentRepo, day *domain.EffectiveDay) *UseCase {
	return NewUseCase(repo, &fakeAvailabilityResolver{day: day}, &fakeVetClient{vet: testVet},
		fakeTxManager{}, noopLogger{}).
		WithTimeProvider(&fakeTimeProvider{now: testNow})
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: bookedAppointment()}
	uc := newUseCase(repo, workingDay())

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        10,
		AppointmentID: 5,
		Slot:          availableSlot(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "2026-09-10", resp.NewDate.Format(domain.DateFormat))
	assert.Equal(t, types.MustTimeString("14:30"), resp.NewStartTime)
	assert.Equal(t, types.MustTimeString("15:00"), resp.NewEndTime)
	assert.Equal(t, "Consultation", resp.VisitType)
	assert.Equal(t, 1, repo.rescheduleCalls)
}

func TestExecute_NoSlotChosen(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: bookedAppointment()}
	uc := newUseCase(repo, workingDay())

	_, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 5, Slot: nil})
	assert.ErrorIs(t, err, ErrNoSlotChosen)
}

func TestExecute_BookedSlotRejectedBeforeStorage(t *testing.T) {
	// Слот, помеченный в выдаче как занятый, отклоняется без обращения к хранилищу
	repo := &fakeAppointmentRepo{appointment: bookedAppointment()}
	uc := newUseCase(repo, workingDay())

	slot := availableSlot()
	slot.Status = string(domain.SlotBooked)

	_, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 5, Slot: slot})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Zero(t, repo.rescheduleCalls)
}

func TestExecute_MalformedTimeFailsClosed(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: bookedAppointment()}
	uc := newUseCase(repo, workingDay())

	tests := []string{"25:00 PM", "10:30", "half past ten", ""}
	for _, badTime := range tests {
		t.Run(badTime, func(t *testing.T) {
			slot := availableSlot()
			slot.Time = badTime

			_, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 5, Slot: slot})
			assert.ErrorIs(t, err, ErrInvalidTime)
		})
	}
	assert.Zero(t, repo.rescheduleCalls)
}

func TestExecute_InvalidDate(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: bookedAppointment()}
	uc := newUseCase(repo, workingDay())

	slot := availableSlot()
	slot.Date = "10.09.2026"

	_, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 5, Slot: slot})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_TargetSlotTaken(t *testing.T) {
	appt := bookedAppointment()
	repo := &fakeAppointmentRepo{
		appointment: appt,
		dayAppointments: []*domain.Appointment{
			{
				ID:              9,
				VetID:           1,
				Date:            time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
				StartTime:       types.MustTimeString("14:30"),
				DurationMinutes: 30,
				Status:          domain.StatusBooked,
			},
		},
	}
	uc := newUseCase(repo, workingDay())

	_, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 5, Slot: availableSlot()})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Zero(t, repo.rescheduleCalls)
}

func TestExecute_OwnSlotDoesNotBlockReschedule(t *testing.T) {
	// Перенос в пределах того же дня: собственный приём не блокирует целевой слот
	appt := bookedAppointment()
	appt.Date = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	appt.StartTime = types.MustTimeString("14:30")

	repo := &fakeAppointmentRepo{
		appointment:     appt,
		dayAppointments: []*domain.Appointment{appt},
	}
	uc := newUseCase(repo, workingDay())

	slot := availableSlot()
	slot.Time = "3:00 PM"

	resp, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 5, Slot: slot})
	require.NoError(t, err)
	assert.Equal(t, types.MustTimeString("15:00"), resp.NewStartTime)
}

func TestExecute_CancelledAppointmentCannotBeRescheduled(t *testing.T) {
	appt := bookedAppointment()
	appt.Status = domain.StatusCancelled
	repo := &fakeAppointmentRepo{appointment: appt}
	uc := newUseCase(repo, workingDay())

	_, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 5, Slot: availableSlot()})
	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestExecute_PastAppointmentCannotBeRescheduled(t *testing.T) {
	appt := bookedAppointment()
	appt.Date = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{appointment: appt}
	uc := newUseCase(repo, workingDay())

	_, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 5, Slot: availableSlot()})
	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestExecute_MalformedAppointmentTimeFailsClosed(t *testing.T) {
	// Приём с испорченным временем начала считается прошедшим - перенос запрещён
	appt := bookedAppointment()
	appt.Date = testNow
	appt.StartTime = "garbage"
	repo := &fakeAppointmentRepo{appointment: appt}
	uc := newUseCase(repo, workingDay())

	_, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 5, Slot: availableSlot()})
	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestExecute_TargetSlotInPast(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: bookedAppointment()}
	uc := newUseCase(repo, workingDay())

	slot := availableSlot()
	slot.Date = "2026-08-20"

	_, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 5, Slot: slot})
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_ClosedTargetDay(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: bookedAppointment()}
	uc := newUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 5, Slot: availableSlot()})
	assert.ErrorIs(t, err, ErrDayClosed)
}

func TestExecute_AccessControl(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: bookedAppointment()}
	uc := newUseCase(repo, workingDay())

	// Посторонний пользователь
	_, err := uc.Execute(context.Background(), &Request{UserID: 999, AppointmentID: 5, Slot: availableSlot()})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Менеджер клиники ветеринара
	_, err = uc.Execute(context.Background(), &Request{UserID: 100, AppointmentID: 5, Slot: availableSlot()})
	assert.NoError(t, err)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	uc := newUseCase(&fakeAppointmentRepo{}, workingDay())

	_, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 404, Slot: availableSlot()})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_MisalignedTargetTime(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: bookedAppointment()}
	uc := newUseCase(repo, workingDay())

	slot := availableSlot()
	slot.Time = "2:45 PM"

	_, err := uc.Execute(context.Background(), &Request{UserID: 10, AppointmentID: 5, Slot: slot})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}
