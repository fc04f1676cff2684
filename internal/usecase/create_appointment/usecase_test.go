package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/internal/integrations/userservice"
	"github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// Фейковые реализации зависимостей

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	created      *domain.Appointment
	createCalls  int
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.createCalls++
	appt.ID = 42
	appt.CreatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	appt.UpdatedAt = appt.CreatedAt
	f.created = appt
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByVetWithFilter(_ context.Context, _ domain.VetAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
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

type fakeUserClient struct {
	pet    *userservice.Pet
	petErr error
}

func (f *fakeUserClient) GetPetWithGracefulDegradation(_ context.Context, _, _ int64) (*userservice.Pet, error) {
	return f.pet, f.petErr
}

func (f *fakeUserClient) GetSelectedPetWithGracefulDegradation(_ context.Context, _ int64) (*userservice.Pet, error) {
	return f.pet, f.petErr
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
		Name:       "Dr. Petrova",
		ManagerIDs: []int64{100},
		VisitTypes: []string{"Consultation", "Vaccination"},
		IsActive:   true,
	}
	testPet = &userservice.Pet{
		ID:      7,
		UserID:  10,
		Name:    "Barsik",
		Species: "cat",
	}
	testNow  = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
)

func workingDay() *domain.EffectiveDay {
	return &domain.EffectiveDay{
		StartTime:           types.MustTimeString("09:00"),
		EndTime:             types.MustTimeString("17:00"),
		SlotDurationMinutes: 30,
		VisitTypes:          []string{"Consultation", "Vaccination"},
		Breaks: []domain.Break{
			{StartTime: types.MustTimeString("12:00"), EndTime: types.MustTimeString("13:00")},
		},
	}
}

func newUseCase(repo *fakeAppointmentRepo, day *domain.EffectiveDay, vc VetServiceClient, uc UserServiceClient) *UseCase {
	return NewUseCase(repo, &fakeAvailabilityResolver{day: day}, vc, uc, fakeTxManager{}, noopLogger{}).
		WithTimeProvider(&fakeTimeProvider{now: testNow})
}

func validRequest() *Request {
	return &Request{
		UserID:    10,
		VetID:     1,
		PetID:     7,
		Date:      testDate,
		StartTime: types.MustTimeString("10:00"),
		VisitType: "Consultation",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newUseCase(repo, workingDay(), &fakeVetClient{vet: testVet}, &fakeUserClient{pet: testPet})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, types.MustTimeString("10:30"), resp.EndTime)
	assert.Equal(t, "Dr. Petrova", resp.VetName)
	require.NotNil(t, resp.PetName)
	assert.Equal(t, "Barsik", *resp.PetName)
	require.NotNil(t, resp.PetSpecies)
	assert.Equal(t, "cat", *resp.PetSpecies)
}

func TestExecute_SlotTaken(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{
				ID:              5,
				VetID:           1,
				Date:            testDate,
				StartTime:       types.MustTimeString("10:00"),
				DurationMinutes: 30,
				Status:          domain.StatusBooked,
			},
		},
	}
	uc := newUseCase(repo, workingDay(), &fakeVetClient{vet: testVet}, &fakeUserClient{pet: testPet})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Zero(t, repo.createCalls)
}

func TestExecute_CancelledAppointmentDoesNotBlockSlot(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{
				ID:              5,
				VetID:           1,
				Date:            testDate,
				StartTime:       types.MustTimeString("10:00"),
				DurationMinutes: 30,
				Status:          domain.StatusCancelled,
			},
		},
	}
	uc := newUseCase(repo, workingDay(), &fakeVetClient{vet: testVet}, &fakeUserClient{pet: testPet})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ClosedDay(t *testing.T) {
	uc := newUseCase(&fakeAppointmentRepo{}, nil, &fakeVetClient{vet: testVet}, &fakeUserClient{pet: testPet})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDayClosed)
}

func TestExecute_MisalignedTime(t *testing.T) {
	uc := newUseCase(&fakeAppointmentRepo{}, workingDay(), &fakeVetClient{vet: testVet}, &fakeUserClient{pet: testPet})

	req := validRequest()
	req.StartTime = types.MustTimeString("10:15")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SlotInsideBreak(t *testing.T) {
	uc := newUseCase(&fakeAppointmentRepo{}, workingDay(), &fakeVetClient{vet: testVet}, &fakeUserClient{pet: testPet})

	req := validRequest()
	req.StartTime = types.MustTimeString("12:30")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SlotOutsideWorkingHours(t *testing.T) {
	uc := newUseCase(&fakeAppointmentRepo{}, workingDay(), &fakeVetClient{vet: testVet}, &fakeUserClient{pet: testPet})

	req := validRequest()
	req.StartTime = types.MustTimeString("16:45")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SameDayPastSlot(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := NewUseCase(repo, &fakeAvailabilityResolver{day: workingDay()},
		&fakeVetClient{vet: testVet}, &fakeUserClient{pet: testPet}, fakeTxManager{}, noopLogger{}).
		WithTimeProvider(&fakeTimeProvider{now: time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)})

	req := validRequest()
	req.Date = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	req.StartTime = types.MustTimeString("10:00") // ровно сейчас - уже нельзя

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_VisitTypeNotOfferedByVet(t *testing.T) {
	uc := newUseCase(&fakeAppointmentRepo{}, workingDay(), &fakeVetClient{vet: testVet}, &fakeUserClient{pet: testPet})

	req := validRequest()
	req.VisitType = "Surgery"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVisitTypeNotOffered)
}

func TestExecute_VisitTypeNotServedByDay(t *testing.T) {
	day := workingDay()
	day.VisitTypes = []string{"Vaccination"}
	uc := newUseCase(&fakeAppointmentRepo{}, day, &fakeVetClient{vet: testVet}, &fakeUserClient{pet: testPet})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVisitTypeNotOffered)
}

func TestExecute_VetNotFound(t *testing.T) {
	uc := newUseCase(&fakeAppointmentRepo{}, workingDay(),
		&fakeVetClient{err: vetservice.ErrVetNotFound}, &fakeUserClient{pet: testPet})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVetNotFound)
}

func TestExecute_PetNotFound(t *testing.T) {
	uc := newUseCase(&fakeAppointmentRepo{}, workingDay(), &fakeVetClient{vet: testVet},
		&fakeUserClient{petErr: userservice.ErrPetNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPetNotFound)
}

func TestExecute_GracefulDegradationWithoutPetData(t *testing.T) {
	// UserService недоступен: приём создаётся с явным petID, но без клички и вида
	repo := &fakeAppointmentRepo{}
	uc := newUseCase(repo, workingDay(), &fakeVetClient{vet: testVet},
		&fakeUserClient{petErr: userservice.ErrServiceDegraded})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.PetID)
	assert.Nil(t, resp.PetName)
	assert.Nil(t, resp.PetSpecies)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newUseCase(&fakeAppointmentRepo{}, workingDay(), &fakeVetClient{vet: testVet}, &fakeUserClient{pet: testPet})

	req := validRequest()
	req.Date = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
