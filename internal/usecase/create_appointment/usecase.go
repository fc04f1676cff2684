package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	userClient "github.com/m04kA/PCM-ScheduleService/internal/integrations/userservice"
	vetClient "github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// UseCase use case для создания приёма.
// Проверка доступности слота и вставка выполняются в сериализуемой транзакции
// с блокировкой календаря дня (FOR UPDATE) - два пользователя не могут
// одновременно занять один слот
type UseCase struct {
	appointmentRepo AppointmentRepository
	availability    AvailabilityResolver
	vetClient       VetServiceClient
	userClient      UserServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availability AvailabilityResolver,
	vetClient VetServiceClient,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		vetClient:       vetClient,
		userClient:      userClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания приёма
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, vet=%d, pet=%d, date=%s, time=%s, visitType=%s",
		req.UserID, req.VetID, req.PetID, req.Date.Format(domain.DateFormat), req.StartTime, req.VisitType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем ветеринара и проверяем тип приёма
	vet, err := uc.vetClient.GetVet(ctx, req.VetID)
	if err != nil {
		if errors.Is(err, vetClient.ErrVetNotFound) {
			uc.logger.Warn("CreateAppointment: vet id=%d not found", req.VetID)
			return nil, ErrVetNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get vet id=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: failed to get vet: %v", ErrInternal, err)
	}
	if !vet.IsActive {
		uc.logger.Warn("CreateAppointment: vet id=%d is inactive", req.VetID)
		return nil, ErrVetNotFound
	}
	if !vet.OffersVisitType(req.VisitType) {
		uc.logger.Warn("CreateAppointment: vet id=%d does not offer visit type %q", req.VetID, req.VisitType)
		return nil, ErrVisitTypeNotOffered
	}

	// 4. Получаем питомца с graceful degradation: при недоступности UserService
	// приём создаётся без денормализованных данных питомца
	pet, petID, err := uc.resolvePet(ctx, req)
	if err != nil {
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Разрешаем конфигурацию дня: переопределение даты или недельное правило
		day, err := uc.availability.ResolveDay(txCtx, req.VetID, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to resolve day: %v", err)
			return fmt.Errorf("%w: failed to resolve day: %v", ErrInternal, err)
		}

		if day.IsClosed {
			uc.logger.Warn("CreateAppointment: vet id=%d is closed on %s",
				req.VetID, req.Date.Format(domain.DateFormat))
			return ErrDayClosed
		}
		if !day.SupportsVisitType(req.VisitType) {
			uc.logger.Warn("CreateAppointment: day %s does not serve visit type %q",
				req.Date.Format(domain.DateFormat), req.VisitType)
			return ErrVisitTypeNotOffered
		}

		// 5.2. Проверяем, что время попадает в сетку слотов дня
		endTime, err := validateSlot(day, req.StartTime)
		if err != nil {
			uc.logger.Warn("CreateAppointment: slot validation failed: %v", err)
			return err
		}

		// 5.3. Сегодняшний слот должен начинаться строго позже текущего времени
		if err := validateSlotNotInPast(req.Date, req.StartTime, now); err != nil {
			uc.logger.Warn("CreateAppointment: %v", err)
			return err
		}

		// 5.4. Читаем активные приёмы дня с блокировкой (FOR UPDATE)
		filter := domain.VetAppointmentsFilter{
			VetID:           req.VetID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}
		appointments, err := uc.appointmentRepo.GetByVetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.5. Проверяем, что слот свободен
		if isSlotTaken(req.StartTime, endTime, appointments, 0) {
			uc.logger.Warn("CreateAppointment: slot %s %s is already taken",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		// 5.6. Создаем приём с денормализацией данных
		appt := &domain.Appointment{
			UserID:          req.UserID,
			VetID:           req.VetID,
			PetID:           petID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: day.SlotDurationMinutes,
			VisitType:       req.VisitType,
			Status:          domain.StatusBooked,
			VetName:         vet.Name,
			Notes:           req.Notes,
		}
		if pet != nil {
			appt.PetName = &pet.Name
			appt.PetSpecies = &pet.Species
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	endTime, _ := result.EndTime()
	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		VetID:           result.VetID,
		PetID:           result.PetID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		VisitType:       result.VisitType,
		Status:          string(result.Status),
		VetName:         result.VetName,
		PetName:         result.PetName,
		PetSpecies:      result.PetSpecies,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolvePet определяет питомца приёма: явно указанного или выбранного пользователем.
// При недоступности UserService с явным petID приём создаётся без данных питомца
func (uc *UseCase) resolvePet(ctx context.Context, req *Request) (*userClient.Pet, int64, error) {
	if req.PetID > 0 {
		pet, err := uc.userClient.GetPetWithGracefulDegradation(ctx, req.UserID, req.PetID)
		if err != nil {
			if errors.Is(err, userClient.ErrPetNotFound) {
				uc.logger.Warn("CreateAppointment: pet id=%d not found for user id=%d", req.PetID, req.UserID)
				return nil, 0, ErrPetNotFound
			}
			if errors.Is(err, userClient.ErrServiceDegraded) {
				uc.logger.Warn("CreateAppointment: creating appointment without pet data for user id=%d", req.UserID)
				return nil, req.PetID, nil
			}
			uc.logger.Error("CreateAppointment: failed to get pet id=%d: %v", req.PetID, err)
			return nil, 0, fmt.Errorf("%w: failed to get pet: %v", ErrInternal, err)
		}
		return pet, pet.ID, nil
	}

	// Без явного petID деградация невозможна: питомца определить не по чему
	pet, err := uc.userClient.GetSelectedPetWithGracefulDegradation(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrPetNotFound) {
			uc.logger.Warn("CreateAppointment: user id=%d has no selected pet", req.UserID)
			return nil, 0, ErrPetNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get selected pet for user id=%d: %v", req.UserID, err)
		return nil, 0, fmt.Errorf("%w: failed to get selected pet: %v", ErrInternal, err)
	}
	return pet, pet.ID, nil
}

// isSlotTaken проверяет пересечение слота с активными приёмами.
// excludeID позволяет не учитывать переносимый приём
func isSlotTaken(slotStart, slotEnd types.TimeString, appointments []*domain.Appointment, excludeID int64) bool {
	for _, appt := range appointments {
		if appt.ID == excludeID || !appt.IsActive() {
			continue
		}

		apptEnd, err := appt.EndTime()
		if err != nil {
			continue
		}

		if appt.StartTime.IsBefore(slotEnd) && apptEnd.IsAfter(slotStart) {
			return true
		}
	}
	return false
}
