package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	appointmentRepo "github.com/m04kA/PCM-ScheduleService/internal/infra/storage/appointment"
	vetClient "github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// UseCase use case для переноса приёма на новый слот.
// Статус выбранного слота не принимается на веру из устаревшей выдачи:
// доступность перепроверяется в сериализуемой транзакции с блокировкой дня
type UseCase struct {
	appointmentRepo AppointmentRepository
	availability    AvailabilityResolver
	vetClient       VetServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availability AvailabilityResolver,
	vetClient VetServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		vetClient:       vetClient,
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

// Execute выполняет use case переноса приёма
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: user=%d, appointment=%d", req.UserID, req.AppointmentID)

	// 1. Валидация входных данных и разбор выбранного слота.
	// Занятый слот отклоняется до обращения к хранилищу
	newDate, newStartTime, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем приём и проверяем права доступа
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: repository error for id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if err := uc.checkAccess(ctx, appt, req.UserID); err != nil {
		return nil, err
	}

	// 4. Переносить можно только активный приём, время которого ещё не наступило.
	// Приём с некорректным временем начала трактуется как прошедший
	if !appt.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d has status %s", appt.ID, appt.Status)
		return nil, fmt.Errorf("%w: appointment status is %s", ErrCannotReschedule, appt.Status)
	}
	if !appt.IsInFuture(now) {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d is in the past", appt.ID)
		return nil, fmt.Errorf("%w: appointment time has already passed", ErrCannotReschedule)
	}

	// 5. Новый слот тоже должен быть строго в будущем
	if !domain.IsAppointmentInFuture(newDate, newStartTime, now) {
		uc.logger.Warn("RescheduleAppointment: target slot %s %s is in the past",
			req.Slot.Date, req.Slot.Time)
		return nil, fmt.Errorf("%w: slot %s %s has already started", ErrSlotInPast, req.Slot.Date, req.Slot.Time)
	}

	var newEndTime types.TimeString
	var durationMinutes int

	// 6. Перепроверяем доступность и переносим в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Разрешаем конфигурацию нового дня
		day, err := uc.availability.ResolveDay(txCtx, appt.VetID, newDate)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to resolve day: %v", err)
			return fmt.Errorf("%w: failed to resolve day: %v", ErrInternal, err)
		}

		if day.IsClosed {
			uc.logger.Warn("RescheduleAppointment: vet id=%d is closed on %s", appt.VetID, req.Slot.Date)
			return ErrDayClosed
		}
		if !day.SupportsVisitType(appt.VisitType) {
			uc.logger.Warn("RescheduleAppointment: day %s does not serve visit type %q",
				req.Slot.Date, appt.VisitType)
			return ErrVisitTypeNotServed
		}

		// 6.2. Проверяем сетку слотов нового дня
		endTime, err := validateSlot(day, newStartTime)
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: slot validation failed: %v", err)
			return err
		}

		// 6.3. Читаем активные приёмы нового дня с блокировкой (FOR UPDATE)
		filter := domain.VetAppointmentsFilter{
			VetID:           appt.VetID,
			StartDate:       &newDate,
			EndDate:         &newDate,
			IncludeInactive: false,
		}
		appointments, err := uc.appointmentRepo.GetByVetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 6.4. Проверяем, что слот свободен; сам переносимый приём не учитывается
		if isSlotTaken(newStartTime, endTime, appointments, appt.ID) {
			uc.logger.Warn("RescheduleAppointment: slot %s %s is already taken", req.Slot.Date, newStartTime)
			return ErrSlotNotAvailable
		}

		// 6.5. Переносим приём
		if err := uc.appointmentRepo.Reschedule(txCtx, appt.ID, newDate, newStartTime, day.SlotDurationMinutes); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to reschedule: %v", err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		newEndTime = endTime
		durationMinutes = day.SlotDurationMinutes
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully moved appointment id=%d to %s %s",
		appt.ID, req.Slot.Date, newStartTime)

	return &Response{
		ID:              appt.ID,
		NewDate:         newDate,
		NewStartTime:    newStartTime,
		NewEndTime:      newEndTime,
		DurationMinutes: durationMinutes,
		VisitType:       appt.VisitType,
		Status:          string(domain.StatusBooked),
	}, nil
}

// checkAccess проверяет, что пользователь - владелец приёма или менеджер клиники
func (uc *UseCase) checkAccess(ctx context.Context, appt *domain.Appointment, userID int64) error {
	if appt.UserID == userID {
		return nil
	}

	vet, err := uc.vetClient.GetVet(ctx, appt.VetID)
	if err != nil {
		if errors.Is(err, vetClient.ErrVetNotFound) {
			uc.logger.Warn("RescheduleAppointment: vet id=%d not found, denying access for user=%d",
				appt.VetID, userID)
			return ErrAccessDenied
		}
		uc.logger.Error("RescheduleAppointment: failed to get vet id=%d: %v", appt.VetID, err)
		return fmt.Errorf("%w: failed to get vet: %v", ErrInternal, err)
	}

	for _, managerID := range vet.ManagerIDs {
		if managerID == userID {
			return nil
		}
	}

	uc.logger.Warn("RescheduleAppointment: user=%d has no access to appointment id=%d", userID, appt.ID)
	return ErrAccessDenied
}

// isSlotTaken проверяет пересечение слота с активными приёмами, кроме excludeID
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
