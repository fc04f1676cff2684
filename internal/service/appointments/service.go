package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	appointmentRepo "github.com/m04kA/PCM-ScheduleService/internal/infra/storage/appointment"
	vetClient "github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
	"github.com/m04kA/PCM-ScheduleService/internal/service/appointments/models"
)

// Service сервис для чтения и отмены приёмов.
// Создание и перенос приёмов живут в отдельных usecase-ах,
// так как требуют сериализуемых транзакций и генерации слотов
type Service struct {
	appointmentRepo AppointmentRepository
	vetClient       VetServiceClient
	logger          Logger
	timeProvider    TimeProvider
}

// NewService создает новый экземпляр сервиса приёмов
func NewService(
	appointmentRepo AppointmentRepository,
	vetClient VetServiceClient,
	logger Logger,
	timeProvider TimeProvider,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		vetClient:       vetClient,
		logger:          logger,
		timeProvider:    timeProvider,
	}
}

// GetByID получает приём по ID.
// Доступно владельцу приёма и менеджерам клиники ветеринара
func (s *Service) GetByID(ctx context.Context, appointmentID, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d by user=%d", appointmentID, userID)

	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, appt, userID); err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", appointmentID)
	return models.FromDomainAppointment(appt), nil
}

// GetUserAppointments получает список приёмов пользователя.
// Пользователь видит только собственные приёмы
func (s *Service) GetUserAppointments(ctx context.Context, userID int64, statusFilter *string) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d", userID)

	var status *domain.AppointmentStatus
	if statusFilter != nil {
		parsed, err := parseStatus(*statusFilter)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status %q", *statusFilter)
			return nil, err
		}
		status = &parsed
	}

	appointments, err := s.appointmentRepo.GetByUserID(ctx, userID, status)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: fetched %d appointments for user=%d", len(appointments), userID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetVetAppointments получает список приёмов ветеринара с фильтрацией.
// Доступно только менеджерам клиники ветеринара
func (s *Service) GetVetAppointments(ctx context.Context, req *models.VetAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetVetAppointments: fetching appointments for vet=%d by user=%d", req.VetID, req.UserID)

	// 1. Собираем фильтр из параметров запроса
	filter, err := s.buildFilter(req)
	if err != nil {
		s.logger.Warn("GetVetAppointments: invalid filter for vet=%d: %v", req.VetID, err)
		return nil, err
	}

	// 2. Проверяем существование ветеринара и права доступа
	vet, err := s.getVet(ctx, req.VetID)
	if err != nil {
		return nil, err
	}
	if !s.isManager(vet, req.UserID) {
		s.logger.Warn("GetVetAppointments: user=%d is not a manager of vet=%d", req.UserID, req.VetID)
		return nil, ErrAccessDenied
	}

	// 3. Читаем приёмы
	appointments, err := s.appointmentRepo.GetByVetWithFilter(ctx, *filter)
	if err != nil {
		s.logger.Error("GetVetAppointments: repository error for vet=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: GetVetAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVetAppointments: fetched %d appointments for vet=%d", len(appointments), req.VetID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет приём. Доступно владельцу приёма и менеджерам клиники.
// Отменить можно только активный приём, время которого ещё не наступило
func (s *Service) Cancel(ctx context.Context, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", req.AppointmentID, req.UserID)

	// 1. Валидируем причину отмены
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long (%d chars)", len(req.Reason))
		return nil, fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// 2. Получаем приём и проверяем права доступа
	appt, err := s.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, appt, req.UserID); err != nil {
		return nil, err
	}

	// 3. Проверяем, что приём можно отменить: только активный и только до его начала.
	// Приём с некорректным временем начала трактуется как прошедший
	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d has status %s and cannot be cancelled", appt.ID, appt.Status)
		return nil, fmt.Errorf("%w: appointment status is %s", ErrCannotCancel, appt.Status)
	}
	if !appt.IsInFuture(s.timeProvider.Now()) {
		s.logger.Warn("Cancel: appointment id=%d is in the past", appt.ID)
		return nil, fmt.Errorf("%w: appointment time has already passed", ErrCannotCancel)
	}

	// 4. Отменяем приём
	if err := s.appointmentRepo.Cancel(ctx, req.AppointmentID, req.Reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// 5. Перечитываем приём для ответа с данными отмены
	cancelled, err := s.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", req.AppointmentID)
	return models.FromDomainAppointment(cancelled), nil
}

// Вспомогательные методы

// getAppointment получает приём с маппингом ошибок репозитория
func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getAppointment: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return appt, nil
}

// checkAccess проверяет, что пользователь - владелец приёма или менеджер клиники
func (s *Service) checkAccess(ctx context.Context, appt *domain.Appointment, userID int64) error {
	if appt.UserID == userID {
		return nil
	}

	vet, err := s.vetClient.GetVet(ctx, appt.VetID)
	if err != nil {
		if errors.Is(err, vetClient.ErrVetNotFound) {
			// Ветеринар удалён: подтвердить менеджерские права невозможно
			s.logger.Warn("checkAccess: vet id=%d not found, denying access for user=%d", appt.VetID, userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkAccess: failed to get vet id=%d: %v", appt.VetID, err)
		return fmt.Errorf("%w: failed to get vet: %v", ErrInternal, err)
	}

	if !s.isManager(vet, userID) {
		s.logger.Warn("checkAccess: user=%d has no access to appointment id=%d", userID, appt.ID)
		return ErrAccessDenied
	}
	return nil
}

// getVet получает ветеринара с маппингом ошибок интеграции
func (s *Service) getVet(ctx context.Context, vetID int64) (*vetClient.Vet, error) {
	vet, err := s.vetClient.GetVet(ctx, vetID)
	if err != nil {
		if errors.Is(err, vetClient.ErrVetNotFound) {
			s.logger.Warn("getVet: vet id=%d not found", vetID)
			return nil, ErrVetNotFound
		}
		s.logger.Error("getVet: failed to get vet id=%d: %v", vetID, err)
		return nil, fmt.Errorf("%w: failed to get vet: %v", ErrInternal, err)
	}
	return vet, nil
}

// isManager проверяет, что пользователь является менеджером клиники ветеринара
func (s *Service) isManager(vet *vetClient.Vet, userID int64) bool {
	for _, managerID := range vet.ManagerIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}

// buildFilter собирает фильтр приёмов ветеринара из параметров запроса.
// date и период from/to взаимоисключающие
func (s *Service) buildFilter(req *models.VetAppointmentsRequest) (*domain.VetAppointmentsFilter, error) {
	filter := &domain.VetAppointmentsFilter{
		VetID:           req.VetID,
		IncludeInactive: req.IncludeInactive,
	}

	if req.Date != nil && (req.From != nil || req.To != nil) {
		return nil, fmt.Errorf("%w: date and from/to filters are mutually exclusive", ErrInvalidInput)
	}

	if req.Date != nil {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		filter.StartDate = &date
		filter.EndDate = &date
	}

	if req.From != nil {
		from, err := time.Parse(domain.DateFormat, *req.From)
		if err != nil {
			return nil, fmt.Errorf("%w: from must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		filter.StartDate = &from
	}
	if req.To != nil {
		to, err := time.Parse(domain.DateFormat, *req.To)
		if err != nil {
			return nil, fmt.Errorf("%w: to must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		filter.EndDate = &to
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// parseStatus валидирует строковый статус приёма
func parseStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	switch status {
	case domain.StatusBooked, domain.StatusCancelled, domain.StatusCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
}
