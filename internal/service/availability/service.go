package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/PCM-ScheduleService/internal/infra/storage/availability"
	vetClient "github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
	"github.com/m04kA/PCM-ScheduleService/internal/service/availability/models"
)

// Service сервис для работы с расписанием ветеринара:
// недельные правила, перерывы и переопределения дат
type Service struct {
	availabilityRepo AvailabilityRepository
	vetClient        VetServiceClient
	txManager        TransactionManager
	logger           Logger
	timeProvider     TimeProvider
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	vetClient VetServiceClient,
	txManager TransactionManager,
	logger Logger,
	timeProvider TimeProvider,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		vetClient:        vetClient,
		txManager:        txManager,
		logger:           logger,
		timeProvider:     timeProvider,
	}
}

// GetWeek возвращает недельное расписание ветеринара вместе с ближайшими
// переопределениями дат. Публичный метод - доступен всем
func (s *Service) GetWeek(ctx context.Context, vetID int64) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: fetching schedule for vet=%d", vetID)

	// 1. Проверяем существование ветеринара
	if _, err := s.getVet(ctx, vetID); err != nil {
		return nil, err
	}

	// 2. Читаем недельные правила с перерывами
	week, err := s.availabilityRepo.GetWeek(ctx, vetID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for vet=%d: %v", vetID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	// 3. Подтягиваем переопределения на ближайший горизонт бронирования
	today := truncateToDate(s.timeProvider.Now())
	overrides, err := s.availabilityRepo.GetOverridesInRange(ctx, vetID, today, today.AddDate(0, 0, domain.MaxRangeDays))
	if err != nil {
		s.logger.Error("GetWeek: failed to fetch overrides for vet=%d: %v", vetID, err)
		return nil, fmt.Errorf("%w: GetWeek - failed to fetch overrides: %v", ErrInternal, err)
	}

	s.logger.Info("GetWeek: fetched %d days and %d overrides for vet=%d", len(week), len(overrides), vetID)
	return models.FromDomainWeek(vetID, week, overrides), nil
}

// SaveWeek полностью заменяет недельное расписание ветеринара.
// Доступно только менеджерам клиники ветеринара
func (s *Service) SaveWeek(ctx context.Context, req *models.SaveWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("SaveWeek: saving schedule for vet=%d by user=%d", req.VetID, req.UserID)

	// 1. Валидируем недельное расписание
	if err := s.validateWeek(req.Days); err != nil {
		s.logger.Warn("SaveWeek: validation failed for vet=%d: %v", req.VetID, err)
		return nil, err
	}

	// 2. Проверяем существование ветеринара и права доступа
	vet, err := s.getVet(ctx, req.VetID)
	if err != nil {
		return nil, err
	}
	if !s.isManager(vet, req.UserID) {
		s.logger.Warn("SaveWeek: user=%d is not a manager of vet=%d", req.UserID, req.VetID)
		return nil, ErrAccessDenied
	}

	// 3. Заменяем неделю атомарно: удаление старых правил и вставка новых
	// происходят в одной транзакции
	week := req.ToDomainWeek()
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.availabilityRepo.ReplaceWeek(ctx, req.VetID, week)
	})
	if err != nil {
		s.logger.Error("SaveWeek: failed to replace week for vet=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: SaveWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SaveWeek: successfully saved schedule for vet=%d", req.VetID)
	return s.GetWeek(ctx, req.VetID)
}

// ResolveDay разрешает действующую конфигурацию для конкретной даты.
// Переопределение даты полностью замещает недельное правило (включая перерывы),
// отсутствие какой-либо конфигурации трактуется как закрытый день
func (s *Service) ResolveDay(ctx context.Context, vetID int64, date time.Time) (*domain.EffectiveDay, error) {
	override, err := s.availabilityRepo.GetOverride(ctx, vetID, date)
	if err != nil && !errors.Is(err, availabilityRepo.ErrOverrideNotFound) {
		s.logger.Error("ResolveDay: failed to fetch override for vet=%d date=%s: %v",
			vetID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ResolveDay - failed to fetch override: %v", ErrInternal, err)
	}
	if override != nil {
		return domain.EffectiveDayFromOverride(override), nil
	}

	day, err := s.availabilityRepo.GetDay(ctx, vetID, int(date.Weekday()))
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrDayNotFound) {
			return domain.ClosedDay(), nil
		}
		s.logger.Error("ResolveDay: failed to fetch weekly day for vet=%d date=%s: %v",
			vetID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ResolveDay - failed to fetch weekly day: %v", ErrInternal, err)
	}

	return domain.EffectiveDayFromWeekly(day, day.Breaks), nil
}

// UpsertOverride создает или заменяет переопределение расписания на дату.
// Доступно только менеджерам клиники ветеринара
func (s *Service) UpsertOverride(ctx context.Context, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("UpsertOverride: saving override for vet=%d date=%s by user=%d", req.VetID, req.Date, req.UserID)

	// 1. Валидируем дату и конфигурацию дня
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("UpsertOverride: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	if err := s.validateOverride(req); err != nil {
		s.logger.Warn("UpsertOverride: validation failed for vet=%d date=%s: %v", req.VetID, req.Date, err)
		return nil, err
	}

	// 2. Проверяем существование ветеринара и права доступа
	vet, err := s.getVet(ctx, req.VetID)
	if err != nil {
		return nil, err
	}
	if !s.isManager(vet, req.UserID) {
		s.logger.Warn("UpsertOverride: user=%d is not a manager of vet=%d", req.UserID, req.VetID)
		return nil, ErrAccessDenied
	}

	// 3. Сохраняем переопределение (insert-or-update по ключу vet+date)
	saved, err := s.availabilityRepo.UpsertOverride(ctx, req.ToDomainOverride(date))
	if err != nil {
		s.logger.Error("UpsertOverride: repository error for vet=%d date=%s: %v", req.VetID, req.Date, err)
		return nil, fmt.Errorf("%w: UpsertOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertOverride: successfully saved override id=%d for vet=%d date=%s", saved.ID, req.VetID, req.Date)
	return models.FromDomainOverride(saved), nil
}

// DeleteOverride удаляет переопределение даты, возвращая дату под недельное правило.
// Доступно только менеджерам клиники ветеринара
func (s *Service) DeleteOverride(ctx context.Context, userID, vetID int64, dateStr string) error {
	s.logger.Info("DeleteOverride: deleting override for vet=%d date=%s by user=%d", vetID, dateStr, userID)

	// 1. Валидируем дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		s.logger.Warn("DeleteOverride: invalid date %q: %v", dateStr, err)
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	// 2. Проверяем существование ветеринара и права доступа
	vet, err := s.getVet(ctx, vetID)
	if err != nil {
		return err
	}
	if !s.isManager(vet, userID) {
		s.logger.Warn("DeleteOverride: user=%d is not a manager of vet=%d", userID, vetID)
		return ErrAccessDenied
	}

	// 3. Удаляем переопределение
	if err := s.availabilityRepo.DeleteOverride(ctx, vetID, date); err != nil {
		if errors.Is(err, availabilityRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override not found for vet=%d date=%s", vetID, dateStr)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error for vet=%d date=%s: %v", vetID, dateStr, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOverride: successfully deleted override for vet=%d date=%s", vetID, dateStr)
	return nil
}

// Вспомогательные методы

// getVet получает ветеринара с маппингом ошибок интеграции на ошибки сервиса
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

// truncateToDate отбрасывает время, оставляя только дату
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
