package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	vetClient "github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
)

// UseCase use case для генерации слотов расписания ветеринара.
// Слоты эфемерны: пересобираются на каждый запрос из недельных правил,
// переопределений дат и активных приёмов
type UseCase struct {
	appointmentRepo AppointmentRepository
	availability    AvailabilityResolver
	vetClient       VetServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availability AvailabilityResolver,
	vetClient VetServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		vetClient:       vetClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case генерации слотов на диапазон дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, vet=%d, from=%s, days=%d",
		req.UserID, req.VetID, req.FromDate.Format(domain.DateFormat), req.RangeDays)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	rangeDays := req.RangeDays
	if rangeDays == 0 {
		rangeDays = domain.DefaultRangeDays
	}

	// 2. Фиксируем текущее время один раз: весь расчёт детерминирован
	// относительно единственного значения now
	now := uc.timeProvider.Now()

	if err := validateDate(req.FromDate, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем существование ветеринара
	if _, err := uc.vetClient.GetVet(ctx, req.VetID); err != nil {
		if errors.Is(err, vetClient.ErrVetNotFound) {
			uc.logger.Warn("GetAvailableSlots: vet id=%d not found", req.VetID)
			return nil, ErrVetNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get vet id=%d: %v", req.VetID, err)
		return nil, fmt.Errorf("%w: failed to get vet: %v", ErrInternal, err)
	}

	// 4. Одним запросом получаем активные приёмы на весь диапазон
	fromDate := truncateToDate(req.FromDate)
	toDate := fromDate.AddDate(0, 0, rangeDays-1)

	filter := domain.VetAppointmentsFilter{
		VetID:           req.VetID,
		StartDate:       &fromDate,
		EndDate:         &toDate,
		IncludeInactive: false,
	}
	appointments, err := uc.appointmentRepo.GetByVetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}
	appointmentsByDate := groupByDate(appointments)

	// 5. Для каждой даты диапазона разрешаем конфигурацию дня и генерируем слоты
	days := make([]DaySlots, 0, rangeDays)
	for i := 0; i < rangeDays; i++ {
		date := fromDate.AddDate(0, 0, i)
		dateKey := date.Format(domain.DateFormat)

		day, err := uc.availability.ResolveDay(ctx, req.VetID, date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to resolve day %s: %v", dateKey, err)
			return nil, fmt.Errorf("%w: failed to resolve day: %v", ErrInternal, err)
		}

		slots, err := generateDaySlots(day, date, now, req.VisitType, appointmentsByDate[dateKey])
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to generate slots for %s: %v", dateKey, err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		days = append(days, DaySlots{
			Date:  dateKey,
			Slots: slots,
		})
	}

	uc.logger.Info("GetAvailableSlots: generated slots for vet=%d over %d days", req.VetID, len(days))
	return &Response{
		VetID: req.VetID,
		Days:  days,
	}, nil
}

// groupByDate группирует приёмы по дате в формате YYYY-MM-DD
func groupByDate(appointments []*domain.Appointment) map[string][]*domain.Appointment {
	grouped := make(map[string][]*domain.Appointment, len(appointments))
	for _, appt := range appointments {
		key := appt.Date.Format(domain.DateFormat)
		grouped[key] = append(grouped[key], appt)
	}
	return grouped
}

// truncateToDate отбрасывает время, оставляя только дату
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
