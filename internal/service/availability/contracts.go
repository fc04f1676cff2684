package availability

import (
	"context"
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
)

// AvailabilityRepository интерфейс репозитория расписания
type AvailabilityRepository interface {
	GetWeek(ctx context.Context, vetID int64) ([]*domain.WeeklyAvailability, error)
	GetDay(ctx context.Context, vetID int64, dayOfWeek int) (*domain.WeeklyAvailability, error)
	ReplaceWeek(ctx context.Context, vetID int64, week []*domain.WeeklyAvailability) error
	GetOverride(ctx context.Context, vetID int64, date time.Time) (*domain.Override, error)
	GetOverridesInRange(ctx context.Context, vetID int64, from, to time.Time) ([]*domain.Override, error)
	UpsertOverride(ctx context.Context, override *domain.Override) (*domain.Override, error)
	DeleteOverride(ctx context.Context, vetID int64, date time.Time) error
}

// VetServiceClient интерфейс клиента для VetService
type VetServiceClient interface {
	GetVet(ctx context.Context, vetID int64) (*vetservice.Vet, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (упрощает тестирование)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на основе системных часов
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
