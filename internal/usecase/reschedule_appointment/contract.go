package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByVetWithFilter(ctx context.Context, filter domain.VetAppointmentsFilter) ([]*domain.Appointment, error)
	Reschedule(ctx context.Context, id int64, newDate time.Time, newStartTime types.TimeString, durationMinutes int) error
}

// AvailabilityResolver интерфейс разрешения расписания на конкретную дату
type AvailabilityResolver interface {
	ResolveDay(ctx context.Context, vetID int64, date time.Time) (*domain.EffectiveDay, error)
}

// VetServiceClient интерфейс клиента для VetService
type VetServiceClient interface {
	GetVet(ctx context.Context, vetID int64) (*vetservice.Vet, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
