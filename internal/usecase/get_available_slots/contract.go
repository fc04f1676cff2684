package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	// GetByVetWithFilter получает приёмы ветеринара за период
	GetByVetWithFilter(ctx context.Context, filter domain.VetAppointmentsFilter) ([]*domain.Appointment, error)
}

// AvailabilityResolver интерфейс разрешения расписания на конкретную дату
type AvailabilityResolver interface {
	// ResolveDay возвращает действующую конфигурацию дня: переопределение даты
	// полностью замещает недельное правило, отсутствие конфигурации - закрытый день
	ResolveDay(ctx context.Context, vetID int64, date time.Time) (*domain.EffectiveDay, error)
}

// VetServiceClient интерфейс клиента для VetService
type VetServiceClient interface {
	GetVet(ctx context.Context, vetID int64) (*vetservice.Vet, error)
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
