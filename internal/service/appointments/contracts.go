package appointments

import (
	"context"
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByVetWithFilter(ctx context.Context, filter domain.VetAppointmentsFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// VetServiceClient интерфейс клиента для VetService
type VetServiceClient interface {
	GetVet(ctx context.Context, vetID int64) (*vetservice.Vet, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
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
