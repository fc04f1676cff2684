package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/internal/integrations/userservice"
	"github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByVetWithFilter(ctx context.Context, filter domain.VetAppointmentsFilter) ([]*domain.Appointment, error)
}

// AvailabilityResolver интерфейс разрешения расписания на конкретную дату
type AvailabilityResolver interface {
	ResolveDay(ctx context.Context, vetID int64, date time.Time) (*domain.EffectiveDay, error)
}

// VetServiceClient интерфейс клиента для VetService
type VetServiceClient interface {
	GetVet(ctx context.Context, vetID int64) (*vetservice.Vet, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetPetWithGracefulDegradation(ctx context.Context, userID, petID int64) (*userservice.Pet, error)
	GetSelectedPetWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Pet, error)
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
