package get_vet_appointments

import (
	"context"

	"github.com/m04kA/PCM-ScheduleService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetVetAppointments(ctx context.Context, req *models.VetAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
