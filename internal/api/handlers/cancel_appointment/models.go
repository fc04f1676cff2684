package cancel_appointment

import (
	"github.com/m04kA/PCM-ScheduleService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(userID, appointmentID int64) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		UserID:        userID,
		AppointmentID: appointmentID,
		Reason:        r.Reason,
	}
}
