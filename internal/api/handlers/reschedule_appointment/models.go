package reschedule_appointment

import (
	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	rescheduleAppointment "github.com/m04kA/PCM-ScheduleService/internal/usecase/reschedule_appointment"
)

// ChosenSlotRequest слот из ранее полученной выдачи
type ChosenSlotRequest struct {
	Date   string `json:"date"`   // YYYY-MM-DD
	Time   string `json:"time"`   // 12-часовой формат, например "10:30 AM"
	Status string `json:"status"` // available | booked
}

// RescheduleAppointmentRequest HTTP request model.
// Slot == null означает, что новый слот не выбран
type RescheduleAppointmentRequest struct {
	Slot *ChosenSlotRequest `json:"slot"`
}

// RescheduleAppointmentResponse HTTP response model
type RescheduleAppointmentResponse struct {
	ID              int64  `json:"id"`
	NewDate         string `json:"newDate"`
	NewStartTime    string `json:"newStartTime"`
	NewEndTime      string `json:"newEndTime"`
	DurationMinutes int    `json:"durationMinutes"`
	VisitType       string `json:"visitType"`
	Status          string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(userID, appointmentID int64) *rescheduleAppointment.Request {
	req := &rescheduleAppointment.Request{
		UserID:        userID,
		AppointmentID: appointmentID,
	}
	if r.Slot != nil {
		req.Slot = &rescheduleAppointment.ChosenSlot{
			Date:   r.Slot.Date,
			Time:   r.Slot.Time,
			Status: r.Slot.Status,
		}
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleAppointmentResponse {
	return &RescheduleAppointmentResponse{
		ID:              resp.ID,
		NewDate:         resp.NewDate.Format(domain.DateFormat),
		NewStartTime:    resp.NewStartTime.String(),
		NewEndTime:      resp.NewEndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		VisitType:       resp.VisitType,
		Status:          resp.Status,
	}
}
