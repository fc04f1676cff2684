package create_appointment

import (
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	createAppointment "github.com/m04kA/PCM-ScheduleService/internal/usecase/create_appointment"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	VetID     int64   `json:"vetId"`
	PetID     int64   `json:"petId,omitempty"` // 0 = выбранный питомец пользователя
	Date      string  `json:"date"`            // "2026-09-15"
	StartTime string  `json:"startTime"`       // "10:00"
	VisitType string  `json:"visitType"`
	Notes     *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	VetID           int64   `json:"vetId"`
	PetID           int64   `json:"petId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	VisitType       string  `json:"visitType"`
	Status          string  `json:"status"`
	VetName         string  `json:"vetName"`
	PetName         *string `json:"petName,omitempty"`
	PetSpecies      *string `json:"petSpecies,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		UserID:    userID,
		VetID:     r.VetID,
		PetID:     r.PetID,
		Date:      date,
		StartTime: startTime,
		VisitType: r.VisitType,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		VetID:           resp.VetID,
		PetID:           resp.PetID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		VisitType:       resp.VisitType,
		Status:          resp.Status,
		VetName:         resp.VetName,
		PetName:         resp.PetName,
		PetSpecies:      resp.PetSpecies,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
