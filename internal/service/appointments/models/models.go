package models

import (
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// Request модели

// CancelAppointmentRequest запрос на отмену приёма
type CancelAppointmentRequest struct {
	UserID        int64  `json:"userId"`
	AppointmentID int64  `json:"appointmentId"`
	Reason        string `json:"reason,omitempty"`
}

// VetAppointmentsRequest запрос на получение приёмов ветеринара
// Date задаёт один день, From/To - период; взаимоисключающие варианты
type VetAppointmentsRequest struct {
	UserID          int64   `json:"userId"`
	VetID           int64   `json:"vetId"`
	Date            *string `json:"date,omitempty"` // YYYY-MM-DD
	From            *string `json:"from,omitempty"` // YYYY-MM-DD
	To              *string `json:"to,omitempty"`   // YYYY-MM-DD
	Status          *string `json:"status,omitempty"`
	IncludeInactive bool    `json:"includeInactive"`
}

// Response модели

// AppointmentResponse ответ с данными приёма
type AppointmentResponse struct {
	ID                 int64            `json:"id"`
	UserID             int64            `json:"userId"`
	VetID              int64            `json:"vetId"`
	PetID              int64            `json:"petId"`
	Date               string           `json:"date"` // YYYY-MM-DD
	StartTime          types.TimeString `json:"startTime"`
	EndTime            types.TimeString `json:"endTime,omitempty"`
	DurationMinutes    int              `json:"durationMinutes"`
	VisitType          string           `json:"visitType"`
	Status             string           `json:"status"`
	VetName            string           `json:"vetName"`
	PetName            *string          `json:"petName,omitempty"`
	PetSpecies         *string          `json:"petSpecies,omitempty"`
	Notes              *string          `json:"notes,omitempty"`
	CancellationReason *string          `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time       `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком приёмов
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		UserID:             a.UserID,
		VetID:              a.VetID,
		PetID:              a.PetID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime,
		DurationMinutes:    a.DurationMinutes,
		VisitType:          a.VisitType,
		Status:             string(a.Status),
		VetName:            a.VetName,
		PetName:            a.PetName,
		PetSpecies:         a.PetSpecies,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Некорректное время начала не должно ронять выдачу списка
	if endTime, err := a.EndTime(); err == nil {
		resp.EndTime = endTime
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if apptResp := FromDomainAppointment(a); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}
