package domain

import (
	"time"

	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a veterinary appointment in the system
type Appointment struct {
	ID              int64
	UserID          int64
	VetID           int64
	PetID           int64
	Date            time.Time // Дата приёма (без времени)
	StartTime       types.TimeString
	DurationMinutes int
	VisitType       string
	Status          AppointmentStatus

	// Denormalized data for history
	VetName    string
	PetName    *string
	PetSpecies *string
	Notes      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the appointment end time (start + duration)
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusBooked
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusBooked
}

// CanBeRescheduled returns true if the appointment can be moved to another slot
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusBooked
}

// IsInFuture проверяет, что приём ещё не начался относительно now
func (a *Appointment) IsInFuture(now time.Time) bool {
	return IsAppointmentInFuture(a.Date, a.StartTime, now)
}

// IsAppointmentInFuture проверяет, что приём (date + startTime) строго в будущем.
// Некорректное время трактуется как "не в будущем" (fail closed):
// отмена и перенос для такого приёма запрещены.
func IsAppointmentInFuture(date time.Time, startTime types.TimeString, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.After(nowOnly) {
		return true
	}
	if dateOnly.Before(nowOnly) {
		return false
	}

	// Сегодняшний приём: сравниваем минуты с полуночи
	startMinutes, err := startTime.Minutes()
	if err != nil {
		return false
	}

	return startMinutes > now.Hour()*60+now.Minute()
}

// VetAppointmentsFilter фильтр для получения приёмов ветеринара
type VetAppointmentsFilter struct {
	VetID           int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые приёмы
}
