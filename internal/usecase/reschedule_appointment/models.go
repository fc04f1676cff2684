package reschedule_appointment

import (
	"time"

	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// ChosenSlot выбранный пользователем слот из ранее сгенерированной выдачи
type ChosenSlot struct {
	Date   string // Дата в формате YYYY-MM-DD
	Time   string // Время начала в 12-часовом формате, например "10:30 AM"
	Status string // Статус слота из выдачи: available | booked
}

// Request модель запроса на перенос приёма
type Request struct {
	UserID        int64       // ID пользователя
	AppointmentID int64       // ID переносимого приёма
	Slot          *ChosenSlot // Новый слот; nil = слот не выбран
}

// Response модель ответа с новым положением приёма
type Response struct {
	ID              int64            // ID приёма
	NewDate         time.Time        // Новая дата приёма
	NewStartTime    types.TimeString // Новое время начала
	NewEndTime      types.TimeString // Новое время окончания (начало + длительность)
	DurationMinutes int              // Длительность в минутах
	VisitType       string           // Тип приёма
	Status          string           // Статус приёма (остаётся booked)
}
