package create_appointment

import (
	"time"

	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// Request модель запроса на создание приёма
type Request struct {
	UserID    int64            // ID пользователя
	VetID     int64            // ID ветеринара
	PetID     int64            // ID питомца; 0 = использовать выбранного питомца пользователя
	Date      time.Time        // Дата приёма (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	VisitType string           // Тип приёма (Consultation, Vaccination, ...)
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным приёмом
type Response struct {
	ID              int64            // ID созданного приёма
	UserID          int64            // ID пользователя
	VetID           int64            // ID ветеринара
	PetID           int64            // ID питомца
	Date            time.Time        // Дата приёма
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания (начало + длительность)
	DurationMinutes int              // Длительность в минутах
	VisitType       string           // Тип приёма
	Status          string           // Статус приёма

	// Денормализованные данные
	VetName    string  // Имя ветеринара
	PetName    *string // Кличка питомца (nil при недоступности UserService)
	PetSpecies *string // Вид питомца
	Notes      *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
