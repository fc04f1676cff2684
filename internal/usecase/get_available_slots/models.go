package get_available_slots

import (
	"time"
)

// Request модель запроса на получение слотов
type Request struct {
	UserID    int64     // ID пользователя (для логирования, не влияет на результат)
	VetID     int64     // ID ветеринара
	FromDate  time.Time // Первая дата диапазона (без времени)
	RangeDays int       // Количество дней в диапазоне; 0 = значение по умолчанию
	VisitType *string   // Тип приёма; день без этого типа отдаёт пустой список слотов
}

// Response модель ответа: слоты по дням в возрастающем порядке
type Response struct {
	VetID int64      // ID ветеринара
	Days  []DaySlots // По одному элементу на каждую дату диапазона
}

// DaySlots слоты одного календарного дня
type DaySlots struct {
	Date  string // Дата в формате YYYY-MM-DD
	Slots []Slot // Слоты дня в возрастающем порядке; пустой список для закрытого дня
}

// Slot модель временного слота
type Slot struct {
	Time            string // Время начала слота в 12-часовом формате, например "10:30 AM"
	DurationMinutes int    // Длительность слота в минутах
	Status          string // available | booked
}
