package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultRangeDays           = 7
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 часов
	MaxRangeDays           = 31
	MaxBreaksPerDay        = 10
	MaxVisitTypes          = 20
	MaxNotesLength         = 500
	MaxCancellationReasonLength = 500
	DaysPerWeek            = 7
)

// Time format constants
const (
	TimeFormat = "15:04:05"   // HH:MM:SS (хранение)
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих слот
// Используется для фильтрации при подсчёте доступных слотов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов, занимающих слот либо значимых для истории
var ActiveStatuses = []AppointmentStatus{
	StatusBooked,
	StatusCompleted,
}
