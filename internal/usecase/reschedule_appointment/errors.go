package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда приём не найден
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на перенос
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrNoSlotChosen возвращается, когда новый слот не выбран.
	// Это пользовательская, восстановимая ошибка, а не сбой системы
	ErrNoSlotChosen = errors.New("reschedule_appointment: no slot chosen")

	// ErrInvalidTime возвращается при некорректном времени слота
	ErrInvalidTime = errors.New("reschedule_appointment: invalid slot time")

	// ErrInvalidDate возвращается при некорректной дате слота
	ErrInvalidDate = errors.New("reschedule_appointment: invalid slot date")

	// ErrCannotReschedule возвращается, когда приём нельзя перенести
	// (отменён, завершён или его время уже наступило)
	ErrCannotReschedule = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrDayClosed возвращается, когда ветеринар не принимает в новую дату
	ErrDayClosed = errors.New("reschedule_appointment: vet is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда новое время не совпадает с сеткой слотов
	ErrInvalidTimeSlot = errors.New("reschedule_appointment: invalid time slot")

	// ErrSlotInPast возвращается, когда новый слот уже начался
	ErrSlotInPast = errors.New("reschedule_appointment: slot is in the past")

	// ErrSlotNotAvailable возвращается, когда новый слот занят другим приёмом
	ErrSlotNotAvailable = errors.New("reschedule_appointment: slot is not available")

	// ErrVisitTypeNotServed возвращается, когда новый день не обслуживает тип приёма
	ErrVisitTypeNotServed = errors.New("reschedule_appointment: visit type is not served on this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
