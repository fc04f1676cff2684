package create_appointment

import "errors"

var (
	// ErrVetNotFound возвращается, когда ветеринар не найден или неактивен
	ErrVetNotFound = errors.New("create_appointment: vet not found")

	// ErrPetNotFound возвращается, когда питомец не найден у пользователя
	ErrPetNotFound = errors.New("create_appointment: pet not found")

	// ErrVisitTypeNotOffered возвращается, когда ветеринар не оказывает этот тип приёма
	ErrVisitTypeNotOffered = errors.New("create_appointment: visit type is not offered by this vet")

	// ErrInvalidDate возвращается при некорректной дате приёма (дата в прошлом)
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDayClosed возвращается, когда ветеринар не принимает в указанную дату
	ErrDayClosed = errors.New("create_appointment: vet is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с сеткой слотов,
	// выходит за рабочий интервал или попадает в перерыв
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotInPast возвращается, когда сегодняшний слот уже начался
	ErrSlotInPast = errors.New("create_appointment: slot is in the past")

	// ErrSlotNotAvailable возвращается, когда выбранный слот занят другим приёмом
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
