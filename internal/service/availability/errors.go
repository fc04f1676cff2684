package availability

import "errors"

var (
	// ErrVetNotFound возвращается, когда ветеринар не найден
	ErrVetNotFound = errors.New("vet not found")

	// ErrOverrideNotFound возвращается, когда переопределение даты не найдено
	ErrOverrideNotFound = errors.New("override not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
