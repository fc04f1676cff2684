package get_available_slots

import "errors"

var (
	// ErrVetNotFound возвращается, когда ветеринар не найден
	ErrVetNotFound = errors.New("vet not found")

	// ErrInvalidDate возвращается при некорректной дате запроса (дата в прошлом)
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
