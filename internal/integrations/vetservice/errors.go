package vetservice

import "errors"

var (
	// ErrVetNotFound возвращается, когда ветеринар не найден
	ErrVetNotFound = errors.New("vet not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("vetservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("vetservice client: invalid response")
)
