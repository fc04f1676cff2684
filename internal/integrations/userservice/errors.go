package userservice

import "errors"

var (
	// ErrPetNotFound возвращается, когда у пользователя нет выбранного питомца
	ErrPetNotFound = errors.New("user has no selected pet")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что UserService недоступен и приём создаётся без данных питомца
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
