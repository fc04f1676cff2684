package availability

import "errors"

var (
	// ErrDayNotFound возвращается, когда недельное правило для дня не найдено
	ErrDayNotFound = errors.New("availability.repository: weekly day not found")

	// ErrOverrideNotFound возвращается, когда переопределение даты не найдено
	ErrOverrideNotFound = errors.New("availability.repository: override not found")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("availability.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
