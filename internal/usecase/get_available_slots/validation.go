package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VetID <= 0 {
		return fmt.Errorf("%w: vetID must be positive", ErrInvalidInput)
	}

	if req.FromDate.IsZero() {
		return fmt.Errorf("%w: fromDate is required", ErrInvalidInput)
	}

	if req.RangeDays < 0 || req.RangeDays > domain.MaxRangeDays {
		return fmt.Errorf("%w: rangeDays must be between 1 and %d", ErrInvalidInput, domain.MaxRangeDays)
	}

	if req.VisitType != nil && *req.VisitType == "" {
		return fmt.Errorf("%w: visitType must not be empty", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что первая дата диапазона не в прошлом
func validateDate(fromDate, now time.Time) error {
	if isDateInPast(fromDate, now) {
		return fmt.Errorf("%w: date must not be in the past", ErrInvalidDate)
	}
	return nil
}
