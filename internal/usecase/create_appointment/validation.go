package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VetID <= 0 {
		return fmt.Errorf("%w: vetID must be positive", ErrInvalidInput)
	}

	if req.PetID < 0 {
		return fmt.Errorf("%w: petID must not be negative", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, string(req.StartTime))
	}

	if req.VisitType == "" {
		return fmt.Errorf("%w: visitType is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата приёма не в прошлом
func validateDate(date, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return fmt.Errorf("%w: date must not be in the past", ErrInvalidDate)
	}
	return nil
}

// validateSlot проверяет, что время приёма попадает в сетку слотов дня:
// начинается на границе слота, целиком лежит в рабочем интервале
// и не пересекается с перерывами
func validateSlot(day *domain.EffectiveDay, startTime types.TimeString) (types.TimeString, error) {
	startMinutes, err := startTime.Minutes()
	if err != nil {
		return "", fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, string(startTime))
	}

	dayStartMinutes, err := day.StartTime.Minutes()
	if err != nil {
		return "", fmt.Errorf("%w: malformed day start time: %v", ErrInternal, err)
	}

	// Слот должен начинаться на границе сетки
	if startMinutes < dayStartMinutes || (startMinutes-dayStartMinutes)%day.SlotDurationMinutes != 0 {
		return "", fmt.Errorf("%w: time %s is not aligned to the slot grid", ErrInvalidTimeSlot, startTime)
	}

	endTime, err := startTime.AddMinutes(day.SlotDurationMinutes)
	if err != nil {
		return "", fmt.Errorf("%w: time %s overflows the day", ErrInvalidTimeSlot, startTime)
	}
	if endTime.IsAfter(day.EndTime) {
		return "", fmt.Errorf("%w: slot %s-%s is outside working hours", ErrInvalidTimeSlot, startTime, endTime)
	}

	// Слот, пересекающийся с перерывом, не предлагается и не бронируется
	for _, b := range day.Breaks {
		if startTime.IsBefore(b.EndTime) && endTime.IsAfter(b.StartTime) {
			return "", fmt.Errorf("%w: slot %s-%s overlaps a break", ErrInvalidTimeSlot, startTime, endTime)
		}
	}

	return endTime, nil
}

// validateSlotNotInPast проверяет, что сегодняшний слот начинается строго позже now
func validateSlotNotInPast(date time.Time, startTime types.TimeString, now time.Time) error {
	if !domain.IsAppointmentInFuture(date, startTime, now) {
		return fmt.Errorf("%w: slot %s %s has already started", ErrSlotInPast,
			date.Format(domain.DateFormat), startTime)
	}
	return nil
}
