package reschedule_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// validateRequest валидирует входные данные и разбирает выбранный слот.
// Статус слота проверяется до любых обращений к хранилищу: слот, показанный
// пользователю как занятый, отклоняется сразу
func validateRequest(req *Request) (time.Time, types.TimeString, error) {
	if req.UserID <= 0 {
		return time.Time{}, "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.AppointmentID <= 0 {
		return time.Time{}, "", fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.Slot == nil {
		return time.Time{}, "", ErrNoSlotChosen
	}

	if req.Slot.Status == string(domain.SlotBooked) {
		return time.Time{}, "", fmt.Errorf("%w: chosen slot is marked as booked", ErrSlotNotAvailable)
	}

	newDate, err := time.Parse(domain.DateFormat, req.Slot.Date)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: date must be in YYYY-MM-DD format, got %q", ErrInvalidDate, req.Slot.Date)
	}

	// Время слота приходит из выдачи в 12-часовом формате
	newStartTime, err := types.ParseClock12(req.Slot.Time)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrInvalidTime, req.Slot.Time)
	}

	return newDate, newStartTime, nil
}

// validateSlot проверяет, что новое время попадает в сетку слотов дня
func validateSlot(day *domain.EffectiveDay, startTime types.TimeString) (types.TimeString, error) {
	startMinutes, err := startTime.Minutes()
	if err != nil {
		return "", fmt.Errorf("%w: invalid startTime %q", ErrInvalidTime, string(startTime))
	}

	dayStartMinutes, err := day.StartTime.Minutes()
	if err != nil {
		return "", fmt.Errorf("%w: malformed day start time: %v", ErrInternal, err)
	}

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

	for _, b := range day.Breaks {
		if startTime.IsBefore(b.EndTime) && endTime.IsAfter(b.StartTime) {
			return "", fmt.Errorf("%w: slot %s-%s overlaps a break", ErrInvalidTimeSlot, startTime, endTime)
		}
	}

	return endTime, nil
}
