package get_available_slots

import (
	"errors"
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// generateDaySlots генерирует слоты одного календарного дня по его действующей
// конфигурации. Слоты идут от начала рабочего интервала с шагом slotDuration,
// пока конец слота не выйдет за конец интервала.
//
// Слот не попадает в выдачу вовсе (не помечается, а исключается), если он:
//   - пересекается с перерывом дня,
//   - начинается не строго позже текущего времени (для сегодняшней даты).
//
// Слот, занятый активным приёмом, помечается статусом booked
func generateDaySlots(
	day *domain.EffectiveDay,
	date time.Time,
	now time.Time,
	visitType *string,
	appointments []*domain.Appointment,
) ([]Slot, error) {
	// Закрытый день или день без запрошенного типа приёма - пустой список, не ошибка
	if day.IsClosed {
		return []Slot{}, nil
	}
	if visitType != nil && !day.SupportsVisitType(*visitType) {
		return []Slot{}, nil
	}

	slots := make([]Slot, 0)
	current := day.StartTime

	for current.IsBefore(day.EndTime) {
		slotEnd, err := current.AddMinutes(day.SlotDurationMinutes)
		if err != nil {
			// Переход через полночь - конец сетки: хвост, которому не хватает
			// места до конца суток, просто не предлагается
			if errors.Is(err, types.ErrTimeOutOfRange) {
				break
			}
			return nil, err
		}
		// Хвост рабочего интервала короче слота не предлагается
		if slotEnd.IsAfter(day.EndTime) {
			break
		}

		if !overlapsBreak(current, slotEnd, day.Breaks) && !isPastSlot(current, date, now) {
			status := domain.SlotAvailable
			if isSlotBooked(current, slotEnd, appointments) {
				status = domain.SlotBooked
			}
			slots = append(slots, Slot{
				Time:            current.Clock12(),
				DurationMinutes: day.SlotDurationMinutes,
				Status:          string(status),
			})
		}

		current = slotEnd
	}

	return slots, nil
}

// overlapsBreak проверяет пересечение слота с перерывами дня.
// Пересечение консервативное: частичное наложение тоже исключает слот.
// Граничное касание (перерыв заканчивается ровно в начале слота) пересечением не считается
func overlapsBreak(slotStart, slotEnd types.TimeString, breaks []domain.Break) bool {
	for _, b := range breaks {
		if slotStart.IsBefore(b.EndTime) && slotEnd.IsAfter(b.StartTime) {
			return true
		}
	}
	return false
}

// isSlotBooked проверяет, занят ли слот активным приёмом.
// Интервалы сравниваются по строгим неравенствам: граничащие приёмы слот не занимают
func isSlotBooked(slotStart, slotEnd types.TimeString, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}

		apptEnd, err := appt.EndTime()
		if err != nil {
			continue
		}

		if appt.StartTime.IsBefore(slotEnd) && apptEnd.IsAfter(slotStart) {
			return true
		}
	}
	return false
}

// isPastSlot проверяет, что слот сегодняшней даты уже нельзя предложить.
// Слот исключается, если его начало не строго позже текущего времени
func isPastSlot(slotStart types.TimeString, date, now time.Time) bool {
	if !isSameDay(date, now) {
		return false
	}

	startMinutes, err := slotStart.Minutes()
	if err != nil {
		return true
	}
	return startMinutes <= now.Hour()*60+now.Minute()
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
