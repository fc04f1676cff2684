package availability

import (
	"fmt"
	"sort"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/internal/service/availability/models"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// validateWeek проверяет полноту и корректность недельного расписания.
// Неделя заменяется целиком: ровно 7 дней, каждый день недели ровно один раз.
func (s *Service) validateWeek(days []models.DayInput) error {
	if len(days) != domain.DaysPerWeek {
		return fmt.Errorf("%w: week must contain exactly %d days, got %d", ErrInvalidInput, domain.DaysPerWeek, len(days))
	}

	seen := make(map[int]bool, domain.DaysPerWeek)
	for _, day := range days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return fmt.Errorf("%w: dayOfWeek must be between 0 and 6, got %d", ErrInvalidInput, day.DayOfWeek)
		}
		if seen[day.DayOfWeek] {
			return fmt.Errorf("%w: duplicate dayOfWeek %d", ErrInvalidInput, day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true

		if err := s.validateDay(day); err != nil {
			return fmt.Errorf("%w (dayOfWeek=%d)", err, day.DayOfWeek)
		}
	}

	return nil
}

// validateDay проверяет конфигурацию одного дня недели
func (s *Service) validateDay(day models.DayInput) error {
	if day.IsClosed {
		if len(day.Breaks) > 0 {
			return fmt.Errorf("%w: closed day must not have breaks", ErrInvalidInput)
		}
		return nil
	}

	if err := s.validateOpenInterval(day.StartTime, day.EndTime, day.SlotDurationMinutes, day.VisitTypes); err != nil {
		return err
	}

	return s.validateBreaks(day.Breaks, day.StartTime, day.EndTime)
}

// validateOpenInterval проверяет рабочий интервал открытого дня или переопределения
func (s *Service) validateOpenInterval(start, end types.TimeString, slotDuration int, visitTypes []string) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, string(start))
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime %q", ErrInvalidInput, string(end))
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: startTime %q must be before endTime %q", ErrInvalidInput, string(start), string(end))
	}

	if slotDuration < domain.MinSlotDurationMinutes || slotDuration > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d, got %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes, slotDuration)
	}

	if len(visitTypes) == 0 {
		return fmt.Errorf("%w: open day must list at least one visit type", ErrInvalidInput)
	}
	if len(visitTypes) > domain.MaxVisitTypes {
		return fmt.Errorf("%w: at most %d visit types allowed, got %d", ErrInvalidInput, domain.MaxVisitTypes, len(visitTypes))
	}
	for _, vt := range visitTypes {
		if vt == "" {
			return fmt.Errorf("%w: visit type must not be empty", ErrInvalidInput)
		}
	}

	return nil
}

// validateBreaks проверяет перерывы дня: внутри рабочего интервала и без пересечений
func (s *Service) validateBreaks(breaks []models.BreakInput, dayStart, dayEnd types.TimeString) error {
	if len(breaks) > domain.MaxBreaksPerDay {
		return fmt.Errorf("%w: at most %d breaks per day allowed, got %d", ErrInvalidInput, domain.MaxBreaksPerDay, len(breaks))
	}

	sorted := make([]models.BreakInput, len(breaks))
	copy(sorted, breaks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.IsBefore(sorted[j].StartTime)
	})

	for i, b := range sorted {
		if err := b.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid break startTime %q", ErrInvalidInput, string(b.StartTime))
		}
		if err := b.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid break endTime %q", ErrInvalidInput, string(b.EndTime))
		}
		if !b.StartTime.IsBefore(b.EndTime) {
			return fmt.Errorf("%w: break startTime %q must be before endTime %q",
				ErrInvalidInput, string(b.StartTime), string(b.EndTime))
		}
		if b.StartTime.IsBefore(dayStart) || dayEnd.IsBefore(b.EndTime) {
			return fmt.Errorf("%w: break %q-%q is outside working hours %q-%q",
				ErrInvalidInput, string(b.StartTime), string(b.EndTime), string(dayStart), string(dayEnd))
		}
		if i > 0 && sorted[i-1].EndTime.IsAfter(b.StartTime) {
			return fmt.Errorf("%w: breaks %q-%q and %q-%q overlap",
				ErrInvalidInput, string(sorted[i-1].StartTime), string(sorted[i-1].EndTime),
				string(b.StartTime), string(b.EndTime))
		}
	}

	return nil
}

// validateOverride проверяет переопределение даты: закрытый день не несёт
// интервала, открытый - валидируется как обычный рабочий день без перерывов
func (s *Service) validateOverride(req *models.UpsertOverrideRequest) error {
	if req.IsClosed {
		return nil
	}
	return s.validateOpenInterval(req.StartTime, req.EndTime, req.SlotDurationMinutes, req.VisitTypes)
}
