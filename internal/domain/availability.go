package domain

import (
	"time"

	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// WeeklyAvailability represents one day of a vet's recurring weekly schedule.
// A vet has at most one entry per day of week; the whole week is replaced
// wholesale by a "save availability" action, never patched per-day.
type WeeklyAvailability struct {
	ID                  int64
	VetID               int64
	DayOfWeek           int // 0 = воскресенье .. 6 = суббота
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	VisitTypes          []string
	IsClosed            bool

	// Перерывы дня; заполняются при чтении недели и сохраняются вместе с ней
	Breaks []Break

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Break represents a sub-interval of an open day during which no slots
// are offered. Its lifetime is bounded by the owning weekly entry.
type Break struct {
	ID             int64
	AvailabilityID int64
	StartTime      types.TimeString
	EndTime        types.TimeString
}

// Override is a date-specific replacement of the weekly rule.
// At most one override per (vet, date); it fully supersedes the weekly
// entry for that date and carries no breaks.
type Override struct {
	ID                  int64
	VetID               int64
	Date                time.Time
	IsClosed            bool
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	VisitTypes          []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveDay is the resolved (override-or-weekly) view of one calendar
// date: open interval, slot duration, supported visit types and breaks.
// Derived, never stored.
type EffectiveDay struct {
	IsClosed            bool
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	VisitTypes          []string
	Breaks              []Break
}

// SupportsVisitType проверяет, что день обслуживает указанный тип приёма
func (d *EffectiveDay) SupportsVisitType(visitType string) bool {
	for _, vt := range d.VisitTypes {
		if vt == visitType {
			return true
		}
	}
	return false
}

// EffectiveDayFromOverride строит EffectiveDay из переопределения даты.
// Перерывы недельного правила на переопределённую дату не действуют.
func EffectiveDayFromOverride(o *Override) *EffectiveDay {
	return &EffectiveDay{
		IsClosed:            o.IsClosed,
		StartTime:           o.StartTime,
		EndTime:             o.EndTime,
		SlotDurationMinutes: o.SlotDurationMinutes,
		VisitTypes:          o.VisitTypes,
		Breaks:              []Break{},
	}
}

// EffectiveDayFromWeekly строит EffectiveDay из недельного правила с его перерывами
func EffectiveDayFromWeekly(w *WeeklyAvailability, breaks []Break) *EffectiveDay {
	if breaks == nil {
		breaks = []Break{}
	}
	return &EffectiveDay{
		IsClosed:            w.IsClosed,
		StartTime:           w.StartTime,
		EndTime:             w.EndTime,
		SlotDurationMinutes: w.SlotDurationMinutes,
		VisitTypes:          w.VisitTypes,
		Breaks:              breaks,
	}
}

// ClosedDay возвращает EffectiveDay для дня без какой-либо конфигурации.
// Отсутствие расписания - это не ошибка, а просто закрытый день.
func ClosedDay() *EffectiveDay {
	return &EffectiveDay{
		IsClosed:   true,
		VisitTypes: []string{},
		Breaks:     []Break{},
	}
}
