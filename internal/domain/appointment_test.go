package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

func TestIsAppointmentInFuture(t *testing.T) {
	now := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		date      time.Time
		startTime types.TimeString
		want      bool
	}{
		{"tomorrow", time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC), "09:00:00", true},
		{"yesterday", time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC), "09:00:00", false},
		{"today later", time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), "15:30:00", true},
		{"today exactly now", time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), "15:00:00", false},
		{"today earlier", time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), "14:30:00", false},
		// Некорректное время трактуется как "не в будущем" (fail closed)
		{"malformed time today", time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), "garbage", false},
		{"empty time today", time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), "", false},
		// Для другой даты время не разбирается вовсе
		{"malformed time tomorrow", time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC), "garbage", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAppointmentInFuture(tt.date, tt.startTime, now))
		})
	}
}

func TestAppointmentTransitions(t *testing.T) {
	appt := &Appointment{Status: StatusBooked}
	assert.True(t, appt.IsActive())
	assert.True(t, appt.CanBeCancelled())
	assert.True(t, appt.CanBeRescheduled())

	appt.Status = StatusCancelled
	assert.False(t, appt.IsActive())
	assert.False(t, appt.CanBeCancelled())
	assert.False(t, appt.CanBeRescheduled())

	appt.Status = StatusCompleted
	assert.False(t, appt.IsActive())
	assert.False(t, appt.CanBeCancelled())
	assert.False(t, appt.CanBeRescheduled())
}

func TestEffectiveDayResolution(t *testing.T) {
	weekly := &WeeklyAvailability{
		StartTime:           "09:00:00",
		EndTime:             "17:00:00",
		SlotDurationMinutes: 30,
		VisitTypes:          []string{"Consultation"},
	}
	breaks := []Break{{StartTime: "12:00:00", EndTime: "13:00:00"}}

	day := EffectiveDayFromWeekly(weekly, breaks)
	assert.False(t, day.IsClosed)
	assert.Len(t, day.Breaks, 1)
	assert.True(t, day.SupportsVisitType("Consultation"))
	assert.False(t, day.SupportsVisitType("Surgery"))

	override := &Override{
		StartTime:           "10:00:00",
		EndTime:             "14:00:00",
		SlotDurationMinutes: 60,
		VisitTypes:          []string{"Vaccination"},
	}
	fromOverride := EffectiveDayFromOverride(override)
	assert.Empty(t, fromOverride.Breaks, "переопределение даты не наследует перерывы")

	closed := ClosedDay()
	assert.True(t, closed.IsClosed)
	assert.NotNil(t, closed.VisitTypes)
	assert.NotNil(t, closed.Breaks)
}
