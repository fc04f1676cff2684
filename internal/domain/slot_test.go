package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotIsAvailable(t *testing.T) {
	available := &Slot{Date: "2026-09-14", Time: "10:30 AM", Status: SlotAvailable}
	booked := &Slot{Date: "2026-09-14", Time: "10:30 AM", Status: SlotBooked}

	assert.True(t, available.IsAvailable())
	assert.False(t, booked.IsAvailable())
}

func TestSlotEqual(t *testing.T) {
	slot := &Slot{Date: "2026-09-14", Time: "10:30 AM", Status: SlotAvailable}

	// Статус не участвует в сравнении - слот определяется датой и временем
	assert.True(t, slot.Equal(&Slot{Date: "2026-09-14", Time: "10:30 AM", Status: SlotBooked}))
	assert.False(t, slot.Equal(&Slot{Date: "2026-09-15", Time: "10:30 AM"}))
	assert.False(t, slot.Equal(&Slot{Date: "2026-09-14", Time: "11:00 AM"}))
}
