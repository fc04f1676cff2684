package domain

// SlotStatus represents the availability state of a generated slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
)

// Slot is a generated, ephemeral bookable time window. It is derived on
// every query and never stored. Two slots are equal iff Date and Time match.
type Slot struct {
	Date   string     // "2025-11-14"
	Time   string     // 12-часовое представление для UI, например "10:30 AM"
	Status SlotStatus
}

// IsAvailable returns true if the slot can be chosen for booking
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// Equal returns true if both slots denote the same date and time
func (s *Slot) Equal(other *Slot) bool {
	return s.Date == other.Date && s.Time == other.Time
}
