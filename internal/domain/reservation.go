package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without timezone, expressed as minutes
// since midnight. Values are totally ordered, so interval comparisons are
// plain integer comparisons.
type TimeOfDay int

// MinutesPerDay is the exclusive upper bound for a TimeOfDay used as an
// interval end (24:00 closes the day).
const MinutesPerDay = 24 * 60

func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

// Valid reports whether t falls within a single calendar day.
func (t TimeOfDay) Valid() bool { return t >= 0 && t <= MinutesPerDay }

// String renders the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Reservation books a room on a calendar day for the half-open interval
// [Start, End). Start < End always holds for a committed reservation.
type Reservation struct {
	ID        string
	RoomID    string
	Date      time.Time // calendar day, midnight UTC
	Start     TimeOfDay
	End       TimeOfDay
	CreatedAt time.Time
}
