package domain

import "time"

// Room is a bookable meeting room. Rooms are immutable once created.
type Room struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
