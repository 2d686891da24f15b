package app

import (
	"context"
	"time"

	"github.com/camillapd/RoomReservationsAPI/internal/domain"
)

type ReservationEventKind string

const (
	ReservationCreated   ReservationEventKind = "reservation.created"
	ReservationUpdated   ReservationEventKind = "reservation.updated"
	ReservationCancelled ReservationEventKind = "reservation.cancelled"
)

// ReservationEvent describes a committed reservation mutation.
type ReservationEvent struct {
	Kind        ReservationEventKind
	Reservation domain.Reservation
	RoomName    string
	OccurredAt  time.Time
}

// EventPublisher receives events after a mutation commits. Publishing is
// best-effort: a failed publish never fails the operation that produced it.
type EventPublisher interface {
	PublishReservationEvent(ctx context.Context, ev ReservationEvent) error
}

type nopPublisher struct{}

func (nopPublisher) PublishReservationEvent(context.Context, ReservationEvent) error {
	return nil
}

// NopPublisher returns a publisher that discards all events.
func NopPublisher() EventPublisher {
	return nopPublisher{}
}
