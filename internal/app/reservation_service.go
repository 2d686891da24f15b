package app

import (
	"context"
	"time"

	"github.com/camillapd/RoomReservationsAPI/internal/clock"
	"github.com/camillapd/RoomReservationsAPI/internal/domain"
)

type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// LockRoomDate serializes the calling transaction against every other
	// mutation of the same (room, date) partition until commit or rollback.
	LockRoomDate(ctx context.Context, roomID string, date time.Time) error
	GetRoomByName(ctx context.Context, name string) (domain.Room, error)
	GetRoomByID(ctx context.Context, id string) (domain.Room, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
	GetReservation(ctx context.Context, id string) (domain.Reservation, error)
	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	ListByRoomAndDate(ctx context.Context, roomID string, date time.Time) ([]domain.Reservation, error)
	CreateReservation(ctx context.Context, res domain.Reservation) error
	ReplaceReservationSlot(ctx context.Context, id string, date time.Time, start, end domain.TimeOfDay) error
	DeleteReservation(ctx context.Context, id string) error
}

// ReservationService enforces the no-overlap invariant: for one room and
// date, no two reservations may intersect under the half-open [start, end)
// rule. Every mutation runs its conflict check and write inside a single
// transaction holding the (room, date) lock.
type ReservationService struct {
	repo   ReservationRepository
	clock  clock.Clock
	events EventPublisher
}

func NewReservationService(repo ReservationRepository, clk clock.Clock, opts ...ReservationServiceOption) *ReservationService {
	svc := &ReservationService{
		repo:   repo,
		clock:  clk,
		events: NopPublisher(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ReservationServiceOption func(*ReservationService)

// WithEventPublisher emits reservation lifecycle events after commits.
func WithEventPublisher(pub EventPublisher) ReservationServiceOption {
	return func(s *ReservationService) {
		if pub != nil {
			s.events = pub
		}
	}
}

// ReservationDetail pairs a reservation with its room's name for callers
// that render the room by name rather than by id.
type ReservationDetail struct {
	Reservation domain.Reservation
	RoomName    string
}

type CreateReservationInput struct {
	RoomName string
	Date     time.Time
	Start    domain.TimeOfDay
	End      domain.TimeOfDay
}

func (s *ReservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (ReservationDetail, error) {
	if !in.Start.Before(in.End) {
		return ReservationDetail{}, domain.ErrInvalidTimeRange
	}

	room, err := s.repo.GetRoomByName(ctx, in.RoomName)
	if err != nil {
		return ReservationDetail{}, err
	}

	res := domain.Reservation{
		ID:        newUUID(),
		RoomID:    room.ID,
		Date:      in.Date,
		Start:     in.Start,
		End:       in.End,
		CreatedAt: s.clock.Now(),
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockRoomDate(txCtx, room.ID, in.Date); err != nil {
			return err
		}
		candidates, err := s.repo.ListByRoomAndDate(txCtx, room.ID, in.Date)
		if err != nil {
			return err
		}
		if conflict := domain.FindConflict(candidates, in.Start, in.End, ""); conflict != nil {
			return domain.ErrSlotTaken
		}
		return s.repo.CreateReservation(txCtx, res)
	})
	if err != nil {
		return ReservationDetail{}, err
	}

	s.publish(ctx, ReservationCreated, res, room.Name)
	return ReservationDetail{Reservation: res, RoomName: room.Name}, nil
}

type UpdateReservationInput struct {
	ID    string
	Date  time.Time
	Start domain.TimeOfDay
	End   domain.TimeOfDay
}

func (s *ReservationService) UpdateReservation(ctx context.Context, in UpdateReservationInput) (ReservationDetail, error) {
	var updated domain.Reservation
	var roomName string

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		res, err := s.repo.GetReservation(txCtx, in.ID)
		if err != nil {
			return err
		}
		if !in.Start.Before(in.End) {
			return domain.ErrInvalidTimeRange
		}

		if err := s.repo.LockRoomDate(txCtx, res.RoomID, in.Date); err != nil {
			return err
		}
		candidates, err := s.repo.ListByRoomAndDate(txCtx, res.RoomID, in.Date)
		if err != nil {
			return err
		}
		// Exclude the reservation itself so it never conflicts with its own
		// prior slot.
		if conflict := domain.FindConflict(candidates, in.Start, in.End, res.ID); conflict != nil {
			return domain.ErrSlotTaken
		}

		if err := s.repo.ReplaceReservationSlot(txCtx, res.ID, in.Date, in.Start, in.End); err != nil {
			return err
		}
		res.Date = in.Date
		res.Start = in.Start
		res.End = in.End
		updated = res

		room, err := s.repo.GetRoomByID(txCtx, res.RoomID)
		if err != nil {
			return err
		}
		roomName = room.Name
		return nil
	})
	if err != nil {
		return ReservationDetail{}, err
	}

	s.publish(ctx, ReservationUpdated, updated, roomName)
	return ReservationDetail{Reservation: updated, RoomName: roomName}, nil
}

func (s *ReservationService) DeleteReservation(ctx context.Context, id string) error {
	res, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return err
	}
	room, err := s.repo.GetRoomByID(ctx, res.RoomID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteReservation(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, ReservationCancelled, res, room.Name)
	return nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (ReservationDetail, error) {
	res, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return ReservationDetail{}, err
	}
	room, err := s.repo.GetRoomByID(ctx, res.RoomID)
	if err != nil {
		return ReservationDetail{}, err
	}
	return ReservationDetail{Reservation: res, RoomName: room.Name}, nil
}

func (s *ReservationService) ListReservations(ctx context.Context) ([]ReservationDetail, error) {
	reservations, err := s.repo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(rooms))
	for _, room := range rooms {
		names[room.ID] = room.Name
	}

	out := make([]ReservationDetail, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, ReservationDetail{Reservation: res, RoomName: names[res.RoomID]})
	}
	return out, nil
}

func (s *ReservationService) publish(ctx context.Context, kind ReservationEventKind, res domain.Reservation, roomName string) {
	_ = s.events.PublishReservationEvent(ctx, ReservationEvent{
		Kind:        kind,
		Reservation: res,
		RoomName:    roomName,
		OccurredAt:  s.clock.Now(),
	})
}
