package app

import (
	"context"

	"github.com/camillapd/RoomReservationsAPI/internal/clock"
	"github.com/camillapd/RoomReservationsAPI/internal/domain"
)

type RoomRepository interface {
	CreateRoom(ctx context.Context, room domain.Room) error
	GetRoomByName(ctx context.Context, name string) (domain.Room, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
}

// RoomService is the room catalog: it creates and lists rooms. Rooms carry
// no conflict semantics of their own.
type RoomService struct {
	repo  RoomRepository
	clock clock.Clock
}

func NewRoomService(repo RoomRepository, clk clock.Clock) *RoomService {
	return &RoomService{
		repo:  repo,
		clock: clk,
	}
}

type CreateRoomInput struct {
	Name string
}

func (s *RoomService) CreateRoom(ctx context.Context, in CreateRoomInput) (domain.Room, error) {
	if in.Name == "" {
		return domain.Room{}, domain.ErrRoomNameRequired
	}

	room := domain.Room{
		ID:        newUUID(),
		Name:      in.Name,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func (s *RoomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.repo.ListRooms(ctx)
}

// FindRoomByName resolves a room by its unique name.
func (s *RoomService) FindRoomByName(ctx context.Context, name string) (domain.Room, error) {
	if name == "" {
		return domain.Room{}, domain.ErrRoomNameRequired
	}
	return s.repo.GetRoomByName(ctx, name)
}
