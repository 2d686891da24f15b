package postgres

import (
	"context"
	"fmt"

	"github.com/camillapd/RoomReservationsAPI/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

func (r *RoomRepository) CreateRoom(ctx context.Context, room domain.Room) error {
	const stmt = `
INSERT INTO rooms (id, name, created_at)
VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, stmt, room.ID, room.Name, room.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRoomAlreadyExists
		}
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

func (r *RoomRepository) GetRoomByName(ctx context.Context, name string) (domain.Room, error) {
	const query = `SELECT id, name, created_at FROM rooms WHERE name = $1`

	var room domain.Room
	err := r.pool.QueryRow(ctx, query, name).Scan(&room.ID, &room.Name, &room.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, fmt.Errorf("get room by name: %w", err)
	}
	return room, nil
}

func (r *RoomRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	const query = `
SELECT id, name, created_at
FROM rooms
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate rooms: %w", rows.Err())
	}
	return rooms, nil
}
