package postgres

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"time"

	"github.com/camillapd/RoomReservationsAPI/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dateLayout = "2006-01-02"

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// LockRoomDate takes a transaction-scoped advisory lock keyed by
// (roomID, date). The lock is released automatically at commit or rollback.
// Keying by room and date keeps mutations of different rooms, or the same
// room on different dates, from blocking one another.
func (r *ReservationRepository) LockRoomDate(ctx context.Context, roomID string, date time.Time) error {
	if txFromContext(ctx) == nil {
		return fmt.Errorf("lock room date: no transaction in context")
	}
	if _, err := r.exec(ctx, `SELECT pg_advisory_xact_lock($1)`, roomDateLockKey(roomID, date)); err != nil {
		return fmt.Errorf("lock room date: %w", err)
	}
	return nil
}

func roomDateLockKey(roomID string, date time.Time) int64 {
	h := fnv.New64a()
	_, _ = io.WriteString(h, roomID)
	_, _ = io.WriteString(h, "|")
	_, _ = io.WriteString(h, date.Format(dateLayout))
	return int64(h.Sum64())
}

func (r *ReservationRepository) GetRoomByName(ctx context.Context, name string) (domain.Room, error) {
	const query = `SELECT id, name, created_at FROM rooms WHERE name = $1`

	var room domain.Room
	err := r.queryRow(ctx, query, name).Scan(&room.ID, &room.Name, &room.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, fmt.Errorf("get room by name: %w", err)
	}
	return room, nil
}

func (r *ReservationRepository) GetRoomByID(ctx context.Context, id string) (domain.Room, error) {
	const query = `SELECT id, name, created_at FROM rooms WHERE id = $1`

	var room domain.Room
	err := r.queryRow(ctx, query, id).Scan(&room.ID, &room.Name, &room.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) || err == pgx.ErrNoRows {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

func (r *ReservationRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	const query = `
SELECT id, name, created_at
FROM rooms
ORDER BY created_at ASC`

	rows, err := r.query(ctx, query)
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

func (r *ReservationRepository) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	const query = `
SELECT id, room_id, reservation_date, start_min, end_min, created_at
FROM reservations
WHERE id = $1`

	res, err := scanReservation(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) || err == pgx.ErrNoRows {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

func (r *ReservationRepository) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	const query = `
SELECT id, room_id, reservation_date, start_min, end_min, created_at
FROM reservations
ORDER BY created_at ASC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

// ListByRoomAndDate returns the conflict-candidate set: every reservation of
// the room on the date, served by the (room_id, reservation_date) index.
func (r *ReservationRepository) ListByRoomAndDate(ctx context.Context, roomID string, date time.Time) ([]domain.Reservation, error) {
	const query = `
SELECT id, room_id, reservation_date, start_min, end_min, created_at
FROM reservations
WHERE room_id = $1 AND reservation_date = $2
ORDER BY start_min ASC`

	rows, err := r.query(ctx, query, roomID, date)
	if err != nil {
		return nil, fmt.Errorf("list reservations by room and date: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, res domain.Reservation) error {
	const stmt = `
INSERT INTO reservations (id, room_id, reservation_date, start_min, end_min, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		res.ID,
		res.RoomID,
		res.Date,
		int(res.Start),
		int(res.End),
		res.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrRoomNotFound
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) ReplaceReservationSlot(ctx context.Context, id string, date time.Time, start, end domain.TimeOfDay) error {
	const stmt = `
UPDATE reservations
SET reservation_date = $2, start_min = $3, end_min = $4
WHERE id = $1`

	tag, err := r.exec(ctx, stmt, id, date, int(start), int(end))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrReservationNotFound
		}
		return fmt.Errorf("replace reservation slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) DeleteReservation(ctx context.Context, id string) error {
	const stmt = `DELETE FROM reservations WHERE id = $1`

	tag, err := r.exec(ctx, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrReservationNotFound
		}
		return fmt.Errorf("delete reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func scanReservation(row pgx.Row) (domain.Reservation, error) {
	var res domain.Reservation
	var start, end int
	if err := row.Scan(&res.ID, &res.RoomID, &res.Date, &start, &end, &res.CreatedAt); err != nil {
		return domain.Reservation{}, err
	}
	res.Start = domain.TimeOfDay(start)
	res.End = domain.TimeOfDay(end)
	return res, nil
}

func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate reservations: %w", rows.Err())
	}
	return reservations, nil
}

func (r *ReservationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReservationRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *ReservationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
