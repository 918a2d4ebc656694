package sqlite

import (
	"context"
	"time"

	"github.com/example/lecture-allocator/internal/persistence"
)

// RoomRepository implements persistence.RoomRepository using SQLite.
type RoomRepository struct {
	pool *ConnectionPool
}

// NewRoomRepository creates a new SQLite room repository.
func NewRoomRepository(pool *ConnectionPool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

// CreateRoom inserts a new room into the catalog.
func (r *RoomRepository) CreateRoom(ctx context.Context, room persistence.Room) error {
	if room.ID == "" || room.Name == "" {
		return persistence.ErrConstraintViolation
	}
	if room.Status == "" {
		room.Status = persistence.RoomAvailable
	}

	now := time.Now().UTC()
	if room.CreatedAt.IsZero() {
		room.CreatedAt = now
	}
	if room.UpdatedAt.IsZero() {
		room.UpdatedAt = now
	}

	query := `
		INSERT INTO rooms (id, name, status, location, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.pool.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		string(room.Status),
		room.Location,
		room.CreatedAt.Format(time.RFC3339),
		room.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// ListRooms returns all rooms ordered by name.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	return r.list(ctx, `
		SELECT id, name, status, location, created_at, updated_at
		FROM rooms
		ORDER BY name, id
	`)
}

// ListRoomsByStatus returns rooms carrying the given availability flag.
func (r *RoomRepository) ListRoomsByStatus(ctx context.Context, status persistence.RoomStatus) ([]persistence.Room, error) {
	return r.list(ctx, `
		SELECT id, name, status, location, created_at, updated_at
		FROM rooms
		WHERE status = ?
		ORDER BY name, id
	`, string(status))
}

func (r *RoomRepository) list(ctx context.Context, query string, args ...any) ([]persistence.Room, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	rooms := make([]persistence.Room, 0)
	for rows.Next() {
		var (
			room      persistence.Room
			status    string
			createdAt string
			updatedAt string
		)
		if err := rows.Scan(&room.ID, &room.Name, &status, &room.Location, &createdAt, &updatedAt); err != nil {
			return nil, mapError(err)
		}
		room.Status = persistence.RoomStatus(status)
		room.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		room.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}
