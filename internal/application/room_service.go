package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/example/lecture-allocator/internal/persistence"
)

const availableRoomsCacheKey = "rooms:available"

// RoomService reads the lecture room catalog. The available-rooms query sits
// on the hot path of every resolution, so its result is held in a short TTL
// cache.
type RoomService struct {
	rooms  persistence.RoomRepository
	cache  *gocache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewRoomService wires the room catalog with a TTL cache. A non-positive ttl
// disables caching.
func NewRoomService(rooms persistence.RoomRepository, ttl time.Duration, logger *slog.Logger) *RoomService {
	var store *gocache.Cache
	if ttl > 0 {
		store = gocache.New(ttl, 2*ttl)
	}
	return &RoomService{
		rooms:  rooms,
		cache:  store,
		ttl:    ttl,
		logger: defaultLogger(logger),
	}
}

// AvailableRoomNames returns the names of rooms currently flagged available.
func (s *RoomService) AvailableRoomNames(ctx context.Context) ([]string, error) {
	if s == nil || s.rooms == nil {
		return nil, fmt.Errorf("RoomService is not configured")
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(availableRoomsCacheKey); ok {
			if names, ok := cached.([]string); ok {
				return append([]string(nil), names...), nil
			}
		}
	}

	rooms, err := s.rooms.ListRoomsByStatus(ctx, persistence.RoomAvailable)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rooms))
	for _, room := range rooms {
		names = append(names, room.Name)
	}

	if s.cache != nil {
		s.cache.Set(availableRoomsCacheKey, append([]string(nil), names...), s.ttl)
	}

	return names, nil
}

// ListRooms enumerates the catalog, optionally narrowed by availability.
func (s *RoomService) ListRooms(ctx context.Context, status persistence.RoomStatus) ([]persistence.Room, error) {
	if s == nil || s.rooms == nil {
		return nil, fmt.Errorf("RoomService is not configured")
	}
	if status != "" {
		return s.rooms.ListRoomsByStatus(ctx, status)
	}
	return s.rooms.ListRooms(ctx)
}

// Invalidate drops the cached available-rooms set. Callers mutating the
// catalog out of band use it to avoid serving stale availability.
func (s *RoomService) Invalidate() {
	if s != nil && s.cache != nil {
		s.cache.Delete(availableRoomsCacheKey)
	}
}
