package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/lecture-allocator/internal/persistence"
)

type roomService interface {
	ListRooms(ctx context.Context, status persistence.RoomStatus) ([]persistence.Room, error)
}

// RoomHandler serves the lecture room catalog.
type RoomHandler struct {
	service   roomService
	responder responder
}

// NewRoomHandler constructs the handler.
func NewRoomHandler(service roomService, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{service: service, responder: newResponder(logger)}
}

type roomResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
}

// List handles GET /rooms, optionally narrowed by ?status=.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	status := persistence.RoomStatus(r.URL.Query().Get("status"))
	if status != "" && status != persistence.RoomAvailable && status != persistence.RoomUnavailable {
		h.responder.writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "unknown room status"})
		return
	}

	rooms, err := h.service.ListRooms(r.Context(), status)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	payload := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		payload = append(payload, roomResponse{
			ID:       room.ID,
			Name:     room.Name,
			Status:   string(room.Status),
			Location: room.Location,
		})
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}
