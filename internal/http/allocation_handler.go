package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/lecture-allocator/internal/application"
	"github.com/example/lecture-allocator/internal/persistence"
)

type allocationService interface {
	ResolveConflict(ctx context.Context, request application.RelocationRequest) (application.Resolution, error)
	ListSessions(ctx context.Context, date string) ([]persistence.Session, error)
}

// AllocationHandler serves the conflict-resolution operation and the session
// listings derived from it.
type AllocationHandler struct {
	service   allocationService
	responder responder
}

// NewAllocationHandler constructs the handler.
func NewAllocationHandler(service allocationService, logger *slog.Logger) *AllocationHandler {
	return &AllocationHandler{service: service, responder: newResponder(logger)}
}

type relocationRequest struct {
	SessionID       string `json:"sessionId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	ConflictDetails string `json:"conflictDetails"`
}

type resolutionResponse struct {
	ResolvedVenue string `json:"resolvedVenue"`
}

// ResolveConflict handles POST /resolve-conflict.
func (h *AllocationHandler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req relocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	resolution, err := h.service.ResolveConflict(r.Context(), application.RelocationRequest{
		SessionID:       req.SessionID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		ConflictDetails: req.ConflictDetails,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, resolutionResponse{ResolvedVenue: resolution.Room})
}

type sessionResponse struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Room       *string   `json:"room"`
	CourseCode string    `json:"courseCode"`
	LecturerID *string   `json:"lecturerId,omitempty"`
	Students   []string  `json:"students"`
	Conflict   bool      `json:"conflict"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ListSessions handles GET /allocations.
func (h *AllocationHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessions, err := h.service.ListSessions(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	payload := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		students := session.StudentIDs
		if students == nil {
			students = []string{}
		}
		payload = append(payload, sessionResponse{
			ID:         session.ID,
			Date:       session.Date,
			StartTime:  session.StartTime,
			EndTime:    session.EndTime,
			Room:       session.Room,
			CourseCode: session.CourseCode,
			LecturerID: session.LecturerID,
			Students:   students,
			Conflict:   session.Conflict,
			Status:     string(session.Status),
			UpdatedAt:  session.UpdatedAt,
		})
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}
