package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/lecture-allocator/internal/persistence"
)

type auditService interface {
	ListDecisionLogs(ctx context.Context) ([]persistence.DecisionLogEntry, error)
	ListNotifications(ctx context.Context, filter persistence.NotificationFilter) ([]persistence.Notification, error)
}

// AuditHandler serves the append-only records produced by resolutions.
type AuditHandler struct {
	service   auditService
	responder responder
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(service auditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{service: service, responder: newResponder(logger)}
}

type decisionLogResponse struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"sessionId"`
	Description     string    `json:"description"`
	ConflictDetails string    `json:"conflictDetails,omitempty"`
	Room            string    `json:"room"`
	ResolvedBy      string    `json:"resolvedBy"`
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
}

// ListDecisionLogs handles GET /decision-logs.
func (h *AuditHandler) ListDecisionLogs(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	entries, err := h.service.ListDecisionLogs(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	payload := make([]decisionLogResponse, 0, len(entries))
	for _, entry := range entries {
		payload = append(payload, decisionLogResponse{
			ID:              entry.ID,
			SessionID:       entry.SessionID,
			Description:     entry.Description,
			ConflictDetails: entry.ConflictDetails,
			Room:            entry.Room,
			ResolvedBy:      entry.ResolvedBy,
			Status:          entry.Status,
			Timestamp:       entry.CreatedAt,
		})
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}

type notificationResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	LecturerID *string   `json:"lecturerId,omitempty"`
	StudentID  *string   `json:"studentId,omitempty"`
	AdminID    *string   `json:"adminId,omitempty"`
	SessionID  string    `json:"sessionId"`
	Read       bool      `json:"isRead"`
	Time       time.Time `json:"time"`
}

// ListNotifications handles GET /notifications, narrowed by at most one of
// ?lecturer=, ?student= or ?admin=.
func (h *AuditHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	filter := persistence.NotificationFilter{
		LecturerID: query.Get("lecturer"),
		StudentID:  query.Get("student"),
		AdminID:    query.Get("admin"),
	}

	set := 0
	for _, value := range []string{filter.LecturerID, filter.StudentID, filter.AdminID} {
		if value != "" {
			set++
		}
	}
	if set > 1 {
		h.responder.writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "specify at most one recipient filter"})
		return
	}

	notifications, err := h.service.ListNotifications(r.Context(), filter)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	payload := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		payload = append(payload, notificationResponse{
			ID:         n.ID,
			Type:       n.Type,
			Title:      n.Title,
			Message:    n.Message,
			LecturerID: n.LecturerID,
			StudentID:  n.StudentID,
			AdminID:    n.AdminID,
			SessionID:  n.SessionID,
			Read:       n.Read,
			Time:       n.CreatedAt,
		})
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, payload)
}
