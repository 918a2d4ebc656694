package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/lecture-allocator/internal/application"
)

var errBadRequestBody = errors.New("invalid request body")

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Error: message})
}

// handleServiceError maps the application error taxonomy onto HTTP statuses.
// Validation failures and the no-rooms outcome surface verbatim; internal
// faults surface a generic message and keep the detail in logs.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
			Error:  vErr.Error(),
			Fields: vErr.FieldErrors,
		})
		return
	}

	var noRoom *application.NoRoomAvailableError
	if errors.As(err, &noRoom) {
		r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
			Error:      "No rooms available for the specified time.",
			Suggestion: noRoom.Advisory,
		})
		return
	}

	switch {
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Error: "The requested resource was not found."})
	case errors.Is(err, application.ErrAlreadyResolved):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Error: "The session has already been resolved."})
	default:
		r.loggerFor(ctx).ErrorContext(ctx, "internal error", "kind", application.ErrorKind(err), "error", err)
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "An internal server error occurred."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

type errorResponse struct {
	Error      string            `json:"error"`
	Suggestion string            `json:"suggestion,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}
