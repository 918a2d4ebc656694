package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/lecture-allocator/internal/persistence"
)

// AuditService reads the append-only records produced by resolutions: the
// decision-log trail and the notification sink.
type AuditService struct {
	logs          persistence.DecisionLogRepository
	notifications persistence.NotificationRepository
	logger        *slog.Logger
}

// NewAuditService wires the audit read models.
func NewAuditService(logs persistence.DecisionLogRepository, notifications persistence.NotificationRepository, logger *slog.Logger) *AuditService {
	return &AuditService{
		logs:          logs,
		notifications: notifications,
		logger:        defaultLogger(logger),
	}
}

// ListDecisionLogs returns the audit trail newest first.
func (s *AuditService) ListDecisionLogs(ctx context.Context) ([]persistence.DecisionLogEntry, error) {
	if s == nil || s.logs == nil {
		return nil, fmt.Errorf("AuditService is not configured")
	}
	return s.logs.ListDecisionLogs(ctx)
}

// ListNotifications returns notifications, optionally narrowed to a single
// recipient.
func (s *AuditService) ListNotifications(ctx context.Context, filter persistence.NotificationFilter) ([]persistence.Notification, error) {
	if s == nil || s.notifications == nil {
		return nil, fmt.Errorf("AuditService is not configured")
	}
	return s.notifications.ListNotifications(ctx, filter)
}
