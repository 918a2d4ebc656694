package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/lecture-allocator/internal/persistence"
)

// NotificationRepository implements persistence.NotificationRepository using
// SQLite. The table is append-only; rows are written exclusively by
// SessionRepository.CommitResolution.
type NotificationRepository struct {
	pool *ConnectionPool
}

// NewNotificationRepository creates a new SQLite notification repository.
func NewNotificationRepository(pool *ConnectionPool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// ListNotifications returns notifications newest first, optionally narrowed
// to a single recipient.
func (r *NotificationRepository) ListNotifications(ctx context.Context, filter persistence.NotificationFilter) ([]persistence.Notification, error) {
	query := `
		SELECT id, type, title, message, lecturer_id, student_id, admin_id, session_id, read, created_at
		FROM notifications
	`
	args := make([]any, 0, 1)
	switch {
	case filter.LecturerID != "":
		query += " WHERE lecturer_id = ?"
		args = append(args, filter.LecturerID)
	case filter.StudentID != "":
		query += " WHERE student_id = ?"
		args = append(args, filter.StudentID)
	case filter.AdminID != "":
		query += " WHERE admin_id = ?"
		args = append(args, filter.AdminID)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	notifications := make([]persistence.Notification, 0)
	for rows.Next() {
		var (
			n          persistence.Notification
			lecturerID sql.NullString
			studentID  sql.NullString
			adminID    sql.NullString
			read       int
			createdAt  string
		)
		err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &lecturerID, &studentID, &adminID, &n.SessionID, &read, &createdAt)
		if err != nil {
			return nil, mapError(err)
		}
		n.LecturerID = fromNullString(lecturerID)
		n.StudentID = fromNullString(studentID)
		n.AdminID = fromNullString(adminID)
		n.Read = read != 0
		n.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// DecisionLogRepository implements persistence.DecisionLogRepository using
// SQLite. Like notifications, the table is append-only.
type DecisionLogRepository struct {
	pool *ConnectionPool
}

// NewDecisionLogRepository creates a new SQLite decision log repository.
func NewDecisionLogRepository(pool *ConnectionPool) *DecisionLogRepository {
	return &DecisionLogRepository{pool: pool}
}

// ListDecisionLogs returns the audit trail newest first.
func (r *DecisionLogRepository) ListDecisionLogs(ctx context.Context) ([]persistence.DecisionLogEntry, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, session_id, description, conflict_details, room, resolved_by, status, created_at
		FROM decision_logs
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	entries := make([]persistence.DecisionLogEntry, 0)
	for rows.Next() {
		var (
			entry     persistence.DecisionLogEntry
			createdAt string
		)
		err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Description, &entry.ConflictDetails, &entry.Room, &entry.ResolvedBy, &entry.Status, &createdAt)
		if err != nil {
			return nil, mapError(err)
		}
		entry.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
