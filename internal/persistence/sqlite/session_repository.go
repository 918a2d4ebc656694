package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/lecture-allocator/internal/persistence"
)

// SessionRepository implements persistence.SessionRepository using SQLite.
type SessionRepository struct {
	pool *ConnectionPool
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(pool *ConnectionPool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// CreateSession inserts a new session with its student roster.
func (r *SessionRepository) CreateSession(ctx context.Context, session persistence.Session) error {
	if session.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if session.Status == "" {
		session.Status = persistence.SessionScheduled
	}

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = now
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO sessions (id, date, start_time, end_time, room, course_code, lecturer_id, conflict, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := tx.ExecContext(ctx, query,
			session.ID,
			session.Date,
			session.StartTime,
			session.EndTime,
			nullString(session.Room),
			session.CourseCode,
			nullString(session.LecturerID),
			boolToInt(session.Conflict),
			string(session.Status),
			session.CreatedAt.Format(time.RFC3339),
			session.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return mapError(err)
		}

		for _, studentID := range session.StudentIDs {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO session_students (session_id, student_id) VALUES (?, ?)",
				session.ID, studentID,
			)
			if err != nil {
				return mapError(err)
			}
		}

		return nil
	})
}

// GetSession retrieves a session with its student roster by ID.
func (r *SessionRepository) GetSession(ctx context.Context, id string) (persistence.Session, error) {
	if id == "" {
		return persistence.Session{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, date, start_time, end_time, room, course_code, lecturer_id, conflict, status, created_at, updated_at
		FROM sessions
		WHERE id = ?
	`

	session, err := scanSession(r.pool.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return persistence.Session{}, mapError(err)
	}

	students, err := r.listStudents(ctx, id)
	if err != nil {
		return persistence.Session{}, err
	}
	session.StudentIDs = students

	return session, nil
}

// ListSessions returns all sessions ordered by date then start time.
func (r *SessionRepository) ListSessions(ctx context.Context) ([]persistence.Session, error) {
	return r.list(ctx, `
		SELECT id, date, start_time, end_time, room, course_code, lecturer_id, conflict, status, created_at, updated_at
		FROM sessions
		ORDER BY date, start_time, id
	`)
}

// ListSessionsByDate returns sessions sharing a calendar date, the query the
// overlap detector runs against.
func (r *SessionRepository) ListSessionsByDate(ctx context.Context, date string) ([]persistence.Session, error) {
	return r.list(ctx, `
		SELECT id, date, start_time, end_time, room, course_code, lecturer_id, conflict, status, created_at, updated_at
		FROM sessions
		WHERE date = ?
		ORDER BY start_time, id
	`, date)
}

// CommitResolution applies a resolution as a single transaction: the
// conditional session update plus every notification and the decision-log
// entry. The UPDATE is guarded on the conflict flag so a second resolver
// racing on the same session observes ErrPreconditionFailed and writes
// nothing.
func (r *SessionRepository) CommitResolution(ctx context.Context, write persistence.ResolutionWrite) error {
	if write.SessionID == "" || write.Room == "" {
		return persistence.ErrConstraintViolation
	}

	committedAt := write.CommittedAt
	if committedAt.IsZero() {
		committedAt = time.Now().UTC()
	}
	stamp := committedAt.UTC().Format(time.RFC3339)

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE sessions
			SET room = ?, conflict = 0, status = ?, updated_at = ?
			WHERE id = ? AND conflict = 1
		`, write.Room, string(persistence.SessionDiverted), stamp, write.SessionID)
		if err != nil {
			return mapError(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			var exists int
			err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM sessions WHERE id = ?", write.SessionID).Scan(&exists)
			if err != nil {
				return mapError(err)
			}
			if exists == 0 {
				return persistence.ErrNotFound
			}
			return persistence.ErrPreconditionFailed
		}

		for _, n := range write.Notifications {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO notifications (id, type, title, message, lecturer_id, student_id, admin_id, session_id, read, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
			`,
				n.ID,
				n.Type,
				n.Title,
				n.Message,
				nullString(n.LecturerID),
				nullString(n.StudentID),
				nullString(n.AdminID),
				n.SessionID,
				stamp,
			)
			if err != nil {
				return mapError(err)
			}
		}

		entry := write.LogEntry
		_, err = tx.ExecContext(ctx, `
			INSERT INTO decision_logs (id, session_id, description, conflict_details, room, resolved_by, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			entry.ID,
			entry.SessionID,
			entry.Description,
			entry.ConflictDetails,
			entry.Room,
			entry.ResolvedBy,
			entry.Status,
			stamp,
		)
		if err != nil {
			return mapError(err)
		}

		return nil
	})
}

func (r *SessionRepository) list(ctx context.Context, query string, args ...any) ([]persistence.Session, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	sessions := make([]persistence.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, mapError(err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	for i := range sessions {
		students, err := r.listStudents(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].StudentIDs = students
	}

	return sessions, nil
}

func (r *SessionRepository) listStudents(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		"SELECT student_id FROM session_students WHERE session_id = ? ORDER BY student_id",
		sessionID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	students := make([]string, 0)
	for rows.Next() {
		var studentID string
		if err := rows.Scan(&studentID); err != nil {
			return nil, mapError(err)
		}
		students = append(students, studentID)
	}
	return students, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (persistence.Session, error) {
	var (
		session    persistence.Session
		room       sql.NullString
		lecturerID sql.NullString
		conflict   int
		status     string
		createdAt  string
		updatedAt  string
	)

	err := row.Scan(
		&session.ID,
		&session.Date,
		&session.StartTime,
		&session.EndTime,
		&room,
		&session.CourseCode,
		&lecturerID,
		&conflict,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Session{}, err
	}

	session.Room = fromNullString(room)
	session.LecturerID = fromNullString(lecturerID)
	session.Conflict = conflict != 0
	session.Status = persistence.SessionStatus(status)
	session.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	session.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return session, nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func fromNullString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	copied := value.String
	return &copied
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
