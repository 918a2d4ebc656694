package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the DDL applied on startup. Statements are idempotent so a
// restart against an existing database is a no-op.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL CHECK (role IN ('admin', 'lecturer', 'student')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL CHECK (status IN ('available', 'unavailable')),
		location TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		room TEXT,
		course_code TEXT NOT NULL DEFAULT '',
		lecturer_id TEXT,
		conflict INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL CHECK (status IN ('scheduled', 'pending', 'diverted')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions (date)`,
	`CREATE TABLE IF NOT EXISTS session_students (
		session_id TEXT NOT NULL REFERENCES sessions (id) ON DELETE CASCADE,
		student_id TEXT NOT NULL,
		PRIMARY KEY (session_id, student_id)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		lecturer_id TEXT,
		student_id TEXT,
		admin_id TEXT,
		session_id TEXT NOT NULL,
		read INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		CHECK (
			(lecturer_id IS NOT NULL) + (student_id IS NOT NULL) + (admin_id IS NOT NULL) = 1
		)
	)`,
	`CREATE TABLE IF NOT EXISTS decision_logs (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		description TEXT NOT NULL,
		conflict_details TEXT NOT NULL DEFAULT '',
		room TEXT NOT NULL,
		resolved_by TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
}

// Migrate applies the schema inside a single transaction.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	return cp.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to apply schema statement: %w", err)
			}
		}
		return nil
	})
}
