package persistence

import "context"

// SessionRepository stores timetable sessions and exposes the conditional
// multi-record write that backs conflict resolution.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
	ListSessionsByDate(ctx context.Context, date string) ([]Session, error)

	// CommitResolution applies the session update together with every
	// notification and the decision-log entry as one atomic unit. The
	// session row is updated only while still conflict-flagged; a stale
	// guard yields ErrPreconditionFailed and a missing session yields
	// ErrNotFound, in both cases with zero writes.
	CommitResolution(ctx context.Context, write ResolutionWrite) error
}

// RoomRepository stores the lecture room catalog. The allocation core only
// ever reads it.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	ListRooms(ctx context.Context) ([]Room, error)
	ListRoomsByStatus(ctx context.Context, status RoomStatus) ([]Room, error)
}

// UserRepository stores institution accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	ListUsersByRole(ctx context.Context, role UserRole) ([]User, error)
}

// NotificationRepository reads the append-only notification sink. Writes
// happen exclusively through SessionRepository.CommitResolution.
type NotificationRepository interface {
	ListNotifications(ctx context.Context, filter NotificationFilter) ([]Notification, error)
}

// NotificationFilter narrows notification queries to a single recipient. At
// most one field is expected to be set.
type NotificationFilter struct {
	LecturerID string
	StudentID  string
	AdminID    string
}

// DecisionLogRepository reads the append-only audit trail. Writes happen
// exclusively through SessionRepository.CommitResolution.
type DecisionLogRepository interface {
	ListDecisionLogs(ctx context.Context) ([]DecisionLogEntry, error)
}
