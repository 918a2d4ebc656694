package persistence

import "time"

// SessionStatus enumerates the lifecycle states a timetable session moves
// through within the allocation flow.
type SessionStatus string

const (
	// SessionScheduled marks a session holding its originally planned slot.
	SessionScheduled SessionStatus = "scheduled"
	// SessionPending marks a session awaiting external scheduling work.
	SessionPending SessionStatus = "pending"
	// SessionDiverted marks a session moved to a new room by a resolution.
	SessionDiverted SessionStatus = "diverted"
)

// RoomStatus enumerates room availability flags as recorded in the catalog.
type RoomStatus string

const (
	// RoomAvailable marks a room that may receive relocated sessions.
	RoomAvailable RoomStatus = "available"
	// RoomUnavailable marks a room withdrawn from allocation.
	RoomUnavailable RoomStatus = "unavailable"
)

// Session represents a scheduled class occupying a date, time interval and
// room. Times are stored as the submitted 12-hour clock strings; overlap
// math parses them on demand.
type Session struct {
	ID         string
	Date       string
	StartTime  string
	EndTime    string
	Room       *string
	CourseCode string
	LecturerID *string
	StudentIDs []string
	Conflict   bool
	Status     SessionStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Room represents a lecture room catalog entry. Names are unique within the
// institution.
type Room struct {
	ID        string
	Name      string
	Status    RoomStatus
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRole enumerates the roles recorded for institution users.
type UserRole string

const (
	// RoleAdmin marks timetabling administrators, who receive a copy of
	// every conflict notification.
	RoleAdmin UserRole = "admin"
	// RoleLecturer marks teaching staff.
	RoleLecturer UserRole = "lecturer"
	// RoleStudent marks enrolled students.
	RoleStudent UserRole = "student"
)

// User represents an institution account visible to the allocation flow.
type User struct {
	ID          string
	DisplayName string
	Email       string
	Role        UserRole
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Notification is an append-only record addressed to exactly one of
// LecturerID, StudentID or AdminID.
type Notification struct {
	ID         string
	Type       string
	Title      string
	Message    string
	LecturerID *string
	StudentID  *string
	AdminID    *string
	SessionID  string
	Read       bool
	CreatedAt  time.Time
}

// DecisionLogEntry is an append-only audit record describing one committed
// resolution.
type DecisionLogEntry struct {
	ID              string
	SessionID       string
	Description     string
	ConflictDetails string
	Room            string
	ResolvedBy      string
	Status          string
	CreatedAt       time.Time
}

// ResolutionWrite groups the records a resolution must commit as one unit:
// the session update plus every derived notification and the audit entry.
// CommittedAt stamps the session update and all derived records with a
// single commit time.
type ResolutionWrite struct {
	SessionID     string
	Room          string
	Notifications []Notification
	LogEntry      DecisionLogEntry
	CommittedAt   time.Time
}
