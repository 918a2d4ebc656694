package testfixtures

import (
	"fmt"
	"time"

	"github.com/example/lecture-allocator/internal/persistence"
)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
}

// ---------------------------- Session fixtures ----------------------------

// SessionOption configures a generated session fixture.
type SessionOption func(*persistence.Session)

// NewSession returns a deterministic session record with optional overrides.
// The default session is conflict-flagged and occupies Room A on the
// reference date.
func NewSession(opts ...SessionOption) persistence.Session {
	room := "Room A"
	lecturer := "lect-1"
	session := persistence.Session{
		ID:         "sess-1",
		Date:       "2025-03-10",
		StartTime:  "10:00 AM",
		EndTime:    "12:00 PM",
		Room:       &room,
		CourseCode: "CS101",
		LecturerID: &lecturer,
		StudentIDs: []string{"stud-1", "stud-2"},
		Conflict:   true,
		Status:     persistence.SessionScheduled,
		CreatedAt:  ReferenceTime(),
		UpdatedAt:  ReferenceTime(),
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) SessionOption {
	return func(s *persistence.Session) { s.ID = id }
}

// WithSessionRoom overrides the occupied room. Pass an empty name to leave
// the session roomless.
func WithSessionRoom(name string) SessionOption {
	return func(s *persistence.Session) {
		if name == "" {
			s.Room = nil
			return
		}
		s.Room = &name
	}
}

// WithSessionWindow overrides date and times in one step.
func WithSessionWindow(date, start, end string) SessionOption {
	return func(s *persistence.Session) {
		s.Date = date
		s.StartTime = start
		s.EndTime = end
	}
}

// WithSessionConflict sets the conflict flag.
func WithSessionConflict(conflict bool) SessionOption {
	return func(s *persistence.Session) { s.Conflict = conflict }
}

// WithSessionStatus overrides the lifecycle status.
func WithSessionStatus(status persistence.SessionStatus) SessionOption {
	return func(s *persistence.Session) { s.Status = status }
}

// WithSessionStudents overrides the enrolled student roster.
func WithSessionStudents(ids ...string) SessionOption {
	return func(s *persistence.Session) { s.StudentIDs = ids }
}

// WithSessionLecturer overrides the lecturer. Pass an empty ID to drop the
// assignment.
func WithSessionLecturer(id string) SessionOption {
	return func(s *persistence.Session) {
		if id == "" {
			s.LecturerID = nil
			return
		}
		s.LecturerID = &id
	}
}

// ----------------------------- Room fixtures ------------------------------

// RoomOption configures a generated room fixture.
type RoomOption func(*persistence.Room)

// NewRoom returns a deterministic available room with optional overrides.
func NewRoom(opts ...RoomOption) persistence.Room {
	room := persistence.Room{
		ID:        "room-1",
		Name:      "Room A",
		Status:    persistence.RoomAvailable,
		Location:  "Science Block",
		CreatedAt: ReferenceTime(),
		UpdatedAt: ReferenceTime(),
	}
	for _, opt := range opts {
		opt(&room)
	}
	return room
}

// WithRoomName overrides both name and ID so fixture sets stay unique.
func WithRoomName(name string) RoomOption {
	return func(r *persistence.Room) {
		r.Name = name
		r.ID = fmt.Sprintf("room-%s", name)
	}
}

// WithRoomStatus overrides the availability flag.
func WithRoomStatus(status persistence.RoomStatus) RoomOption {
	return func(r *persistence.Room) { r.Status = status }
}

// ----------------------------- User fixtures ------------------------------

// UserOption configures a generated user fixture.
type UserOption func(*persistence.User)

// NewUser returns a deterministic admin user with optional overrides.
func NewUser(opts ...UserOption) persistence.User {
	user := persistence.User{
		ID:          "user-1",
		DisplayName: "Avery Admin",
		Email:       "avery@example.edu",
		Role:        persistence.RoleAdmin,
		CreatedAt:   ReferenceTime(),
		UpdatedAt:   ReferenceTime(),
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUserID overrides the generated user ID and keeps the email unique by
// deriving it from the ID.
func WithUserID(id string) UserOption {
	return func(u *persistence.User) {
		u.ID = id
		u.Email = fmt.Sprintf("%s@example.edu", id)
	}
}

// WithUserEmail overrides the email address.
func WithUserEmail(email string) UserOption {
	return func(u *persistence.User) { u.Email = email }
}

// WithUserDisplayName overrides the display name.
func WithUserDisplayName(name string) UserOption {
	return func(u *persistence.User) { u.DisplayName = name }
}

// WithUserRole overrides the role.
func WithUserRole(role persistence.UserRole) UserOption {
	return func(u *persistence.User) { u.Role = role }
}
