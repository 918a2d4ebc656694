package testfixtures

import (
	"testing"
	"time"

	"github.com/example/lecture-allocator/internal/persistence"
)

func TestClockDefaultsToReferenceTime(t *testing.T) {
	clock := NewClock(time.Time{})
	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected ReferenceTime, got %v", clock.Now())
	}
}

func TestClockAdvanceAndSet(t *testing.T) {
	start := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	clock := NewClock(start)

	updated := clock.Advance(90 * time.Minute)
	if !updated.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("advance returned %v", updated)
	}

	clock.Set(start.Add(2 * time.Hour))
	if !clock.Now().Equal(start.Add(2 * time.Hour)) {
		t.Fatalf("set left clock at %v", clock.Now())
	}
}

func TestIDGeneratorSequence(t *testing.T) {
	gen := NewIDGenerator("sess")
	if got := gen.Next(); got != "sess-1" {
		t.Fatalf("expected sess-1, got %s", got)
	}
	if got := gen.Next(); got != "sess-2" {
		t.Fatalf("expected sess-2, got %s", got)
	}

	gen.SetCounter(0)
	if got := gen.NextFunc()(); got != "sess-1" {
		t.Fatalf("expected reset to sess-1, got %s", got)
	}
}

func TestSessionFixtureOverrides(t *testing.T) {
	session := NewSession(
		WithSessionID("sess-9"),
		WithSessionRoom(""),
		WithSessionWindow("2025-04-01", "1:00 PM", "3:00 PM"),
		WithSessionLecturer(""),
		WithSessionStudents("stud-7"),
	)

	if session.ID != "sess-9" || session.Room != nil || session.LecturerID != nil {
		t.Fatalf("overrides not applied: %+v", session)
	}
	if session.Date != "2025-04-01" || session.StartTime != "1:00 PM" {
		t.Fatalf("window override not applied: %+v", session)
	}
	if len(session.StudentIDs) != 1 || session.StudentIDs[0] != "stud-7" {
		t.Fatalf("student override not applied: %+v", session.StudentIDs)
	}
}

func TestUserFixtureIDKeepsEmailUnique(t *testing.T) {
	a := NewUser(WithUserID("admin-1"))
	b := NewUser(WithUserID("admin-2"))

	if a.Email == b.Email {
		t.Fatalf("expected distinct emails, got %s twice", a.Email)
	}
	if c := NewUser(WithUserID("admin-3"), WithUserEmail("ops@example.edu")); c.Email != "ops@example.edu" {
		t.Fatalf("email override not applied: %+v", c)
	}
}

func TestSessionFixtureStatusOverride(t *testing.T) {
	session := NewSession(
		WithSessionConflict(false),
		WithSessionStatus(persistence.SessionDiverted),
	)
	if session.Conflict || session.Status != persistence.SessionDiverted {
		t.Fatalf("overrides not applied: %+v", session)
	}
}

func TestRoomFixtureNameKeepsIDsUnique(t *testing.T) {
	a := NewRoom(WithRoomName("Room A"))
	b := NewRoom(WithRoomName("Room B"), WithRoomStatus(persistence.RoomUnavailable))

	if a.ID == b.ID {
		t.Fatalf("expected distinct IDs, got %s twice", a.ID)
	}
	if b.Status != persistence.RoomUnavailable {
		t.Fatalf("status override not applied: %+v", b)
	}
}
