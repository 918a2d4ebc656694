package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/example/lecture-allocator/internal/persistence"
	"github.com/example/lecture-allocator/internal/testfixtures"
)

func setupPool(t *testing.T) *ConnectionPool {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "allocator_test.db")
	pool, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})

	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	return pool
}

func strPtr(value string) *string {
	return &value
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := setupPool(t)

	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}

func TestRoomRepository_CreateAndListByStatus(t *testing.T) {
	pool := setupPool(t)
	repo := NewRoomRepository(pool)
	ctx := context.Background()

	rooms := []persistence.Room{
		testfixtures.NewRoom(testfixtures.WithRoomName("Room A")),
		testfixtures.NewRoom(testfixtures.WithRoomName("Room B"), testfixtures.WithRoomStatus(persistence.RoomUnavailable)),
		testfixtures.NewRoom(testfixtures.WithRoomName("Room C")),
	}
	for _, room := range rooms {
		if err := repo.CreateRoom(ctx, room); err != nil {
			t.Fatalf("CreateRoom(%s) failed: %v", room.ID, err)
		}
	}

	available, err := repo.ListRoomsByStatus(ctx, persistence.RoomAvailable)
	if err != nil {
		t.Fatalf("ListRoomsByStatus failed: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("expected 2 available rooms, got %d", len(available))
	}
	if available[0].Name != "Room A" || available[1].Name != "Room C" {
		t.Errorf("unexpected ordering: %v, %v", available[0].Name, available[1].Name)
	}
}

func TestRoomRepository_DuplicateName(t *testing.T) {
	pool := setupPool(t)
	repo := NewRoomRepository(pool)
	ctx := context.Background()

	if err := repo.CreateRoom(ctx, persistence.Room{ID: "room-1", Name: "Room A"}); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	err := repo.CreateRoom(ctx, persistence.Room{ID: "room-2", Name: "Room A"})
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	pool := setupPool(t)
	repo := NewSessionRepository(pool)
	ctx := context.Background()

	session := testfixtures.NewSession(
		testfixtures.WithSessionID("session-1"),
		testfixtures.WithSessionWindow("2025-07-09", "10:00 AM", "12:00 PM"),
	)

	if err := repo.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	retrieved, err := repo.GetSession(ctx, "session-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if retrieved.CourseCode != "CS101" {
		t.Errorf("course code = %q, want CS101", retrieved.CourseCode)
	}
	if !retrieved.Conflict {
		t.Error("conflict flag lost on round trip")
	}
	if len(retrieved.StudentIDs) != 2 {
		t.Errorf("expected 2 students, got %v", retrieved.StudentIDs)
	}
	if retrieved.LecturerID == nil || *retrieved.LecturerID != "lect-1" {
		t.Errorf("lecturer = %v, want lect-1", retrieved.LecturerID)
	}
}

func TestSessionRepository_GetSession_NotFound(t *testing.T) {
	pool := setupPool(t)
	repo := NewSessionRepository(pool)

	_, err := repo.GetSession(context.Background(), "missing")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepository_ListSessionsByDate(t *testing.T) {
	pool := setupPool(t)
	repo := NewSessionRepository(pool)
	ctx := context.Background()

	seed := []persistence.Session{
		testfixtures.NewSession(testfixtures.WithSessionID("s1"), testfixtures.WithSessionWindow("2025-07-09", "9:00 AM", "10:00 AM")),
		testfixtures.NewSession(testfixtures.WithSessionID("s2"), testfixtures.WithSessionWindow("2025-07-09", "10:00 AM", "11:00 AM")),
		testfixtures.NewSession(testfixtures.WithSessionID("s3"), testfixtures.WithSessionWindow("2025-07-10", "9:00 AM", "10:00 AM")),
	}
	for _, session := range seed {
		if err := repo.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession(%s) failed: %v", session.ID, err)
		}
	}

	sessions, err := repo.ListSessionsByDate(ctx, "2025-07-09")
	if err != nil {
		t.Fatalf("ListSessionsByDate failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions on 2025-07-09, got %d", len(sessions))
	}
}

func TestSessionRepository_CommitResolution(t *testing.T) {
	pool := setupPool(t)
	repo := NewSessionRepository(pool)
	notifications := NewNotificationRepository(pool)
	logs := NewDecisionLogRepository(pool)
	ctx := context.Background()

	session := testfixtures.NewSession(
		testfixtures.WithSessionID("session-1"),
		testfixtures.WithSessionWindow("2025-07-09", "10:00 AM", "12:00 PM"),
		testfixtures.WithSessionStudents("stud-1"),
	)
	if err := repo.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	write := persistence.ResolutionWrite{
		SessionID: "session-1",
		Room:      "Room C",
		Notifications: []persistence.Notification{
			{ID: "n1", Type: "conflict", Title: "t", Message: "m", LecturerID: strPtr("lect-1"), SessionID: "session-1"},
			{ID: "n2", Type: "conflict", Title: "t", Message: "m", StudentID: strPtr("stud-1"), SessionID: "session-1"},
		},
		LogEntry: persistence.DecisionLogEntry{
			ID: "log-1", SessionID: "session-1", Description: "d",
			Room: "Room C", ResolvedBy: "AI", Status: "resolved",
		},
	}

	if err := repo.CommitResolution(ctx, write); err != nil {
		t.Fatalf("CommitResolution failed: %v", err)
	}

	updated, err := repo.GetSession(ctx, "session-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if updated.Room == nil || *updated.Room != "Room C" {
		t.Errorf("room = %v, want Room C", updated.Room)
	}
	if updated.Conflict {
		t.Error("conflict flag was not cleared")
	}
	if updated.Status != persistence.SessionDiverted {
		t.Errorf("status = %q, want diverted", updated.Status)
	}

	stored, err := notifications.ListNotifications(ctx, persistence.NotificationFilter{})
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(stored))
	}

	trail, err := logs.ListDecisionLogs(ctx)
	if err != nil {
		t.Fatalf("ListDecisionLogs failed: %v", err)
	}
	if len(trail) != 1 {
		t.Fatalf("expected 1 decision log, got %d", len(trail))
	}
	if trail[0].SessionID != "session-1" {
		t.Errorf("decision log session = %q, want session-1", trail[0].SessionID)
	}
	if trail[0].CreatedAt.IsZero() || !trail[0].CreatedAt.Equal(stored[0].CreatedAt) {
		t.Error("decision log and notifications should share one commit time")
	}
}

func TestSessionRepository_CommitResolution_MissingSession(t *testing.T) {
	pool := setupPool(t)
	repo := NewSessionRepository(pool)
	logs := NewDecisionLogRepository(pool)
	ctx := context.Background()

	err := repo.CommitResolution(ctx, persistence.ResolutionWrite{
		SessionID: "missing",
		Room:      "Room C",
		LogEntry:  persistence.DecisionLogEntry{ID: "log-1", SessionID: "missing", Room: "Room C", ResolvedBy: "AI", Status: "resolved"},
	})
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	trail, err := logs.ListDecisionLogs(ctx)
	if err != nil {
		t.Fatalf("ListDecisionLogs failed: %v", err)
	}
	if len(trail) != 0 {
		t.Errorf("expected zero decision logs after failed commit, got %d", len(trail))
	}
}

func TestSessionRepository_CommitResolution_AlreadyResolved(t *testing.T) {
	pool := setupPool(t)
	repo := NewSessionRepository(pool)
	notifications := NewNotificationRepository(pool)
	ctx := context.Background()

	session := testfixtures.NewSession(
		testfixtures.WithSessionID("session-1"),
		testfixtures.WithSessionWindow("2025-07-09", "10:00 AM", "12:00 PM"),
		testfixtures.WithSessionConflict(false),
		testfixtures.WithSessionStatus(persistence.SessionDiverted),
	)
	if err := repo.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	err := repo.CommitResolution(ctx, persistence.ResolutionWrite{
		SessionID: "session-1",
		Room:      "Room C",
		Notifications: []persistence.Notification{
			{ID: "n1", Type: "conflict", Title: "t", Message: "m", AdminID: strPtr("admin-1"), SessionID: "session-1"},
		},
		LogEntry: persistence.DecisionLogEntry{ID: "log-1", SessionID: "session-1", Room: "Room C", ResolvedBy: "AI", Status: "resolved"},
	})
	if !errors.Is(err, persistence.ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}

	stored, err := notifications.ListNotifications(ctx, persistence.NotificationFilter{})
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("expected zero notifications after guarded commit, got %d", len(stored))
	}
}

func TestNotificationRepository_FilterByRecipient(t *testing.T) {
	pool := setupPool(t)
	sessions := NewSessionRepository(pool)
	notifications := NewNotificationRepository(pool)
	ctx := context.Background()

	if err := sessions.CreateSession(ctx, testfixtures.NewSession(
		testfixtures.WithSessionID("session-1"),
		testfixtures.WithSessionWindow("2025-07-09", "10:00 AM", "11:00 AM"),
	)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	err := sessions.CommitResolution(ctx, persistence.ResolutionWrite{
		SessionID: "session-1",
		Room:      "Room B",
		Notifications: []persistence.Notification{
			{ID: "n1", Type: "conflict", Title: "t", Message: "m", LecturerID: strPtr("lect-1"), SessionID: "session-1"},
			{ID: "n2", Type: "conflict", Title: "t", Message: "m", StudentID: strPtr("stud-1"), SessionID: "session-1"},
			{ID: "n3", Type: "conflict", Title: "t", Message: "m", AdminID: strPtr("admin-1"), SessionID: "session-1"},
		},
		LogEntry: persistence.DecisionLogEntry{ID: "log-1", SessionID: "session-1", Room: "Room B", ResolvedBy: "AI", Status: "resolved"},
	})
	if err != nil {
		t.Fatalf("CommitResolution failed: %v", err)
	}

	forLecturer, err := notifications.ListNotifications(ctx, persistence.NotificationFilter{LecturerID: "lect-1"})
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(forLecturer) != 1 || forLecturer[0].ID != "n1" {
		t.Errorf("lecturer filter returned %v", forLecturer)
	}

	forAdmin, err := notifications.ListNotifications(ctx, persistence.NotificationFilter{AdminID: "admin-1"})
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(forAdmin) != 1 || forAdmin[0].ID != "n3" {
		t.Errorf("admin filter returned %v", forAdmin)
	}
}

func TestUserRepository_ListUsersByRole(t *testing.T) {
	pool := setupPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	seed := []persistence.User{
		testfixtures.NewUser(testfixtures.WithUserID("admin-1")),
		testfixtures.NewUser(testfixtures.WithUserID("admin-2")),
		testfixtures.NewUser(testfixtures.WithUserID("lect-1"), testfixtures.WithUserRole(persistence.RoleLecturer)),
	}
	for _, user := range seed {
		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", user.ID, err)
		}
	}

	admins, err := repo.ListUsersByRole(ctx, persistence.RoleAdmin)
	if err != nil {
		t.Fatalf("ListUsersByRole failed: %v", err)
	}
	if len(admins) != 2 {
		t.Fatalf("expected 2 admins, got %d", len(admins))
	}
}
