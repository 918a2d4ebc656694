package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/lecture-allocator/internal/persistence"
	"github.com/example/lecture-allocator/internal/timetable"
)

// SessionStore captures the session persistence interactions needed by the
// allocation service, including the atomic multi-record write.
type SessionStore interface {
	GetSession(ctx context.Context, id string) (persistence.Session, error)
	ListSessions(ctx context.Context) ([]persistence.Session, error)
	ListSessionsByDate(ctx context.Context, date string) ([]persistence.Session, error)
	CommitResolution(ctx context.Context, write persistence.ResolutionWrite) error
}

// RoomCatalog exposes the set of rooms currently flagged available.
type RoomCatalog interface {
	AvailableRoomNames(ctx context.Context) ([]string, error)
}

// AdminDirectory exposes admin account lookup for the notification fan-out.
type AdminDirectory interface {
	ListAdmins(ctx context.Context) ([]persistence.User, error)
}

// Advisor is the optional external text-suggestion collaborator. Every call
// is best-effort: failures are logged and swallowed, and room proposals are
// honored only when they fall inside the available set.
type Advisor interface {
	Enabled() bool
	SuggestRoom(ctx context.Context, rooms []string, date, startTime, endTime string) (string, error)
	SuggestMessage(ctx context.Context, date, startTime, endTime string) (string, error)
}

// AllocationConfig tunes allocation behavior that is policy rather than
// logic.
type AllocationConfig struct {
	// SelectionPolicy is the fallback tie-break rule when several rooms
	// remain available.
	SelectionPolicy timetable.SelectionPolicy
	// Intn supplies randomness for the random policy. Nil degrades to the
	// first policy.
	Intn func(n int) int
}

// AllocationService orchestrates the conflict-resolution flow: validation,
// overlap detection, room selection and the atomic resolution commit.
type AllocationService struct {
	sessions    SessionStore
	rooms       RoomCatalog
	admins      AdminDirectory
	advisor     Advisor
	cfg         AllocationConfig
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewAllocationService wires dependencies for conflict resolution. The
// advisor may be nil.
func NewAllocationService(sessions SessionStore, rooms RoomCatalog, admins AdminDirectory, advisor Advisor, cfg AllocationConfig, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AllocationService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if !cfg.SelectionPolicy.Valid() {
		cfg.SelectionPolicy = timetable.SelectFirst
	}
	return &AllocationService{
		sessions:    sessions,
		rooms:       rooms,
		admins:      admins,
		advisor:     advisor,
		cfg:         cfg,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// ResolveConflict relocates the requested session to a free room and commits
// the session update, notifications and audit entry as one unit.
//
// Outcomes map onto the error taxonomy: *ValidationError for malformed
// requests, ErrNotFound for unknown sessions, *NoRoomAvailableError when
// every room is occupied, ErrAlreadyResolved when a concurrent resolution
// won the race, and a wrapped storage error otherwise.
func (s *AllocationService) ResolveConflict(ctx context.Context, request RelocationRequest) (Resolution, error) {
	if s == nil || s.sessions == nil || s.rooms == nil {
		return Resolution{}, fmt.Errorf("AllocationService is not configured")
	}

	logger := serviceLogger(ctx, s.logger, "allocation", "resolve_conflict", "session_id", request.SessionID)

	target, err := validateRelocationRequest(request)
	if err != nil {
		logger.InfoContext(ctx, "request rejected", "kind", ErrorKind(err), "error", err)
		return Resolution{}, err
	}

	session, err := s.sessions.GetSession(ctx, request.SessionID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Resolution{}, ErrNotFound
		}
		return Resolution{}, fmt.Errorf("failed to load session: %w", err)
	}

	sameDate, err := s.sessions.ListSessionsByDate(ctx, request.Date)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to list same-date sessions: %w", err)
	}

	occupancy := timetable.OccupiedRooms(target, request.SessionID, toEntries(sameDate))
	for _, id := range occupancy.Anomalies {
		logger.WarnContext(ctx, "skipping session with unparseable times", "anomaly_session_id", id)
	}

	candidates, err := s.rooms.AvailableRoomNames(ctx)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to list available rooms: %w", err)
	}

	available := timetable.AvailableRooms(candidates, occupancy.Rooms)
	if len(available) == 0 {
		noRoom := &NoRoomAvailableError{}
		if s.advisor != nil && s.advisor.Enabled() {
			message, advErr := s.advisor.SuggestMessage(ctx, request.Date, request.StartTime, request.EndTime)
			if advErr != nil {
				logger.WarnContext(ctx, "advisory message unavailable", "error", advErr)
			} else {
				noRoom.Advisory = message
			}
		}
		logger.InfoContext(ctx, "no rooms available", "occupied", len(occupancy.Rooms))
		return Resolution{}, noRoom
	}

	chosen := s.chooseRoom(ctx, logger, available, request)

	write, err := s.buildResolution(ctx, session, request, chosen)
	if err != nil {
		return Resolution{}, err
	}

	if err := s.sessions.CommitResolution(ctx, write); err != nil {
		switch {
		case errors.Is(err, persistence.ErrNotFound):
			return Resolution{}, ErrNotFound
		case errors.Is(err, persistence.ErrPreconditionFailed):
			logger.InfoContext(ctx, "session already resolved by a concurrent request")
			return Resolution{}, ErrAlreadyResolved
		}
		return Resolution{}, fmt.Errorf("failed to commit resolution: %w", err)
	}

	logger.InfoContext(ctx, "conflict resolved", "room", chosen, "notifications", len(write.Notifications))
	return Resolution{SessionID: session.ID, Room: chosen}, nil
}

// ListSessions enumerates timetable sessions, optionally narrowed to a date.
func (s *AllocationService) ListSessions(ctx context.Context, date string) ([]persistence.Session, error) {
	if s == nil || s.sessions == nil {
		return nil, fmt.Errorf("AllocationService is not configured")
	}
	if date != "" {
		return s.sessions.ListSessionsByDate(ctx, date)
	}
	return s.sessions.ListSessions(ctx)
}

// chooseRoom applies the advisory proposal when usable, falling back to the
// configured selection policy. The returned room always lies inside the
// available set.
func (s *AllocationService) chooseRoom(ctx context.Context, logger *slog.Logger, available []string, request RelocationRequest) string {
	if s.advisor != nil && s.advisor.Enabled() && len(available) > 1 {
		proposal, err := s.advisor.SuggestRoom(ctx, available, request.Date, request.StartTime, request.EndTime)
		if err != nil {
			logger.WarnContext(ctx, "advisory room proposal unavailable", "error", err)
		} else if containsRoom(available, proposal) {
			return proposal
		} else {
			logger.WarnContext(ctx, "discarding advisory proposal outside available set", "proposal", proposal)
		}
	}

	room, _ := timetable.SelectRoom(available, s.cfg.SelectionPolicy, s.cfg.Intn)
	return room
}

// buildResolution assembles the single atomic write: the session update plus
// one notification per stakeholder and the decision-log entry, all stamped
// with one commit time.
func (s *AllocationService) buildResolution(ctx context.Context, session persistence.Session, request RelocationRequest, room string) (persistence.ResolutionWrite, error) {
	committedAt := s.now().UTC()
	course := session.CourseCode

	notifications := make([]persistence.Notification, 0, 2+len(session.StudentIDs))

	if session.LecturerID != nil && *session.LecturerID != "" {
		lecturerID := *session.LecturerID
		title := "Scheduling Conflict for Your Lecture"
		if course != "" {
			title = fmt.Sprintf("Scheduling Conflict for %s", course)
		}
		notifications = append(notifications, persistence.Notification{
			ID:         s.idGenerator(),
			Type:       notificationType,
			Title:      title,
			Message:    fmt.Sprintf("A scheduling conflict occurred. Your lecture has been moved to %s. Please check the new venue details.", room),
			LecturerID: &lecturerID,
			SessionID:  session.ID,
			CreatedAt:  committedAt,
		})
	}

	for _, studentID := range session.StudentIDs {
		id := studentID
		notifications = append(notifications, persistence.Notification{
			ID:        s.idGenerator(),
			Type:      notificationType,
			Title:     "Lecture Conflict Notification",
			Message:   fmt.Sprintf("A scheduling conflict occurred for %s. Your lecture has been moved to %s. Please check the new venue details.", courseOrFallback(course), room),
			StudentID: &id,
			SessionID: session.ID,
			CreatedAt: committedAt,
		})
	}

	if s.admins != nil {
		admins, err := s.admins.ListAdmins(ctx)
		if err != nil {
			return persistence.ResolutionWrite{}, fmt.Errorf("failed to list admin users: %w", err)
		}
		for _, admin := range admins {
			adminID := admin.ID
			notifications = append(notifications, persistence.Notification{
				ID:        s.idGenerator(),
				Type:      notificationType,
				Title:     "Lecture Conflict Detected",
				Message:   fmt.Sprintf("A scheduling conflict was detected and resolved for %s. The lecture has been moved to %s.", courseOrFallback(course), room),
				AdminID:   &adminID,
				SessionID: session.ID,
				CreatedAt: committedAt,
			})
		}
	}

	return persistence.ResolutionWrite{
		SessionID:     session.ID,
		Room:          room,
		Notifications: notifications,
		LogEntry: persistence.DecisionLogEntry{
			ID:              s.idGenerator(),
			SessionID:       session.ID,
			Description:     fmt.Sprintf("Conflict resolved. Session moved to %s", room),
			ConflictDetails: request.ConflictDetails,
			Room:            room,
			ResolvedBy:      resolvedBy,
			Status:          "resolved",
			CreatedAt:       committedAt,
		},
		CommittedAt: committedAt,
	}, nil
}

// validateRelocationRequest runs the ordered validation gate: required
// fields, time parsing, then interval ordering. The first failing check
// short-circuits; no store is touched before it passes.
func validateRelocationRequest(request RelocationRequest) (timetable.Interval, error) {
	vErr := &ValidationError{}

	if strings.TrimSpace(request.SessionID) == "" {
		vErr.add("sessionId", "is required")
	}
	if strings.TrimSpace(request.Date) == "" {
		vErr.add("date", "is required")
	}
	if strings.TrimSpace(request.StartTime) == "" {
		vErr.add("startTime", "is required")
	}
	if strings.TrimSpace(request.EndTime) == "" {
		vErr.add("endTime", "is required")
	}
	if vErr.HasErrors() {
		return timetable.Interval{}, vErr
	}

	start, okStart := timetable.ParseClock(request.StartTime)
	if !okStart {
		vErr.add("startTime", "must match the H:MM AM/PM format")
	}
	end, okEnd := timetable.ParseClock(request.EndTime)
	if !okEnd {
		vErr.add("endTime", "must match the H:MM AM/PM format")
	}
	if vErr.HasErrors() {
		return timetable.Interval{}, vErr
	}

	if end <= start {
		vErr.add("time", "end time must be after start time")
		return timetable.Interval{}, vErr
	}

	return timetable.Interval{Start: start, End: end}, nil
}

func toEntries(sessions []persistence.Session) []timetable.Entry {
	entries := make([]timetable.Entry, 0, len(sessions))
	for _, session := range sessions {
		room := ""
		if session.Room != nil {
			room = *session.Room
		}
		entries = append(entries, timetable.Entry{
			ID:        session.ID,
			Room:      room,
			StartTime: session.StartTime,
			EndTime:   session.EndTime,
		})
	}
	return entries
}

func containsRoom(rooms []string, target string) bool {
	for _, room := range rooms {
		if room == target {
			return true
		}
	}
	return false
}

func courseOrFallback(course string) string {
	if course == "" {
		return "a course"
	}
	return course
}
