package timetable

import "sort"

// Interval is a half-open [Start, End) span expressed in minutes since
// midnight on a single calendar date.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals share any moment. A
// session ending exactly when another starts does not overlap it.
func (i Interval) Overlaps(other Interval) bool {
	return !(i.End <= other.Start || i.Start >= other.End)
}

// Entry is the slice of a stored session relevant to overlap detection:
// its identity, assigned room, and stored clock strings.
type Entry struct {
	ID        string
	Room      string
	StartTime string
	EndTime   string
}

// Occupancy is the outcome of scanning same-date sessions against a target
// interval. Anomalies lists the IDs of entries whose stored times failed to
// parse; such entries are skipped rather than failing the whole scan, and
// callers are expected to log them.
type Occupancy struct {
	Rooms     []string
	Anomalies []string
}

// OccupiedRooms returns the rooms held by entries overlapping the target
// interval. The entry matching excludeID is ignored so a session never
// conflicts with itself. Duplicate room names are collapsed and the result
// is sorted for deterministic downstream selection.
func OccupiedRooms(target Interval, excludeID string, entries []Entry) Occupancy {
	seen := make(map[string]struct{})
	occ := Occupancy{}

	for _, entry := range entries {
		if entry.ID == excludeID {
			continue
		}

		start, okStart := ParseClock(entry.StartTime)
		end, okEnd := ParseClock(entry.EndTime)
		if !okStart || !okEnd {
			occ.Anomalies = append(occ.Anomalies, entry.ID)
			continue
		}

		if !target.Overlaps(Interval{Start: start, End: end}) {
			continue
		}
		if entry.Room == "" {
			continue
		}
		if _, ok := seen[entry.Room]; ok {
			continue
		}
		seen[entry.Room] = struct{}{}
		occ.Rooms = append(occ.Rooms, entry.Room)
	}

	sort.Strings(occ.Rooms)
	return occ
}

// AvailableRooms subtracts occupied rooms from the candidate set, preserving
// a sorted, duplicate-free result.
func AvailableRooms(candidates []string, occupied []string) []string {
	taken := make(map[string]struct{}, len(occupied))
	for _, room := range occupied {
		taken[room] = struct{}{}
	}

	seen := make(map[string]struct{}, len(candidates))
	available := make([]string, 0, len(candidates))
	for _, room := range candidates {
		if room == "" {
			continue
		}
		if _, ok := taken[room]; ok {
			continue
		}
		if _, ok := seen[room]; ok {
			continue
		}
		seen[room] = struct{}{}
		available = append(available, room)
	}

	sort.Strings(available)
	return available
}
