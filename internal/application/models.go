package application

// RelocationRequest carries the raw fields submitted for one conflict
// resolution. It is transient: constructed per invocation and never
// persisted directly.
type RelocationRequest struct {
	SessionID       string
	Date            string
	StartTime       string
	EndTime         string
	ConflictDetails string
}

// Resolution is the successful outcome of a committed conflict resolution.
type Resolution struct {
	SessionID string
	Room      string
}

// resolvedBy identifies the resolving actor recorded on every decision log
// entry.
const resolvedBy = "AI"

// notificationType is the fixed type recorded on every notification this
// flow produces.
const notificationType = "conflict"
