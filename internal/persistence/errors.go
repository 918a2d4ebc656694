package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when an insert collides with an existing record.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrConstraintViolation is returned when a record fails a storage constraint.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrPreconditionFailed is returned when a conditional write finds its
	// guard no longer holds, e.g. resolving a session that is no longer
	// conflict-flagged.
	ErrPreconditionFailed = errors.New("persistence: precondition failed")
)
