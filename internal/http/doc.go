// Package http provides HTTP handlers and middleware for the allocator API.
//
// The router exposes the following endpoints:
//   - POST /resolve-conflict: relocates a conflict-flagged session to a free
//     room. Body: {"sessionId","date","startTime","endTime","conflictDetails"}.
//     Response: {"resolvedVenue"}. Validation failures and the no-rooms outcome
//     return 400, unknown sessions 404, and concurrent resolutions 409.
//   - GET /allocations: lists timetable sessions, optionally narrowed with
//     ?date=YYYY-MM-DD, exchanging the sessionResponse payload defined in
//     allocation_handler.go.
//   - GET /rooms: lists the lecture room catalog, optionally narrowed with
//     ?status=available|unavailable.
//   - GET /decision-logs: lists the audit trail of committed resolutions,
//     newest first.
//   - GET /notifications: lists conflict notifications, optionally narrowed
//     to a single recipient with ?lecturer=, ?student= or ?admin=.
//   - GET /: returns a short service greeting.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
