// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses (via the `fail()` helper in this package). These codes give
// clients a stable, machine-readable error taxonomy that supplements the
// human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless noted.
//   - Generic codes (bad_request, unauthorized, not_found, conflict) mirror
//     common HTTP status semantics.
//   - Domain-specific codes (duplicate_borrow, already_returned) name the
//     borrowing-lifecycle violations that a status alone cannot convey.
//   - All error responses include both an HTTP status and one of these codes.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeDuplicateBorrow  = "duplicate_borrow"
	ErrCodeAlreadyReturned  = "already_returned"
	ErrCodeCreateFailed     = "create_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeStorageError     = "storage_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
