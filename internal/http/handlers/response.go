// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints: a structured error envelope, consistent JSON serialization, and
// helpers for common HTTP patterns, so success and failure responses keep
// one shape everywhere.
//
// Conventions:
//   - All error responses return an ErrorResponse with a stable `code`.
//   - `fail()` centralizes error formatting and logs 5xx responses with
//     request context. Storage and parse failures surface through it as an
//     opaque internal error; internal detail is never sent to the client.
//   - `ok()` writes success responses in a consistent shape.
//
// Example error response:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "duplicate_borrow",
//	  "message": "book already borrowed by this user"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libhub/go-library-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: correlation ID echoed from the X-Request-ID header, used to
//     match server logs with client-side errors.
//   - Code: stable, machine-readable string (see errors.go constants).
//   - Message: human-readable description, safe to show to users.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// MessageResponse is the body for operations whose only result is a
// confirmation, such as deletes.
type MessageResponse struct {
	Message string `json:"message"`
}

// fail aborts the request with a structured error.
//
// It writes an ErrorResponse as JSON with the given HTTP status and stops
// further processing. Server errors (>=500) are logged with the
// request-scoped logger from middleware.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) call Fail to return consistent
// error envelopes without depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failStorage reports an underlying persistence failure as an opaque 500.
// The real error goes to the log, never to the client.
func failStorage(c *gin.Context, err error) {
	lg := middleware.LoggerFrom(c)
	lg.Error().Err(err).Msg("storage failure")
	fail(c, http.StatusInternalServerError, ErrCodeStorageError, "storage unavailable")
}

// ok writes a success JSON response with the given status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
