// Package services defines the business logic for borrowing, the catalog,
// and user accounts. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked
// by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

// Borrowing-related errors.
var (
	// ErrRecordNotFound indicates that the requested borrowing record does
	// not exist.
	ErrRecordNotFound = errors.New("borrowing record not found")

	// ErrDuplicateBorrow is returned when a user attempts to borrow a book
	// they already hold an outstanding record for.
	ErrDuplicateBorrow = errors.New("book already borrowed by this user")

	// ErrAlreadyReturned is returned when a return is attempted on a record
	// that has already transitioned to returned.
	ErrAlreadyReturned = errors.New("book already returned")
)

// Catalog-related errors.
var (
	// ErrBookNotFound indicates that the requested book does not exist.
	ErrBookNotFound = errors.New("book not found")
)

// Account-related errors.
var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername is returned when registration is attempted with a
	// username that is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials is returned when a login attempt does not match
	// any stored username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
