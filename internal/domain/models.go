// Package domain defines the persistence models for books, users, and
// borrowing records. These types map one-to-one onto the flat JSON
// collections on disk and form the core data layer of the library
// application.
package domain

import "time"

// Borrowing record status values. A record is created as StatusBorrowed and
// transitions exactly once to StatusReturned; there is no way back.
const (
	StatusBorrowed = "borrowed"
	StatusReturned = "returned"
)

// User roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Book represents a catalog entry.
//
// The Available flag is tracked but intentionally never toggled by the
// borrowing flow: multiple users may hold the same title concurrently and
// the catalog performs no exclusion.
type Book struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Category      string `json:"category"`
	Image         string `json:"image"`
	Description   string `json:"description"`
	ISBN          string `json:"isbn"`
	PublishedYear int    `json:"publishedYear"`
	Available     bool   `json:"available"`
}

// Key returns the unique integer id of the book.
func (b Book) Key() int { return b.ID }

// User represents a library member or administrator.
//
// Passwords are stored and compared in plain text, matching the system this
// backend replaces. See DESIGN.md before deploying anywhere real.
type User struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"password,omitempty"`
	Name        string    `json:"name"`
	MemberSince time.Time `json:"memberSince"`
	Role        string    `json:"role"`
}

// Key returns the unique integer id of the user.
func (u User) Key() int { return u.ID }

// BorrowRecord represents one checkout event of one book by one user.
//
// Fields:
//   - ID: unique positive integer assigned at creation (max existing id + 1).
//   - UserID / BookID: foreign references, not owned by this record.
//   - BookTitle / BookAuthor: denormalized snapshot taken at borrow time; the
//     record stays readable even after catalog edits or deletes.
//   - BorrowDate: set at creation, immutable.
//   - ReturnDate: the due date, always exactly 14 calendar days after
//     BorrowDate, computed once and never recomputed.
//   - ActualReturnDate: set exactly once, when the record transitions to
//     StatusReturned; nil otherwise.
//   - Status: StatusBorrowed or StatusReturned.
type BorrowRecord struct {
	ID               int        `json:"id"`
	UserID           int        `json:"userId"`
	BookID           int        `json:"bookId"`
	BookTitle        string     `json:"bookTitle"`
	BookAuthor       string     `json:"bookAuthor"`
	BorrowDate       time.Time  `json:"borrowDate"`
	ReturnDate       time.Time  `json:"returnDate"`
	ActualReturnDate *time.Time `json:"actualReturnDate,omitempty"`
	Status           string     `json:"status"`
}

// Key returns the unique integer id of the record.
func (r BorrowRecord) Key() int { return r.ID }

// OverdueAt reports whether the record is overdue at instant t: still
// borrowed and strictly past its due date. A record due exactly at t is not
// overdue. Overdue is a derived status; it is never persisted.
func (r BorrowRecord) OverdueAt(t time.Time) bool {
	return r.Status == StatusBorrowed && r.ReturnDate.Before(t)
}
