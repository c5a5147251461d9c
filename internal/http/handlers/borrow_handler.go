// Borrowing HTTP handlers.
//
// This file exposes the REST endpoints for the borrowing lifecycle:
//   - GET    /borrowing               (all records)
//   - GET    /borrowing/user/{userId} (records for one user)
//   - GET    /borrowing/overdue       (computed overdue subset)
//   - POST   /borrowing/borrow        (check out a book)
//   - PUT    /borrowing/return/{id}   (return a book)
//   - DELETE /borrowing/{id}          (administrative delete)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results (including the service sentinel errors)
// into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/libhub/go-library-backend/internal/domain"
	"github.com/libhub/go-library-backend/internal/services"
	"github.com/libhub/go-library-backend/internal/session"
)

//
// Service contracts (context-aware)
//

// BorrowService defines the borrowing lifecycle operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type BorrowService interface {
	List(ctx context.Context) ([]domain.BorrowRecord, error)
	ListByUser(ctx context.Context, userID int) ([]domain.BorrowRecord, error)
	ListOverdue(ctx context.Context) ([]domain.BorrowRecord, error)
	Borrow(ctx context.Context, userID, bookID int, bookTitle, bookAuthor string) (*domain.BorrowRecord, error)
	Return(ctx context.Context, id int) (*domain.BorrowRecord, error)
	Delete(ctx context.Context, id int) error
}

// BookService defines the catalog operations consumed by HTTP handlers.
type BookService interface {
	List(ctx context.Context) ([]domain.Book, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Book, error)
	Get(ctx context.Context, id int) (*domain.Book, error)
	Create(ctx context.Context, in services.BookInput) (*domain.Book, error)
	Update(ctx context.Context, id int, in services.BookInput) (*domain.Book, error)
	Delete(ctx context.Context, id int) error
}

// UserService defines the account operations consumed by HTTP handlers.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int) (*domain.User, error)
	Register(ctx context.Context, username, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int, name, email string) (*domain.User, error)
	Delete(ctx context.Context, id int) error
}

// CartManager defines the session/cart operations consumed by HTTP handlers.
type CartManager interface {
	Get(ctx context.Context, userID string) (*session.Session, error)
	AddToCart(ctx context.Context, userID string, item session.CartItem) (*session.Session, error)
	RemoveFromCart(ctx context.Context, userID string, bookID int) (*session.Session, error)
	ClearCart(ctx context.Context, userID string) (*session.Session, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for borrowing, books, users, and the
// cart. It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	borrowSvc BorrowService
	bookSvc   BookService
	userSvc   UserService
	cartMgr   CartManager
}

// New constructs a Handlers instance bound to the given services.
func New(borrowSvc BorrowService, bookSvc BookService, userSvc UserService, cartMgr CartManager) *Handlers {
	return &Handlers{borrowSvc: borrowSvc, bookSvc: bookSvc, userSvc: userSvc, cartMgr: cartMgr}
}

//
// Helpers
//

// pathID parses the named path parameter as a positive integer id.
// The boolean result is false when the parameter is missing or malformed;
// the caller is expected to have already failed the request in that case.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// sessionUserID extracts the presentation-layer session key. It prefers the
// X-User-ID header (the demo auth used by the front end and tests) and falls
// back to "demo-user".
func sessionUserID(c *gin.Context) string {
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// BorrowRequest is the JSON payload for checking out a book. UserID and
// BookID are required; the title/author snapshot is stored verbatim on the
// created record.
type BorrowRequest struct {
	UserID     int    `json:"userId" binding:"required"`
	BookID     int    `json:"bookId" binding:"required"`
	BookTitle  string `json:"bookTitle"`
	BookAuthor string `json:"bookAuthor"`
}

//
// Handlers
//

// ListBorrowing returns every borrowing record in insertion order.
//
// GET /borrowing → 200 [...records] (may be empty)
func (h *Handlers) ListBorrowing(c *gin.Context) {
	records, err := h.borrowSvc.List(c.Request.Context())
	if err != nil {
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, records)
}

// ListBorrowingByUser returns the records belonging to one user.
//
// GET /borrowing/user/{userId} → 200 [...records]
func (h *Handlers) ListBorrowingByUser(c *gin.Context) {
	uid, okID := pathID(c, "userId")
	if !okID {
		return
	}
	records, err := h.borrowSvc.ListByUser(c.Request.Context(), uid)
	if err != nil {
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, records)
}

// ListOverdue returns the currently-overdue records. Overdue is derived at
// read time; nothing is written.
//
// GET /borrowing/overdue → 200 [...records]
func (h *Handlers) ListOverdue(c *gin.Context) {
	records, err := h.borrowSvc.ListOverdue(c.Request.Context())
	if err != nil {
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, records)
}

// BorrowBook checks out a book for a user.
//
// POST /borrowing/borrow → 201 created record
//   - 400 bad_request       (missing userId/bookId)
//   - 400 duplicate_borrow  (outstanding record for the same pair)
func (h *Handlers) BorrowBook(c *gin.Context) {
	var req BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "userId and bookId are required")
		return
	}

	rec, err := h.borrowSvc.Borrow(c.Request.Context(), req.UserID, req.BookID, req.BookTitle, req.BookAuthor)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateBorrow) {
			fail(c, http.StatusBadRequest, ErrCodeDuplicateBorrow, "book already borrowed by this user")
			return
		}
		failStorage(c, err)
		return
	}
	ok(c, http.StatusCreated, rec)
}

// ReturnBook transitions a borrowing record to returned.
//
// PUT /borrowing/return/{id} → 200 updated record
//   - 404 not_found        (no record with that id)
//   - 400 already_returned (record already terminal; left untouched)
func (h *Handlers) ReturnBook(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}

	rec, err := h.borrowSvc.Return(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "borrowing record not found")
		case errors.Is(err, services.ErrAlreadyReturned):
			fail(c, http.StatusBadRequest, ErrCodeAlreadyReturned, "book already returned")
		default:
			failStorage(c, err)
		}
		return
	}
	ok(c, http.StatusOK, rec)
}

// DeleteBorrowing permanently removes a record regardless of status.
//
// DELETE /borrowing/{id} → 200 message | 404 not_found
func (h *Handlers) DeleteBorrowing(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}

	if err := h.borrowSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "borrowing record not found")
			return
		}
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "Borrowing record deleted successfully"})
}
