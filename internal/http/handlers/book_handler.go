// Catalog HTTP handlers.
//
// REST endpoints for book resources:
//   - GET    /books                     (full catalog)
//   - GET    /books/{id}                (single book)
//   - GET    /books/category/{category} ("all" returns everything)
//   - POST   /books                     (create)
//   - PUT    /books/{id}                (update)
//   - DELETE /books/{id}                (delete)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libhub/go-library-backend/internal/services"
)

// BookRequest is the JSON payload for creating or updating a book.
//
// Available is a pointer so an update that omits it leaves the stored flag
// alone. It is ignored on create, where new books are always available.
type BookRequest struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	Category      string `json:"category"`
	Image         string `json:"image"`
	Description   string `json:"description"`
	ISBN          string `json:"isbn"`
	PublishedYear int    `json:"publishedYear"`
	Available     *bool  `json:"available"`
}

func (r BookRequest) input() services.BookInput {
	return services.BookInput{
		Title:         r.Title,
		Author:        r.Author,
		Category:      r.Category,
		Image:         r.Image,
		Description:   r.Description,
		ISBN:          r.ISBN,
		PublishedYear: r.PublishedYear,
		Available:     r.Available,
	}
}

// ListBooks returns the full catalog.
//
// GET /books → 200 [...books]
func (h *Handlers) ListBooks(c *gin.Context) {
	books, err := h.bookSvc.List(c.Request.Context())
	if err != nil {
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, books)
}

// GetBook returns a single catalog entry.
//
// GET /books/{id} → 200 book | 404 not_found
func (h *Handlers) GetBook(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	book, err := h.bookSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "book not found")
			return
		}
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, book)
}

// ListBooksByCategory filters the catalog by category; the literal "all"
// disables the filter.
//
// GET /books/category/{category} → 200 [...books]
func (h *Handlers) ListBooksByCategory(c *gin.Context) {
	books, err := h.bookSvc.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, books)
}

// CreateBook appends a new catalog entry.
//
// POST /books → 201 created book | 400 bad_request
func (h *Handlers) CreateBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and author are required")
		return
	}
	book, err := h.bookSvc.Create(c.Request.Context(), req.input())
	if err != nil {
		failStorage(c, err)
		return
	}
	ok(c, http.StatusCreated, book)
}

// UpdateBook overwrites the descriptive fields of a catalog entry.
//
// PUT /books/{id} → 200 updated book | 404 not_found
func (h *Handlers) UpdateBook(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and author are required")
		return
	}
	book, err := h.bookSvc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "book not found")
			return
		}
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, book)
}

// DeleteBook removes a catalog entry. Borrowing records keep their snapshot
// of the deleted book's title and author.
//
// DELETE /books/{id} → 200 message | 404 not_found
func (h *Handlers) DeleteBook(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.bookSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "book not found")
			return
		}
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "Book deleted successfully"})
}
