// Cart HTTP handlers.
//
// The cart is the presentation layer's draft state before a borrow is
// committed. It is keyed by the X-User-ID header (the demo auth the front
// end uses) and persisted server-side through the session store, replacing
// the browser-local globals of the original client.
//
//   - GET    /cart                 (current session)
//   - POST   /cart/items           (queue a book)
//   - DELETE /cart/items/{bookId}  (drop one book)
//   - DELETE /cart                 (empty the cart)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libhub/go-library-backend/internal/session"
)

// AddCartItemRequest is the JSON payload for queueing a book. The
// title/author snapshot travels with the item so the cart renders without
// touching the catalog.
type AddCartItemRequest struct {
	BookID int    `json:"id" binding:"required"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// GetCart returns the caller's session, creating an empty one on first use.
//
// GET /cart → 200 session
func (h *Handlers) GetCart(c *gin.Context) {
	s, err := h.cartMgr.Get(c.Request.Context(), sessionUserID(c))
	if err != nil {
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, s)
}

// AddCartItem queues a book for borrowing.
//
// POST /cart/items → 200 session | 409 conflict (already queued)
func (h *Handlers) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id is required")
		return
	}
	s, err := h.cartMgr.AddToCart(c.Request.Context(), sessionUserID(c), session.CartItem{
		BookID: req.BookID,
		Title:  req.Title,
		Author: req.Author,
	})
	if err != nil {
		if errors.Is(err, session.ErrAlreadyInCart) {
			fail(c, http.StatusConflict, ErrCodeConflict, "book already in cart")
			return
		}
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, s)
}

// RemoveCartItem drops one book from the cart.
//
// DELETE /cart/items/{bookId} → 200 session | 404 not_found
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	bookID, okID := pathID(c, "bookId")
	if !okID {
		return
	}
	s, err := h.cartMgr.RemoveFromCart(c.Request.Context(), sessionUserID(c), bookID)
	if err != nil {
		if errors.Is(err, session.ErrNotInCart) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "book not in cart")
			return
		}
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, s)
}

// ClearCart empties the caller's cart.
//
// DELETE /cart → 200 session
func (h *Handlers) ClearCart(c *gin.Context) {
	s, err := h.cartMgr.ClearCart(c.Request.Context(), sessionUserID(c))
	if err != nil {
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, s)
}
