// Account HTTP handlers.
//
// REST endpoints for user resources:
//   - GET    /users        (all users)
//   - GET    /users/{id}   (single user)
//   - POST   /users        (register)
//   - PUT    /users/{id}   (profile update: name and email only)
//   - DELETE /users/{id}   (delete)
//   - POST   /users/login  (credential check)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libhub/go-library-backend/internal/services"
)

// RegisterRequest is the JSON payload for creating an account. Name is
// optional and defaults to the username.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// UpdateProfileRequest is the JSON payload for editing a profile. Only name
// and email are editable through this endpoint.
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// LoginRequest is the JSON payload for a credential check.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ListUsers returns all users.
//
// GET /users → 200 [...users]
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, users)
}

// GetUser returns a single user.
//
// GET /users/{id} → 200 user | 404 not_found
func (h *Handlers) GetUser(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	user, err := h.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, user)
}

// RegisterUser creates a member account.
//
// POST /users → 201 created user | 400 bad_request (missing fields or
// duplicate username)
func (h *Handlers) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username, email and password are required")
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUsername) {
			fail(c, http.StatusBadRequest, ErrCodeConflict, "username already exists")
			return
		}
		failStorage(c, err)
		return
	}
	ok(c, http.StatusCreated, user)
}

// UpdateUser edits a user's name and email.
//
// PUT /users/{id} → 200 updated user | 404 not_found
func (h *Handlers) UpdateUser(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and email are required")
		return
	}
	user, err := h.userSvc.UpdateProfile(c.Request.Context(), id, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, user)
}

// DeleteUser removes an account. Borrowing records referencing the user are
// left in place.
//
// DELETE /users/{id} → 200 message | 404 not_found
func (h *Handlers) DeleteUser(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.userSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// Login checks credentials and returns the matching user with the password
// field blanked.
//
// POST /users/login → 200 user | 401 unauthorized
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username and password are required")
		return
	}
	user, err := h.userSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
			return
		}
		failStorage(c, err)
		return
	}
	ok(c, http.StatusOK, user)
}
