// Package services – UserService
//
// This file implements the UserService: registration, credential check, and
// profile CRUD. There is no state machine beyond existence checks.
//
// Passwords are stored and compared in plain text. That mirrors the system
// this backend replaces and is deliberately not fixed here; see the security
// note in DESIGN.md before pointing this at real users.
package services

import (
	"context"
	"time"

	"github.com/libhub/go-library-backend/internal/domain"
	"github.com/libhub/go-library-backend/internal/store"
)

// UserStore is the persistence contract required by UserService.
type UserStore interface {
	All(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, mutate func([]domain.User) ([]domain.User, error)) error
}

// UserService provides account operations.
type UserService struct {
	Users UserStore

	// Now is overridable in tests; defaults to time.Now (UTC) when nil.
	Now func() time.Time
}

// NewUserService constructs a UserService bound to the given store.
func NewUserService(users UserStore) *UserService {
	return &UserService{Users: users}
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// List returns all users in insertion order.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Users.All(ctx)
}

// Get returns the user with the given id, or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	users, err := s.Users.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// Register creates a new member account.
//
// Usernames are unique: a duplicate yields ErrDuplicateUsername and nothing
// is created. Name falls back to the username when blank; MemberSince is
// stamped with the current instant and Role is always member.
func (s *UserService) Register(ctx context.Context, username, email, password, name string) (*domain.User, error) {
	var created *domain.User

	err := s.Users.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		for _, u := range users {
			if u.Username == username {
				return nil, ErrDuplicateUsername
			}
		}
		if name == "" {
			name = username
		}
		u := domain.User{
			ID:          store.NextID(users),
			Username:    username,
			Email:       email,
			Password:    password,
			Name:        name,
			MemberSince: s.now(),
			Role:        domain.RoleMember,
		}
		created = &u
		return append(users, u), nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login checks the supplied credentials against the stored users. On a
// match it returns a copy of the user with the password blanked; otherwise
// ErrInvalidCredentials. The comparison is plain string equality.
func (s *UserService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	users, err := s.Users.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username && u.Password == password {
			u.Password = ""
			return &u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// UpdateProfile overwrites the name and email of the user with the given id.
// Returns ErrUserNotFound when the id does not resolve.
func (s *UserService) UpdateProfile(ctx context.Context, id int, name, email string) (*domain.User, error) {
	var updated *domain.User

	err := s.Users.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].ID != id {
				continue
			}
			users[i].Name = name
			users[i].Email = email
			u := users[i]
			updated = &u
			return users, nil
		}
		return nil, ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the user with the given id. Returns ErrUserNotFound when
// nothing was removed. Borrowing records referencing the user are left
// alone; they do not own the account.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.Users.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		kept := make([]domain.User, 0, len(users))
		for _, u := range users {
			if u.ID != id {
				kept = append(kept, u)
			}
		}
		if len(kept) == len(users) {
			return nil, ErrUserNotFound
		}
		return kept, nil
	})
}
