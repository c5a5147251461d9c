// Package session holds the presentation layer's draft state: the active
// user and the shopping cart a member fills before committing a borrow.
//
// The original front end kept this as ambient globals mirrored to browser
// local storage. Here it is an explicit Session value persisted through a
// small key-value Store at well-defined save points (every mutation), so the
// same presentation code can run against this backend or an embedded local
// store without parallel code paths.
package session

import (
	"context"
	"errors"
	"time"
)

// Cart-related errors.
var (
	// ErrAlreadyInCart is returned when a book is added to a cart that
	// already contains it.
	ErrAlreadyInCart = errors.New("book already in cart")

	// ErrNotInCart is returned when a removal names a book the cart does not
	// contain.
	ErrNotInCart = errors.New("book not in cart")
)

// CartItem is one book queued for borrowing. It carries the same
// denormalized title/author snapshot a borrowing record does, so the cart
// renders without re-joining the catalog.
type CartItem struct {
	BookID int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Session is the per-user draft state.
type Session struct {
	UserID    string     `json:"userId"`
	Cart      []CartItem `json:"cart"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Store persists sessions by key. Implementations must tolerate unknown
// keys on Get by returning (nil, nil).
type Store interface {
	Get(ctx context.Context, key string) (*Session, error)
	Put(ctx context.Context, key string, s *Session) error
	Delete(ctx context.Context, key string) error
}

// Manager provides the cart operations, saving the session after every
// mutation.
type Manager struct {
	Sessions Store

	// Now is overridable in tests; defaults to time.Now (UTC) when nil.
	Now func() time.Time
}

// NewManager constructs a Manager bound to the given store.
func NewManager(sessions Store) *Manager {
	return &Manager{Sessions: sessions}
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now().UTC()
}

// Get returns the session for userID, creating an empty one (not yet
// persisted) when none exists.
func (m *Manager) Get(ctx context.Context, userID string) (*Session, error) {
	s, err := m.Sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &Session{UserID: userID, Cart: []CartItem{}}
	}
	if s.Cart == nil {
		s.Cart = []CartItem{}
	}
	return s, nil
}

// AddToCart queues a book for borrowing. Adding a book already in the cart
// yields ErrAlreadyInCart and the session is not touched.
func (m *Manager) AddToCart(ctx context.Context, userID string, item CartItem) (*Session, error) {
	s, err := m.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, it := range s.Cart {
		if it.BookID == item.BookID {
			return nil, ErrAlreadyInCart
		}
	}
	s.Cart = append(s.Cart, item)
	s.UpdatedAt = m.now()
	if err := m.Sessions.Put(ctx, userID, s); err != nil {
		return nil, err
	}
	return s, nil
}

// RemoveFromCart drops the given book from the cart, typically after its
// borrow has been committed. Returns ErrNotInCart when absent.
func (m *Manager) RemoveFromCart(ctx context.Context, userID string, bookID int) (*Session, error) {
	s, err := m.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	kept := make([]CartItem, 0, len(s.Cart))
	for _, it := range s.Cart {
		if it.BookID != bookID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(s.Cart) {
		return nil, ErrNotInCart
	}
	s.Cart = kept
	s.UpdatedAt = m.now()
	if err := m.Sessions.Put(ctx, userID, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ClearCart empties the cart in one save point.
func (m *Manager) ClearCart(ctx context.Context, userID string) (*Session, error) {
	s, err := m.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.Cart = []CartItem{}
	s.UpdatedAt = m.now()
	if err := m.Sessions.Put(ctx, userID, s); err != nil {
		return nil, err
	}
	return s, nil
}
