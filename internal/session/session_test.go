package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memSessionStore struct {
	sessions map[string]*Session
	puts     int
}

func (m *memSessionStore) Get(ctx context.Context, key string) (*Session, error) {
	s, ok := m.sessions[key]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSessionStore) Put(ctx context.Context, key string, s *Session) error {
	cp := *s
	m.sessions[key] = &cp
	m.puts++
	return nil
}

func (m *memSessionStore) Delete(ctx context.Context, key string) error {
	delete(m.sessions, key)
	return nil
}

func newTestManager() (*Manager, *memSessionStore) {
	st := &memSessionStore{sessions: map[string]*Session{}}
	mgr := NewManager(st)
	mgr.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return mgr, st
}

func TestGet_UnknownUserYieldsEmptyCart(t *testing.T) {
	mgr, st := newTestManager()

	s, err := mgr.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if s.UserID != "u1" || s.Cart == nil || len(s.Cart) != 0 {
		t.Fatalf("got %+v; want empty cart for u1", s)
	}
	// A bare read does not create a persisted session.
	if st.puts != 0 {
		t.Fatalf("Get must not persist")
	}
}

func TestAddToCart(t *testing.T) {
	mgr, st := newTestManager()

	s, err := mgr.AddToCart(context.Background(), "u1", CartItem{BookID: 1, Title: "T", Author: "A"})
	if err != nil {
		t.Fatalf("AddToCart error: %v", err)
	}
	if len(s.Cart) != 1 || s.Cart[0].BookID != 1 {
		t.Fatalf("cart = %+v", s.Cart)
	}
	if s.UpdatedAt.IsZero() {
		t.Fatalf("UpdatedAt not stamped")
	}
	if st.puts != 1 {
		t.Fatalf("mutation must persist exactly once, puts = %d", st.puts)
	}
}

func TestAddToCart_Duplicate(t *testing.T) {
	mgr, st := newTestManager()

	if _, err := mgr.AddToCart(context.Background(), "u1", CartItem{BookID: 1}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := mgr.AddToCart(context.Background(), "u1", CartItem{BookID: 1})
	if !errors.Is(err, ErrAlreadyInCart) {
		t.Fatalf("err = %v; want ErrAlreadyInCart", err)
	}
	if len(st.sessions["u1"].Cart) != 1 {
		t.Fatalf("failed add must leave the cart alone")
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	mgr, _ := newTestManager()

	if _, err := mgr.AddToCart(context.Background(), "u1", CartItem{BookID: 1}); err != nil {
		t.Fatalf("u1 add: %v", err)
	}
	s2, err := mgr.Get(context.Background(), "u2")
	if err != nil {
		t.Fatalf("u2 get: %v", err)
	}
	if len(s2.Cart) != 0 {
		t.Fatalf("u2 cart leaked items: %+v", s2.Cart)
	}
}

func TestRemoveFromCart(t *testing.T) {
	mgr, _ := newTestManager()

	mustAdd := func(id int) {
		t.Helper()
		if _, err := mgr.AddToCart(context.Background(), "u1", CartItem{BookID: id}); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}
	mustAdd(1)
	mustAdd(2)

	s, err := mgr.RemoveFromCart(context.Background(), "u1", 1)
	if err != nil {
		t.Fatalf("RemoveFromCart error: %v", err)
	}
	if len(s.Cart) != 1 || s.Cart[0].BookID != 2 {
		t.Fatalf("cart = %+v", s.Cart)
	}

	if _, err := mgr.RemoveFromCart(context.Background(), "u1", 1); !errors.Is(err, ErrNotInCart) {
		t.Fatalf("err = %v; want ErrNotInCart", err)
	}
}

func TestClearCart(t *testing.T) {
	mgr, st := newTestManager()

	if _, err := mgr.AddToCart(context.Background(), "u1", CartItem{BookID: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	s, err := mgr.ClearCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ClearCart error: %v", err)
	}
	if len(s.Cart) != 0 {
		t.Fatalf("cart not cleared: %+v", s.Cart)
	}
	if got := st.sessions["u1"]; len(got.Cart) != 0 {
		t.Fatalf("clear not persisted: %+v", got.Cart)
	}
}
