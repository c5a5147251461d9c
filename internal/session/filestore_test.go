package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.json")
	return NewFileStore(path), path
}

func TestFileStore_GetUnknownKey(t *testing.T) {
	fs, path := newTestFileStore(t)

	s, err := fs.Get(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if s != nil {
		t.Fatalf("unknown key must yield nil, got %+v", s)
	}
	// Reads do not create the file.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file created by a read")
	}
}

func TestFileStore_PutGetRoundtrip(t *testing.T) {
	fs, path := newTestFileStore(t)

	want := &Session{
		UserID:    "u1",
		Cart:      []CartItem{{BookID: 1, Title: "T", Author: "A"}},
		UpdatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := fs.Put(context.Background(), "u1", want); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	// A new store over the same file sees the session.
	got, err := NewFileStore(path).Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil || got.UserID != "u1" || len(got.Cart) != 1 || got.Cart[0].BookID != 1 {
		t.Fatalf("got %+v", got)
	}
	if !got.UpdatedAt.Equal(want.UpdatedAt) {
		t.Fatalf("UpdatedAt = %v; want %v", got.UpdatedAt, want.UpdatedAt)
	}
}

func TestFileStore_PutReplaces(t *testing.T) {
	fs, _ := newTestFileStore(t)

	if err := fs.Put(context.Background(), "u1", &Session{UserID: "u1", Cart: []CartItem{{BookID: 1}}}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := fs.Put(context.Background(), "u1", &Session{UserID: "u1", Cart: []CartItem{}}); err != nil {
		t.Fatalf("second put: %v", err)
	}
	got, err := fs.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(got.Cart) != 0 {
		t.Fatalf("put must replace, got cart %+v", got.Cart)
	}
}

func TestFileStore_Delete(t *testing.T) {
	fs, _ := newTestFileStore(t)

	if err := fs.Put(context.Background(), "u1", &Session{UserID: "u1"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := fs.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	got, err := fs.Get(context.Background(), "u1")
	if err != nil || got != nil {
		t.Fatalf("session survived delete: (%+v, %v)", got, err)
	}

	// Deleting an absent key is a no-op.
	if err := fs.Delete(context.Background(), "ghost"); err != nil {
		t.Fatalf("delete of absent key: %v", err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	if err := os.WriteFile(path, []byte(`[not an object]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	fs := NewFileStore(path)

	if _, err := fs.Get(context.Background(), "u1"); err == nil {
		t.Fatalf("corrupt file must surface an error")
	}
}

func TestFileStore_CanceledContext(t *testing.T) {
	fs, _ := newTestFileStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := fs.Put(ctx, "u1", &Session{UserID: "u1"}); err == nil {
		t.Fatalf("put with canceled context must fail")
	}
}
