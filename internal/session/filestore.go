package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigDefault

// FileStore persists all sessions in one JSON object on disk, keyed by user.
// Like the record collections, the whole file is the unit of read and write
// and mutations are serialized behind a mutex.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore backed by the JSON file at path. The file
// is lazily created empty on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get returns the session stored under key, or (nil, nil) when absent.
func (f *FileStore) Get(ctx context.Context, key string) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sessions, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	s, ok := sessions[key]
	if !ok {
		return nil, nil
	}
	return s, nil
}

// Put stores the session under key, replacing any previous value.
func (f *FileStore) Put(ctx context.Context, key string, s *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sessions, err := f.load(ctx)
	if err != nil {
		return err
	}
	sessions[key] = s
	return f.save(sessions)
}

// Delete removes the session stored under key. Deleting an absent key is a
// no-op.
func (f *FileStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sessions, err := f.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := sessions[key]; !ok {
		return nil
	}
	delete(sessions, key)
	return f.save(sessions)
}

func (f *FileStore) load(ctx context.Context) (map[string]*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]*Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	var sessions map[string]*Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	if sessions == nil {
		sessions = map[string]*Session{}
	}
	return sessions, nil
}

func (f *FileStore) save(sessions map[string]*Session) error {
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}
