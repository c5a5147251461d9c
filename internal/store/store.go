// Package store implements the flat-file persistence layer. Each logical
// collection (books, users, borrowing records) is a single JSON array on
// disk; the whole array is the unit of every read and write.
//
// Mutations run as a load → mutate → store cycle under a per-collection
// mutex, so concurrent requests observe the collection as a sequence of
// atomic transitions. Single-threaded results are identical to the naive
// read-modify-write this replaces; the lock only removes the window in
// which two writers could both pass a uniqueness check.
//
// Writes go through a temp file followed by rename, so a crash mid-write
// never leaves a half-written collection behind.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

// ErrNotFound is returned when a requested record does not exist in the
// collection. Services translate it into their own sentinel errors.
var ErrNotFound = errors.New("record not found")

// json is the codec used for all collection files. ConfigDefault keeps the
// output byte-compatible with encoding/json (and with the files written by
// the system this backend replaces).
var json = jsoniter.ConfigDefault

// Keyed is implemented by every record type held in a Collection. Keys are
// unique positive integers assigned by the caller (see NextID).
type Keyed interface {
	Key() int
}

// Collection is a JSON-array-on-disk collection of records of type T.
//
// The zero value is not usable; construct with NewCollection. A Collection
// is safe for concurrent use.
type Collection[T Keyed] struct {
	path string
	seed []T

	mu sync.Mutex
}

// NewCollection returns a Collection backed by the JSON file at path. The
// file is lazily created with the given seed content (use nil for an empty
// array) on first access if absent.
func NewCollection[T Keyed](path string, seed []T) *Collection[T] {
	return &Collection[T]{path: path, seed: seed}
}

// All returns every record in insertion order. The slice is a private copy;
// callers may mutate it freely.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Get returns the record whose key equals id, or ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id int) (*T, error) {
	records, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Key() == id {
			return &records[i], nil
		}
	}
	return nil, ErrNotFound
}

// Find returns the records matching pred, in insertion order.
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) ([]T, error) {
	records, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Update runs one atomic load → mutate → store cycle. mutate receives the
// full collection and returns the collection to persist; returning an error
// aborts the cycle without touching the file. The collection lock is held
// for the whole cycle.
func (c *Collection[T]) Update(ctx context.Context, mutate func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	next, err := mutate(records)
	if err != nil {
		return err
	}
	return c.save(next)
}

// load reads the collection, initializing the file with seed content when it
// does not exist yet. Caller must hold c.mu.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		seed := c.seed
		if seed == nil {
			seed = []T{}
		}
		if err := c.save(seed); err != nil {
			return nil, err
		}
		out := make([]T, len(seed))
		copy(out, seed)
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	return records, nil
}

// save persists the full collection, replacing the file atomically.
// Caller must hold c.mu.
func (c *Collection[T]) save(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	return nil
}

// NextID returns the id for the next record appended to records: one more
// than the highest existing key, or 1 for an empty collection.
func NextID[T Keyed](records []T) int {
	max := 0
	for _, r := range records {
		if r.Key() > max {
			max = r.Key()
		}
	}
	return max + 1
}
