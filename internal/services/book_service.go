// Package services – BookService
//
// This file implements the BookService, plain CRUD over the catalog plus a
// category filter. There is no state machine here: the Available flag is
// stored and editable but never touched by the borrowing flow, so the
// catalog performs no exclusion when a title is checked out.
package services

import (
	"context"
	"time"

	"github.com/libhub/go-library-backend/internal/domain"
	"github.com/libhub/go-library-backend/internal/store"
)

// CategoryAll is the wildcard category: filtering by it returns the whole
// catalog.
const CategoryAll = "all"

// BookStore is the persistence contract required by BookService.
type BookStore interface {
	All(ctx context.Context) ([]domain.Book, error)
	Update(ctx context.Context, mutate func([]domain.Book) ([]domain.Book, error)) error
}

// BookService provides catalog operations.
type BookService struct {
	Books BookStore

	// Now is overridable in tests; defaults to time.Now (UTC) when nil.
	// Used only to default PublishedYear on create.
	Now func() time.Time
}

// NewBookService constructs a BookService bound to the given store.
func NewBookService(books BookStore) *BookService {
	return &BookService{Books: books}
}

func (s *BookService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// List returns the whole catalog in insertion order.
func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	return s.Books.All(ctx)
}

// ListByCategory returns the books in the given category, or the whole
// catalog when category is CategoryAll.
func (s *BookService) ListByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	books, err := s.Books.All(ctx)
	if err != nil {
		return nil, err
	}
	if category == CategoryAll {
		return books, nil
	}
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out, nil
}

// Get returns the book with the given id, or ErrBookNotFound.
func (s *BookService) Get(ctx context.Context, id int) (*domain.Book, error) {
	books, err := s.Books.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].ID == id {
			return &books[i], nil
		}
	}
	return nil, ErrBookNotFound
}

// BookInput carries the editable fields of a catalog entry.
//
// On update, Available is applied only when non-nil so a partial edit cannot
// silently flip availability; the other fields always overwrite.
type BookInput struct {
	Title         string
	Author        string
	Category      string
	Image         string
	Description   string
	ISBN          string
	PublishedYear int
	Available     *bool
}

// Create appends a new catalog entry. PublishedYear defaults to the current
// year when zero; new books are always created available.
func (s *BookService) Create(ctx context.Context, in BookInput) (*domain.Book, error) {
	var created *domain.Book

	err := s.Books.Update(ctx, func(books []domain.Book) ([]domain.Book, error) {
		year := in.PublishedYear
		if year == 0 {
			year = s.now().Year()
		}
		b := domain.Book{
			ID:            store.NextID(books),
			Title:         in.Title,
			Author:        in.Author,
			Category:      in.Category,
			Image:         in.Image,
			Description:   in.Description,
			ISBN:          in.ISBN,
			PublishedYear: year,
			Available:     true,
		}
		created = &b
		return append(books, b), nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update overwrites the descriptive fields of the book with the given id.
// Returns ErrBookNotFound when the id does not resolve.
func (s *BookService) Update(ctx context.Context, id int, in BookInput) (*domain.Book, error) {
	var updated *domain.Book

	err := s.Books.Update(ctx, func(books []domain.Book) ([]domain.Book, error) {
		for i := range books {
			if books[i].ID != id {
				continue
			}
			books[i].Title = in.Title
			books[i].Author = in.Author
			books[i].Category = in.Category
			books[i].Image = in.Image
			books[i].Description = in.Description
			books[i].ISBN = in.ISBN
			books[i].PublishedYear = in.PublishedYear
			if in.Available != nil {
				books[i].Available = *in.Available
			}
			b := books[i]
			updated = &b
			return books, nil
		}
		return nil, ErrBookNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the book with the given id. Returns ErrBookNotFound when
// nothing was removed. Existing borrowing records keep their denormalized
// title/author snapshot and are unaffected.
func (s *BookService) Delete(ctx context.Context, id int) error {
	return s.Books.Update(ctx, func(books []domain.Book) ([]domain.Book, error) {
		kept := make([]domain.Book, 0, len(books))
		for _, b := range books {
			if b.ID != id {
				kept = append(kept, b)
			}
		}
		if len(kept) == len(books) {
			return nil, ErrBookNotFound
		}
		return kept, nil
	})
}
