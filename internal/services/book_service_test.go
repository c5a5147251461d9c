package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/libhub/go-library-backend/internal/domain"
)

type memBookStore struct {
	books []domain.Book
}

func (m *memBookStore) All(ctx context.Context) ([]domain.Book, error) {
	out := make([]domain.Book, len(m.books))
	copy(out, m.books)
	return out, nil
}

func (m *memBookStore) Update(ctx context.Context, mutate func([]domain.Book) ([]domain.Book, error)) error {
	cur := make([]domain.Book, len(m.books))
	copy(cur, m.books)
	next, err := mutate(cur)
	if err != nil {
		return err
	}
	m.books = next
	return nil
}

func newBookSvc(books ...domain.Book) (*BookService, *memBookStore) {
	st := &memBookStore{books: books}
	svc := NewBookService(st)
	svc.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc, st
}

func TestBookListByCategory(t *testing.T) {
	svc, _ := newBookSvc(
		domain.Book{ID: 1, Category: "fiction"},
		domain.Book{ID: 2, Category: "mystery"},
		domain.Book{ID: 3, Category: "fiction"},
	)

	tests := []struct {
		category string
		wantIDs  []int
	}{
		{"fiction", []int{1, 3}},
		{"mystery", []int{2}},
		{"all", []int{1, 2, 3}},
		{"poetry", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			books, err := svc.ListByCategory(context.Background(), tt.category)
			if err != nil {
				t.Fatalf("ListByCategory(%q): %v", tt.category, err)
			}
			if len(books) != len(tt.wantIDs) {
				t.Fatalf("got %d books; want %d", len(books), len(tt.wantIDs))
			}
			for i, b := range books {
				if b.ID != tt.wantIDs[i] {
					t.Fatalf("books[%d].ID = %d; want %d", i, b.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestBookCreate_Defaults(t *testing.T) {
	svc, st := newBookSvc()

	b, err := svc.Create(context.Background(), BookInput{Title: "T", Author: "A"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if b.ID != 1 {
		t.Fatalf("id = %d; want 1", b.ID)
	}
	if b.PublishedYear != 2024 {
		t.Fatalf("published year = %d; want current year default", b.PublishedYear)
	}
	if !b.Available {
		t.Fatalf("new books must be available")
	}
	if len(st.books) != 1 {
		t.Fatalf("book not persisted")
	}
}

func TestBookCreate_AlwaysAvailable(t *testing.T) {
	svc, _ := newBookSvc()

	no := false
	b, err := svc.Create(context.Background(), BookInput{Title: "T", Author: "A", Available: &no})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	// Create ignores the flag; only update can change it.
	if !b.Available {
		t.Fatalf("creation must not honor an availability override")
	}
}

func TestBookUpdate_PartialAvailability(t *testing.T) {
	svc, _ := newBookSvc(domain.Book{ID: 1, Title: "Old", Available: true})

	// Absent flag leaves availability alone.
	b, err := svc.Update(context.Background(), 1, BookInput{Title: "New", Author: "A"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if b.Title != "New" || !b.Available {
		t.Fatalf("got %+v; want title overwritten, availability kept", b)
	}

	no := false
	b, err = svc.Update(context.Background(), 1, BookInput{Title: "New", Author: "A", Available: &no})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if b.Available {
		t.Fatalf("explicit flag must apply")
	}
}

func TestBookUpdate_NotFound(t *testing.T) {
	svc, _ := newBookSvc()

	if _, err := svc.Update(context.Background(), 9, BookInput{Title: "x"}); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("err = %v; want ErrBookNotFound", err)
	}
}

func TestBookDelete(t *testing.T) {
	svc, st := newBookSvc(domain.Book{ID: 1}, domain.Book{ID: 2})

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(st.books) != 1 || st.books[0].ID != 2 {
		t.Fatalf("books after delete = %+v", st.books)
	}
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("second delete err = %v; want ErrBookNotFound", err)
	}
}

func TestBookGet(t *testing.T) {
	svc, _ := newBookSvc(domain.Book{ID: 2, Title: "T"})

	b, err := svc.Get(context.Background(), 2)
	if err != nil || b.Title != "T" {
		t.Fatalf("Get = (%+v, %v)", b, err)
	}
	if _, err := svc.Get(context.Background(), 7); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("err = %v; want ErrBookNotFound", err)
	}
}
