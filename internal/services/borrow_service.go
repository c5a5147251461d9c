// Package services – BorrowService
//
// This file implements the BorrowService, the state machine governing a
// book's checkout/return lifecycle. It enforces the duplicate-borrow rule,
// computes the borrowing period, assigns record ids, and derives overdue
// status. All other components treat borrowing records as opaque.
//
// State machine: borrowed --return--> returned. Returned is terminal for a
// record; borrowing the same book again creates a new record with a new id.
//
// Service-level errors (ErrDuplicateBorrow, ErrRecordNotFound,
// ErrAlreadyReturned) are returned for predictable cases so handlers can map
// them to HTTP results consistently.
package services

import (
	"context"
	"time"

	"github.com/libhub/go-library-backend/internal/domain"
	"github.com/libhub/go-library-backend/internal/store"
)

// LoanPeriodDays is the borrowing period. The due date is always exactly
// this many calendar days after the borrow date, computed once at creation.
const LoanPeriodDays = 14

// BorrowStore is the persistence contract required by BorrowService: whole
// collection reads and atomic load → mutate → store cycles.
type BorrowStore interface {
	// All returns every record in insertion order.
	All(ctx context.Context) ([]domain.BorrowRecord, error)

	// Update runs one atomic mutation of the full collection. Returning an
	// error from mutate aborts without persisting.
	Update(ctx context.Context, mutate func([]domain.BorrowRecord) ([]domain.BorrowRecord, error)) error
}

// BorrowService implements the borrowing lifecycle on top of a BorrowStore.
type BorrowService struct {
	// Records is the borrowing collection.
	Records BorrowStore

	// Now returns the current instant; overridable in tests. Defaults to
	// time.Now (UTC) when nil.
	Now func() time.Time
}

// NewBorrowService constructs a BorrowService bound to the given store.
func NewBorrowService(records BorrowStore) *BorrowService {
	return &BorrowService{Records: records}
}

func (s *BorrowService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// List returns all borrowing records in insertion order.
func (s *BorrowService) List(ctx context.Context) ([]domain.BorrowRecord, error) {
	return s.Records.All(ctx)
}

// ListByUser returns the records belonging to userID, in insertion order.
func (s *BorrowService) ListByUser(ctx context.Context, userID int) ([]domain.BorrowRecord, error) {
	records, err := s.Records.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.BorrowRecord, 0, len(records))
	for _, r := range records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListOverdue returns the records that are overdue right now: still borrowed
// and strictly past their due date. A record due exactly now is excluded.
// Overdue is computed on read and never written back to the record.
func (s *BorrowService) ListOverdue(ctx context.Context) ([]domain.BorrowRecord, error) {
	records, err := s.Records.All(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]domain.BorrowRecord, 0, len(records))
	for _, r := range records {
		if r.OverdueAt(now) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Get returns the record with the given id, or ErrRecordNotFound.
func (s *BorrowService) Get(ctx context.Context, id int) (*domain.BorrowRecord, error) {
	records, err := s.Records.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// Borrow checks out a book for a user.
//
// Semantics:
//   - At most one outstanding record may exist per (userID, bookID) pair;
//     a second attempt while one is borrowed yields ErrDuplicateBorrow and
//     nothing is created or modified.
//   - BorrowDate is now; ReturnDate is exactly LoanPeriodDays calendar days
//     later (AddDate, so month and year boundaries are handled by the
//     calendar, not by counting hours).
//   - The id is one more than the highest existing id, or 1 when the
//     collection is empty.
//
// The duplicate check and the append run inside a single store cycle, so two
// concurrent borrows for the same pair cannot both pass the check.
func (s *BorrowService) Borrow(ctx context.Context, userID, bookID int, bookTitle, bookAuthor string) (*domain.BorrowRecord, error) {
	var created *domain.BorrowRecord

	err := s.Records.Update(ctx, func(records []domain.BorrowRecord) ([]domain.BorrowRecord, error) {
		for _, r := range records {
			if r.UserID == userID && r.BookID == bookID && r.Status == domain.StatusBorrowed {
				return nil, ErrDuplicateBorrow
			}
		}

		borrowDate := s.now()
		rec := domain.BorrowRecord{
			ID:         store.NextID(records),
			UserID:     userID,
			BookID:     bookID,
			BookTitle:  bookTitle,
			BookAuthor: bookAuthor,
			BorrowDate: borrowDate,
			ReturnDate: borrowDate.AddDate(0, 0, LoanPeriodDays),
			Status:     domain.StatusBorrowed,
		}
		created = &rec
		return append(records, rec), nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Return transitions the record with the given id to returned, stamping
// ActualReturnDate with the current instant.
//
// Errors:
//   - ErrRecordNotFound when no record has that id.
//   - ErrAlreadyReturned when the record already transitioned; the record is
//     left untouched.
func (s *BorrowService) Return(ctx context.Context, id int) (*domain.BorrowRecord, error) {
	var updated *domain.BorrowRecord

	err := s.Records.Update(ctx, func(records []domain.BorrowRecord) ([]domain.BorrowRecord, error) {
		for i := range records {
			if records[i].ID != id {
				continue
			}
			if records[i].Status == domain.StatusReturned {
				return nil, ErrAlreadyReturned
			}
			returnedAt := s.now()
			records[i].Status = domain.StatusReturned
			records[i].ActualReturnDate = &returnedAt
			rec := records[i]
			updated = &rec
			return records, nil
		}
		return nil, ErrRecordNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete permanently removes the record with the given id, regardless of its
// status. It returns ErrRecordNotFound when no record had that id; removal
// is detected by comparing the collection size before and after, inside the
// same store cycle.
func (s *BorrowService) Delete(ctx context.Context, id int) error {
	return s.Records.Update(ctx, func(records []domain.BorrowRecord) ([]domain.BorrowRecord, error) {
		kept := make([]domain.BorrowRecord, 0, len(records))
		for _, r := range records {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		if len(kept) == len(records) {
			return nil, ErrRecordNotFound
		}
		return kept, nil
	})
}
