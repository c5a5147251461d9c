package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestBorrowRecordOverdueAt(t *testing.T) {
	due := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		status string
		at     time.Time
		want   bool
	}{
		{"past due and borrowed", StatusBorrowed, due.Add(time.Second), true},
		{"exactly due", StatusBorrowed, due, false},
		{"not yet due", StatusBorrowed, due.Add(-time.Hour), false},
		{"past due but returned", StatusReturned, due.Add(24 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := BorrowRecord{Status: tt.status, ReturnDate: due}
			if got := r.OverdueAt(tt.at); got != tt.want {
				t.Fatalf("OverdueAt = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestBorrowRecordJSONOmitsEmptyActualReturn(t *testing.T) {
	data, err := json.Marshal(BorrowRecord{ID: 1, Status: StatusBorrowed})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "actualReturnDate") {
		t.Fatalf("outstanding record must omit actualReturnDate: %s", data)
	}

	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	data, err = json.Marshal(BorrowRecord{ID: 1, Status: StatusReturned, ActualReturnDate: &at})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), "actualReturnDate") {
		t.Fatalf("returned record must carry actualReturnDate: %s", data)
	}
}

func TestUserJSONOmitsBlankPassword(t *testing.T) {
	data, err := json.Marshal(User{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "password") {
		t.Fatalf("blank password must be omitted: %s", data)
	}
}

func TestKeys(t *testing.T) {
	if (Book{ID: 3}).Key() != 3 || (User{ID: 4}).Key() != 4 || (BorrowRecord{ID: 5}).Key() != 5 {
		t.Fatalf("Key must return the record id")
	}
}
