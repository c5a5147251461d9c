package store

import (
	"time"

	"github.com/libhub/go-library-backend/internal/domain"
)

// SeedBooks returns the starter catalog written to books.json when the
// collection is first accessed.
func SeedBooks() []domain.Book {
	return []domain.Book{
		{
			ID:            1,
			Title:         "The Lost City",
			Author:        "Sarah Mitchell",
			Category:      "fiction",
			Image:         "https://images.unsplash.com/photo-1543002588-bfa74002ed7e?fit=crop&w=400&h=600",
			Description:   "A thrilling tale of discovery and adventure in an ancient civilization.",
			ISBN:          "978-1234567890",
			PublishedYear: 2023,
			Available:     true,
		},
		{
			ID:            2,
			Title:         "Midnight Chase",
			Author:        "James Anderson",
			Category:      "action",
			Image:         "https://images.unsplash.com/photo-1589998059171-988d887df646?fit=crop&w=400&h=600",
			Description:   "High-stakes pursuit through the dark streets of London.",
			ISBN:          "978-1234567891",
			PublishedYear: 2023,
			Available:     true,
		},
		{
			ID:            3,
			Title:         "Love in Paris",
			Author:        "Emily Roberts",
			Category:      "romance",
			Image:         "https://images.unsplash.com/photo-1544947950-fa07a98d237f?fit=crop&w=400&h=600",
			Description:   "A romantic journey through the city of love.",
			ISBN:          "978-1234567892",
			PublishedYear: 2023,
			Available:     true,
		},
		{
			ID:            4,
			Title:         "Superhero Chronicles",
			Author:        "Mike Turner",
			Category:      "comic",
			Image:         "https://images.unsplash.com/photo-1608889476518-738c9b1dcb40?fit=crop&w=400&h=600",
			Description:   "Action-packed adventures of modern-day heroes.",
			ISBN:          "978-1234567893",
			PublishedYear: 2023,
			Available:     true,
		},
		{
			ID:            5,
			Title:         "The Silent Witness",
			Author:        "Patricia Blake",
			Category:      "mystery",
			Image:         "https://images.unsplash.com/photo-1587876931567-564ce588bfbd?fit=crop&w=400&h=600",
			Description:   "A gripping mystery that will keep you guessing until the end.",
			ISBN:          "978-1234567894",
			PublishedYear: 2023,
			Available:     true,
		},
	}
}

// SeedUsers returns the default admin account written to users.json when the
// collection is first accessed. Credentials are admin/admin, stored in plain
// text like every other password in this system.
func SeedUsers() []domain.User {
	return []domain.User{
		{
			ID:          1,
			Username:    "admin",
			Password:    "admin",
			Email:       "admin@library.com",
			Name:        "Admin User",
			MemberSince: time.Now().UTC(),
			Role:        domain.RoleAdmin,
		},
	}
}
