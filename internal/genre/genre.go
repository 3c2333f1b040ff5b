package genre

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a genre is not found or soft-deleted.
var ErrNotFound = errors.New("genre not found")

// ErrAlreadyExists is returned when the genre name is already taken.
var ErrAlreadyExists = errors.New("genre already exists")

// Genre represents a book genre.
type Genre struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookSummary is the slim book shape embedded in a genre detail.
type BookSummary struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Writer        string  `json:"writer"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

// Detail is a genre together with its non-deleted books.
type Detail struct {
	Genre
	Books []BookSummary `json:"books"`
}

// Query defines filters and pagination for listing genres.
type Query struct {
	Search string
	Desc   bool
	Limit  int
	Offset int
}
