package book

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a book is not found or soft-deleted.
	ErrNotFound = errors.New("book not found")
	// ErrTitleTaken is returned when another active book already has the title.
	ErrTitleTaken = errors.New("book title already exists")
	// ErrGenreNotFound is returned when the referenced genre does not exist.
	ErrGenreNotFound = errors.New("genre not found")
)

// Book represents a catalog entry with price and finite stock.
type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Writer          string    `json:"writer"`
	Publisher       string    `json:"publisher"`
	PublicationYear int       `json:"publication_year"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price"`
	StockQuantity   int       `json:"stock_quantity"`
	GenreID         string    `json:"genre_id"`
	GenreName       string    `json:"genre,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Query defines filters and pagination for listing books.
type Query struct {
	Search    string
	GenreID   string
	TitleDesc bool
	YearDesc  bool
	Limit     int
	Offset    int
}

// Patch carries partial updates; nil fields are left unchanged.
type Patch struct {
	Title           *string  `json:"title"`
	Writer          *string  `json:"writer"`
	Publisher       *string  `json:"publisher"`
	PublicationYear *int     `json:"publication_year"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	StockQuantity   *int     `json:"stock_quantity"`
	GenreID         *string  `json:"genre_id"`
}
