package order

import (
	"errors"
	"fmt"
	"time"

	"bookstore/internal/book"
)

var (
	// ErrEmptyOrder is returned when the request carries no lines.
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrMissingIdentity is returned when no authenticated user is attached.
	ErrMissingIdentity = errors.New("missing user identity")
	// ErrNotFound is returned when an order is not found.
	ErrNotFound = errors.New("order not found")
)

// InvalidQuantityError reports a line whose quantity is not a positive integer.
type InvalidQuantityError struct {
	BookID   string
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for book %s", e.Quantity, e.BookID)
}

// BookNotFoundError reports a line referencing an unknown or deleted book.
type BookNotFoundError struct {
	BookID string
}

func (e *BookNotFoundError) Error() string {
	return fmt.Sprintf("book not found: %s", e.BookID)
}

// InsufficientStockError reports a line whose quantity exceeds available
// stock. It is returned both by the validator pre-check and by the
// commit-time re-check; a commit-time occurrence means a concurrent order
// won the stock and the caller may resubmit after a fresh validation.
type InsufficientStockError struct {
	BookID    string
	Title     string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Title, e.Requested, e.Available)
}

// Line is one requested (book, quantity) pair as submitted by the client.
type Line struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

// ValidatedItem is a line that passed validation, carrying the resolved book
// and the unit price snapshotted at resolution time.
type ValidatedItem struct {
	Book      book.Book
	Quantity  int
	UnitPrice float64
}

// ValidatedOrder is the validator's output: priced lines plus totals.
type ValidatedOrder struct {
	Items         []ValidatedItem
	TotalQuantity int
	TotalPrice    float64
}

// Item is a persisted order line with its price snapshot.
type Item struct {
	ID        string  `json:"id"`
	BookID    string  `json:"book_id"`
	BookTitle string  `json:"title,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Buyer identifies the order's owner in listings.
type Buyer struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Order is a committed purchase grouping line items under one user.
type Order struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Buyer         *Buyer    `json:"user,omitempty"`
	Items         []Item    `json:"items"`
	TotalQuantity int       `json:"total_quantity"`
	TotalPrice    float64   `json:"total_price"`
	CreatedAt     time.Time `json:"created_at"`
}

// Stats aggregates transaction statistics for reporting.
type Stats struct {
	TotalTransactions  int     `json:"total_transactions"`
	AverageOrderAmount float64 `json:"average_transaction_amount"`
	MostSoldGenre      string  `json:"most_book_sales_genre"`
	FewestSoldGenre    string  `json:"fewest_book_sales_genre"`
}
