package order

import (
	"context"

	"bookstore/internal/book"
)

// BookFinder resolves catalog entries in one batch, excluding soft-deleted
// rows. The returned map is keyed by book id; missing ids are absent.
type BookFinder interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]book.Book, error)
}

// Repository defines the contract for order persistence. Create is the
// atomic unit of work: order row, line items and stock decrements commit
// together or not at all.
type Repository interface {
	Create(ctx context.Context, userID string, v *ValidatedOrder) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	Stats(ctx context.Context) (Stats, error)
}
