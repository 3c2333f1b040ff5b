package book

import (
	"context"
)

// Repository defines the contract for book data storage.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	List(ctx context.Context, q Query) ([]Book, int, error)
	GetByID(ctx context.Context, id string) (Book, error)
	GetByTitle(ctx context.Context, title string) (Book, error)
	Update(ctx context.Context, id string, p Patch) (Book, error)
	SoftDelete(ctx context.Context, id string) error
	GenreExists(ctx context.Context, genreID string) (bool, error)
}
