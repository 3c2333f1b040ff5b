package genre

import (
	"context"
)

// Repository defines the contract for genre data storage.
type Repository interface {
	Create(ctx context.Context, g *Genre) error
	List(ctx context.Context, q Query) ([]Genre, int, error)
	GetByID(ctx context.Context, id string) (Genre, error)
	ListBooks(ctx context.Context, genreID string) ([]BookSummary, error)
	GetByName(ctx context.Context, name string) (Genre, error)
	Update(ctx context.Context, id, name string) (Genre, error)
	SoftDelete(ctx context.Context, id string) error
}
