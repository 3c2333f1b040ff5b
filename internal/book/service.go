package book

import (
	"context"
	"errors"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, b *Book) error {
	_, err := s.repo.GetByTitle(ctx, b.Title)
	if err == nil {
		return ErrTitleTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	return s.repo.Create(ctx, b)
}

// List returns a page of books matching the query.
func (s *Service) List(ctx context.Context, q Query) ([]Book, int, error) {
	return s.repo.List(ctx, q)
}

// ListByGenre returns a page of books for one genre, failing when the
// genre itself is unknown or soft-deleted.
func (s *Service) ListByGenre(ctx context.Context, genreID string, q Query) ([]Book, int, error) {
	ok, err := s.repo.GenreExists(ctx, genreID)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, ErrGenreNotFound
	}

	q.GenreID = genreID
	return s.repo.List(ctx, q)
}

// GetByID returns a book by its id.
func (s *Service) GetByID(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (Book, error) {
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}
