package genre

import (
	"context"
	"errors"
)

// Service provides genre-related business logic.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (Genre, error) {
	_, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return Genre{}, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return Genre{}, err
	}

	g := &Genre{Name: name}
	if err := s.repo.Create(ctx, g); err != nil {
		return Genre{}, err
	}
	return *g, nil
}

func (s *Service) List(ctx context.Context, q Query) ([]Genre, int, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) GetByID(ctx context.Context, id string) (Genre, error) {
	return s.repo.GetByID(ctx, id)
}

// GetDetail returns a genre with its non-deleted books.
func (s *Service) GetDetail(ctx context.Context, id string) (Detail, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	books, err := s.repo.ListBooks(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	return Detail{Genre: g, Books: books}, nil
}

func (s *Service) Update(ctx context.Context, id, name string) (Genre, error) {
	return s.repo.Update(ctx, id, name)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}
