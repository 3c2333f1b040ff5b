package order

import (
	"context"
)

// Service wires the validator and the committing repository into the single
// place-order operation plus the read-side endpoints.
type Service struct {
	validator *Validator
	repo      Repository
}

func NewService(books BookFinder, repo Repository) *Service {
	return &Service{
		validator: NewValidator(books),
		repo:      repo,
	}
}

// Place validates the requested lines and commits them atomically. A
// commit-time InsufficientStockError means a concurrent order depleted the
// stock after validation; the caller may resubmit. No retry happens here.
func (s *Service) Place(ctx context.Context, userID string, lines []Line) (*Order, error) {
	if userID == "" {
		return nil, ErrMissingIdentity
	}

	validated, err := s.validator.Validate(ctx, lines)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, userID, validated)
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}
