package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/ports"
)

var (
	ErrInvalidInput = errors.New("invalid property input")
	ErrNotFound     = errors.New("not found")
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProperty(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if property == nil {
		return nil, fmt.Errorf("%w: property is nil", ErrInvalidInput)
	}
	property.Normalize()
	if err := property.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.repo.Create(ctx, property)
}

func (s *Service) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return property, nil
}

func (s *Service) ListProperties(ctx context.Context, filter ports.ListFilter) ([]*domain.Property, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrInvalidCategory)
	}
	return s.repo.List(ctx, filter)
}

func mapError(err error) error {
	if errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
