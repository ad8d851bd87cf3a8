package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/cedrichouse/houseplans-api/internal/domains/inquiries/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/inquiries/ports"
)

var (
	ErrInvalidInput = errors.New("invalid inquiry input")
	ErrNotFound     = errors.New("not found")
)

// Service records enquiries from the public site.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) SubmitContactMessage(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: message is nil", ErrInvalidInput)
	}
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.repo.CreateContactMessage(ctx, msg)
}

func (s *Service) GetContactMessage(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	msg, err := s.repo.GetContactMessage(ctx, id)
	return msg, mapError(err)
}

func (s *Service) ListContactMessages(ctx context.Context) ([]*domain.ContactMessage, error) {
	return s.repo.ListContactMessages(ctx)
}

func (s *Service) SubmitQuoteRequest(ctx context.Context, req *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: quote request is nil", ErrInvalidInput)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.repo.CreateQuoteRequest(ctx, req)
}

func (s *Service) GetQuoteRequest(ctx context.Context, id int64) (*domain.QuoteRequest, error) {
	req, err := s.repo.GetQuoteRequest(ctx, id)
	return req, mapError(err)
}

func (s *Service) ListQuoteRequests(ctx context.Context) ([]*domain.QuoteRequest, error) {
	return s.repo.ListQuoteRequests(ctx)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
