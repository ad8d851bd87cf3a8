package ports

import (
	"context"

	"github.com/cedrichouse/houseplans-api/internal/domains/inquiries/domain"
)

// Service exposes enquiry use cases to adapters.
type Service interface {
	SubmitContactMessage(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error)
	GetContactMessage(ctx context.Context, id int64) (*domain.ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]*domain.ContactMessage, error)
	SubmitQuoteRequest(ctx context.Context, req *domain.QuoteRequest) (*domain.QuoteRequest, error)
	GetQuoteRequest(ctx context.Context, id int64) (*domain.QuoteRequest, error)
	ListQuoteRequests(ctx context.Context) ([]*domain.QuoteRequest, error)
}
