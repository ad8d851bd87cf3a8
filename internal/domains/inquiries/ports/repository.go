package ports

import (
	"context"
	"errors"

	"github.com/cedrichouse/houseplans-api/internal/domains/inquiries/domain"
)

var ErrNotFound = errors.New("inquiry not found")

// Repository persists contact messages and quote requests.
type Repository interface {
	CreateContactMessage(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error)
	GetContactMessage(ctx context.Context, id int64) (*domain.ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]*domain.ContactMessage, error)
	CreateQuoteRequest(ctx context.Context, req *domain.QuoteRequest) (*domain.QuoteRequest, error)
	GetQuoteRequest(ctx context.Context, id int64) (*domain.QuoteRequest, error)
	ListQuoteRequests(ctx context.Context) ([]*domain.QuoteRequest, error)
}
