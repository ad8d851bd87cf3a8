package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cedrichouse/houseplans-api/internal/domains/inquiries/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/inquiries/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps enquiries in memory.
type Repository struct {
	mu            sync.RWMutex
	contacts      map[int64]*domain.ContactMessage
	quotes        map[int64]*domain.QuoteRequest
	nextContactID int64
	nextQuoteID   int64
}

func NewRepository() *Repository {
	return &Repository{
		contacts: map[int64]*domain.ContactMessage{},
		quotes:   map[int64]*domain.QuoteRequest{},
	}
}

func (r *Repository) CreateContactMessage(_ context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	if msg == nil {
		return nil, errors.New("contact message is nil")
	}
	clone := *msg
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextContactID++
	clone.ID = r.nextContactID
	clone.CreatedAt = time.Now().UTC()
	r.contacts[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetContactMessage(_ context.Context, id int64) (*domain.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	msg, ok := r.contacts[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *msg
	return &clone, nil
}

func (r *Repository) ListContactMessages(_ context.Context) ([]*domain.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.ContactMessage, 0, len(r.contacts))
	for _, msg := range r.contacts {
		clone := *msg
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) CreateQuoteRequest(_ context.Context, req *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	if req == nil {
		return nil, errors.New("quote request is nil")
	}
	clone := *req
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextQuoteID++
	clone.ID = r.nextQuoteID
	clone.CreatedAt = time.Now().UTC()
	r.quotes[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetQuoteRequest(_ context.Context, id int64) (*domain.QuoteRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.quotes[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *Repository) ListQuoteRequests(_ context.Context) ([]*domain.QuoteRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.QuoteRequest, 0, len(r.quotes))
	for _, req := range r.quotes {
		clone := *req
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
