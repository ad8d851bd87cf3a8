package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	nextID int64
	now    func() time.Time
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}, now: time.Now}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
		clone.CreatedAt = now
	} else {
		existing, ok := r.orders[clone.ID]
		if !ok {
			return nil, ports.ErrNotFound
		}
		clone.PlanID = existing.PlanID
		clone.Amount = existing.Amount
		clone.CreatedAt = existing.CreatedAt
		if existing.ReceiptNumber != "" {
			clone.ReceiptNumber = existing.ReceiptNumber
			clone.ReceiptGenerated = true
		}
	}
	clone.UpdatedAt = now
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		clone := *order
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) AssignReceipt(_ context.Context, id int64, number string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if order.ReceiptNumber == "" {
		order.UpdatedAt = r.now().UTC()
	}
	order.IssueReceipt(number)
	clone := *order
	return &clone, nil
}
