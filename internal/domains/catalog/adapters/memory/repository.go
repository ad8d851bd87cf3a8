package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog adapter.
type Repository struct {
	mu         sync.RWMutex
	properties map[int64]*domain.Property
	nextID     int64
}

func NewRepository() *Repository {
	return &Repository{properties: map[int64]*domain.Property{}}
}

func (r *Repository) Create(_ context.Context, property *domain.Property) (*domain.Property, error) {
	if property == nil {
		return nil, errors.New("property is nil")
	}
	clone := cloneProperty(property)
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	now := time.Now().UTC()
	clone.CreatedAt, clone.UpdatedAt = now, now
	r.properties[clone.ID] = clone
	return cloneProperty(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	property, ok := r.properties[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneProperty(property), nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Property, 0, len(r.properties))
	for _, property := range r.properties {
		if filter.Category != "" && property.Category != filter.Category {
			continue
		}
		list = append(list, cloneProperty(property))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func cloneProperty(p *domain.Property) *domain.Property {
	clone := *p
	clone.Styles = append([]string(nil), p.Styles...)
	clone.Features = append([]string(nil), p.Features...)
	clone.Amenities = append([]string(nil), p.Amenities...)
	clone.Images = append([]string(nil), p.Images...)
	clone.Floors = append([]map[string]any(nil), p.Floors...)
	clone.RoomSpecifications = append([]map[string]any(nil), p.RoomSpecifications...)
	return &clone
}
