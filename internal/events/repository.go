package events

import (
	"context"
	"sync"

	"tixmarket/internal/shared/apperr"
)

type Repository interface {
	Create(ctx context.Context, event Event) error
	GetByID(ctx context.Context, id int) (*Event, error)
	GetAll(ctx context.Context) ([]Event, error)
}

type repository struct {
	mu      sync.RWMutex
	byID    map[int]Event
	ordered []int
}

func NewRepository() Repository {
	return &repository{byID: make(map[int]Event)}
}

func (r *repository) Create(ctx context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[event.ID]; exists {
		return apperr.Invalid("event %d already exists", event.ID)
	}
	r.byID[event.ID] = event
	r.ordered = append(r.ordered, event.ID)
	return nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	event, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("event")
	}
	return &event, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id])
	}
	return out, nil
}
