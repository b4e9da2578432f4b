package listings

import (
	"context"
	"sort"
	"strings"
	"sync"

	"tixmarket/internal/shared/apperr"
)

// Repository interface for listing storage
type Repository interface {
	GetByID(ctx context.Context, id int) (*Listing, error)
	ListByEvent(ctx context.Context, eventID int) ([]Listing, error)
	ListAll(ctx context.Context) ([]Listing, error)
	SaveAll(ctx context.Context, listings []Listing) error
	UpdateImage(ctx context.Context, id int, imageURL string) (*Listing, error)
	UpdateNotes(ctx context.Context, id int, notes []string) (*Listing, error)
}

// memoryRepository keeps the generated catalog for the process lifetime.
// Admin edits are last-write-wins.
type memoryRepository struct {
	mu      sync.RWMutex
	byID    map[int]*Listing
	ordered []int
}

func NewRepository() Repository {
	return &memoryRepository{byID: make(map[int]*Listing)}
}

func (r *memoryRepository) GetByID(ctx context.Context, id int) (*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("listing")
	}
	out := l.Clone()
	return &out, nil
}

func (r *memoryRepository) ListByEvent(ctx context.Context, eventID int) ([]Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Listing{}
	for _, id := range r.ordered {
		if l := r.byID[id]; l.EventID == eventID {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

func (r *memoryRepository) ListAll(ctx context.Context) ([]Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Listing, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}

// SaveAll inserts or replaces listings, keeping first-insertion order.
func (r *memoryRepository) SaveAll(ctx context.Context, listings []Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range listings {
		stored := l.Clone()
		if _, exists := r.byID[l.ID]; !exists {
			r.ordered = append(r.ordered, l.ID)
		}
		r.byID[l.ID] = &stored
	}
	return nil
}

func (r *memoryRepository) UpdateImage(ctx context.Context, id int, imageURL string) (*Listing, error) {
	return r.update(id, func(l *Listing) { l.ImageURL = imageURL })
}

func (r *memoryRepository) UpdateNotes(ctx context.Context, id int, notes []string) (*Listing, error) {
	return r.update(id, func(l *Listing) { l.Notes = append([]string{}, notes...) })
}

func (r *memoryRepository) update(id int, mutate func(*Listing)) (*Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("listing")
	}
	mutate(l)
	out := l.Clone()
	return &out, nil
}

// Apply filters and sorts an event's listings in place and returns the result.
func Apply(listings []Listing, f Filters) []Listing {
	out := listings[:0:0]
	for _, l := range listings {
		if f.MinPrice != nil && l.PricePerTicket < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && l.PricePerTicket > *f.MaxPrice {
			continue
		}
		if f.Section != "" && l.Section != f.Section {
			continue
		}
		if f.DeliveryMethod != "" && l.DeliveryMethod != f.DeliveryMethod {
			continue
		}
		out = append(out, l)
	}

	switch f.Sort {
	case "", SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PricePerTicket < out[j].PricePerTicket })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PricePerTicket > out[j].PricePerTicket })
	case SortSection:
		sort.SliceStable(out, func(i, j int) bool { return strings.Compare(out[i].Section, out[j].Section) < 0 })
	case SortQuantity:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	}
	return out
}
