package cart

import (
	"context"
	"sort"
	"sync"
)

type Store interface {
	// Add increases a line by quantity, capping it at limit, and returns the
	// resulting quantity. The read and write happen atomically.
	Add(ctx context.Context, listingID, quantity, limit int) (int, error)
	Items(ctx context.Context) ([]Item, error)
	Remove(ctx context.Context, listingID int) error
}

type memoryStore struct {
	mu    sync.Mutex
	lines map[int]int
}

func NewMemoryStore() Store {
	return &memoryStore{lines: make(map[int]int)}
}

func (s *memoryStore) Add(ctx context.Context, listingID, quantity, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.lines[listingID] + quantity
	if next > limit {
		next = limit
	}
	s.lines[listingID] = next
	return next, nil
}

func (s *memoryStore) Items(ctx context.Context) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, 0, len(s.lines))
	for id, qty := range s.lines {
		items = append(items, Item{ListingID: id, Quantity: qty})
	}
	sortItems(items)
	return items, nil
}

func (s *memoryStore) Remove(ctx context.Context, listingID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lines, listingID)
	return nil
}

func sortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].ListingID < items[j].ListingID })
}
