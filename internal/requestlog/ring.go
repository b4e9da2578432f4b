package requestlog

import "sync"

// Ring keeps the most recent entries, evicting the oldest once full.
type Ring struct {
	mu      sync.RWMutex
	entries []Entry
	max     int
}

func NewRing(max int) *Ring {
	if max <= 0 {
		max = 1000
	}
	return &Ring{max: max}
}

func (r *Ring) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	if over := len(r.entries) - r.max; over > 0 {
		r.entries = append(r.entries[:0:0], r.entries[over:]...)
	}
}

// Chronological returns a copy, oldest first.
func (r *Ring) Chronological() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.entries...)
}

// Newest returns a copy, most recent first.
func (r *Ring) Newest() []Entry {
	out := r.Chronological()
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
