// Package randsrc provides the random source used by catalog generation.
// Generation never calls the global math/rand functions so that a seeded
// source reproduces the same catalog.
package randsrc

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the subset of *rand.Rand the generator needs.
type Source interface {
	Float64() float64
	Intn(n int) int
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a goroutine-safe source. A zero seed picks a time-based one.
func New(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// Scripted replays a fixed list of values in [0,1), cycling when exhausted.
// Intn(n) maps the next value onto [0,n).
type Scripted struct {
	values []float64
	pos    int
}

// NewScripted builds a Scripted source. With no values it always yields 0.
func NewScripted(values ...float64) *Scripted {
	return &Scripted{values: values}
}

func (s *Scripted) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
