package events

import (
	"context"
	"fmt"
	"strings"
)

type Service interface {
	Create(ctx context.Context, event Event) error
	GetByID(ctx context.Context, id int) (*Event, error)
	GetAll(ctx context.Context) ([]Event, error)
	// Search matches q case-insensitively against title, artist, venue name
	// and category. An empty query matches everything.
	Search(ctx context.Context, q string) ([]Event, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, event Event) error {
	if err := s.repo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetAll(ctx context.Context) ([]Event, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Search(ctx context.Context, q string) ([]Event, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(q)
	out := []Event{}
	for _, e := range all {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	return out, nil
}

func matches(e Event, q string) bool {
	for _, field := range []string{e.Title, e.Artist, e.Venue.Name, e.Category} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
