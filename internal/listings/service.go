package listings

import (
	"context"
	"fmt"
	"strings"

	"tixmarket/internal/shared/apperr"
	"tixmarket/pkg/logger"
)

type Service interface {
	// Catalog bootstrap
	Seed(ctx context.Context, eventID int, basePrice float64) ([]Listing, error)

	GetByID(ctx context.Context, id int) (*Listing, error)
	ListAll(ctx context.Context) ([]Listing, error)
	// Cohort returns every listing of an event, the population used for scoring.
	Cohort(ctx context.Context, eventID int) ([]Listing, error)
	Search(ctx context.Context, eventID int, filters Filters) ([]Listing, error)

	// Admin mutations
	UpdateImage(ctx context.Context, id int, imageURL string) (*Listing, error)
	UpdateNotes(ctx context.Context, id int, notes []string) (*Listing, error)
}

type service struct {
	repo      Repository
	generator *Generator
	log       *logger.Logger
}

func NewService(repo Repository, generator *Generator) Service {
	return &service{
		repo:      repo,
		generator: generator,
		log:       logger.GetDefault(),
	}
}

func (s *service) Seed(ctx context.Context, eventID int, basePrice float64) ([]Listing, error) {
	if basePrice <= 0 {
		return nil, apperr.Invalid("base price must be positive, got %v", basePrice)
	}
	generated := s.generator.Generate(eventID, basePrice)
	if err := s.repo.SaveAll(ctx, generated); err != nil {
		return nil, fmt.Errorf("failed to store listings for event %d: %w", eventID, err)
	}
	s.log.LogCatalogGenerated(ctx, eventID, len(generated))
	return generated, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Listing, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListAll(ctx context.Context) ([]Listing, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Cohort(ctx context.Context, eventID int) ([]Listing, error) {
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *service) Search(ctx context.Context, eventID int, filters Filters) ([]Listing, error) {
	all, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return Apply(all, filters), nil
}

func (s *service) UpdateImage(ctx context.Context, id int, imageURL string) (*Listing, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, apperr.Invalid("imageUrl is required")
	}
	l, err := s.repo.UpdateImage(ctx, id, imageURL)
	if err != nil {
		return nil, err
	}
	s.log.LogListingUpdated(ctx, id, "imageUrl")
	return l, nil
}

// UpdateNotes replaces a listing's notes, dropping blank entries. A nil
// slice means the caller sent no notes array at all.
func (s *service) UpdateNotes(ctx context.Context, id int, notes []string) (*Listing, error) {
	if notes == nil {
		return nil, apperr.Invalid("notes must be an array")
	}
	kept := make([]string, 0, len(notes))
	for _, n := range notes {
		if strings.TrimSpace(n) != "" {
			kept = append(kept, n)
		}
	}
	l, err := s.repo.UpdateNotes(ctx, id, kept)
	if err != nil {
		return nil, err
	}
	s.log.LogListingUpdated(ctx, id, "notes")
	return l, nil
}
