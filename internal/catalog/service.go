// Package catalog serves shaped events and listings. It reads the active
// configuration on every call, so a config change applies to the next request.
package catalog

import (
	"context"
	"fmt"

	"tixmarket/internal/events"
	"tixmarket/internal/listings"
	"tixmarket/internal/settings"
	"tixmarket/internal/transform"
	"tixmarket/pkg/metrics"
)

type Service interface {
	// Bootstrap registers the seed events and generates their listings.
	Bootstrap(ctx context.Context, seeds []events.Seed) error

	ListEvents(ctx context.Context) ([]transform.EventProjection, error)
	GetEvent(ctx context.Context, id int) (transform.EventProjection, error)
	EventListings(ctx context.Context, eventID int, filters listings.Filters) ([]transform.ListingProjection, error)
	GetListing(ctx context.Context, id int) (transform.ListingProjection, error)
	// ProjectListing shapes a listing and its event separately.
	ProjectListing(ctx context.Context, id int) (transform.ListingProjection, transform.EventProjection, error)
	SearchEvents(ctx context.Context, query string) ([]transform.EventProjection, error)

	UpdateListingImage(ctx context.Context, id int, imageURL string) (*listings.Listing, error)
	UpdateListingNotes(ctx context.Context, id int, notes []string) (*listings.Listing, error)
}

type service struct {
	events   events.Service
	listings listings.Service
	settings settings.Service
	metrics  *metrics.Registry
}

func NewService(eventService events.Service, listingService listings.Service, settingsService settings.Service, m *metrics.Registry) Service {
	return &service{
		events:   eventService,
		listings: listingService,
		settings: settingsService,
		metrics:  m,
	}
}

func (s *service) Bootstrap(ctx context.Context, seeds []events.Seed) error {
	for _, seed := range seeds {
		if err := s.events.Create(ctx, seed.Event); err != nil {
			return err
		}
		generated, err := s.listings.Seed(ctx, seed.Event.ID, seed.BasePrice)
		if err != nil {
			return fmt.Errorf("failed to seed event %d: %w", seed.Event.ID, err)
		}
		s.metrics.SetCatalogListings(seed.Event.ID, len(generated))
	}
	return nil
}

func (s *service) ListEvents(ctx context.Context) ([]transform.EventProjection, error) {
	all, err := s.events.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.projectEvents(ctx, all)
}

func (s *service) GetEvent(ctx context.Context, id int) (transform.EventProjection, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	cohort, err := s.listings.Cohort(ctx, id)
	if err != nil {
		return nil, err
	}

	timer := s.metrics.StartProjectionTimer("event", cfg.API.ResponseFormat)
	projection := transform.Event(*event, cohort, cfg)
	projection.SetListingsCount(len(cohort))
	timer.Stop()
	return projection, nil
}

func (s *service) EventListings(ctx context.Context, eventID int, filters listings.Filters) ([]transform.ListingProjection, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	matched, err := s.listings.Search(ctx, eventID, filters)
	if err != nil {
		return nil, err
	}
	cohort, err := s.listings.Cohort(ctx, eventID)
	if err != nil {
		return nil, err
	}

	timer := s.metrics.StartProjectionTimer("listing", cfg.API.ResponseFormat)
	defer timer.Stop()
	out := make([]transform.ListingProjection, len(matched))
	for i, l := range matched {
		out[i] = transform.Listing(l, cohort, cfg)
	}
	return out, nil
}

func (s *service) GetListing(ctx context.Context, id int) (transform.ListingProjection, error) {
	listing, event, err := s.ProjectListing(ctx, id)
	if err != nil {
		return nil, err
	}
	listing.SetEvent(event)
	return listing, nil
}

func (s *service) ProjectListing(ctx context.Context, id int) (transform.ListingProjection, transform.EventProjection, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	event, err := s.events.GetByID(ctx, l.EventID)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return nil, nil, err
	}
	cohort, err := s.listings.Cohort(ctx, l.EventID)
	if err != nil {
		return nil, nil, err
	}

	timer := s.metrics.StartProjectionTimer("listing", cfg.API.ResponseFormat)
	defer timer.Stop()
	return transform.Listing(*l, cohort, cfg), transform.Event(*event, cohort, cfg), nil
}

func (s *service) SearchEvents(ctx context.Context, query string) ([]transform.EventProjection, error) {
	matched, err := s.events.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.projectEvents(ctx, matched)
}

func (s *service) UpdateListingImage(ctx context.Context, id int, imageURL string) (*listings.Listing, error) {
	return s.listings.UpdateImage(ctx, id, imageURL)
}

func (s *service) UpdateListingNotes(ctx context.Context, id int, notes []string) (*listings.Listing, error) {
	return s.listings.UpdateNotes(ctx, id, notes)
}

func (s *service) projectEvents(ctx context.Context, list []events.Event) ([]transform.EventProjection, error) {
	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.listings.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	timer := s.metrics.StartProjectionTimer("event", cfg.API.ResponseFormat)
	defer timer.Stop()
	out := make([]transform.EventProjection, len(list))
	for i, e := range list {
		out[i] = transform.Event(e, all, cfg)
	}
	return out, nil
}
