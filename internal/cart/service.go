package cart

import (
	"context"
	"errors"

	"tixmarket/internal/catalog"
	"tixmarket/internal/listings"
	"tixmarket/internal/shared/apperr"
)

type Service interface {
	Add(ctx context.Context, listingID, quantity int) (Item, error)
	// List shapes every line under the active configuration. Lines whose
	// listing no longer exists are skipped.
	List(ctx context.Context) ([]ItemView, error)
	Remove(ctx context.Context, listingID int) error
}

type service struct {
	store    Store
	listings listings.Service
	catalog  catalog.Service
}

func NewService(store Store, listingService listings.Service, catalogService catalog.Service) Service {
	return &service{
		store:    store,
		listings: listingService,
		catalog:  catalogService,
	}
}

func (s *service) Add(ctx context.Context, listingID, quantity int) (Item, error) {
	if listingID <= 0 || quantity <= 0 {
		return Item{}, apperr.Invalid("listingId and quantity are required")
	}

	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return Item{}, err
	}
	if quantity > l.Quantity {
		return Item{}, apperr.Invalid("quantity exceeds available tickets")
	}

	total, err := s.store.Add(ctx, listingID, quantity, l.Quantity)
	if err != nil {
		return Item{}, err
	}
	return Item{ListingID: listingID, Quantity: total}, nil
}

func (s *service) List(ctx context.Context) ([]ItemView, error) {
	items, err := s.store.Items(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		listing, event, err := s.catalog.ProjectListing(ctx, item.ListingID)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		views = append(views, ItemView{
			ListingID: item.ListingID,
			Quantity:  item.Quantity,
			Listing:   listing,
			Event:     event,
		})
	}
	return views, nil
}

func (s *service) Remove(ctx context.Context, listingID int) error {
	return s.store.Remove(ctx, listingID)
}
