package transform

import (
	"tixmarket/internal/events"
	"tixmarket/internal/listings"
	"tixmarket/internal/settings"
	"tixmarket/internal/zones"
)

// EventProjection is a shaped event payload, nested or flat.
type EventProjection interface {
	SetListingsCount(n int)
}

// VenueView carries whichever venue parts content.venueInfo selects. Nil
// fields are absent from the payload; empty strings are kept.
type VenueView struct {
	Name           *string           `json:"name,omitempty"`
	Address        *string           `json:"address,omitempty"`
	City           *string           `json:"city,omitempty"`
	State          *string           `json:"state,omitempty"`
	StadiumMapData *zones.StadiumMap `json:"stadiumMapData,omitempty"`
}

type EventView struct {
	ID                  int       `json:"id"`
	Title               string    `json:"title"`
	Artist              string    `json:"artist"`
	Date                string    `json:"date"`
	DateFormatted       string    `json:"dateFormatted"`
	Time                string    `json:"time"`
	Venue               VenueView `json:"venue"`
	Category            string    `json:"category"`
	Description         string    `json:"description"`
	TotalListingsCount  int       `json:"totalListingsCount"`
	ActiveListingsCount int       `json:"activeListingsCount"`
	ListingSupply       string    `json:"listingSupply"`
	ListingsCount       *int      `json:"listingsCount,omitempty"`
}

func (v *EventView) SetListingsCount(n int) { v.ListingsCount = &n }

// FlatEvent is the single-level event record. Its date is the formatted one.
type FlatEvent struct {
	ID                  int     `json:"id"`
	Title               string  `json:"title"`
	Artist              string  `json:"artist"`
	Date                string  `json:"date"`
	Time                string  `json:"time"`
	VenueName           *string `json:"venueName,omitempty"`
	VenueAddress        *string `json:"venueAddress,omitempty"`
	VenueCity           *string `json:"venueCity,omitempty"`
	VenueState          *string `json:"venueState,omitempty"`
	Category            string  `json:"category"`
	Description         string  `json:"description"`
	TotalListingsCount  int     `json:"totalListingsCount"`
	ActiveListingsCount int     `json:"activeListingsCount"`
	ListingSupply       string  `json:"listingSupply"`
	ListingsCount       *int    `json:"listingsCount,omitempty"`
}

func (f *FlatEvent) SetListingsCount(n int) { f.ListingsCount = &n }

// Event shapes e under cfg. cohort holds the event's listings and only feeds
// the listing counts.
func Event(e events.Event, cohort []listings.Listing, cfg settings.Config) EventProjection {
	total, active := 0, 0
	for _, l := range cohort {
		if l.EventID != e.ID {
			continue
		}
		total++
		if l.Quantity > 0 {
			active++
		}
	}

	venue := venueView(e.Venue, cfg.Content.VenueInfo)
	dateFormatted := FormatDate(e.Day(), cfg.UI.DateFormat)
	description := describe(e.Description, cfg.Content.EventDescriptions)

	if cfg.API.ResponseFormat == settings.ResponseFlat {
		return &FlatEvent{
			ID:                  e.ID,
			Title:               e.Title,
			Artist:              e.Artist,
			Date:                dateFormatted,
			Time:                e.Time,
			VenueName:           venue.Name,
			VenueAddress:        venue.Address,
			VenueCity:           venue.City,
			VenueState:          venue.State,
			Category:            e.Category,
			Description:         description,
			TotalListingsCount:  total,
			ActiveListingsCount: active,
			ListingSupply:       SupplyLabel(total),
		}
	}

	return &EventView{
		ID:                  e.ID,
		Title:               e.Title,
		Artist:              e.Artist,
		Date:                e.Date,
		DateFormatted:       dateFormatted,
		Time:                e.Time,
		Venue:               venue,
		Category:            e.Category,
		Description:         description,
		TotalListingsCount:  total,
		ActiveListingsCount: active,
		ListingSupply:       SupplyLabel(total),
	}
}

func venueView(v events.Venue, mode string) VenueView {
	name, address, city, state := v.Name, v.Address, v.City, v.State
	switch mode {
	case settings.VenueNameOnly:
		return VenueView{Name: &name}
	case settings.VenueAddressOnly:
		return VenueView{Address: &address}
	}
	stadium := zones.StadiumMapFor(v.Name)
	return VenueView{
		Name:           &name,
		Address:        &address,
		City:           &city,
		State:          &state,
		StadiumMapData: &stadium,
	}
}
