package cart

import "tixmarket/internal/transform"

// Item is one cart line: a listing and how many of its tickets are held.
type Item struct {
	ListingID int `json:"listingId"`
	Quantity  int `json:"quantity"`
}

// ItemView is a cart line with its listing and event shaped by the active
// configuration.
type ItemView struct {
	ListingID int                         `json:"listingId"`
	Quantity  int                         `json:"quantity"`
	Listing   transform.ListingProjection `json:"listing"`
	Event     transform.EventProjection   `json:"event"`
}
