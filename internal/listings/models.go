package listings

import (
	"encoding/json"
	"time"

	"tixmarket/internal/zones"
)

type DealFlag string

const (
	FlagGreatDeal      DealFlag = "great_deal"
	FlagFantasticValue DealFlag = "fantastic_value"
	FlagBestValue      DealFlag = "best_value"
	FlagFeatured       DealFlag = "featured"
	FlagClearView      DealFlag = "clear_view"
	FlagAisleSeat      DealFlag = "aisle_seat"
	FlagSellingFast    DealFlag = "selling_fast"
)

type PriceTrend string

const (
	TrendIncreasing PriceTrend = "increasing"
	TrendDecreasing PriceTrend = "decreasing"
	TrendStable     PriceTrend = "stable"
)

type DemandLevel string

const (
	DemandHigh   DemandLevel = "high"
	DemandMedium DemandLevel = "medium"
	DemandLow    DemandLevel = "low"
)

// PriceEntry is one synthesized historical price point.
type PriceEntry struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// ParkingOption is either a bare "parking included" flag or a parking price.
// It marshals to true or to the price.
type ParkingOption struct {
	Included bool
	Price    float64
}

func (p ParkingOption) MarshalJSON() ([]byte, error) {
	if p.Price > 0 {
		return json.Marshal(p.Price)
	}
	return json.Marshal(p.Included)
}

func (p *ParkingOption) UnmarshalJSON(data []byte) error {
	var included bool
	if err := json.Unmarshal(data, &included); err == nil {
		*p = ParkingOption{Included: included}
		return nil
	}
	var price float64
	if err := json.Unmarshal(data, &price); err != nil {
		return err
	}
	*p = ParkingOption{Included: true, Price: price}
	return nil
}

type BundleOptions struct {
	Parking       *ParkingOption `json:"parking,omitempty"`
	ClubAccess    bool           `json:"clubAccess,omitempty"`
	VIPAccess     bool           `json:"vipAccess,omitempty"`
	BackstagePass bool           `json:"backstagePass,omitempty"`
	FoodCredit    *float64       `json:"foodCredit,omitempty"`
}

// IsEmpty reports whether no bundle option is set. A nil receiver is empty.
func (b *BundleOptions) IsEmpty() bool {
	if b == nil {
		return true
	}
	return b.Parking == nil && !b.ClubAccess && !b.VIPAccess && !b.BackstagePass && b.FoodCredit == nil
}

// Listing is a resale offer for a run of seats at one event.
type Listing struct {
	ID       int    `json:"id"`
	EventID  int    `json:"eventId"`
	Section  string `json:"section"`
	Row      string `json:"row"`
	Seats    []int  `json:"seats"`
	Quantity int    `json:"quantity"`

	PricePerTicket float64 `json:"pricePerTicket"`
	BasePrice      float64 `json:"basePrice"`
	Fees           float64 `json:"fees"`
	ServiceFee     float64 `json:"serviceFee"`
	FulfillmentFee float64 `json:"fulfillmentFee"`
	PlatformFee    float64 `json:"platformFee"`
	FeesIncluded   bool    `json:"feesIncluded"`

	SellerName             string  `json:"sellerName"`
	SellerRating           float64 `json:"sellerRating"`
	SellerVerified         bool    `json:"sellerVerified"`
	SellerTransactionCount int     `json:"sellerTransactionCount"`

	DeliveryMethod string    `json:"deliveryMethod"`
	TransferMethod string    `json:"transferMethod"`
	RefundPolicy   string    `json:"refundPolicy"`
	Notes          []string  `json:"notes"`
	ListedAt       time.Time `json:"listedAt"`
	ImageURL       string    `json:"imageUrl"`

	SeatType       zones.SeatType     `json:"seatType"`
	StadiumZone    zones.Zone         `json:"stadiumZone"`
	FieldProximity int                `json:"fieldProximity"`
	RowElevation   int                `json:"rowElevation"`
	SeatLocation   zones.SeatLocation `json:"seatLocation"`
	SeatsAdjacent  bool               `json:"seatsAdjacent"`
	DealFlags      []DealFlag         `json:"dealFlags"`

	PriceHistory       []PriceEntry `json:"priceHistory"`
	Price7DaysAgo      float64      `json:"price7DaysAgo"`
	PriceChangePercent float64      `json:"priceChangePercent"`

	ViewCount    int         `json:"viewCount"`
	ViewsLast24h int         `json:"viewsLast24h"`
	SoldCount    int         `json:"soldCount"`
	SoldRecently bool        `json:"soldRecently"`
	PriceTrend   PriceTrend  `json:"priceTrend"`
	DemandLevel  DemandLevel `json:"demandLevel"`

	BundleOptions   *BundleOptions `json:"bundleOptions,omitempty"`
	PremiumFeatures []string       `json:"premiumFeatures,omitempty"`
}

// HasFlag reports whether the listing carries the given deal flag.
func (l *Listing) HasFlag(flag DealFlag) bool {
	for _, f := range l.DealFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers never share slices with the store.
func (l Listing) Clone() Listing {
	out := l
	out.Seats = append([]int(nil), l.Seats...)
	out.Notes = append([]string{}, l.Notes...)
	out.DealFlags = append([]DealFlag{}, l.DealFlags...)
	out.PriceHistory = append([]PriceEntry{}, l.PriceHistory...)
	out.PremiumFeatures = append([]string(nil), l.PremiumFeatures...)
	if l.BundleOptions != nil {
		b := *l.BundleOptions
		if b.Parking != nil {
			p := *b.Parking
			b.Parking = &p
		}
		if b.FoodCredit != nil {
			f := *b.FoodCredit
			b.FoodCredit = &f
		}
		out.BundleOptions = &b
	}
	return out
}

// Filters narrows an event's listings. Nil bounds mean "no bound".
type Filters struct {
	MinPrice       *float64
	MaxPrice       *float64
	Section        string
	DeliveryMethod string
	Sort           string
}

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortSection   = "section"
	SortQuantity  = "quantity"
)
