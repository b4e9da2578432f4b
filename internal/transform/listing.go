package transform

import (
	"time"

	"tixmarket/internal/listings"
	"tixmarket/internal/scoring"
	"tixmarket/internal/settings"
	"tixmarket/internal/zones"
	"tixmarket/pkg/money"
)

// ListingProjection is a shaped listing payload, nested or flat. Both forms
// are built from the same field groups, so a field is present in one form
// exactly when it is present in the other.
type ListingProjection interface {
	SetEvent(event EventProjection)
}

// Field groups. Leaf JSON names are unique across groups because the flat
// form promotes every leaf to the top level.

type CoreFields struct {
	ID             int       `json:"id"`
	EventID        int       `json:"eventId"`
	DeliveryMethod string    `json:"deliveryMethod"`
	Notes          []string  `json:"notes"`
	ListedAt       time.Time `json:"listedAt"`
	ImageURL       string    `json:"imageUrl"`
}

type FeeFields struct {
	Fees                    float64 `json:"fees"`
	FeesFormatted           string  `json:"feesFormatted"`
	ServiceFee              float64 `json:"serviceFee"`
	ServiceFeeFormatted     string  `json:"serviceFeeFormatted"`
	FulfillmentFee          float64 `json:"fulfillmentFee"`
	FulfillmentFeeFormatted string  `json:"fulfillmentFeeFormatted"`
	PlatformFee             float64 `json:"platformFee"`
	PlatformFeeFormatted    string  `json:"platformFeeFormatted"`
}

type PricingFields struct {
	PricePerTicket          float64 `json:"pricePerTicket"`
	PricePerTicketFormatted string  `json:"pricePerTicketFormatted"`
	FeesIncluded            bool    `json:"feesIncluded"`
	*FeeFields
	TotalPrice          float64 `json:"totalPrice"`
	TotalPriceFormatted string  `json:"totalPriceFormatted"`
}

type SellerDetailFields struct {
	SellerVerified         bool `json:"sellerVerified"`
	SellerTransactionCount int  `json:"sellerTransactionCount"`
}

type SellerFields struct {
	SellerName   string  `json:"sellerName"`
	SellerRating float64 `json:"sellerRating"`
	*SellerDetailFields
}

type SeatFields struct {
	Section        string             `json:"section"`
	Row            string             `json:"row"`
	Seats          []int              `json:"seats"`
	SeatsDisplay   string             `json:"seatsDisplay"`
	Quantity       int                `json:"quantity"`
	SeatType       zones.SeatType     `json:"seatType"`
	StadiumZone    zones.Zone         `json:"stadiumZone"`
	FieldProximity int                `json:"fieldProximity"`
	RowElevation   int                `json:"rowElevation"`
	SeatLocation   zones.SeatLocation `json:"seatLocation"`
	SeatsAdjacent  bool               `json:"seatsAdjacent"`
}

type DealScoreFields struct {
	DealScore      float64       `json:"dealScore"`
	DealScoreColor scoring.Color `json:"dealScoreColor"`
}

type ValueScoreFields struct {
	ValueScore      float64       `json:"valueScore"`
	ValueScoreColor scoring.Color `json:"valueScoreColor"`
}

type ScoreFields struct {
	*DealScoreFields
	*ValueScoreFields
}

// MarketFields holds the relative-value trio and the savings pair. They
// share marketValue, which is present when either toggle is on.
type MarketFields struct {
	PriceVsMedian       *float64 `json:"priceVsMedian,omitempty"`
	PriceVsSimilarSeats *float64 `json:"priceVsSimilarSeats,omitempty"`
	MarketValue         *float64 `json:"marketValue,omitempty"`
	SavingsAmount       *float64 `json:"savingsAmount,omitempty"`
	SavingsPercent      *float64 `json:"savingsPercent,omitempty"`
}

type HistoryEntryView struct {
	Date          time.Time `json:"date"`
	Price         float64   `json:"price"`
	DateFormatted string    `json:"dateFormatted"`
}

type HistoryFields struct {
	PriceHistory       []HistoryEntryView `json:"priceHistory"`
	Price7DaysAgo      float64            `json:"price7DaysAgo"`
	PriceChangePercent float64            `json:"priceChangePercent"`
}

type DemandFields struct {
	ViewCount    int                  `json:"viewCount"`
	ViewsLast24h int                  `json:"viewsLast24h"`
	SoldCount    int                  `json:"soldCount"`
	SoldRecently bool                 `json:"soldRecently"`
	PriceTrend   listings.PriceTrend  `json:"priceTrend"`
	DemandLevel  listings.DemandLevel `json:"demandLevel"`
}

type BundleFields struct {
	BundleOptions   *listings.BundleOptions `json:"bundleOptions,omitempty"`
	PremiumFeatures []string                `json:"premiumFeatures,omitempty"`
}

type PolicyFields struct {
	RefundPolicy   *string `json:"refundPolicy,omitempty"`
	TransferMethod *string `json:"transferMethod,omitempty"`
}

type FlagFields struct {
	DealFlags []listings.DealFlag `json:"dealFlags"`
}

// ListingView is the nested projection.
type ListingView struct {
	CoreFields
	Pricing  PricingFields  `json:"pricing"`
	Seller   SellerFields   `json:"seller"`
	Seat     SeatFields     `json:"seat"`
	Scores   *ScoreFields   `json:"scores,omitempty"`
	Market   *MarketFields  `json:"market,omitempty"`
	History  *HistoryFields `json:"history,omitempty"`
	Demand   *DemandFields  `json:"demand,omitempty"`
	Bundle   *BundleFields  `json:"bundle,omitempty"`
	Policies *PolicyFields  `json:"policies,omitempty"`
	*FlagFields
	Event EventProjection `json:"event,omitempty"`
}

func (v *ListingView) SetEvent(event EventProjection) { v.Event = event }

// FlatListing is the single-level projection. Nil embedded groups are
// skipped by encoding/json, so disabled fields never appear.
type FlatListing struct {
	CoreFields
	PricingFields
	SellerFields
	SeatFields
	*ScoreFields
	*MarketFields
	*HistoryFields
	*DemandFields
	*BundleFields
	*PolicyFields
	*FlagFields
	Event EventProjection `json:"event,omitempty"`
}

func (f *FlatListing) SetEvent(event EventProjection) { f.Event = event }

// Listing shapes l under cfg, scoring it against cohort (every listing of
// its event).
func Listing(l listings.Listing, cohort []listings.Listing, cfg settings.Config) ListingProjection {
	g := buildGroups(l, cohort, cfg)
	if cfg.API.ResponseFormat == settings.ResponseFlat {
		return &FlatListing{
			CoreFields:    g.core,
			PricingFields: g.pricing,
			SellerFields:  g.seller,
			SeatFields:    g.seat,
			ScoreFields:   g.scores,
			MarketFields:  g.market,
			HistoryFields: g.history,
			DemandFields:  g.demand,
			BundleFields:  g.bundle,
			PolicyFields:  g.policies,
			FlagFields:    g.flags,
		}
	}
	return &ListingView{
		CoreFields: g.core,
		Pricing:    g.pricing,
		Seller:     g.seller,
		Seat:       g.seat,
		Scores:     g.scores,
		Market:     g.market,
		History:    g.history,
		Demand:     g.demand,
		Bundle:     g.bundle,
		Policies:   g.policies,
		FlagFields: g.flags,
	}
}

type groups struct {
	core     CoreFields
	pricing  PricingFields
	seller   SellerFields
	seat     SeatFields
	scores   *ScoreFields
	market   *MarketFields
	history  *HistoryFields
	demand   *DemandFields
	bundle   *BundleFields
	policies *PolicyFields
	flags    *FlagFields
}

func buildGroups(l listings.Listing, cohort []listings.Listing, cfg settings.Config) groups {
	api, ui := cfg.API, cfg.UI
	g := groups{
		core: CoreFields{
			ID:             l.ID,
			EventID:        l.EventID,
			DeliveryMethod: l.DeliveryMethod,
			Notes:          nonNil(l.Notes),
			ListedAt:       l.ListedAt,
			ImageURL:       l.ImageURL,
		},
		pricing: pricing(l, api.IncludeFees, ui),
		seller: SellerFields{
			SellerName:   l.SellerName,
			SellerRating: l.SellerRating,
		},
		seat: SeatFields{
			Section:        l.Section,
			Row:            l.Row,
			Seats:          append([]int{}, l.Seats...),
			SeatsDisplay:   FormatSeats(l.Seats),
			Quantity:       l.Quantity,
			SeatType:       l.SeatType,
			StadiumZone:    l.StadiumZone,
			FieldProximity: l.FieldProximity,
			RowElevation:   l.RowElevation,
			SeatLocation:   l.SeatLocation,
			SeatsAdjacent:  l.SeatsAdjacent,
		},
	}

	if api.IncludeSellerDetails {
		g.seller.SellerDetailFields = &SellerDetailFields{
			SellerVerified:         l.SellerVerified,
			SellerTransactionCount: l.SellerTransactionCount,
		}
	}

	if api.IncludeDealScore || api.IncludeValueScore {
		g.scores = &ScoreFields{}
		if api.IncludeDealScore {
			score := scoring.DealScore(l, cohort)
			g.scores.DealScoreFields = &DealScoreFields{DealScore: score, DealScoreColor: scoring.ColorFor(score)}
		}
		if api.IncludeValueScore {
			score := scoring.ValueScore(l, cohort)
			g.scores.ValueScoreFields = &ValueScoreFields{ValueScore: score, ValueScoreColor: scoring.ColorFor(score)}
		}
	}

	if api.IncludeRelativeValue || api.IncludeSavingsInfo {
		rv := scoring.CalculateRelativeValue(l, cohort)
		g.market = &MarketFields{MarketValue: &rv.MarketValue}
		if api.IncludeRelativeValue {
			g.market.PriceVsMedian = &rv.PriceVsMedian
			g.market.PriceVsSimilarSeats = &rv.PriceVsSimilarSeats
		}
		if api.IncludeSavingsInfo {
			g.market.SavingsAmount = &rv.SavingsAmount
			g.market.SavingsPercent = &rv.SavingsPercent
		}
	}

	if api.IncludePriceHistory {
		entries := make([]HistoryEntryView, len(l.PriceHistory))
		for i, h := range l.PriceHistory {
			entries[i] = HistoryEntryView{Date: h.Date, Price: h.Price, DateFormatted: FormatDate(h.Date, ui.DateFormat)}
		}
		g.history = &HistoryFields{
			PriceHistory:       entries,
			Price7DaysAgo:      l.Price7DaysAgo,
			PriceChangePercent: l.PriceChangePercent,
		}
	}

	if api.IncludeDemandIndicators {
		g.demand = &DemandFields{
			ViewCount:    l.ViewCount,
			ViewsLast24h: l.ViewsLast24h,
			SoldCount:    l.SoldCount,
			SoldRecently: l.SoldRecently,
			PriceTrend:   l.PriceTrend,
			DemandLevel:  l.DemandLevel,
		}
	}

	if api.IncludeBundleOptions {
		b := &BundleFields{}
		if !l.BundleOptions.IsEmpty() {
			b.BundleOptions = l.Clone().BundleOptions
		}
		if api.IncludePremiumFeatures && len(l.PremiumFeatures) > 0 {
			b.PremiumFeatures = append([]string(nil), l.PremiumFeatures...)
		}
		if b.BundleOptions != nil || b.PremiumFeatures != nil {
			g.bundle = b
		}
	}

	if api.IncludeRefundPolicy || api.IncludeTransferMethod {
		g.policies = &PolicyFields{}
		if api.IncludeRefundPolicy {
			refund := l.RefundPolicy
			g.policies.RefundPolicy = &refund
		}
		if api.IncludeTransferMethod {
			transfer := l.TransferMethod
			g.policies.TransferMethod = &transfer
		}
	}

	if api.IncludeDealFlags {
		g.flags = &FlagFields{DealFlags: append([]listings.DealFlag{}, l.DealFlags...)}
	}
	return g
}

func pricing(l listings.Listing, includeFees bool, ui settings.UI) PricingFields {
	p := PricingFields{
		PricePerTicket:          l.PricePerTicket,
		PricePerTicketFormatted: FormatPrice(l.PricePerTicket, ui),
		FeesIncluded:            l.FeesIncluded,
		TotalPrice:              l.PricePerTicket,
	}
	if includeFees {
		p.FeeFields = &FeeFields{
			Fees:                    l.Fees,
			FeesFormatted:           FormatPrice(l.Fees, ui),
			ServiceFee:              l.ServiceFee,
			ServiceFeeFormatted:     FormatPrice(l.ServiceFee, ui),
			FulfillmentFee:          l.FulfillmentFee,
			FulfillmentFeeFormatted: FormatPrice(l.FulfillmentFee, ui),
			PlatformFee:             l.PlatformFee,
			PlatformFeeFormatted:    FormatPrice(l.PlatformFee, ui),
		}
		p.TotalPrice = money.Round2(l.PricePerTicket + l.Fees)
	}
	p.TotalPriceFormatted = FormatPrice(p.TotalPrice, ui)
	return p
}

func nonNil(s []string) []string {
	return append([]string{}, s...)
}
