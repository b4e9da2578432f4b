// Package scoring rates a listing against its cohort, the other listings
// of the same event. Degenerate cohorts produce neutral values rather than
// errors, and the cohort is never modified.
package scoring

import (
	"sort"

	"tixmarket/internal/listings"
	"tixmarket/internal/zones"
	"tixmarket/pkg/money"
)

const neutralScore = 5.0

type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
)

// RelativeValue positions a listing's price within its market.
type RelativeValue struct {
	PriceVsMedian       float64 `json:"priceVsMedian"`
	PriceVsSimilarSeats float64 `json:"priceVsSimilarSeats"`
	MarketValue         float64 `json:"marketValue"`
	SavingsAmount       float64 `json:"savingsAmount"`
	SavingsPercent      float64 `json:"savingsPercent"`
}

// Median returns the element at index floor(n/2) of the sorted prices, which
// is the upper middle value for even n. It returns 0 for no prices.
func Median(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

func prices(cohort []listings.Listing) []float64 {
	out := make([]float64, len(cohort))
	for i, l := range cohort {
		out[i] = l.PricePerTicket
	}
	return out
}

// DealScore rates price attractiveness from 1 (priciest) to 10 (cheapest).
func DealScore(l listings.Listing, cohort []listings.Listing) float64 {
	if len(cohort) == 0 {
		return neutralScore
	}
	ps := prices(cohort)
	lo, hi := ps[0], ps[0]
	for _, p := range ps[1:] {
		lo = min(lo, p)
		hi = max(hi, p)
	}
	if hi == lo {
		return neutralScore
	}
	median := Median(ps)
	price := l.PricePerTicket

	score := 10 - ((price-lo)/(hi-lo))*9

	if l.HasFlag(listings.FlagGreatDeal) || l.HasFlag(listings.FlagFantasticValue) {
		score += 0.5
	}
	if l.HasFlag(listings.FlagBestValue) {
		score += 0.3
	}
	if l.HasFlag(listings.FlagFeatured) {
		score += 0.2
	}

	switch l.DemandLevel {
	case listings.DemandHigh:
		score += 0.2
	case listings.DemandLow:
		score -= 0.2
	}

	if l.StadiumZone == zones.ZoneLowerBowl && price < median {
		score += 0.3
	}
	if l.StadiumZone == zones.ZoneUpperDeck && price > median {
		score -= 0.3
	}
	return finish(score)
}

// ValueScore rates seat quality per dollar on a 1-10 scale.
func ValueScore(l listings.Listing, cohort []listings.Listing) float64 {
	if len(cohort) == 0 {
		return neutralScore
	}
	median := Median(prices(cohort))
	if median <= 0 || l.PricePerTicket <= 0 {
		return neutralScore
	}
	proximity := l.FieldProximity
	if proximity == 0 {
		proximity = 5
	}
	ratio := l.PricePerTicket / median

	score := (float64(proximity) / 10) * (1 / ratio) * 5

	if l.SeatType == zones.SeatTypeObstructedView {
		score--
	}
	if l.SeatType == zones.SeatTypeStandingRoom && ratio > 1.2 {
		score -= 0.5
	}
	if l.HasFlag(listings.FlagClearView) {
		score += 0.5
	}
	if !l.BundleOptions.IsEmpty() {
		score += 0.3
	}
	return finish(score)
}

// CalculateRelativeValue compares a listing with the cohort median, the
// median of other listings in its zone, and the cohort mean (market value).
func CalculateRelativeValue(l listings.Listing, cohort []listings.Listing) RelativeValue {
	price := l.PricePerTicket
	if len(cohort) == 0 {
		return RelativeValue{MarketValue: price}
	}

	ps := prices(cohort)
	median := Median(ps)
	var sum float64
	for _, p := range ps {
		sum += p
	}
	avg := sum / float64(len(ps))

	var similar []float64
	for _, other := range cohort {
		if other.StadiumZone == l.StadiumZone && other.ID != l.ID {
			similar = append(similar, other.PricePerTicket)
		}
	}

	rv := RelativeValue{
		PriceVsMedian: percentDelta(price, median),
		MarketValue:   money.Round2(avg),
	}
	rv.PriceVsSimilarSeats = rv.PriceVsMedian
	if len(similar) > 0 {
		rv.PriceVsSimilarSeats = percentDelta(price, Median(similar))
	}
	if price < rv.MarketValue {
		rv.SavingsAmount = money.Round2(rv.MarketValue - price)
		rv.SavingsPercent = money.Round1(100 * rv.SavingsAmount / rv.MarketValue)
	}
	return rv
}

// ColorFor maps a 1-10 score to its display color.
func ColorFor(score float64) Color {
	switch {
	case score >= 8:
		return ColorGreen
	case score >= 5:
		return ColorYellow
	}
	return ColorRed
}

func percentDelta(price, reference float64) float64 {
	if reference == 0 {
		return 0
	}
	return money.Round1(100 * (price - reference) / reference)
}

func finish(score float64) float64 {
	return money.Round1(min(10, max(1, score)))
}
