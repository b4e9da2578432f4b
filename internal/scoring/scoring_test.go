package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixmarket/internal/listings"
	"tixmarket/internal/zones"
	"tixmarket/pkg/clock"
	"tixmarket/pkg/randsrc"
)

func listing(id int, price float64, zone zones.Zone) listings.Listing {
	return listings.Listing{
		ID:             id,
		EventID:        1,
		PricePerTicket: price,
		StadiumZone:    zone,
		FieldProximity: 5,
		SeatType:       zones.SeatTypeSeated,
		DemandLevel:    listings.DemandMedium,
		DealFlags:      []listings.DealFlag{},
	}
}

func cohortOf(ps ...float64) []listings.Listing {
	out := make([]listings.Listing, len(ps))
	for i, p := range ps {
		out[i] = listing(100+i, p, zones.ZoneMezzanine)
	}
	return out
}

func TestMedianUsesUpperMiddle(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 7.0, Median([]float64{7}))
	assert.Equal(t, 30.0, Median([]float64{40, 10, 30, 20}))
	assert.Equal(t, 20.0, Median([]float64{30, 10, 20}))
}

func TestDealScoreLinearScale(t *testing.T) {
	cohort := cohortOf(50, 100, 150)
	l := listing(1, 100, zones.ZoneMezzanine)
	assert.Equal(t, 5.5, DealScore(l, cohort))

	cheapest := listing(2, 50, zones.ZoneMezzanine)
	assert.Equal(t, 10.0, DealScore(cheapest, cohort))

	priciest := listing(3, 150, zones.ZoneMezzanine)
	assert.Equal(t, 1.0, DealScore(priciest, cohort))
}

func TestDealScoreLowerBowlBonusIsClamped(t *testing.T) {
	cohort := cohortOf(80, 100, 120)
	l := listing(1, 80, zones.ZoneLowerBowl)
	assert.Equal(t, 10.0, DealScore(l, cohort))
}

func TestDealScoreAdjustments(t *testing.T) {
	cohort := cohortOf(50, 100, 150)

	l := listing(1, 100, zones.ZoneMezzanine)
	l.DealFlags = []listings.DealFlag{listings.FlagGreatDeal, listings.FlagFantasticValue, listings.FlagBestValue, listings.FlagFeatured}
	l.DemandLevel = listings.DemandHigh
	assert.Equal(t, 6.7, DealScore(l, cohort))

	l = listing(1, 130, zones.ZoneUpperDeck)
	l.DemandLevel = listings.DemandLow
	// 10 - 0.8*9 = 2.8, -0.2 low demand, -0.3 upper deck above median
	assert.Equal(t, 2.3, DealScore(l, cohort))
}

func TestFlatMarketIsNeutral(t *testing.T) {
	cohort := cohortOf(75, 75, 75)
	l := cohort[1]
	l.DealFlags = []listings.DealFlag{listings.FlagGreatDeal}

	assert.Equal(t, 5.0, DealScore(l, cohort))

	rv := CalculateRelativeValue(l, cohort)
	assert.Zero(t, rv.PriceVsMedian)
	assert.Zero(t, rv.PriceVsSimilarSeats)
	assert.Equal(t, 75.0, rv.MarketValue)
	assert.Zero(t, rv.SavingsAmount)
	assert.Zero(t, rv.SavingsPercent)
}

func TestSingleListingCohort(t *testing.T) {
	l := listing(1, 42, zones.ZoneClub)
	cohort := []listings.Listing{l}
	assert.Equal(t, 5.0, DealScore(l, cohort))

	rv := CalculateRelativeValue(l, cohort)
	assert.Zero(t, rv.PriceVsMedian)
	assert.Zero(t, rv.PriceVsSimilarSeats)
	assert.Equal(t, 42.0, rv.MarketValue)
}

func TestEmptyCohortDefaults(t *testing.T) {
	l := listing(1, 64.5, zones.ZoneClub)
	assert.Equal(t, 5.0, DealScore(l, nil))
	assert.Equal(t, 5.0, ValueScore(l, nil))
	assert.Equal(t, RelativeValue{MarketValue: 64.5}, CalculateRelativeValue(l, nil))
}

func TestValueScore(t *testing.T) {
	cohort := cohortOf(50, 100, 150)

	l := listing(1, 100, zones.ZoneLowerBowl)
	l.FieldProximity = 8
	assert.Equal(t, 4.0, ValueScore(l, cohort))

	l.SeatType = zones.SeatTypeObstructedView
	assert.Equal(t, 3.0, ValueScore(l, cohort))

	l.SeatType = zones.SeatTypeSeated
	l.DealFlags = []listings.DealFlag{listings.FlagClearView}
	l.BundleOptions = &listings.BundleOptions{VIPAccess: true}
	assert.Equal(t, 4.8, ValueScore(l, cohort))

	standing := listing(2, 150, zones.ZoneLowerBowl)
	standing.SeatType = zones.SeatTypeStandingRoom
	standing.FieldProximity = 9
	// 0.9 * (100/150) * 5 = 3.0, ratio 1.5 > 1.2
	assert.Equal(t, 2.5, ValueScore(standing, cohort))

	bargain := listing(3, 10, zones.ZoneLowerBowl)
	bargain.FieldProximity = 10
	assert.Equal(t, 10.0, ValueScore(bargain, cohort))

	empty := listing(4, 100, zones.ZoneLowerBowl)
	empty.BundleOptions = &listings.BundleOptions{}
	assert.Equal(t, 2.5, ValueScore(empty, cohort))
}

func TestCalculateRelativeValue(t *testing.T) {
	a := listing(1, 80, zones.ZoneLowerBowl)
	b := listing(2, 120, zones.ZoneLowerBowl)
	c := listing(3, 100, zones.ZoneUpperDeck)
	cohort := []listings.Listing{a, b, c}

	rv := CalculateRelativeValue(a, cohort)
	assert.Equal(t, -20.0, rv.PriceVsMedian)
	assert.Equal(t, -33.3, rv.PriceVsSimilarSeats)
	assert.Equal(t, 100.0, rv.MarketValue)
	assert.Equal(t, 20.0, rv.SavingsAmount)
	assert.Equal(t, 20.0, rv.SavingsPercent)

	// no other upper deck listing: similar seats fall back to the median
	rv = CalculateRelativeValue(c, cohort)
	assert.Zero(t, rv.PriceVsMedian)
	assert.Zero(t, rv.PriceVsSimilarSeats)
	assert.Zero(t, rv.SavingsAmount)

	rv = CalculateRelativeValue(b, cohort)
	assert.Equal(t, 20.0, rv.PriceVsMedian)
	assert.Equal(t, 50.0, rv.PriceVsSimilarSeats)
	assert.Zero(t, rv.SavingsAmount)
	assert.Zero(t, rv.SavingsPercent)
}

func TestPriceAtMarketValueHasNoSavings(t *testing.T) {
	cohort := cohortOf(50, 100, 150)
	rv := CalculateRelativeValue(cohort[1], cohort)
	require.Equal(t, 100.0, rv.MarketValue)
	assert.Zero(t, rv.SavingsAmount)
	assert.Zero(t, rv.SavingsPercent)
}

func TestCohortIsNotMutated(t *testing.T) {
	cohort := cohortOf(150, 50, 100)
	DealScore(cohort[0], cohort)
	ValueScore(cohort[0], cohort)
	CalculateRelativeValue(cohort[0], cohort)
	assert.Equal(t, []float64{150, 50, 100}, prices(cohort))
}

func TestScoresStayInRangeForGeneratedCatalogs(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for seed := int64(1); seed <= 25; seed++ {
		gen := listings.NewGenerator(randsrc.New(seed), clock.NewFixed(now))
		cohort := gen.Generate(1, 150)
		for _, l := range cohort {
			deal := DealScore(l, cohort)
			value := ValueScore(l, cohort)
			assert.GreaterOrEqual(t, deal, 1.0)
			assert.LessOrEqual(t, deal, 10.0)
			assert.GreaterOrEqual(t, value, 1.0)
			assert.LessOrEqual(t, value, 10.0)

			rv := CalculateRelativeValue(l, cohort)
			assert.GreaterOrEqual(t, rv.SavingsAmount, 0.0)
			assert.GreaterOrEqual(t, rv.SavingsPercent, 0.0)
		}
	}
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, ColorGreen, ColorFor(10))
	assert.Equal(t, ColorGreen, ColorFor(8))
	assert.Equal(t, ColorYellow, ColorFor(7.9))
	assert.Equal(t, ColorYellow, ColorFor(5))
	assert.Equal(t, ColorRed, ColorFor(4.9))
	assert.Equal(t, ColorRed, ColorFor(1))
}
