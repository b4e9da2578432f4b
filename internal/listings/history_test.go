package listings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixmarket/pkg/randsrc"
)

func TestSynthesizeHistoryTenDaysOld(t *testing.T) {
	listedAt := fixedNow.Add(-10 * 24 * time.Hour)
	history := SynthesizeHistory(randsrc.NewScripted(0.75), fixedNow, 100, listedAt)

	require.Len(t, history, 1)
	assert.Equal(t, listedAt.AddDate(0, 0, 7), history[0].Date)
	assert.Equal(t, 110.0, history[0].Price)

	price7, change := PriceChange(100, history, DaysSince(fixedNow, listedAt))
	assert.Equal(t, 110.0, price7)
	assert.Equal(t, -9.1, change)
	assert.Equal(t, TrendDecreasing, TrendFor(change))
}

func TestSynthesizeHistoryYoungListing(t *testing.T) {
	listedAt := fixedNow.Add(-6*24*time.Hour - 23*time.Hour)
	history := SynthesizeHistory(randsrc.NewScripted(0.5), fixedNow, 100, listedAt)
	assert.Empty(t, history)
	assert.NotNil(t, history)

	price7, change := PriceChange(100, history, DaysSince(fixedNow, listedAt))
	assert.Equal(t, 100.0, price7)
	assert.Zero(t, change)
}

func TestSynthesizeHistoryCapsAtThirtyDays(t *testing.T) {
	listedAt := fixedNow.AddDate(0, 0, -45)
	history := SynthesizeHistory(randsrc.NewScripted(0.5), fixedNow, 80, listedAt)

	require.Len(t, history, 4)
	for i, entry := range history {
		assert.Equal(t, listedAt.AddDate(0, 0, 7*(i+1)), entry.Date)
		assert.Equal(t, 80.0, entry.Price)
	}
}

func TestSynthesizeHistoryPriceBand(t *testing.T) {
	listedAt := fixedNow.AddDate(0, 0, -29)
	history := SynthesizeHistory(randsrc.New(7), fixedNow, 200, listedAt)
	require.Len(t, history, 4)
	for _, entry := range history {
		assert.GreaterOrEqual(t, entry.Price, 160.0)
		assert.LessOrEqual(t, entry.Price, 240.0)
	}
}

func TestTrendAndDemand(t *testing.T) {
	assert.Equal(t, TrendIncreasing, TrendFor(5.1))
	assert.Equal(t, TrendStable, TrendFor(5))
	assert.Equal(t, TrendStable, TrendFor(-5))
	assert.Equal(t, TrendDecreasing, TrendFor(-5.1))

	assert.Equal(t, DemandHigh, DemandFor(201))
	assert.Equal(t, DemandMedium, DemandFor(200))
	assert.Equal(t, DemandMedium, DemandFor(101))
	assert.Equal(t, DemandLow, DemandFor(100))
}

func TestGeneratorHistoryUsesClock(t *testing.T) {
	gen := NewGenerator(randsrc.NewScripted(0.5), fixedClock())
	history := gen.History(100, fixedNow.AddDate(0, 0, -15))
	assert.Len(t, history, 2)
}
