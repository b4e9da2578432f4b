package listings

import (
	"math"
	"time"

	"tixmarket/pkg/money"
	"tixmarket/pkg/randsrc"
)

const (
	historyStepDays = 7
	historyMaxDays  = 30
)

// DaysSince returns the number of whole days between listedAt and now.
func DaysSince(now, listedAt time.Time) int {
	return int(math.Floor(now.Sub(listedAt).Hours() / 24))
}

// SynthesizeHistory emits one entry per week since listing, capped at 30 days.
// Listings younger than a week have no history.
func SynthesizeHistory(rnd randsrc.Source, now time.Time, currentPrice float64, listedAt time.Time) []PriceEntry {
	history := []PriceEntry{}
	days := DaysSince(now, listedAt)
	if days < historyStepDays {
		return history
	}
	limit := min(days, historyMaxDays)
	for step := historyStepDays; step <= limit; step += historyStepDays {
		variation := 0.8 + rnd.Float64()*0.4
		history = append(history, PriceEntry{
			Date:  listedAt.AddDate(0, 0, step),
			Price: money.Round2(currentPrice * variation),
		})
	}
	return history
}

// PriceChange derives the week-ago price and percentage change.
func PriceChange(currentPrice float64, history []PriceEntry, daysSinceListed int) (price7DaysAgo, changePercent float64) {
	price7DaysAgo = currentPrice
	if daysSinceListed >= historyStepDays && len(history) > 0 {
		price7DaysAgo = history[0].Price
	}
	if daysSinceListed < historyStepDays || price7DaysAgo == 0 {
		return price7DaysAgo, 0
	}
	return price7DaysAgo, money.Round1(100 * (currentPrice - price7DaysAgo) / price7DaysAgo)
}

func TrendFor(changePercent float64) PriceTrend {
	switch {
	case changePercent > 5:
		return TrendIncreasing
	case changePercent < -5:
		return TrendDecreasing
	}
	return TrendStable
}

func DemandFor(viewCount int) DemandLevel {
	switch {
	case viewCount > 200:
		return DemandHigh
	case viewCount > 100:
		return DemandMedium
	}
	return DemandLow
}
