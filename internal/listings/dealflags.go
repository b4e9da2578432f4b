package listings

import (
	"strings"

	"tixmarket/internal/zones"
	"tixmarket/pkg/randsrc"
)

// GenerateDealFlags tags a listing at creation time. Flags are never
// recomputed afterwards.
func GenerateDealFlags(rnd randsrc.Source, price, basePrice float64, section string, notes []string) []DealFlag {
	flags := []DealFlag{}
	ratio := 1.0
	if basePrice > 0 {
		ratio = price / basePrice
	}

	if ratio < 0.7 {
		flags = append(flags, FlagGreatDeal)
	}
	if ratio < 0.6 {
		flags = append(flags, FlagFantasticValue)
	}
	if ratio < 0.8 && zones.ForSection(section) == zones.ZoneLowerBowl {
		flags = append(flags, FlagBestValue)
	}
	if rnd.Float64() < 0.2 {
		flags = append(flags, FlagFeatured)
	}
	if notesMention(notes, "clear") {
		flags = append(flags, FlagClearView)
	}
	if notesMention(notes, "aisle") {
		flags = append(flags, FlagAisleSeat)
	}
	if rnd.Float64() < 0.15 {
		flags = append(flags, FlagSellingFast)
	}
	return flags
}

func notesMention(notes []string, term string) bool {
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n), term) {
			return true
		}
	}
	return false
}
