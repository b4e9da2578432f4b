package transform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tixmarket/internal/settings"
	"tixmarket/pkg/money"
)

// CurrencySymbol maps a currency code to its display symbol. Anything other
// than USD or EUR renders as pounds.
func CurrencySymbol(currency string) string {
	switch currency {
	case "USD":
		return "$"
	case "EUR":
		return "€"
	}
	return "£"
}

func currencyCode(ui settings.UI) string {
	if ui.Currency == "" {
		return "USD"
	}
	return ui.Currency
}

// FormatPrice renders a price with two decimals per ui.priceFormat.
func FormatPrice(price float64, ui settings.UI) string {
	amount := money.Fixed2(price)
	currency := currencyCode(ui)
	switch ui.PriceFormat {
	case settings.PriceFormatCode:
		return amount + " " + currency
	case settings.PriceFormatNumber:
		return amount
	}
	return CurrencySymbol(currency) + amount
}

// ParsePrice is the inverse of FormatPrice under the same ui options.
func ParsePrice(s string, ui settings.UI) (float64, error) {
	currency := currencyCode(ui)
	raw := strings.TrimSpace(s)
	switch ui.PriceFormat {
	case settings.PriceFormatCode:
		raw = strings.TrimSpace(strings.TrimSuffix(raw, currency))
	case settings.PriceFormatNumber:
	default:
		raw = strings.TrimPrefix(raw, CurrencySymbol(currency))
	}
	v, err := money.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return v, nil
}

var dateLayouts = map[string]string{
	settings.DateFormatUS:   "01/02/2006",
	settings.DateFormatEU:   "02/01/2006",
	settings.DateFormatISO:  "2006-01-02",
	settings.DateFormatFull: "Monday, January 2, 2006",
}

// FormatDate renders t in UTC per ui.dateFormat. Unknown formats fall back
// to an unpadded M/D/YYYY.
func FormatDate(t time.Time, format string) string {
	layout, ok := dateLayouts[format]
	if !ok {
		layout = "1/2/2006"
	}
	return t.UTC().Format(layout)
}

// FormatSeats renders "Seat N" for one seat, "A-B" for a consecutive run and
// a comma-joined list otherwise.
func FormatSeats(seats []int) string {
	switch len(seats) {
	case 0:
		return ""
	case 1:
		return "Seat " + strconv.Itoa(seats[0])
	}
	consecutive := true
	for i := 1; i < len(seats); i++ {
		if seats[i] != seats[i-1]+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return fmt.Sprintf("%d-%d", seats[0], seats[len(seats)-1])
	}
	parts := make([]string, len(seats))
	for i, s := range seats {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ", ")
}

// SupplyLabel buckets an event's listing count.
func SupplyLabel(count int) string {
	switch {
	case count > 500:
		return "high"
	case count > 100:
		return "medium"
	}
	return "low"
}

func describe(description, mode string) string {
	switch mode {
	case settings.DescriptionsBrief:
		first, _, _ := strings.Cut(description, ".")
		return first + "."
	case settings.DescriptionsMinimal:
		return ""
	}
	return description
}
