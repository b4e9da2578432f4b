// Package money holds the rounding and fixed-point formatting rules shared by
// the generator, the scoring engine and the response transformer.
package money

import "github.com/shopspring/decimal"

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Round1 rounds to one decimal place (scores and percentages).
func Round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

// Fixed2 renders v with exactly two decimals.
func Fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Parse reads a plain decimal string back into a float rounded to cents.
func Parse(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.Round(2).InexactFloat64(), nil
}
