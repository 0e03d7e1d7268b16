package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CentsFromDollars converts a two-decimal dollar amount into integer cents.
// The conversion goes through decimal arithmetic so float inputs like 59.99
// do not lose a cent on the way in.
func CentsFromDollars(dollars float64) int64 {
	return decimal.NewFromFloat(dollars).Mul(hundred).Round(0).IntPart()
}

// DollarsFromCents converts integer cents into a dollar amount.
func DollarsFromCents(cents int64) float64 {
	f, _ := decimal.NewFromInt(cents).Div(hundred).Float64()
	return f
}
