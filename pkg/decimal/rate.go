package decimal

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	one             = decimal.NewFromInt(1)
	minusOneHundred = decimal.NewFromInt(-100)
)

// Fraction converts a percent (12.5) into a fraction (0.125). Exact.
func Fraction(percent decimal.Decimal) decimal.Decimal {
	return percent.Shift(-2)
}

// Percent converts a fraction into a percent. Exact.
func Percent(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Shift(2)
}

// GrowthFactor is 1 + percent/100.
func GrowthFactor(percent decimal.Decimal) decimal.Decimal {
	return one.Add(Fraction(percent))
}

// AnnualizedPercent is ((end/start)^(1/years) - 1) * 100, rounded to 6 places.
// It returns 0 for a zero start or non-positive years, and -100 when end/start <= 0.
func AnnualizedPercent(start, end decimal.Decimal, years int) decimal.Decimal {
	if start.IsZero() || years <= 0 {
		return decimal.Zero
	}
	ratio := end.Div(start).InexactFloat64()
	if ratio <= 0 {
		return minusOneHundred
	}
	r := (math.Pow(ratio, 1/float64(years)) - 1) * 100
	return decimal.NewFromFloat(r).Round(6)
}
