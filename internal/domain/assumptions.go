package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AssumptionPath holds the yearly macro rates (percent a.a.) the projection is run against.
// Year indexes past the end of a series reuse its last value.
type AssumptionPath struct {
	CDI  []decimal.Decimal `yaml:"cdi" json:"cdi"`
	IPCA []decimal.Decimal `yaml:"ipca" json:"ipca"`
}

// NewAssumptionPath builds a path from plain percentages.
func NewAssumptionPath(cdi, ipca []float64) AssumptionPath {
	return AssumptionPath{CDI: fromFloats(cdi), IPCA: fromFloats(ipca)}
}

func fromFloats(values []float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

// CDIAt returns the reference rate for a 1-based projection year.
func (ap AssumptionPath) CDIAt(year int) decimal.Decimal { return rateAt(ap.CDI, year) }

// IPCAAt returns the inflation rate for a 1-based projection year.
func (ap AssumptionPath) IPCAAt(year int) decimal.Decimal { return rateAt(ap.IPCA, year) }

func rateAt(series []decimal.Decimal, year int) decimal.Decimal {
	idx := year - 1
	if idx >= len(series) {
		idx = len(series) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return series[idx]
}

// Len is the number of explicit years in the path (the longer series).
func (ap AssumptionPath) Len() int {
	if len(ap.IPCA) > len(ap.CDI) {
		return len(ap.IPCA)
	}
	return len(ap.CDI)
}

// Clone returns an independent copy.
func (ap AssumptionPath) Clone() AssumptionPath {
	return AssumptionPath{
		CDI:  append([]decimal.Decimal(nil), ap.CDI...),
		IPCA: append([]decimal.Decimal(nil), ap.IPCA...),
	}
}

// Validate requires both series to be present and non-negative.
func (ap AssumptionPath) Validate() error {
	if len(ap.CDI) == 0 {
		return fmt.Errorf("%w: CDI path is empty", ErrInvalidInput)
	}
	if len(ap.IPCA) == 0 {
		return fmt.Errorf("%w: IPCA path is empty", ErrInvalidInput)
	}
	for i, r := range ap.CDI {
		if r.IsNegative() {
			return fmt.Errorf("%w: CDI year %d is negative (%s)", ErrInvalidInput, i+1, r.String())
		}
	}
	for i, r := range ap.IPCA {
		if r.IsNegative() {
			return fmt.Errorf("%w: IPCA year %d is negative (%s)", ErrInvalidInput, i+1, r.String())
		}
	}
	return nil
}

// Mean returns the arithmetic mean of both series.
func (ap AssumptionPath) Mean() (cdi, ipca decimal.Decimal) {
	return mean(ap.CDI), mean(ap.IPCA)
}

func mean(series []decimal.Decimal) decimal.Decimal {
	if len(series) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(series[0], series[1:]...).Div(decimal.NewFromInt(int64(len(series))))
}

// ValidateHorizon rejects horizons the engine cannot iterate.
func ValidateHorizon(horizon int) error {
	if horizon < 1 {
		return fmt.Errorf("%w: horizon must be at least 1 year, got %d", ErrInvalidInput, horizon)
	}
	return nil
}
