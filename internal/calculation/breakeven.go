package calculation

import (
	"fmt"

	"github.com/rpgo/fixedincome/internal/domain"
	"github.com/shopspring/decimal"
)

// Defaults for the breakeven bisection.
var (
	DefaultBreakevenMin       = decimal.Zero
	DefaultBreakevenMax       = decimal.NewFromInt(50)
	DefaultBreakevenTolerance = decimal.NewFromInt(100)
)

// DefaultBreakevenIterations caps the bisection.
const DefaultBreakevenIterations = 100

// BreakevenOptions bounds the search. Zero values take the defaults.
type BreakevenOptions struct {
	MinRate       decimal.Decimal
	MaxRate       decimal.Decimal
	Tolerance     decimal.Decimal
	MaxIterations int
}

// BreakevenOptionsFromSettings maps the input file's breakeven block.
func BreakevenOptionsFromSettings(s domain.BreakevenSettings) BreakevenOptions {
	return BreakevenOptions{
		MinRate:       s.MinRate,
		MaxRate:       s.MaxRate,
		Tolerance:     s.Tolerance,
		MaxIterations: s.MaxIterations,
	}
}

func (o BreakevenOptions) withDefaults() BreakevenOptions {
	if o.MinRate.IsZero() && o.MaxRate.IsZero() {
		o.MinRate, o.MaxRate = DefaultBreakevenMin, DefaultBreakevenMax
	}
	if !o.Tolerance.IsPositive() {
		o.Tolerance = DefaultBreakevenTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultBreakevenIterations
	}
	return o
}

// BreakevenResult is the rate at which the proposed asset's final value matches the current one.
// Converged is false when the iteration budget ran out; Rate is then the last midpoint and Gap
// the distance still left.
type BreakevenResult struct {
	Rate         decimal.Decimal `json:"rate"`
	Iterations   int             `json:"iterations"`
	Converged    bool            `json:"converged"`
	Gap          decimal.Decimal `json:"gap"` // proposed - current at Rate
	Tolerance    decimal.Decimal `json:"tolerance"`
	CurrentFinal decimal.Decimal `json:"current_final"`
}

// SolveBreakeven bisects the proposed template's Rate between the option bounds. Assumes the
// proposed final value increases with its rate.
func SolveBreakeven(current, proposedTemplate domain.Asset, path domain.AssumptionPath, horizon int, opts BreakevenOptions) (*BreakevenResult, error) {
	if err := validateInputs(path, horizon, current, proposedTemplate); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if opts.MinRate.GreaterThanOrEqual(opts.MaxRate) {
		return nil, fmt.Errorf("%w: breakeven bounds must satisfy min < max, got [%s, %s]",
			domain.ErrInvalidInput, opts.MinRate.String(), opts.MaxRate.String())
	}
	current, proposedTemplate = current.Normalized(), proposedTemplate.Normalized()

	target := project(current, path, horizon).FinalValue
	lower, upper := opts.MinRate, opts.MaxRate
	two := decimal.NewFromInt(2)

	result := &BreakevenResult{Tolerance: opts.Tolerance, CurrentFinal: target}
	for i := 0; i < opts.MaxIterations; i++ {
		mid := lower.Add(upper).Div(two)
		gap := project(proposedTemplate.WithRate(mid), path, horizon).FinalValue.Sub(target)

		result.Rate = mid
		result.Gap = gap
		result.Iterations = i + 1

		if gap.Abs().LessThan(opts.Tolerance) {
			result.Converged = true
			return result, nil
		}

		if gap.IsPositive() {
			// Proposed is ahead, lower its rate
			upper = mid
		} else {
			lower = mid
		}
	}
	return result, nil
}
