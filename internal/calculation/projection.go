package calculation

import (
	"fmt"

	"github.com/rpgo/fixedincome/internal/domain"
	fidec "github.com/rpgo/fixedincome/pkg/decimal"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Project values an asset year by year from its principal up to horizon under the given
// assumption path. The asset is validated and normalized first; the path is never modified.
func Project(asset domain.Asset, path domain.AssumptionPath, horizon int) (domain.ProjectionResult, error) {
	if err := validateInputs(path, horizon, asset); err != nil {
		return domain.ProjectionResult{}, err
	}
	return project(asset.Normalized(), path, horizon), nil
}

func validateInputs(path domain.AssumptionPath, horizon int, assets ...domain.Asset) error {
	for _, a := range assets {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	if err := path.Validate(); err != nil {
		return err
	}
	return domain.ValidateHorizon(horizon)
}

// project assumes validated, normalized inputs. Used directly by the draw and bisection loops.
func project(asset domain.Asset, path domain.AssumptionPath, horizon int) domain.ProjectionResult {
	principal := asset.Principal
	value := principal
	points := make([]domain.ProjectionPoint, 0, horizon+1)
	points = append(points, domain.ProjectionPoint{Year: 0, Value: value, CumulativeReturn: decimal.Zero})

	withholdAtMaturity := asset.TaxTiming == domain.TaxAtMaturity && asset.Term < horizon
	withheld := decimal.Zero

	for y := 1; y <= horizon; y++ {
		reinvesting := y > asset.Term
		var factor decimal.Decimal
		if reinvesting {
			factor = growthFactor(asset.Reinvestment.Kind, asset.Reinvestment.Rate, path, y)
		} else {
			factor = growthFactor(asset.Indexer, asset.Rate, path, y)
		}
		value = value.Mul(factor)

		if withholdAtMaturity && y == asset.Term {
			withheld = incomeTax(value, principal, asset.TaxRate)
			value = value.Sub(withheld)
		}

		points = append(points, domain.ProjectionPoint{
			Year:             y,
			Value:            value,
			CumulativeReturn: annualizedReturn(principal, value, y),
			Reinvesting:      reinvesting,
		})
	}

	result := domain.ProjectionResult{Points: points}
	if withholdAtMaturity {
		result.FinalValue = value
		result.TaxWithheld = withheld
		result.GrossValue = value.Add(withheld)
		return result
	}
	result.GrossValue = value
	result.TaxWithheld = incomeTax(value, principal, asset.TaxRate)
	result.FinalValue = value.Sub(result.TaxWithheld)
	return result
}

// growthFactor is 1 + the year's rate as a fraction:
// fixed rate/100, floating (cdi/100)(rate/100), inflation ipca/100 + rate/100.
func growthFactor(kind domain.Indexer, rate decimal.Decimal, path domain.AssumptionPath, year int) decimal.Decimal {
	switch kind {
	case domain.IndexerFixed:
		return fidec.GrowthFactor(rate)
	case domain.IndexerFloating:
		return one.Add(fidec.Fraction(path.CDIAt(year)).Mul(fidec.Fraction(rate)))
	case domain.IndexerInflation:
		return fidec.GrowthFactor(path.IPCAAt(year).Add(rate))
	}
	return one
}

// incomeTax is withheld on the whole gain. A loss yields a negative amount (a credit).
func incomeTax(value, principal, taxRate decimal.Decimal) decimal.Decimal {
	gain := fidec.NewMoneyFromDecimal(value).Gain(fidec.NewMoneyFromDecimal(principal))
	return gain.Tax(taxRate).Decimal
}

// annualizedReturn is ((value/principal)^(1/years) - 1) * 100.
func annualizedReturn(principal, value decimal.Decimal, years int) decimal.Decimal {
	return fidec.AnnualizedPercent(principal, value, years)
}

// Compare projects both assets over the shared horizon and summarizes the difference.
func Compare(current, proposed domain.Asset, path domain.AssumptionPath) (*domain.Comparison, error) {
	horizon := domain.Horizon(current, proposed)
	if err := validateInputs(path, horizon, current, proposed); err != nil {
		return nil, err
	}
	return compare(current.Normalized(), proposed.Normalized(), path, horizon), nil
}

func compare(current, proposed domain.Asset, path domain.AssumptionPath, horizon int) *domain.Comparison {
	cur := project(current, path, horizon)
	prop := project(proposed, path, horizon)
	advantage := prop.FinalValue.Sub(cur.FinalValue)

	cmp := &domain.Comparison{
		Horizon:             horizon,
		Current:             cur,
		Proposed:            prop,
		Advantage:           advantage,
		AnnualizedAdvantage: annualizedReturn(cur.FinalValue, prop.FinalValue, horizon),
	}
	if !cur.FinalValue.IsZero() {
		cmp.AdvantagePercent = fidec.Percent(advantage.Div(cur.FinalValue))
	}
	return cmp
}

// FinalValue is a convenience wrapper around Project for callers that only need the end value.
func FinalValue(asset domain.Asset, path domain.AssumptionPath, horizon int) (decimal.Decimal, error) {
	res, err := Project(asset, path, horizon)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to project %s asset: %w", asset.Indexer, err)
	}
	return res.FinalValue, nil
}
