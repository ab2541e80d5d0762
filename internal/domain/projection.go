package domain

import (
	"github.com/shopspring/decimal"
)

// ProjectionPoint is the position value at the end of one projection year.
type ProjectionPoint struct {
	Year             int             `json:"year"`
	Value            decimal.Decimal `json:"value"`
	CumulativeReturn decimal.Decimal `json:"cumulative_return"` // annualized since year 0, percent
	Reinvesting      bool            `json:"reinvesting"`
}

// ProjectionResult is the year-by-year series of one asset plus its after-tax final value.
// GrossValue is always FinalValue + TaxWithheld. With horizon timing that is the pre-tax
// balance at the horizon; with maturity timing the reinvestment leg compounds the after-tax
// proceeds, so GrossValue is less than the pre-tax balance compounded to the horizon.
type ProjectionResult struct {
	Points      []ProjectionPoint `json:"points"`
	GrossValue  decimal.Decimal   `json:"gross_value"`
	TaxWithheld decimal.Decimal   `json:"tax_withheld"`
	FinalValue  decimal.Decimal   `json:"final_value"`
}

// Horizon returns the last projected year.
func (pr ProjectionResult) Horizon() int {
	if len(pr.Points) == 0 {
		return 0
	}
	return pr.Points[len(pr.Points)-1].Year
}

// Comparison is the deterministic head-to-head of the two assets under the base path.
type Comparison struct {
	Horizon             int              `json:"horizon"`
	Current             ProjectionResult `json:"current"`
	Proposed            ProjectionResult `json:"proposed"`
	Advantage           decimal.Decimal  `json:"advantage"`
	AdvantagePercent    decimal.Decimal  `json:"advantage_percent"`
	AnnualizedAdvantage decimal.Decimal  `json:"annualized_advantage"`
}

// ScenarioResult is one row of the scenario table.
type ScenarioResult struct {
	Name                string          `json:"name"`
	Kind                ScenarioKind    `json:"kind"`
	Weight              decimal.Decimal `json:"weight"`
	Path                AssumptionPath  `json:"path"`
	CurrentFinal        decimal.Decimal `json:"current_final"`
	ProposedFinal       decimal.Decimal `json:"proposed_final"`
	Advantage           decimal.Decimal `json:"advantage"`
	AnnualizedAdvantage decimal.Decimal `json:"annualized_advantage"`
	Favorable           bool            `json:"favorable"`
	Impact              ImpactTier      `json:"impact"`
}

// ImpactTier buckets the absolute size of a scenario's advantage.
type ImpactTier string

const (
	ImpactLow    ImpactTier = "Low"
	ImpactMedium ImpactTier = "Medium"
	ImpactHigh   ImpactTier = "High"
)

// AssetMetrics are closed-form descriptors of an asset, independent of any simulation.
type AssetMetrics struct {
	ModifiedDuration decimal.Decimal `json:"modified_duration"`
	AnnualCarry      decimal.Decimal `json:"annual_carry"` // percent a.a., first year
	NetCarry         decimal.Decimal `json:"net_carry"`    // after withholding
	DV01             decimal.Decimal `json:"dv01"`
}

// ScenarioAnalysis groups the scenario table with its weighted summary.
type ScenarioAnalysis struct {
	Scenarios         []ScenarioResult `json:"scenarios"`
	ExpectedAdvantage decimal.Decimal  `json:"expected_advantage"`
	FavorableWeight   decimal.Decimal  `json:"favorable_weight"`
	CurrentMetrics    AssetMetrics     `json:"current_metrics"`
	ProposedMetrics   AssetMetrics     `json:"proposed_metrics"`
}
