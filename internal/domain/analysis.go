package domain

import "github.com/shopspring/decimal"

// Trend is the direction of a single rate series from its first to its last year.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// MacroRegime summarizes the joint drift of CDI and IPCA over the assumption path.
type MacroRegime string

const (
	RegimeNormalization        MacroRegime = "normalization"
	RegimeTightening           MacroRegime = "tightening"
	RegimeEasing               MacroRegime = "easing"
	RegimePreventiveTightening MacroRegime = "preventive tightening"
	RegimeStagflationPressure  MacroRegime = "stagflation pressure"
	RegimeStable               MacroRegime = "stable"
)

var regimeDescriptions = map[MacroRegime]string{
	RegimeNormalization:        "monetary normalization, with both the policy rate and inflation expected to fall",
	RegimeTightening:           "monetary tightening, with rising rates and inflationary pressure",
	RegimeEasing:               "monetary easing, with falling rates and stable inflation",
	RegimePreventiveTightening: "preventive tightening, with rates rising ahead of future inflation",
	RegimeStagflationPressure:  "inflationary pressure with stable rates, a moderate stagflation setting",
	RegimeStable:               "macroeconomic stability, with rates and inflation roughly constant",
}

// Description is a one-sentence reading of the regime.
func (r MacroRegime) Description() string { return regimeDescriptions[r] }

// AssumptionTrend is the qualitative reading of an assumption path.
type AssumptionTrend struct {
	Regime      MacroRegime     `json:"regime"`
	Description string          `json:"description"`
	CDIDrift    decimal.Decimal `json:"cdi_drift"`
	IPCADrift   decimal.Decimal `json:"ipca_drift"`
	CDIMean     decimal.Decimal `json:"cdi_mean"`
	IPCAMean    decimal.Decimal `json:"ipca_mean"`
	CDITrend    Trend           `json:"cdi_trend"`
	IPCATrend   Trend           `json:"ipca_trend"`
}

// Action is the recommendation for the position.
type Action string

const (
	ActionMigrate  Action = "MIGRATE"
	ActionConsider Action = "CONSIDER"
	ActionKeep     Action = "KEEP"
)

// RiskReturnTier grades the Sharpe-like ratio.
type RiskReturnTier string

const (
	RiskReturnExcellent RiskReturnTier = "Excellent"
	RiskReturnGood      RiskReturnTier = "Good"
	RiskReturnModerate  RiskReturnTier = "Moderate"
)

// Recommendation combines the deterministic advantage with the simulated probability.
type Recommendation struct {
	Action          Action         `json:"action"`
	RiskReturn      RiskReturnTier `json:"risk_return"`
	Rationale       string         `json:"rationale"`
	RegimeAlignment string         `json:"regime_alignment,omitempty"`
}
