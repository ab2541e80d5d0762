package domain

import (
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Configuration is the root of an input file.
type Configuration struct {
	Assumptions AssumptionPath       `yaml:"assumptions" json:"assumptions"`
	Current     Asset                `yaml:"current" json:"current"`
	Proposed    Asset                `yaml:"proposed" json:"proposed"`
	Simulation  SimulationSettings   `yaml:"simulation,omitempty" json:"simulation"`
	Breakeven   BreakevenSettings    `yaml:"breakeven,omitempty" json:"breakeven"`
	Scenarios   []ScenarioDefinition `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
	Impact      ImpactThresholds     `yaml:"impact,omitempty" json:"impact"`
	Logging     LoggingConfig        `yaml:"logging,omitempty" json:"logging"`
	Output      OutputConfig         `yaml:"output,omitempty" json:"output"`
}

// SimulationSettings configures the Monte Carlo run. Zero values take the defaults.
type SimulationSettings struct {
	NumSimulations int          `yaml:"simulations,omitempty" json:"simulations"`
	Seed           int64        `yaml:"seed,omitempty" json:"seed"`
	Workers        int          `yaml:"workers,omitempty" json:"workers"`
	Noise          *NoiseBounds `yaml:"noise,omitempty" json:"noise,omitempty"` // nil takes DefaultNoiseBounds
}

// NoiseBounds sets the uniform perturbation width and floor (percent) per rate family.
// Zero ranges make every draw identical. Disabled skips perturbation altogether, floors
// included, so every draw is the base path.
type NoiseBounds struct {
	CDIRange  decimal.Decimal `yaml:"cdi_range" json:"cdi_range"`
	CDIFloor  decimal.Decimal `yaml:"cdi_floor" json:"cdi_floor"`
	IPCARange decimal.Decimal `yaml:"ipca_range" json:"ipca_range"`
	IPCAFloor decimal.Decimal `yaml:"ipca_floor" json:"ipca_floor"`
	Disabled  bool            `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// DefaultNoiseBounds reflects the wider historical swings of CDI relative to IPCA:
// CDI ±2.0 p.p. floored at 1%, IPCA ±1.5 p.p. floored at 0.5%.
func DefaultNoiseBounds() NoiseBounds {
	return NoiseBounds{
		CDIRange:  decimal.NewFromInt(4),
		CDIFloor:  decimal.NewFromInt(1),
		IPCARange: decimal.NewFromInt(3),
		IPCAFloor: decimal.NewFromFloat(0.5),
	}
}

// ZeroNoise keeps the floors but removes all randomness.
func ZeroNoise() NoiseBounds {
	nb := DefaultNoiseBounds()
	nb.CDIRange = decimal.Zero
	nb.IPCARange = decimal.Zero
	nb.Disabled = true
	return nb
}

// UnmarshalYAML starts from DefaultNoiseBounds, so keys left out of the block keep
// their defaults and explicit zeros stay zero.
func (nb *NoiseBounds) UnmarshalYAML(value *yaml.Node) error {
	type plain NoiseBounds
	decoded := plain(DefaultNoiseBounds())
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*nb = NoiseBounds(decoded)
	return nil
}

// Deterministic reports whether every draw sees the same path.
func (nb NoiseBounds) Deterministic() bool {
	return nb.Disabled || (nb.CDIRange.IsZero() && nb.IPCARange.IsZero())
}

// BreakevenSettings bounds the bisection. Zero values take the defaults.
type BreakevenSettings struct {
	MinRate       decimal.Decimal `yaml:"min_rate,omitempty" json:"min_rate"`
	MaxRate       decimal.Decimal `yaml:"max_rate,omitempty" json:"max_rate"`
	Tolerance     decimal.Decimal `yaml:"tolerance,omitempty" json:"tolerance"`
	MaxIterations int             `yaml:"max_iterations,omitempty" json:"max_iterations"`
}

// ImpactThresholds splits absolute advantages into Low/Medium/High.
type ImpactThresholds struct {
	Medium decimal.Decimal `yaml:"medium,omitempty" json:"medium"`
	High   decimal.Decimal `yaml:"high,omitempty" json:"high"`
}

// DefaultImpactThresholds: below 10k is Low, below 50k Medium, otherwise High.
func DefaultImpactThresholds() ImpactThresholds {
	return ImpactThresholds{Medium: decimal.NewFromInt(10000), High: decimal.NewFromInt(50000)}
}

// Tier classifies an advantage by magnitude.
func (it ImpactThresholds) Tier(advantage decimal.Decimal) ImpactTier {
	abs := advantage.Abs()
	switch {
	case abs.LessThan(it.Medium):
		return ImpactLow
	case abs.LessThan(it.High):
		return ImpactMedium
	default:
		return ImpactHigh
	}
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`   // debug, info, warn, error
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // json, console
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// Normalize fills defaults left out of the input file: reinvestment policies, tax timing,
// the proposed principal (the comparison uses equal capital), noise, impact tiers and
// the scenario catalog.
func (c *Configuration) Normalize() {
	if c.Proposed.Principal.IsZero() {
		c.Proposed.Principal = c.Current.Principal
	}
	c.Current = c.Current.Normalized()
	c.Proposed = c.Proposed.Normalized()
	if c.Simulation.Noise == nil {
		nb := DefaultNoiseBounds()
		c.Simulation.Noise = &nb
	}
	if c.Impact.Medium.IsZero() && c.Impact.High.IsZero() {
		c.Impact = DefaultImpactThresholds()
	}
	if len(c.Scenarios) == 0 {
		c.Scenarios = DefaultScenarioCatalog()
	}
}

// Horizon is the comparison window for this configuration.
func (c *Configuration) Horizon() int {
	return Horizon(c.Current, c.Proposed)
}
