package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ScenarioKind names the shape of change a scenario applies to the base path.
type ScenarioKind string

const (
	ScenarioBase       ScenarioKind = "base"
	ScenarioParallel   ScenarioKind = "parallel"
	ScenarioSteepening ScenarioKind = "steepening"
	ScenarioFlattening ScenarioKind = "flattening"
	ScenarioTwist      ScenarioKind = "twist"
	ScenarioFlat       ScenarioKind = "flat" // narrative macro state: every year overridden
)

// ScenarioDefinition is one entry of the scenario catalog. For shift kinds CDI/IPCA are
// magnitudes in percentage points; for flat scenarios they are the overriding levels.
type ScenarioDefinition struct {
	Name        string          `yaml:"name" json:"name"`
	Kind        ScenarioKind    `yaml:"kind" json:"kind"`
	Weight      decimal.Decimal `yaml:"weight" json:"weight"`
	CDI         decimal.Decimal `yaml:"cdi" json:"cdi"`
	IPCA        decimal.Decimal `yaml:"ipca" json:"ipca"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
}

// Validate checks the definition can be applied to a path.
func (sd ScenarioDefinition) Validate() error {
	if sd.Name == "" {
		return fmt.Errorf("%w: scenario name is required", ErrInvalidInput)
	}
	switch sd.Kind {
	case ScenarioBase, ScenarioParallel, ScenarioSteepening, ScenarioFlattening, ScenarioTwist:
	case ScenarioFlat:
		if sd.CDI.IsNegative() || sd.IPCA.IsNegative() {
			return fmt.Errorf("%w: scenario %s: flat levels cannot be negative", ErrInvalidInput, sd.Name)
		}
	default:
		return fmt.Errorf("%w: scenario %s: unknown kind %q", ErrInvalidInput, sd.Name, sd.Kind)
	}
	if sd.Weight.IsNegative() {
		return fmt.Errorf("%w: scenario %s: weight cannot be negative", ErrInvalidInput, sd.Name)
	}
	return nil
}

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// DefaultScenarioCatalog is the built-in set of curve shocks and narrative states.
// Weights are illustrative priors, not calibrated to the simulation.
func DefaultScenarioCatalog() []ScenarioDefinition {
	return []ScenarioDefinition{
		{Name: "Base", Kind: ScenarioBase, Weight: d(0.25), Description: "assumption path as entered"},
		{Name: "Parallel Up", Kind: ScenarioParallel, Weight: d(0.10), CDI: d(2.0), IPCA: d(1.0), Description: "gradual repricing upwards"},
		{Name: "Parallel Down", Kind: ScenarioParallel, Weight: d(0.10), CDI: d(-2.0), IPCA: d(-1.0), Description: "gradual repricing downwards"},
		{Name: "Steepening", Kind: ScenarioSteepening, Weight: d(0.075), CDI: d(1.5), IPCA: d(0.5), Description: "short end down, long end up"},
		{Name: "Flattening", Kind: ScenarioFlattening, Weight: d(0.075), CDI: d(1.5), IPCA: d(0.5), Description: "short end up, long end down"},
		{Name: "Twist", Kind: ScenarioTwist, Weight: d(0.05), CDI: d(1.5), IPCA: d(0.5), Description: "belly shifted, ends anchored"},
		{Name: "Conservative", Kind: ScenarioFlat, Weight: d(0.15), CDI: d(10.0), IPCA: d(4.0)},
		{Name: "Stress", Kind: ScenarioFlat, Weight: d(0.075), CDI: d(15.0), IPCA: d(7.0)},
		{Name: "Stagflation", Kind: ScenarioFlat, Weight: d(0.05), CDI: d(13.0), IPCA: d(8.5)},
		{Name: "Easing", Kind: ScenarioFlat, Weight: d(0.075), CDI: d(7.0), IPCA: d(3.0)},
	}
}
