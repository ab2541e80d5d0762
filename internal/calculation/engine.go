package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rpgo/fixedincome/internal/domain"
)

// AnalysisReport is the full output of one analysis run.
type AnalysisReport struct {
	GeneratedAt    time.Time                `json:"generated_at"`
	Horizon        int                      `json:"horizon"`
	Assumptions    domain.AssumptionPath    `json:"assumptions"`
	Current        domain.Asset             `json:"current"`
	Proposed       domain.Asset             `json:"proposed"`
	Noise          domain.NoiseBounds       `json:"noise"`
	Trend          domain.AssumptionTrend   `json:"trend"`
	Comparison     *domain.Comparison       `json:"comparison"`
	MonteCarlo     *MonteCarloResult        `json:"monte_carlo,omitempty"`
	Breakeven      *BreakevenResult         `json:"breakeven,omitempty"`
	Scenarios      *domain.ScenarioAnalysis `json:"scenarios,omitempty"`
	Recommendation domain.Recommendation    `json:"recommendation"`
}

// CalculationEngine orchestrates the valuation, simulation, breakeven and scenario steps
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	ce.Logger = loggerOrNop(l)
}

// prepare returns a normalized copy so callers' configurations are never modified.
func prepare(config *domain.Configuration) (domain.Configuration, error) {
	if config == nil {
		return domain.Configuration{}, fmt.Errorf("%w: configuration is nil", domain.ErrInvalidInput)
	}
	cfg := *config
	cfg.Assumptions = config.Assumptions.Clone()
	cfg.Normalize()
	if err := validateInputs(cfg.Assumptions, cfg.Horizon(), cfg.Current, cfg.Proposed); err != nil {
		return domain.Configuration{}, err
	}
	return cfg, nil
}

// Compare runs the deterministic projection of both assets.
func (ce *CalculationEngine) Compare(config *domain.Configuration) (*domain.Comparison, error) {
	cfg, err := prepare(config)
	if err != nil {
		return nil, err
	}
	cmp := compare(cfg.Current, cfg.Proposed, cfg.Assumptions, cfg.Horizon())
	ce.Logger.Debugf("comparison over %d years: current %s, proposed %s", cmp.Horizon,
		cmp.Current.FinalValue.StringFixed(2), cmp.Proposed.FinalValue.StringFixed(2))
	return cmp, nil
}

// RunMonteCarlo simulates the advantage distribution with the configuration's settings.
func (ce *CalculationEngine) RunMonteCarlo(ctx context.Context, config *domain.Configuration) (*MonteCarloResult, error) {
	cfg, err := prepare(config)
	if err != nil {
		return nil, err
	}
	mce := NewMonteCarloEngine(MonteCarloConfigFromSettings(cfg.Simulation))
	mce.SetLogger(ce.Logger)
	return mce.Simulate(ctx, cfg.Current, cfg.Proposed, cfg.Assumptions, cfg.Horizon())
}

// SolveBreakeven finds the proposed rate that matches the current asset's final value.
func (ce *CalculationEngine) SolveBreakeven(config *domain.Configuration) (*BreakevenResult, error) {
	cfg, err := prepare(config)
	if err != nil {
		return nil, err
	}
	res, err := SolveBreakeven(cfg.Current, cfg.Proposed, cfg.Assumptions, cfg.Horizon(), BreakevenOptionsFromSettings(cfg.Breakeven))
	if err != nil {
		return nil, err
	}
	if !res.Converged {
		ce.Logger.Warnf("breakeven did not converge after %d iterations (gap %s)", res.Iterations, res.Gap.StringFixed(2))
	}
	return res, nil
}

// RunScenarios values both assets under each scenario in the catalog.
func (ce *CalculationEngine) RunScenarios(config *domain.Configuration) (*domain.ScenarioAnalysis, error) {
	cfg, err := prepare(config)
	if err != nil {
		return nil, err
	}
	return GenerateScenarios(cfg.Current, cfg.Proposed, cfg.Assumptions, cfg.Horizon(), ScenarioOptions{
		Catalog: cfg.Scenarios,
		Impact:  cfg.Impact,
	})
}

// BaseReport fills the deterministic part of a report: inputs, trend and comparison.
// Callers running a single step attach its result to the returned report.
func (ce *CalculationEngine) BaseReport(config *domain.Configuration) (*AnalysisReport, error) {
	cfg, err := prepare(config)
	if err != nil {
		return nil, err
	}
	horizon := cfg.Horizon()
	return &AnalysisReport{
		GeneratedAt: nowFunc(),
		Horizon:     horizon,
		Assumptions: cfg.Assumptions,
		Current:     cfg.Current,
		Proposed:    cfg.Proposed,
		Noise:       *cfg.Simulation.Noise,
		Trend:       ClassifyAssumptions(cfg.Assumptions),
		Comparison:  compare(cfg.Current, cfg.Proposed, cfg.Assumptions, horizon),
	}, nil
}

// RunAnalysis runs every step and assembles the report.
func (ce *CalculationEngine) RunAnalysis(ctx context.Context, config *domain.Configuration) (*AnalysisReport, error) {
	report, err := ce.BaseReport(config)
	if err != nil {
		return nil, err
	}
	ce.Logger.Infof("running analysis: %s %s vs %s %s over %d years",
		report.Current.Indexer, report.Current.Rate.String(), report.Proposed.Indexer, report.Proposed.Rate.String(), report.Horizon)

	if report.MonteCarlo, err = ce.RunMonteCarlo(ctx, config); err != nil {
		return nil, fmt.Errorf("monte carlo simulation failed: %w", err)
	}
	if report.Breakeven, err = ce.SolveBreakeven(config); err != nil {
		return nil, fmt.Errorf("breakeven solve failed: %w", err)
	}
	if report.Scenarios, err = ce.RunScenarios(config); err != nil {
		return nil, fmt.Errorf("scenario generation failed: %w", err)
	}

	report.Recommendation = Recommend(report.Comparison, report.MonteCarlo, report.Trend, report.Proposed)
	ce.Logger.Infof("recommendation: %s (%s risk-return)", report.Recommendation.Action, report.Recommendation.RiskReturn)
	return report, nil
}
