package calculation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rpgo/fixedincome/internal/domain"
	fidec "github.com/rpgo/fixedincome/pkg/decimal"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultNumSimulations is the draw count used when none is configured.
	DefaultNumSimulations = 10000
	// streamSize is the number of draws sharing one seeded source. Stream k uses seed+k,
	// which keeps results independent of the worker count.
	streamSize = 250
)

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	NumSimulations int
	Seed           int64
	Workers        int
	Noise          *domain.NoiseBounds // nil takes domain.DefaultNoiseBounds
	SourceFactory  SourceFactory
}

// MonteCarloConfigFromSettings maps the input file's simulation block.
func MonteCarloConfigFromSettings(s domain.SimulationSettings) MonteCarloConfig {
	return MonteCarloConfig{
		NumSimulations: s.NumSimulations,
		Seed:           s.Seed,
		Workers:        s.Workers,
		Noise:          s.Noise,
	}
}

// MonteCarloResult summarizes the distribution of advantage = proposed - current.
type MonteCarloResult struct {
	Mean                decimal.Decimal   `json:"mean"`
	Median              decimal.Decimal   `json:"median"`
	StdDev              decimal.Decimal   `json:"std_dev"`
	Min                 decimal.Decimal   `json:"min"`
	Max                 decimal.Decimal   `json:"max"`
	Percentiles         PercentileRanges  `json:"percentiles"`
	ProbabilityPositive decimal.Decimal   `json:"probability_positive"`
	VaR95               decimal.Decimal   `json:"var_95"`
	ExpectedShortfall95 decimal.Decimal   `json:"expected_shortfall_95"`
	SharpeRatio         decimal.Decimal   `json:"sharpe_ratio"`
	Histogram           []HistogramBin    `json:"histogram"`
	Outcomes            []decimal.Decimal `json:"-"` // sorted ascending
	NumSimulations      int               `json:"num_simulations"`
	Seed                int64             `json:"seed"`
}

// MonteCarloEngine perturbs the assumption path and re-values both assets per draw.
type MonteCarloEngine struct {
	config MonteCarloConfig
	logger Logger
}

// NewMonteCarloEngine applies defaults to config. A zero seed is replaced by the seed provider
// so the chosen seed is reported in the result and the run can be reproduced.
func NewMonteCarloEngine(config MonteCarloConfig) *MonteCarloEngine {
	if config.NumSimulations == 0 {
		config.NumSimulations = DefaultNumSimulations
	}
	if config.Seed == 0 {
		config.Seed = seedFunc()
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	noise := domain.DefaultNoiseBounds()
	if config.Noise != nil {
		noise = *config.Noise
	}
	config.Noise = &noise
	if config.SourceFactory == nil {
		config.SourceFactory = NewMathRandSource
	}
	return &MonteCarloEngine{config: config, logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (mce *MonteCarloEngine) SetLogger(l Logger) { mce.logger = loggerOrNop(l) }

// Config returns the effective configuration.
func (mce *MonteCarloEngine) Config() MonteCarloConfig { return mce.config }

// Simulate runs NumSimulations draws. Inputs are validated before any draw starts; a cancelled
// context discards the run and returns ctx.Err().
func (mce *MonteCarloEngine) Simulate(ctx context.Context, current, proposed domain.Asset, path domain.AssumptionPath, horizon int) (*MonteCarloResult, error) {
	if err := validateInputs(path, horizon, current, proposed); err != nil {
		return nil, err
	}
	n := mce.config.NumSimulations
	if n < 0 {
		return nil, fmt.Errorf("%w: number of simulations cannot be negative, got %d", domain.ErrInvalidInput, n)
	}
	current, proposed = current.Normalized(), proposed.Normalized()

	mce.logger.Debugf("monte carlo: %d draws, seed %d, %d workers", n, mce.config.Seed, mce.config.Workers)

	outcomes := make([]decimal.Decimal, n)
	streams := (n + streamSize - 1) / streamSize

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mce.config.Workers)
	for k := 0; k < streams; k++ {
		k := k
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src := mce.config.SourceFactory(mce.config.Seed + int64(k))
			start := k * streamSize
			end := start + streamSize
			if end > n {
				end = n
			}
			for i := start; i < end; i++ {
				drawn := perturbPath(path, *mce.config.Noise, src)
				cur := project(current, drawn, horizon).FinalValue
				prop := project(proposed, drawn, horizon).FinalValue
				outcomes[i] = fidec.NewMoneyFromDecimal(prop).Sub(fidec.NewMoneyFromDecimal(cur)).Round().Decimal
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := summarizeOutcomes(outcomes)
	result.Seed = mce.config.Seed
	mce.logger.Infof("monte carlo: mean advantage %s, P(+) %s", result.Mean.StringFixed(2), result.ProbabilityPositive.StringFixed(4))
	return result, nil
}

// perturbPath draws rate' = max(floor, base + (u-0.5)*range) for every CDI year and then every
// IPCA year. Disabled noise returns an unchanged copy.
func perturbPath(path domain.AssumptionPath, noise domain.NoiseBounds, src RandomSource) domain.AssumptionPath {
	if noise.Disabled {
		return path.Clone()
	}
	return domain.AssumptionPath{
		CDI:  perturbSeries(path.CDI, noise.CDIRange.InexactFloat64(), noise.CDIFloor, src),
		IPCA: perturbSeries(path.IPCA, noise.IPCARange.InexactFloat64(), noise.IPCAFloor, src),
	}
}

func perturbSeries(series []decimal.Decimal, width float64, floor decimal.Decimal, src RandomSource) []decimal.Decimal {
	out := make([]decimal.Decimal, len(series))
	for i, base := range series {
		shock := decimal.NewFromFloat((src.Float64() - 0.5) * width).Round(6)
		out[i] = decimal.Max(floor, base.Add(shock))
	}
	return out
}

// summarizeOutcomes sorts outcomes in place and derives the distribution statistics.
func summarizeOutcomes(outcomes []decimal.Decimal) *MonteCarloResult {
	result := &MonteCarloResult{NumSimulations: len(outcomes), Outcomes: outcomes}
	if len(outcomes) == 0 {
		return result
	}
	sortDecimals(outcomes)

	mean, stdDev := meanStdDev(outcomes)
	positive := 0
	for _, v := range outcomes {
		if v.IsPositive() {
			positive++
		}
	}

	result.Mean = mean
	result.StdDev = stdDev
	result.Min = outcomes[0]
	result.Max = outcomes[len(outcomes)-1]
	result.Percentiles = percentileRanges(outcomes)
	result.Median = result.Percentiles.P50
	result.ProbabilityPositive = decimal.NewFromInt(int64(positive)).Div(decimal.NewFromInt(int64(len(outcomes))))
	result.VaR95 = result.Percentiles.P5
	result.ExpectedShortfall95 = expectedShortfall(outcomes, 5)
	if stdDev.IsPositive() {
		result.SharpeRatio = mean.Div(stdDev)
	}
	result.Histogram = buildHistogram(outcomes, HistogramBins)
	return result
}
