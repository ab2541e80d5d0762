package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/fixedincome/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var logLevels = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, normalizes and validates a YAML document.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.Normalize()

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Assumptions.Validate(); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}
	if err := config.Current.Validate(); err != nil {
		return fmt.Errorf("current asset validation failed: %w", err)
	}
	if err := config.Proposed.Validate(); err != nil {
		return fmt.Errorf("proposed asset validation failed: %w", err)
	}
	if err := domain.ValidateHorizon(config.Horizon()); err != nil {
		return err
	}
	if err := ip.validateSimulation(&config.Simulation); err != nil {
		return fmt.Errorf("simulation settings validation failed: %w", err)
	}
	if err := ip.validateBreakeven(&config.Breakeven); err != nil {
		return fmt.Errorf("breakeven settings validation failed: %w", err)
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, sd := range config.Scenarios {
		if err := sd.Validate(); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[sd.Name] {
			return fmt.Errorf("scenario %d validation failed: %w: duplicate name %q", i, domain.ErrInvalidInput, sd.Name)
		}
		seen[sd.Name] = true
	}

	if config.Impact.Medium.IsNegative() || config.Impact.High.LessThan(config.Impact.Medium) {
		return fmt.Errorf("%w: impact thresholds must satisfy 0 <= medium <= high", domain.ErrInvalidInput)
	}
	if !logLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("%w: unknown log level %q", domain.ErrInvalidInput, config.Logging.Level)
	}

	return nil
}

func (ip *InputParser) validateSimulation(s *domain.SimulationSettings) error {
	if s.NumSimulations < 0 {
		return fmt.Errorf("%w: simulations cannot be negative", domain.ErrInvalidInput)
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative", domain.ErrInvalidInput)
	}
	if s.Noise == nil {
		return nil
	}
	n := s.Noise
	for _, v := range []decimal.Decimal{n.CDIRange, n.CDIFloor, n.IPCARange, n.IPCAFloor} {
		if v.IsNegative() {
			return fmt.Errorf("%w: noise bounds cannot be negative", domain.ErrInvalidInput)
		}
	}
	return nil
}

func (ip *InputParser) validateBreakeven(b *domain.BreakevenSettings) error {
	if b.MaxIterations < 0 {
		return fmt.Errorf("%w: max_iterations cannot be negative", domain.ErrInvalidInput)
	}
	if b.Tolerance.IsNegative() {
		return fmt.Errorf("%w: tolerance cannot be negative", domain.ErrInvalidInput)
	}
	if !(b.MinRate.IsZero() && b.MaxRate.IsZero()) && b.MinRate.GreaterThanOrEqual(b.MaxRate) {
		return fmt.Errorf("%w: min_rate must be below max_rate", domain.ErrInvalidInput)
	}
	return nil
}

// CreateExampleConfiguration returns the reference comparison: a 10.5% fixed-rate note maturing
// in 3 years, rolled into 100% of CDI, against a 10-year IPCA + 6.2% bond.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	noise := domain.DefaultNoiseBounds()
	cfg := &domain.Configuration{
		Assumptions: domain.NewAssumptionPath(
			[]float64{14, 12, 11, 10, 9},
			[]float64{5.5, 5.0, 4.5, 4.0, 3.5},
		),
		Current: domain.Asset{
			Name:         "Current fixed-rate note",
			Indexer:      domain.IndexerFixed,
			Rate:         decimal.NewFromFloat(10.5),
			Term:         3,
			Principal:    decimal.NewFromInt(1000000),
			TaxRate:      decimal.NewFromInt(15),
			TaxTiming:    domain.TaxAtHorizon,
			Reinvestment: domain.DefaultReinvestment(),
		},
		Proposed: domain.Asset{
			Name:      "Proposed IPCA+ bond",
			Indexer:   domain.IndexerInflation,
			Rate:      decimal.NewFromFloat(6.2),
			Term:      10,
			Principal: decimal.NewFromInt(1000000),
			TaxRate:   decimal.NewFromInt(15),
			TaxTiming: domain.TaxAtHorizon,
		},
		Simulation: domain.SimulationSettings{
			NumSimulations: 10000,
			Noise:          &noise,
		},
		Logging: domain.LoggingConfig{Level: "info", Format: "console"},
		Output:  domain.OutputConfig{Format: "console"},
	}
	cfg.Normalize()
	return cfg
}

// WriteExample writes the example configuration as YAML.
func (ip *InputParser) WriteExample(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ip.CreateExampleConfiguration()); err != nil {
		return fmt.Errorf("failed to encode example configuration: %w", err)
	}
	return enc.Close()
}
