package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidInput is returned when an asset, assumption path or horizon cannot be valued.
var ErrInvalidInput = errors.New("invalid input")

// MaxTaxRate is the highest withholding bracket accepted (percent).
var MaxTaxRate = decimal.NewFromFloat(22.5)

// Indexer identifies how an asset's rate is applied each year.
type Indexer string

const (
	// IndexerFixed pays a rate agreed in advance (pré-fixado).
	IndexerFixed Indexer = "fixed"
	// IndexerFloating pays a percentage of the CDI reference rate (pós-fixado).
	IndexerFloating Indexer = "floating"
	// IndexerInflation pays IPCA plus a spread.
	IndexerInflation Indexer = "inflation"
)

var indexerAliases = map[string]Indexer{
	"fixed":            IndexerFixed,
	"pre":              IndexerFixed,
	"prefixado":        IndexerFixed,
	"floating":         IndexerFloating,
	"pos":              IndexerFloating,
	"cdi":              IndexerFloating,
	"inflation":        IndexerInflation,
	"inflation-linked": IndexerInflation,
	"ipca":             IndexerInflation,
}

// ParseIndexer resolves an indexer name or one of its aliases.
func ParseIndexer(s string) (Indexer, error) {
	if ix, ok := indexerAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return ix, nil
	}
	return "", fmt.Errorf("%w: unknown indexer %q", ErrInvalidInput, s)
}

// Valid reports whether the indexer is one of the known kinds.
func (ix Indexer) Valid() bool {
	switch ix {
	case IndexerFixed, IndexerFloating, IndexerInflation:
		return true
	}
	return false
}

// UnmarshalYAML accepts the canonical names as well as the pre/pos/ipca shorthands.
func (ix *Indexer) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseIndexer(raw)
	if err != nil {
		return err
	}
	*ix = parsed
	return nil
}

// TaxTiming selects when income tax is withheld from the accumulated gain.
type TaxTiming string

const (
	// TaxAtHorizon withholds once, at the end of the shared horizon.
	TaxAtHorizon TaxTiming = "horizon"
	// TaxAtMaturity withholds when the primary asset matures; the reinvestment leg then
	// compounds without further withholding.
	TaxAtMaturity TaxTiming = "maturity"
)

// UnmarshalYAML validates the timing name. Empty means horizon.
func (tt *TaxTiming) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch TaxTiming(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TaxAtHorizon:
		*tt = TaxAtHorizon
	case TaxAtMaturity:
		*tt = TaxAtMaturity
	default:
		return fmt.Errorf("%w: unknown tax timing %q", ErrInvalidInput, raw)
	}
	return nil
}

// ReinvestmentPolicy describes what the proceeds earn between maturity and the horizon.
type ReinvestmentPolicy struct {
	Kind Indexer         `yaml:"kind" json:"kind"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// DefaultReinvestment is 100% of CDI, used when an asset does not declare a policy.
func DefaultReinvestment() ReinvestmentPolicy {
	return ReinvestmentPolicy{Kind: IndexerFloating, Rate: decimal.NewFromInt(100)}
}

// IsZero reports whether no policy was declared.
func (rp ReinvestmentPolicy) IsZero() bool {
	return rp.Kind == "" && rp.Rate.IsZero()
}

// Asset is one side of the comparison: a bond-like position held to Term and then
// rolled into its reinvestment policy until the horizon.
type Asset struct {
	Name         string             `yaml:"name,omitempty" json:"name,omitempty"`
	Indexer      Indexer            `yaml:"indexer" json:"indexer"`
	Rate         decimal.Decimal    `yaml:"rate" json:"rate"` // fixed: % a.a.; floating: % of CDI; inflation: spread over IPCA
	Term         int                `yaml:"term" json:"term"` // years
	Principal    decimal.Decimal    `yaml:"principal" json:"principal"`
	TaxRate      decimal.Decimal    `yaml:"tax_rate" json:"tax_rate"` // percent of the gain
	TaxTiming    TaxTiming          `yaml:"tax_timing,omitempty" json:"tax_timing,omitempty"`
	Reinvestment ReinvestmentPolicy `yaml:"reinvestment,omitempty" json:"reinvestment"`
}

// WithRate returns a copy of the asset with its primary rate replaced.
func (a Asset) WithRate(rate decimal.Decimal) Asset {
	a.Rate = rate
	return a
}

// Normalized fills the defaults an input file may leave out.
func (a Asset) Normalized() Asset {
	if a.Reinvestment.IsZero() {
		a.Reinvestment = DefaultReinvestment()
	}
	if a.TaxTiming == "" {
		a.TaxTiming = TaxAtHorizon
	}
	return a
}

// Validate rejects assets the valuation engine cannot project.
func (a Asset) Validate() error {
	if !a.Indexer.Valid() {
		return fmt.Errorf("%w: unknown indexer %q", ErrInvalidInput, a.Indexer)
	}
	if a.Term <= 0 {
		return fmt.Errorf("%w: term must be positive, got %d", ErrInvalidInput, a.Term)
	}
	if a.Principal.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidInput, a.Principal.String())
	}
	if a.TaxRate.LessThan(decimal.Zero) || a.TaxRate.GreaterThan(MaxTaxRate) {
		return fmt.Errorf("%w: tax rate must be between 0 and %s%%, got %s", ErrInvalidInput, MaxTaxRate.String(), a.TaxRate.String())
	}
	switch a.TaxTiming {
	case "", TaxAtHorizon, TaxAtMaturity:
	default:
		return fmt.Errorf("%w: unknown tax timing %q", ErrInvalidInput, a.TaxTiming)
	}
	if !a.Reinvestment.IsZero() && !a.Reinvestment.Kind.Valid() {
		return fmt.Errorf("%w: unknown reinvestment kind %q", ErrInvalidInput, a.Reinvestment.Kind)
	}
	return nil
}

// Horizon is the shared comparison window: the longer of the two terms.
func Horizon(current, proposed Asset) int {
	if proposed.Term > current.Term {
		return proposed.Term
	}
	return current.Term
}
