package calculation

import (
	"fmt"

	"github.com/rpgo/fixedincome/internal/domain"
	"github.com/shopspring/decimal"
)

// ScenarioOptions customizes scenario generation. Zero values take the defaults.
type ScenarioOptions struct {
	Catalog []domain.ScenarioDefinition
	Impact  domain.ImpactThresholds
}

// GenerateScenarios values both assets under each catalog entry and weighs the results.
func GenerateScenarios(current, proposed domain.Asset, path domain.AssumptionPath, horizon int, opts ScenarioOptions) (*domain.ScenarioAnalysis, error) {
	if err := validateInputs(path, horizon, current, proposed); err != nil {
		return nil, err
	}
	catalog := opts.Catalog
	if len(catalog) == 0 {
		catalog = domain.DefaultScenarioCatalog()
	}
	impact := opts.Impact
	if impact.Medium.IsZero() && impact.High.IsZero() {
		impact = domain.DefaultImpactThresholds()
	}
	for _, sd := range catalog {
		if err := sd.Validate(); err != nil {
			return nil, err
		}
	}
	current, proposed = current.Normalized(), proposed.Normalized()

	analysis := &domain.ScenarioAnalysis{
		Scenarios:       make([]domain.ScenarioResult, 0, len(catalog)),
		CurrentMetrics:  ComputeAssetMetrics(current, path),
		ProposedMetrics: ComputeAssetMetrics(proposed, path),
	}

	totalWeight := decimal.Zero
	weighted := decimal.Zero
	favorableWeight := decimal.Zero
	for _, sd := range catalog {
		shaped := ApplyScenario(path, sd)
		cur := project(current, shaped, horizon).FinalValue
		prop := project(proposed, shaped, horizon).FinalValue
		advantage := prop.Sub(cur)

		sr := domain.ScenarioResult{
			Name:                sd.Name,
			Kind:                sd.Kind,
			Weight:              sd.Weight,
			Path:                shaped,
			CurrentFinal:        cur,
			ProposedFinal:       prop,
			Advantage:           advantage,
			AnnualizedAdvantage: annualizedReturn(cur, prop, horizon),
			Favorable:           advantage.IsPositive(),
			Impact:              impact.Tier(advantage),
		}
		analysis.Scenarios = append(analysis.Scenarios, sr)

		totalWeight = totalWeight.Add(sd.Weight)
		weighted = weighted.Add(advantage.Mul(sd.Weight))
		if sr.Favorable {
			favorableWeight = favorableWeight.Add(sd.Weight)
		}
	}

	if totalWeight.IsPositive() {
		analysis.ExpectedAdvantage = weighted.Div(totalWeight)
		analysis.FavorableWeight = favorableWeight.Div(totalWeight)
	}
	return analysis, nil
}

// ApplyScenario returns a new path shaped by the definition; the input path is untouched.
// Every resulting rate is clamped at zero.
func ApplyScenario(path domain.AssumptionPath, sd domain.ScenarioDefinition) domain.AssumptionPath {
	switch sd.Kind {
	case domain.ScenarioFlat:
		return domain.AssumptionPath{
			CDI:  flatSeries(len(path.CDI), sd.CDI),
			IPCA: flatSeries(len(path.IPCA), sd.IPCA),
		}
	case domain.ScenarioBase:
		return path.Clone()
	}
	return domain.AssumptionPath{
		CDI:  shiftSeries(path.CDI, sd.Kind, sd.CDI),
		IPCA: shiftSeries(path.IPCA, sd.Kind, sd.IPCA),
	}
}

func flatSeries(n int, level decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = decimal.Max(decimal.Zero, level)
	}
	return out
}

func shiftSeries(series []decimal.Decimal, kind domain.ScenarioKind, magnitude decimal.Decimal) []decimal.Decimal {
	n := len(series)
	out := make([]decimal.Decimal, n)
	for i, base := range series {
		out[i] = decimal.Max(decimal.Zero, base.Add(scenarioShift(kind, magnitude, i, n)))
	}
	return out
}

// scenarioShift is the offset for year index i (0-based) of n:
//
//	parallel    m·(0.5 + 0.5·(i+1)/n)
//	steepening  m·(2i/(n-1) - 1)
//	flattening  -steepening
//	twist       m on interior years, 0 on the first and last
func scenarioShift(kind domain.ScenarioKind, m decimal.Decimal, i, n int) decimal.Decimal {
	half := decimal.NewFromFloat(0.5)
	switch kind {
	case domain.ScenarioParallel:
		ramp := decimal.NewFromInt(int64(i + 1)).Div(decimal.NewFromInt(int64(n)))
		return m.Mul(half.Add(half.Mul(ramp)))
	case domain.ScenarioSteepening, domain.ScenarioFlattening:
		if n < 2 {
			return decimal.Zero
		}
		slope := decimal.NewFromInt(int64(2 * i)).Div(decimal.NewFromInt(int64(n - 1))).Sub(one)
		shift := m.Mul(slope)
		if kind == domain.ScenarioFlattening {
			return shift.Neg()
		}
		return shift
	case domain.ScenarioTwist:
		if i == 0 || i == n-1 {
			return decimal.Zero
		}
		return m
	}
	return decimal.Zero
}

// ComputeAssetMetrics gives closed-form descriptors from the first year of the path:
// modified duration (term/(1+y) for fixed and inflation, 1/(1+y) for floating since it
// reprices yearly), first-year carry, carry net of withholding and DV01.
func ComputeAssetMetrics(asset domain.Asset, path domain.AssumptionPath) domain.AssetMetrics {
	var carry, duration decimal.Decimal
	switch asset.Indexer {
	case domain.IndexerFixed:
		carry = asset.Rate
		duration = decimal.NewFromInt(int64(asset.Term)).Div(one.Add(carry.Shift(-2)))
	case domain.IndexerFloating:
		carry = path.CDIAt(1).Mul(asset.Rate).Shift(-2)
		duration = one.Div(one.Add(carry.Shift(-2)))
	case domain.IndexerInflation:
		carry = path.IPCAAt(1).Add(asset.Rate)
		duration = decimal.NewFromInt(int64(asset.Term)).Div(one.Add(carry.Shift(-2)))
	}
	return domain.AssetMetrics{
		ModifiedDuration: duration.Round(4),
		AnnualCarry:      carry,
		NetCarry:         carry.Mul(one.Sub(asset.TaxRate.Shift(-2))),
		DV01:             asset.Principal.Mul(duration).Mul(decimal.New(1, -4)).Round(2),
	}
}

// ScenarioByName finds a result row.
func ScenarioByName(analysis *domain.ScenarioAnalysis, name string) (domain.ScenarioResult, error) {
	for _, sr := range analysis.Scenarios {
		if sr.Name == name {
			return sr, nil
		}
	}
	return domain.ScenarioResult{}, fmt.Errorf("scenario %q not found", name)
}
