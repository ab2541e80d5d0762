package calculation

import (
	"testing"

	"github.com/rpgo/fixedincome/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSeries(t *testing.T, expected []float64, actual []decimal.Decimal) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i, v := range expected {
		assert.True(t, actual[i].Equal(decimal.NewFromFloat(v)), "index %d: got %s want %v", i, actual[i], v)
	}
}

func TestApplyScenario_Shapes(t *testing.T) {
	path := domain.NewAssumptionPath([]float64{10, 10, 10, 10, 10}, []float64{4, 4, 4, 4, 4})

	testCases := []struct {
		name string
		def  domain.ScenarioDefinition
		cdi  []float64
		ipca []float64
	}{
		{
			name: "parallel ramps to the full shift",
			def:  domain.ScenarioDefinition{Name: "up", Kind: domain.ScenarioParallel, CDI: decimal.NewFromInt(2), IPCA: decimal.NewFromInt(1)},
			cdi:  []float64{11.2, 11.4, 11.6, 11.8, 12},
			ipca: []float64{4.6, 4.7, 4.8, 4.9, 5},
		},
		{
			name: "steepening",
			def:  domain.ScenarioDefinition{Name: "steep", Kind: domain.ScenarioSteepening, CDI: decimal.NewFromFloat(1.5), IPCA: decimal.NewFromFloat(0.5)},
			cdi:  []float64{8.5, 9.25, 10, 10.75, 11.5},
			ipca: []float64{3.5, 3.75, 4, 4.25, 4.5},
		},
		{
			name: "flattening",
			def:  domain.ScenarioDefinition{Name: "flat", Kind: domain.ScenarioFlattening, CDI: decimal.NewFromFloat(1.5), IPCA: decimal.NewFromFloat(0.5)},
			cdi:  []float64{11.5, 10.75, 10, 9.25, 8.5},
			ipca: []float64{4.5, 4.25, 4, 3.75, 3.5},
		},
		{
			name: "twist holds the ends",
			def:  domain.ScenarioDefinition{Name: "twist", Kind: domain.ScenarioTwist, CDI: decimal.NewFromFloat(1.5), IPCA: decimal.NewFromFloat(0.5)},
			cdi:  []float64{10, 11.5, 11.5, 11.5, 10},
			ipca: []float64{4, 4.5, 4.5, 4.5, 4},
		},
		{
			name: "flat overrides every year",
			def:  domain.ScenarioDefinition{Name: "stress", Kind: domain.ScenarioFlat, CDI: decimal.NewFromInt(15), IPCA: decimal.NewFromInt(7)},
			cdi:  []float64{15, 15, 15, 15, 15},
			ipca: []float64{7, 7, 7, 7, 7},
		},
		{
			name: "base is unchanged",
			def:  domain.ScenarioDefinition{Name: "base", Kind: domain.ScenarioBase},
			cdi:  []float64{10, 10, 10, 10, 10},
			ipca: []float64{4, 4, 4, 4, 4},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			shaped := ApplyScenario(path, tc.def)
			assertSeries(t, tc.cdi, shaped.CDI)
			assertSeries(t, tc.ipca, shaped.IPCA)
		})
	}
	assertSeries(t, []float64{10, 10, 10, 10, 10}, path.CDI)
}

func TestApplyScenario_ClampsAtZero(t *testing.T) {
	path := domain.NewAssumptionPath([]float64{1}, []float64{0.5})
	shaped := ApplyScenario(path, domain.ScenarioDefinition{
		Name: "down", Kind: domain.ScenarioParallel, CDI: decimal.NewFromInt(-3), IPCA: decimal.NewFromInt(-1),
	})
	assert.True(t, shaped.CDI[0].IsZero())
	assert.True(t, shaped.IPCA[0].IsZero())
}

func TestGenerateScenarios_BaseMatchesProjection(t *testing.T) {
	current, proposed, path := referenceCurrent(), referenceProposed(), referencePath()
	analysis, err := GenerateScenarios(current, proposed, path, 10, ScenarioOptions{})
	require.NoError(t, err)
	require.Len(t, analysis.Scenarios, len(domain.DefaultScenarioCatalog()))

	base, err := ScenarioByName(analysis, "Base")
	require.NoError(t, err)

	cur, err := Project(current, path, 10)
	require.NoError(t, err)
	prop, err := Project(proposed, path, 10)
	require.NoError(t, err)

	assert.True(t, base.CurrentFinal.Equal(cur.FinalValue))
	assert.True(t, base.ProposedFinal.Equal(prop.FinalValue))
	assert.True(t, base.Advantage.Equal(prop.FinalValue.Sub(cur.FinalValue)))
	assert.Equal(t, base.Advantage.IsPositive(), base.Favorable)

	_, err = ScenarioByName(analysis, "Unknown")
	assert.Error(t, err)
}

func TestGenerateScenarios_WeightedSummary(t *testing.T) {
	analysis, err := GenerateScenarios(referenceCurrent(), referenceProposed(), referencePath(), 10, ScenarioOptions{})
	require.NoError(t, err)

	weighted := decimal.Zero
	favorable := decimal.Zero
	thresholds := domain.DefaultImpactThresholds()
	for _, sr := range analysis.Scenarios {
		weighted = weighted.Add(sr.Advantage.Mul(sr.Weight))
		if sr.Favorable {
			favorable = favorable.Add(sr.Weight)
		}
		assert.Equal(t, thresholds.Tier(sr.Advantage), sr.Impact, sr.Name)
	}
	// catalog weights sum to 1
	assert.InDelta(t, weighted.InexactFloat64(), analysis.ExpectedAdvantage.InexactFloat64(), 0.01)
	assert.True(t, analysis.FavorableWeight.Equal(favorable))
}

func TestGenerateScenarios_CustomCatalog(t *testing.T) {
	catalog := []domain.ScenarioDefinition{
		{Name: "Low rates", Kind: domain.ScenarioFlat, Weight: decimal.NewFromInt(1), CDI: decimal.NewFromInt(5), IPCA: decimal.NewFromInt(2)},
		{Name: "High rates", Kind: domain.ScenarioFlat, Weight: decimal.NewFromInt(3), CDI: decimal.NewFromInt(15), IPCA: decimal.NewFromInt(8)},
	}
	analysis, err := GenerateScenarios(referenceCurrent(), referenceProposed(), referencePath(), 10, ScenarioOptions{
		Catalog: catalog,
		Impact:  domain.ImpactThresholds{Medium: decimal.NewFromInt(1), High: decimal.NewFromInt(2)},
	})
	require.NoError(t, err)
	require.Len(t, analysis.Scenarios, 2)

	for _, sr := range analysis.Scenarios {
		if sr.Advantage.Abs().GreaterThanOrEqual(decimal.NewFromInt(2)) {
			assert.Equal(t, domain.ImpactHigh, sr.Impact)
		}
	}
	expected := analysis.Scenarios[0].Advantage.Add(analysis.Scenarios[1].Advantage.Mul(decimal.NewFromInt(3))).Div(decimal.NewFromInt(4))
	assert.True(t, analysis.ExpectedAdvantage.Equal(expected))

	_, err = GenerateScenarios(referenceCurrent(), referenceProposed(), referencePath(), 10, ScenarioOptions{
		Catalog: []domain.ScenarioDefinition{{Name: "bad", Kind: "spiral"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputeAssetMetrics(t *testing.T) {
	fixed := fixedAsset(10, 3)
	fixed.TaxRate = decimal.NewFromInt(15)
	m := ComputeAssetMetrics(fixed, referencePath())
	assert.True(t, m.ModifiedDuration.Equal(decimal.NewFromFloat(2.7273)), "duration %s", m.ModifiedDuration)
	assert.True(t, m.AnnualCarry.Equal(decimal.NewFromInt(10)))
	assert.True(t, m.NetCarry.Equal(decimal.NewFromFloat(8.5)))
	assert.True(t, m.DV01.Equal(decimal.NewFromFloat(272.73)), "dv01 %s", m.DV01)

	floating := domain.Asset{Indexer: domain.IndexerFloating, Rate: decimal.NewFromInt(100), Term: 5, Principal: million}
	fm := ComputeAssetMetrics(floating, referencePath())
	assert.True(t, fm.AnnualCarry.Equal(decimal.NewFromInt(14)))
	assert.True(t, fm.ModifiedDuration.LessThan(decimal.NewFromInt(1)))

	linked := ComputeAssetMetrics(referenceProposed(), referencePath())
	assert.True(t, linked.AnnualCarry.Equal(decimal.NewFromFloat(11.7)))
	assert.True(t, linked.ModifiedDuration.GreaterThan(m.ModifiedDuration))
}
