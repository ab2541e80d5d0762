package calculation

import (
	"testing"

	"github.com/rpgo/fixedincome/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_FixedRateCompounds(t *testing.T) {
	res, err := Project(fixedAsset(10, 3), referencePath(), 3)
	require.NoError(t, err)

	assert.True(t, res.FinalValue.Equal(decimal.NewFromInt(1331000)), "got %s", res.FinalValue)
	assert.True(t, res.TaxWithheld.IsZero())
	require.Len(t, res.Points, 4)
	assert.Equal(t, 0, res.Points[0].Year)
	assert.True(t, res.Points[0].Value.Equal(million))
	assert.True(t, res.Points[2].Value.Equal(decimal.NewFromInt(1210000)))
	for _, p := range res.Points[1:] {
		assert.InDelta(t, 10.0, p.CumulativeReturn.InexactFloat64(), 1e-6)
		assert.False(t, p.Reinvesting)
	}
	assert.Equal(t, 3, res.Horizon())
}

func TestProject_InflationLinked(t *testing.T) {
	asset := domain.Asset{
		Indexer:   domain.IndexerInflation,
		Rate:      decimal.NewFromInt(6),
		Term:      2,
		Principal: million,
	}
	path := domain.NewAssumptionPath([]float64{10}, []float64{5.5, 5.0})

	res, err := Project(asset, path, 2)
	require.NoError(t, err)
	assert.True(t, res.FinalValue.Equal(decimal.NewFromInt(1237650)), "got %s", res.FinalValue)
}

func TestProject_FloatingWithTax(t *testing.T) {
	asset := domain.Asset{
		Indexer:   domain.IndexerFloating,
		Rate:      decimal.NewFromInt(100),
		Term:      5,
		Principal: million,
		TaxRate:   decimal.NewFromInt(15),
	}

	res, err := Project(asset, referencePath(), 5)
	require.NoError(t, err)

	factor := decimal.NewFromFloat(1.14).Mul(decimal.NewFromFloat(1.12)).Mul(decimal.NewFromFloat(1.11)).
		Mul(decimal.NewFromFloat(1.10)).Mul(decimal.NewFromFloat(1.09))
	gross := million.Mul(factor)
	tax := gross.Sub(million).Mul(decimal.NewFromFloat(0.15))

	assert.True(t, res.GrossValue.Equal(gross), "gross %s want %s", res.GrossValue, gross)
	assert.True(t, res.TaxWithheld.Equal(tax), "tax %s want %s", res.TaxWithheld, tax)
	assert.True(t, res.FinalValue.Equal(gross.Sub(tax)), "final %s", res.FinalValue)
}

func TestProject_ReinvestmentPhase(t *testing.T) {
	current := referenceCurrent()
	res, err := Project(current, referencePath(), 5)
	require.NoError(t, err)

	require.Len(t, res.Points, 6)
	assert.False(t, res.Points[3].Reinvesting)
	assert.True(t, res.Points[4].Reinvesting)
	assert.True(t, res.Points[5].Reinvesting)

	// Year 4 reinvests at 100% of CDI year 4 (10%).
	expected := res.Points[3].Value.Mul(decimal.NewFromFloat(1.10))
	assert.True(t, res.Points[4].Value.Equal(expected))
}

func TestProject_ReinvestmentDefaultsToCDI(t *testing.T) {
	bare := fixedAsset(10, 1)
	explicit := bare
	explicit.Reinvestment = domain.DefaultReinvestment()

	a, err := Project(bare, referencePath(), 3)
	require.NoError(t, err)
	b, err := Project(explicit, referencePath(), 3)
	require.NoError(t, err)
	assert.True(t, a.FinalValue.Equal(b.FinalValue))
}

func TestProject_TaxTiming(t *testing.T) {
	asset := domain.Asset{
		Indexer:      domain.IndexerFixed,
		Rate:         decimal.NewFromInt(10),
		Term:         1,
		Principal:    decimal.NewFromInt(1000),
		TaxRate:      decimal.NewFromInt(15),
		Reinvestment: domain.ReinvestmentPolicy{Kind: domain.IndexerFixed, Rate: decimal.NewFromInt(10)},
	}
	path := referencePath()

	atHorizon, err := Project(asset, path, 2)
	require.NoError(t, err)
	assert.True(t, atHorizon.GrossValue.Equal(decimal.NewFromInt(1210)))
	assert.True(t, atHorizon.FinalValue.Equal(decimal.NewFromFloat(1178.5)), "got %s", atHorizon.FinalValue)

	asset.TaxTiming = domain.TaxAtMaturity
	atMaturity, err := Project(asset, path, 2)
	require.NoError(t, err)
	assert.True(t, atMaturity.Points[1].Value.Equal(decimal.NewFromInt(1085)))
	assert.True(t, atMaturity.FinalValue.Equal(decimal.NewFromFloat(1193.5)), "got %s", atMaturity.FinalValue)
	assert.True(t, atMaturity.TaxWithheld.Equal(decimal.NewFromInt(15)))
	assert.True(t, atMaturity.GrossValue.Equal(atMaturity.FinalValue.Add(atMaturity.TaxWithheld)))
	assert.True(t, atMaturity.GrossValue.LessThan(atHorizon.GrossValue))

	// Maturity timing falls back to the horizon when there is no reinvestment leg.
	sameTerm, err := Project(asset, path, 1)
	require.NoError(t, err)
	assert.True(t, sameTerm.FinalValue.Equal(decimal.NewFromInt(1085)))
}

func TestProject_Monotonicity(t *testing.T) {
	prev := decimal.Zero
	for rate := 1; rate <= 20; rate++ {
		res, err := Project(fixedAsset(float64(rate), 5), referencePath(), 5)
		require.NoError(t, err)
		assert.True(t, res.FinalValue.GreaterThan(prev), "rate %d", rate)
		prev = res.FinalValue
	}
}

func TestProject_Deterministic(t *testing.T) {
	a, err := Project(referenceProposed(), referencePath(), 10)
	require.NoError(t, err)
	b, err := Project(referenceProposed(), referencePath(), 10)
	require.NoError(t, err)

	require.Equal(t, len(a.Points), len(b.Points))
	for i := range a.Points {
		assert.Equal(t, a.Points[i].Value.String(), b.Points[i].Value.String())
	}
	assert.Equal(t, a.FinalValue.String(), b.FinalValue.String())
}

func TestProject_DoesNotMutatePath(t *testing.T) {
	path := referencePath()
	_, err := Project(referenceProposed(), path, 10)
	require.NoError(t, err)
	assert.True(t, path.CDI[0].Equal(decimal.NewFromInt(14)))
	assert.Len(t, path.CDI, 5)
}

func TestProject_InvalidInput(t *testing.T) {
	testCases := []struct {
		desc    string
		asset   domain.Asset
		path    domain.AssumptionPath
		horizon int
	}{
		{"zero principal", domain.Asset{Indexer: domain.IndexerFixed, Term: 1}, referencePath(), 1},
		{"zero term", domain.Asset{Indexer: domain.IndexerFixed, Principal: million}, referencePath(), 1},
		{"tax out of range", func() domain.Asset { a := fixedAsset(10, 1); a.TaxRate = decimal.NewFromInt(40); return a }(), referencePath(), 1},
		{"empty path", fixedAsset(10, 1), domain.AssumptionPath{}, 1},
		{"zero horizon", fixedAsset(10, 1), referencePath(), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Project(tc.asset, tc.path, tc.horizon)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCompare(t *testing.T) {
	cmp, err := Compare(referenceCurrent(), referenceProposed(), referencePath())
	require.NoError(t, err)

	assert.Equal(t, 10, cmp.Horizon)
	assert.True(t, cmp.Advantage.Equal(cmp.Proposed.FinalValue.Sub(cmp.Current.FinalValue)))
	expectedPct := cmp.Advantage.Div(cmp.Current.FinalValue).Mul(decimal.NewFromInt(100))
	assert.True(t, cmp.AdvantagePercent.Equal(expectedPct))
	assert.Equal(t, cmp.Advantage.IsPositive(), cmp.AnnualizedAdvantage.IsPositive())

	_, err = Compare(referenceCurrent(), domain.Asset{}, referencePath())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFinalValue(t *testing.T) {
	v, err := FinalValue(fixedAsset(10, 3), referencePath(), 3)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.NewFromInt(1331000)))

	_, err = FinalValue(domain.Asset{}, referencePath(), 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
