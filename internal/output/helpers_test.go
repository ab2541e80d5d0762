package output

import (
	"context"
	"testing"
	"time"

	"github.com/rpgo/fixedincome/internal/calculation"
	"github.com/rpgo/fixedincome/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

func testConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Assumptions: domain.NewAssumptionPath([]float64{14, 12, 11, 10, 9}, []float64{5.5, 5.0, 4.5, 4.0, 3.5}),
		Current: domain.Asset{
			Name:         "CDB prefixado",
			Indexer:      domain.IndexerFixed,
			Rate:         decimal.NewFromFloat(10.5),
			Term:         3,
			Principal:    decimal.NewFromInt(1000000),
			TaxRate:      decimal.NewFromInt(15),
			Reinvestment: domain.ReinvestmentPolicy{Kind: domain.IndexerFloating, Rate: decimal.NewFromInt(100)},
		},
		Proposed: domain.Asset{
			Name:    "IPCA+ 2035",
			Indexer: domain.IndexerInflation,
			Rate:    decimal.NewFromFloat(6.2),
			Term:    10,
			TaxRate: decimal.NewFromInt(15),
		},
		Simulation: domain.SimulationSettings{NumSimulations: 300, Seed: 11, Workers: 2},
	}
}

// buildTestReport runs the full pipeline on a small, seeded configuration.
func buildTestReport(t *testing.T) *calculation.AnalysisReport {
	t.Helper()
	calculation.SetNowFunc(func() time.Time { return generatedAt })
	t.Cleanup(func() { calculation.SetNowFunc(time.Now) })

	report, err := calculation.NewCalculationEngine().RunAnalysis(context.Background(), testConfiguration())
	require.NoError(t, err)
	return report
}

// buildBaseReport carries inputs, trend and comparison only.
func buildBaseReport(t *testing.T) *calculation.AnalysisReport {
	t.Helper()
	report, err := calculation.NewCalculationEngine().BaseReport(testConfiguration())
	require.NoError(t, err)
	return report
}
