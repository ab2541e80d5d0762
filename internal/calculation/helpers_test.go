package calculation

import (
	"github.com/rpgo/fixedincome/internal/domain"
	"github.com/shopspring/decimal"
)

var million = decimal.NewFromInt(1000000)

func referencePath() domain.AssumptionPath {
	return domain.NewAssumptionPath([]float64{14, 12, 11, 10, 9}, []float64{5.5, 5.0, 4.5, 4.0, 3.5})
}

func fixedAsset(rate float64, term int) domain.Asset {
	return domain.Asset{
		Indexer:   domain.IndexerFixed,
		Rate:      decimal.NewFromFloat(rate),
		Term:      term,
		Principal: million,
	}
}

func referenceCurrent() domain.Asset {
	a := fixedAsset(10.5, 3)
	a.TaxRate = decimal.NewFromInt(15)
	a.Reinvestment = domain.ReinvestmentPolicy{Kind: domain.IndexerFloating, Rate: decimal.NewFromInt(100)}
	return a
}

func referenceProposed() domain.Asset {
	return domain.Asset{
		Indexer:   domain.IndexerInflation,
		Rate:      decimal.NewFromFloat(6.2),
		Term:      10,
		Principal: million,
		TaxRate:   decimal.NewFromInt(15),
	}
}

func referenceConfig() *domain.Configuration {
	return &domain.Configuration{
		Assumptions: referencePath(),
		Current:     referenceCurrent(),
		Proposed:    referenceProposed(),
		Simulation:  domain.SimulationSettings{NumSimulations: 600, Seed: 7, Workers: 2},
	}
}

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func zeroNoise() *domain.NoiseBounds {
	nb := domain.ZeroNoise()
	return &nb
}
