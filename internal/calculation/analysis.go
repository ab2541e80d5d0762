package calculation

import (
	"fmt"

	"github.com/rpgo/fixedincome/internal/domain"
	fidec "github.com/rpgo/fixedincome/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	cdiDriftThreshold  = decimal.NewFromInt(1)
	ipcaDriftThreshold = decimal.NewFromFloat(0.5)

	migrateProbability  = decimal.NewFromFloat(0.60)
	considerProbability = decimal.NewFromFloat(0.40)

	sharpeExcellent = decimal.NewFromInt(1)
	sharpeGood      = decimal.NewFromFloat(0.5)
)

// ClassifyAssumptions reads the macro regime from the first-to-last drift of each series.
func ClassifyAssumptions(path domain.AssumptionPath) domain.AssumptionTrend {
	cdiDrift := drift(path.CDI)
	ipcaDrift := drift(path.IPCA)
	cdiMean, ipcaMean := path.Mean()

	cdiUp, cdiDown := cdiDrift.GreaterThan(cdiDriftThreshold), cdiDrift.LessThan(cdiDriftThreshold.Neg())
	ipcaUp, ipcaDown := ipcaDrift.GreaterThan(ipcaDriftThreshold), ipcaDrift.LessThan(ipcaDriftThreshold.Neg())
	ipcaFlat := !ipcaUp && !ipcaDown
	cdiFlat := !cdiUp && !cdiDown

	var regime domain.MacroRegime
	switch {
	case cdiDown && ipcaDown:
		regime = domain.RegimeNormalization
	case cdiUp && ipcaUp:
		regime = domain.RegimeTightening
	case cdiDown && ipcaFlat:
		regime = domain.RegimeEasing
	case cdiUp && ipcaFlat:
		regime = domain.RegimePreventiveTightening
	case cdiFlat && ipcaUp:
		regime = domain.RegimeStagflationPressure
	default:
		regime = domain.RegimeStable
	}

	return domain.AssumptionTrend{
		Regime:      regime,
		Description: regime.Description(),
		CDIDrift:    cdiDrift,
		IPCADrift:   ipcaDrift,
		CDIMean:     cdiMean.Round(2),
		IPCAMean:    ipcaMean.Round(2),
		CDITrend:    trendOf(cdiUp, cdiDown),
		IPCATrend:   trendOf(ipcaUp, ipcaDown),
	}
}

func drift(series []decimal.Decimal) decimal.Decimal {
	if len(series) == 0 {
		return decimal.Zero
	}
	return series[len(series)-1].Sub(series[0])
}

func trendOf(up, down bool) domain.Trend {
	switch {
	case up:
		return domain.TrendUp
	case down:
		return domain.TrendDown
	}
	return domain.TrendStable
}

// ClassifyRiskReturn grades a Sharpe-like ratio.
func ClassifyRiskReturn(sharpe decimal.Decimal) domain.RiskReturnTier {
	switch {
	case sharpe.GreaterThan(sharpeExcellent):
		return domain.RiskReturnExcellent
	case sharpe.GreaterThan(sharpeGood):
		return domain.RiskReturnGood
	}
	return domain.RiskReturnModerate
}

// Recommend migrates only when the base case favors the proposed asset and the simulation
// agrees often enough. mc may be nil, in which case the probability is taken as zero.
func Recommend(cmp *domain.Comparison, mc *MonteCarloResult, trend domain.AssumptionTrend, proposed domain.Asset) domain.Recommendation {
	prob := decimal.Zero
	sharpe := decimal.Zero
	if mc != nil {
		prob = mc.ProbabilityPositive
		sharpe = mc.SharpeRatio
	}
	pct := fidec.Percent(prob).StringFixed(1)

	rec := domain.Recommendation{RiskReturn: ClassifyRiskReturn(sharpe)}
	ahead := cmp.Advantage.IsPositive()
	switch {
	case ahead && prob.GreaterThan(migrateProbability):
		rec.Action = domain.ActionMigrate
		rec.Rationale = fmt.Sprintf("an advantage of %s%% a.a. with a %s%% probability of outperforming in simulation",
			cmp.AnnualizedAdvantage.StringFixed(2), pct)
	case ahead && prob.GreaterThan(considerProbability):
		rec.Action = domain.ActionConsider
		rec.Rationale = fmt.Sprintf("a potential advantage of %s%% a.a. but only a %s%% probability of outperforming; weigh against risk profile",
			cmp.AnnualizedAdvantage.StringFixed(2), pct)
	default:
		rec.Action = domain.ActionKeep
		rec.Rationale = "the current position offers the better risk-return trade-off under the projected path"
	}

	switch {
	case trend.CDITrend == domain.TrendDown && proposed.Indexer == domain.IndexerFixed:
		rec.RegimeAlignment = "falling CDI favors locking in a fixed rate"
	case trend.IPCATrend == domain.TrendUp && proposed.Indexer == domain.IndexerInflation:
		rec.RegimeAlignment = "rising inflation favors IPCA-linked assets"
	}
	return rec
}
