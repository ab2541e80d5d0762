package output

import (
	"fmt"

	"github.com/rpgo/fixedincome/internal/calculation"
	"github.com/rpgo/fixedincome/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// GenerateAssumptions creates the list of modeling assumptions behind a report.
func GenerateAssumptions(report *calculation.AnalysisReport) []string {
	out := []string{
		fmt.Sprintf("Horizon: %d years, the longer of the two terms", report.Horizon),
		"Rates beyond the last assumption year repeat the last value",
		describeTax("Current", report.Current),
		describeTax("Proposed", report.Proposed),
		describeReinvestment("Current", report.Current, report.Horizon),
		describeReinvestment("Proposed", report.Proposed, report.Horizon),
	}
	if report.MonteCarlo != nil {
		if report.Noise.Deterministic() {
			out = append(out, "Monte Carlo noise disabled: every draw uses the same path")
		} else {
			out = append(out, fmt.Sprintf("Monte Carlo noise: CDI ±%s p.p. (floor %s%%), IPCA ±%s p.p. (floor %s%%)",
				report.Noise.CDIRange.Div(two).String(), report.Noise.CDIFloor.String(),
				report.Noise.IPCARange.Div(two).String(), report.Noise.IPCAFloor.String()))
		}
	}
	if report.Scenarios != nil {
		out = append(out, "Scenario weights are illustrative priors, not calibrated to the simulation")
	}
	return out
}

func describeTax(label string, a domain.Asset) string {
	when := "at the horizon"
	if a.TaxTiming == domain.TaxAtMaturity {
		when = "at maturity"
	}
	return fmt.Sprintf("%s asset: %s%% income tax on the gain, withheld %s", label, a.TaxRate.String(), when)
}

func describeReinvestment(label string, a domain.Asset, horizon int) string {
	if a.Term >= horizon {
		return fmt.Sprintf("%s asset: held to the horizon, no reinvestment", label)
	}
	return fmt.Sprintf("%s asset: proceeds reinvested at %s%s from year %d", label,
		a.Reinvestment.Rate.String(), describeIndexer(a.Reinvestment.Kind), a.Term+1)
}

func describeIndexer(ix domain.Indexer) string {
	switch ix {
	case domain.IndexerFloating:
		return "% of CDI"
	case domain.IndexerInflation:
		return "% over IPCA"
	default:
		return "% a.a. fixed"
	}
}
