package output

import (
	"fmt"
	"sort"

	"github.com/rpgo/fixedincome/internal/calculation"
	"github.com/rpgo/fixedincome/internal/domain"
	"github.com/shopspring/decimal"
)

// ScenarioExtremes names the scenarios most and least favorable to the proposed asset.
type ScenarioExtremes struct {
	Best           string
	BestAdvantage  decimal.Decimal
	Worst          string
	WorstAdvantage decimal.Decimal
	FavorableCount int
	Total          int
}

// AnalyzeScenarios ranks the scenario table by advantage.
// Extracted from the console formatter for testability.
func AnalyzeScenarios(analysis *domain.ScenarioAnalysis) ScenarioExtremes {
	if analysis == nil || len(analysis.Scenarios) == 0 {
		return ScenarioExtremes{}
	}
	ranked := append([]domain.ScenarioResult(nil), analysis.Scenarios...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Advantage.GreaterThan(ranked[j].Advantage) })

	ext := ScenarioExtremes{
		Best:           ranked[0].Name,
		BestAdvantage:  ranked[0].Advantage,
		Worst:          ranked[len(ranked)-1].Name,
		WorstAdvantage: ranked[len(ranked)-1].Advantage,
		Total:          len(ranked),
	}
	for _, sr := range ranked {
		if sr.Favorable {
			ext.FavorableCount++
		}
	}
	return ext
}

// KeyFindings lists the headline conclusions of a report, skipping sections that were not run.
func KeyFindings(report *calculation.AnalysisReport) []string {
	var findings []string
	if cmp := report.Comparison; cmp != nil {
		leader := "proposed"
		if !cmp.Advantage.IsPositive() {
			leader = "current"
		}
		findings = append(findings, fmt.Sprintf("Under the base path the %s asset ends ahead by %s (%s a.a.)",
			leader, FormatAmount(cmp.Advantage.Abs()), FormatPercentage(cmp.AnnualizedAdvantage.Abs())))
	}
	if mc := report.MonteCarlo; mc != nil {
		findings = append(findings, fmt.Sprintf("The proposed asset outperforms in %s of %d simulated paths",
			FormatProbability(mc.ProbabilityPositive), mc.NumSimulations))
	}
	if be := report.Breakeven; be != nil {
		qualifier := ""
		if !be.Converged {
			qualifier = " (not converged)"
		}
		findings = append(findings, fmt.Sprintf("Breakeven proposed rate: %s%s", FormatPercentage(be.Rate), qualifier))
	}
	if ext := AnalyzeScenarios(report.Scenarios); ext.Total > 0 {
		findings = append(findings, fmt.Sprintf("%d of %d scenarios favor the proposed asset; best %s, worst %s",
			ext.FavorableCount, ext.Total, ext.Best, ext.Worst))
	}
	return findings
}
