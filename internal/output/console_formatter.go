package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/fixedincome/internal/calculation"
	"github.com/rpgo/fixedincome/internal/domain"
)

// ConsoleFormatter provides a plain-text summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *calculation.AnalysisReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FIXED-INCOME SWITCH ANALYSIS")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&buf, "Current:  %s\n", describeAsset(report.Current))
	fmt.Fprintf(&buf, "Proposed: %s\n", describeAsset(report.Proposed))
	fmt.Fprintf(&buf, "Horizon:  %d years\n", report.Horizon)
	fmt.Fprintf(&buf, "Outlook:  %s (CDI mean %s%%, %s; IPCA mean %s%%, %s)\n", report.Trend.Description,
		report.Trend.CDIMean.StringFixed(1), report.Trend.CDITrend, report.Trend.IPCAMean.StringFixed(1), report.Trend.IPCATrend)

	if cmp := report.Comparison; cmp != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "PROJECTION")
		fmt.Fprintf(&buf, "%-6s %18s %18s %18s\n", "Year", "Current", "Proposed", "Difference")
		for i := 0; i < len(cmp.Current.Points) && i < len(cmp.Proposed.Points); i++ {
			cur, prop := cmp.Current.Points[i], cmp.Proposed.Points[i]
			marker := ""
			if cur.Reinvesting {
				marker = " *"
			}
			fmt.Fprintf(&buf, "%-6d %18s %18s %18s%s\n", cur.Year, FormatAmount(cur.Value), FormatAmount(prop.Value),
				FormatAmount(prop.Value.Sub(cur.Value)), marker)
		}
		fmt.Fprintln(&buf, "(* current asset reinvesting)")
		fmt.Fprintf(&buf, "Final after tax: current %s (tax %s), proposed %s (tax %s)\n",
			FormatAmount(cmp.Current.FinalValue), FormatAmount(cmp.Current.TaxWithheld),
			FormatAmount(cmp.Proposed.FinalValue), FormatAmount(cmp.Proposed.TaxWithheld))
		fmt.Fprintf(&buf, "Advantage: %s (%s total, %s a.a.)\n", FormatAmount(cmp.Advantage),
			FormatPercentage(cmp.AdvantagePercent), FormatPercentage(cmp.AnnualizedAdvantage))
	}

	if mc := report.MonteCarlo; mc != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "MONTE CARLO (%d draws, seed %d)\n", mc.NumSimulations, mc.Seed)
		fmt.Fprintf(&buf, "Mean %s  Median %s  StdDev %s\n", FormatAmount(mc.Mean), FormatAmount(mc.Median), FormatAmount(mc.StdDev))
		p := mc.Percentiles
		fmt.Fprintf(&buf, "P5 %s  P25 %s  P50 %s  P75 %s  P95 %s\n",
			FormatAmount(p.P5), FormatAmount(p.P25), FormatAmount(p.P50), FormatAmount(p.P75), FormatAmount(p.P95))
		fmt.Fprintf(&buf, "P(proposed ahead) %s  VaR95 %s  ES95 %s  Sharpe %s\n", FormatProbability(mc.ProbabilityPositive),
			FormatAmount(mc.VaR95), FormatAmount(mc.ExpectedShortfall95), mc.SharpeRatio.StringFixed(2))
	}

	if be := report.Breakeven; be != nil {
		fmt.Fprintln(&buf)
		status := "converged"
		if !be.Converged {
			status = "not converged"
		}
		fmt.Fprintf(&buf, "BREAKEVEN: proposed rate %s (%s after %d iterations, gap %s)\n",
			be.Rate.StringFixed(4), status, be.Iterations, FormatAmount(be.Gap))
	}

	if sa := report.Scenarios; sa != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "SCENARIOS")
		fmt.Fprintf(&buf, "%-16s %7s %18s %10s %-7s\n", "Name", "Weight", "Advantage", "a.a.", "Impact")
		for _, sr := range sa.Scenarios {
			fmt.Fprintf(&buf, "%-16s %7s %18s %10s %-7s\n", sr.Name, sr.Weight.StringFixed(3), FormatAmount(sr.Advantage),
				FormatPercentage(sr.AnnualizedAdvantage), sr.Impact)
		}
		fmt.Fprintf(&buf, "Weighted expected advantage %s; favorable weight %s\n",
			FormatAmount(sa.ExpectedAdvantage), FormatProbability(sa.FavorableWeight))
		fmt.Fprintf(&buf, "Modified duration: current %s, proposed %s\n",
			sa.CurrentMetrics.ModifiedDuration.StringFixed(2), sa.ProposedMetrics.ModifiedDuration.StringFixed(2))
	}

	if rec := report.Recommendation; rec.Action != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "RECOMMENDATION: %s (%s risk-return)\n", rec.Action, rec.RiskReturn)
		fmt.Fprintf(&buf, "  %s\n", rec.Rationale)
		if rec.RegimeAlignment != "" {
			fmt.Fprintf(&buf, "  %s\n", rec.RegimeAlignment)
		}
	}

	if findings := KeyFindings(report); len(findings) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "KEY FINDINGS")
		for _, f := range findings {
			fmt.Fprintf(&buf, "- %s\n", f)
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "ASSUMPTIONS")
	fmt.Fprintln(&buf, "- "+strings.Join(GenerateAssumptions(report), "\n- "))
	return buf.Bytes(), nil
}

func describeAsset(a domain.Asset) string {
	var rate string
	switch a.Indexer {
	case domain.IndexerFloating:
		rate = a.Rate.String() + "% of CDI"
	case domain.IndexerInflation:
		rate = "IPCA + " + a.Rate.String() + "%"
	default:
		rate = a.Rate.String() + "% a.a."
	}
	name := ""
	if a.Name != "" {
		name = a.Name + ": "
	}
	return fmt.Sprintf("%s%s, %d years, principal %s", name, rate, a.Term, FormatAmount(a.Principal))
}
