package output

import (
	"bytes"
	"encoding/csv"
	"errors"

	"github.com/rpgo/fixedincome/internal/calculation"
)

// ScenarioCSV implements the simple summary CSV output (one row per scenario, catalog order).
type ScenarioCSV struct{}

func (c ScenarioCSV) Name() string { return "csv" }

func (c ScenarioCSV) Format(report *calculation.AnalysisReport) ([]byte, error) {
	if report.Scenarios == nil {
		return nil, errors.New("report has no scenario analysis")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Kind", "Weight", "CurrentFinal", "ProposedFinal", "Advantage", "AnnualizedAdvantage", "Favorable", "Impact"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios.Scenarios {
		row := []string{
			sc.Name,
			string(sc.Kind),
			sc.Weight.String(),
			sc.CurrentFinal.StringFixed(2),
			sc.ProposedFinal.StringFixed(2),
			sc.Advantage.StringFixed(2),
			sc.AnnualizedAdvantage.StringFixed(4),
			boolToString(sc.Favorable),
			string(sc.Impact),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
