package output

import (
	"bytes"
	"encoding/csv"
	"errors"

	"github.com/rpgo/fixedincome/internal/calculation"
)

// ProjectionCSV exports the year-by-year series of both assets, one row per year.
type ProjectionCSV struct{}

func (c ProjectionCSV) Name() string { return "projection-csv" }

func (c ProjectionCSV) Format(report *calculation.AnalysisReport) ([]byte, error) {
	if report.Comparison == nil {
		return nil, errors.New("report has no comparison")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "CDI", "IPCA", "CurrentValue", "CurrentAnnualizedReturn", "CurrentReinvesting", "ProposedValue", "ProposedAnnualizedReturn", "ProposedReinvesting", "Difference"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	cur := report.Comparison.Current.Points
	prop := report.Comparison.Proposed.Points
	for i := 0; i < len(cur) && i < len(prop); i++ {
		year := cur[i].Year
		cdi, ipca := "", ""
		if year > 0 {
			cdi = report.Assumptions.CDIAt(year).String()
			ipca = report.Assumptions.IPCAAt(year).String()
		}
		row := []string{
			intToString(year),
			cdi,
			ipca,
			cur[i].Value.StringFixed(2),
			cur[i].CumulativeReturn.StringFixed(4),
			boolToString(cur[i].Reinvesting),
			prop[i].Value.StringFixed(2),
			prop[i].CumulativeReturn.StringFixed(4),
			boolToString(prop[i].Reinvesting),
			prop[i].Value.Sub(cur[i].Value).StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
