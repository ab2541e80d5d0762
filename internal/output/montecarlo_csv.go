package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/rpgo/fixedincome/internal/calculation"
)

var errNoMonteCarlo = errors.New("report has no monte carlo result")

// MonteCarloSummaryCSV exports aggregate statistics as Metric,Value,Description rows.
type MonteCarloSummaryCSV struct{}

func (m MonteCarloSummaryCSV) Name() string { return "montecarlo-csv" }

func (m MonteCarloSummaryCSV) Format(report *calculation.AnalysisReport) ([]byte, error) {
	mc := report.MonteCarlo
	if mc == nil {
		return nil, errNoMonteCarlo
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	if err := writer.Write([]string{"Metric", "Value", "Description"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	p := mc.Percentiles
	summaryData := [][]string{
		{"Simulations", strconv.Itoa(mc.NumSimulations), "Number of draws"},
		{"Seed", strconv.FormatInt(mc.Seed, 10), "Seed of the first stream"},
		{"Mean", mc.Mean.StringFixed(2), "Mean advantage of the proposed asset"},
		{"Median", mc.Median.StringFixed(2), "Median advantage"},
		{"StdDev", mc.StdDev.StringFixed(2), "Population standard deviation"},
		{"Min", mc.Min.StringFixed(2), "Worst draw"},
		{"Max", mc.Max.StringFixed(2), "Best draw"},
		{"P5", p.P5.StringFixed(2), "5th percentile"},
		{"P10", p.P10.StringFixed(2), "10th percentile"},
		{"P25", p.P25.StringFixed(2), "25th percentile"},
		{"P50", p.P50.StringFixed(2), "50th percentile"},
		{"P75", p.P75.StringFixed(2), "75th percentile"},
		{"P90", p.P90.StringFixed(2), "90th percentile"},
		{"P95", p.P95.StringFixed(2), "95th percentile"},
		{"ProbabilityPositive", mc.ProbabilityPositive.StringFixed(4), "Share of draws where the proposed asset ends ahead"},
		{"VaR95", mc.VaR95.StringFixed(2), "Advantage not undercut in 95% of draws"},
		{"ExpectedShortfall95", mc.ExpectedShortfall95.StringFixed(2), "Mean of the worst 5% of draws"},
		{"SharpeRatio", mc.SharpeRatio.StringFixed(4), "Mean over standard deviation"},
	}

	for _, row := range summaryData {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write data row: %w", err)
		}
	}
	writer.Flush()
	return buf.Bytes(), writer.Error()
}

// HistogramCSV exports the histogram bins for charting.
type HistogramCSV struct{}

func (h HistogramCSV) Name() string { return "histogram-csv" }

func (h HistogramCSV) Format(report *calculation.AnalysisReport) ([]byte, error) {
	if report.MonteCarlo == nil {
		return nil, errNoMonteCarlo
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write([]string{"Bin", "Start", "End", "Midpoint", "Frequency", "Favorable"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, bin := range report.MonteCarlo.Histogram {
		row := []string{
			intToString(i),
			bin.Start.StringFixed(2),
			bin.End.StringFixed(2),
			bin.Midpoint.StringFixed(2),
			intToString(bin.Frequency),
			boolToString(bin.Favorable),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write bin %d: %w", i, err)
		}
	}
	writer.Flush()
	return buf.Bytes(), writer.Error()
}
