package calculation

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// HistogramBins is the number of equal-width bins in a Monte Carlo histogram.
const HistogramBins = 50

// PercentileRanges represents percentile ranges of the advantage distribution
type PercentileRanges struct {
	P5  decimal.Decimal `json:"p5"`
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
	P95 decimal.Decimal `json:"p95"`
}

// HistogramBin covers [Start, End); the last bin also holds the maximum.
type HistogramBin struct {
	Start     decimal.Decimal `json:"start"`
	End       decimal.Decimal `json:"end"`
	Midpoint  decimal.Decimal `json:"midpoint"`
	Frequency int             `json:"frequency"`
	Favorable bool            `json:"favorable"` // midpoint above zero
}

func sortDecimals(values []decimal.Decimal) {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
}

// percentile picks sorted[floor(n*pct/100)], clamped to the last element.
func percentile(sorted []decimal.Decimal, pct int) decimal.Decimal {
	n := len(sorted)
	if n == 0 {
		return decimal.Zero
	}
	idx := n * pct / 100
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

func percentileRanges(sorted []decimal.Decimal) PercentileRanges {
	return PercentileRanges{
		P5:  percentile(sorted, 5),
		P10: percentile(sorted, 10),
		P25: percentile(sorted, 25),
		P50: percentile(sorted, 50),
		P75: percentile(sorted, 75),
		P90: percentile(sorted, 90),
		P95: percentile(sorted, 95),
	}
}

// meanStdDev returns the mean and the population standard deviation. Identical inputs give
// an exact zero deviation.
func meanStdDev(values []decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if len(values) == 0 {
		return decimal.Zero, decimal.Zero
	}
	n := decimal.NewFromInt(int64(len(values)))
	mean := decimal.Sum(values[0], values[1:]...).Div(n)

	variance := decimal.Zero
	for _, v := range values {
		diff := v.Sub(mean)
		variance = variance.Add(diff.Mul(diff))
	}
	variance = variance.Div(n)
	if !variance.IsPositive() {
		return mean, decimal.Zero
	}
	return mean, decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))
}

// expectedShortfall is the mean of the worst floor(n*pct/100) outcomes, or the minimum when
// that tail is empty.
func expectedShortfall(sorted []decimal.Decimal, pct int) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	k := len(sorted) * pct / 100
	if k == 0 {
		return sorted[0]
	}
	return decimal.Sum(sorted[0], sorted[1:k]...).Div(decimal.NewFromInt(int64(k)))
}

// buildHistogram spreads sorted values over equal-width bins between min and max.
// A zero-width range puts every value in the first bin.
func buildHistogram(sorted []decimal.Decimal, bins int) []HistogramBin {
	if len(sorted) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := sorted[0], sorted[len(sorted)-1]
	width := hi.Sub(lo).Div(decimal.NewFromInt(int64(bins)))
	half := decimal.NewFromFloat(0.5)

	hist := make([]HistogramBin, bins)
	for i := range hist {
		start := lo.Add(width.Mul(decimal.NewFromInt(int64(i))))
		mid := lo.Add(width.Mul(decimal.NewFromInt(int64(i)).Add(half)))
		hist[i] = HistogramBin{
			Start:     start,
			End:       start.Add(width),
			Midpoint:  mid,
			Favorable: mid.IsPositive(),
		}
	}

	for _, v := range sorted {
		idx := 0
		if width.IsPositive() {
			idx = int(v.Sub(lo).Div(width).Floor().IntPart())
			if idx >= bins {
				idx = bins - 1
			}
		}
		hist[idx].Frequency++
	}
	return hist
}
