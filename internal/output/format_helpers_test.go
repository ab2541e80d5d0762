//go:build unit

package output

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	v := decimal.NewFromFloat(1234.567)
	got := FormatAmount(v)
	want := "1234.57"
	if got != want {
		t.Errorf("FormatAmount(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatPercentage(t *testing.T) {
	v := decimal.NewFromFloat(12.345)
	got := FormatPercentage(v)
	want := "12.35%"
	if got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatProbability(t *testing.T) {
	v := decimal.NewFromFloat(0.6234)
	got := FormatProbability(v)
	want := "62.3%"
	if got != want {
		t.Errorf("FormatProbability(%v) = %q, want %q", v, got, want)
	}
}
