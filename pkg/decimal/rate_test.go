package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFractionPercent(t *testing.T) {
	p := stddec.RequireFromString("12.5")
	assert.True(t, Fraction(p).Equal(stddec.RequireFromString("0.125")))
	assert.True(t, Percent(Fraction(p)).Equal(p))
	assert.True(t, GrowthFactor(p).Equal(stddec.RequireFromString("1.125")))
}

func TestAnnualizedPercent(t *testing.T) {
	start := stddec.NewFromInt(1000000)

	tests := []struct {
		name  string
		end   stddec.Decimal
		years int
		want  float64
	}{
		{"ten percent over three years", stddec.NewFromInt(1331000), 3, 10},
		{"flat", start, 5, 0},
		{"zero years", stddec.NewFromInt(2000000), 0, 0},
		{"total loss", stddec.Zero, 2, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnualizedPercent(start, tt.end, tt.years)
			assert.InDelta(t, tt.want, got.InexactFloat64(), 1e-6)
		})
	}

	assert.True(t, AnnualizedPercent(stddec.Zero, start, 3).IsZero())
}
