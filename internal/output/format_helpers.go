package output

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatAmount formats a currency amount with 2 decimals and no symbol.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatAmount(amount decimal.Decimal) string { return amount.StringFixed(2) }

// FormatPercentage formats a decimal already in percent units with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatProbability renders a [0,1] fraction as a percentage with 1 decimal.
func FormatProbability(p decimal.Decimal) string {
	return p.Shift(2).StringFixed(1) + "%"
}

func intToString(v int) string { return strconv.Itoa(v) }

func boolToString(v bool) string { return strconv.FormatBool(v) }
