package output

import (
	"github.com/shopspring/decimal"

	pdecimal "github.com/arthaplan/engine/pkg/decimal"
)

// FormatCurrency formats a decimal as rupees with 2 decimals and Indian
// digit grouping (12,34,56,789).
func FormatCurrency(amount decimal.Decimal) string {
	return pdecimal.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }
