package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the upper bound accepted for any monetary input (1e12).
var MaxAmount = decimal.NewFromInt(1_000_000_000_000)

// Money wraps a decimal amount with the input bound and display rules shared
// by the validator and the formatters. Computation stays on raw decimals;
// Money is the edge type.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// InBounds reports whether the amount lies in [0, MaxAmount].
func (m Money) InBounds() bool {
	return !m.Decimal.IsNegative() && m.Decimal.LessThanOrEqual(MaxAmount)
}

// String returns the amount fixed to two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as rupees with Indian digit grouping, e.g.
// ₹12,34,56,789.00.
func (m Money) Format() string {
	s := m.Decimal.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")
	grouped := groupIndian(intPart)
	if m.Decimal.IsNegative() {
		return "-₹" + grouped + "." + fracPart
	}
	return "₹" + grouped + "." + fracPart
}

// groupIndian inserts separators per the Indian numbering system: the last
// three digits form one group, the rest pair up.
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	groups := []string{digits[n-3:]}
	head := digits[:n-3]
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if len(head) > 0 {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",")
}
