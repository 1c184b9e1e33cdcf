package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/arthaplan/engine/internal/domain"
	pdecimal "github.com/arthaplan/engine/pkg/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// RealRate is the inflation-adjusted post-retirement return,
// (1+post)/(1+inflation) - 1. It can be negative when inflation outruns the
// post-retirement return; the corpus formula handles that without special
// casing. Division by zero is impossible because validation bounds inflation
// to [0,1].
func RealRate(postRetireROI, inflation decimal.Decimal) decimal.Decimal {
	return one.Add(postRetireROI).Div(one.Add(inflation)).Sub(one)
}

// periodRealRate applies the configured policy to produce the per-month
// annuity rate from the annual real rate.
func periodRealRate(annualReal decimal.Decimal, policy RealRatePolicy) (decimal.Decimal, error) {
	if policy == RealRateCompatAnnualAsMonthly {
		return annualReal, nil
	}
	factor, err := pdecimal.GrowthFactor(annualReal, one.Div(twelve))
	if err != nil {
		return decimal.Zero, &domain.ArithmeticGuardError{Step: "period_real_rate", Err: err}
	}
	return factor.Sub(one), nil
}

// PensionMonths is the number of monthly withdrawals the corpus must fund,
// from retirement age to the pension horizon age, floored at zero.
func PensionMonths(retirementAge, pensionHorizonAge int) int {
	years := pensionHorizonAge - retirementAge
	if years < 0 {
		years = 0
	}
	return years * 12
}

// CorpusRequired is the present value at retirement of the monthly expense
// annuity: expense * (1 - (1+r)^-n) / r. A zero per-period rate degrades to
// the straight-line expense * n.
func CorpusRequired(monthlyExpense, periodRate decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, nil
	}
	n := decimal.NewFromInt(int64(months))
	if periodRate.IsZero() {
		return monthlyExpense.Mul(n), nil
	}
	discount, err := pdecimal.GrowthFactor(periodRate, n.Neg())
	if err != nil {
		return decimal.Zero, &domain.ArithmeticGuardError{Step: "corpus_required", Err: err}
	}
	return monthlyExpense.Mul(one.Sub(discount)).Div(periodRate), nil
}

// MoneyToRetireNow discounts the retirement corpus back to today at the
// pre-retirement monthly return. With zero months to retire it is the corpus
// itself.
func MoneyToRetireNow(corpus, preRetireROI decimal.Decimal, monthsToRetire int) (decimal.Decimal, error) {
	if monthsToRetire <= 0 {
		return corpus, nil
	}
	monthlyRate := preRetireROI.Div(twelve)
	factor, err := pdecimal.GrowthFactor(monthlyRate, decimal.NewFromInt(int64(monthsToRetire)))
	if err != nil {
		return decimal.Zero, &domain.ArithmeticGuardError{Step: "money_to_retire_now", Err: err}
	}
	return corpus.Div(factor), nil
}
