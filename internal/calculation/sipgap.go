package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/arthaplan/engine/internal/domain"
	pdecimal "github.com/arthaplan/engine/pkg/decimal"
)

// FutureValueLumpsum grows a present amount at a monthly rate over n months.
func FutureValueLumpsum(present, annualROI decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return present, nil
	}
	monthlyRate := annualROI.Div(twelve)
	factor, err := pdecimal.GrowthFactor(monthlyRate, decimal.NewFromInt(int64(months)))
	if err != nil {
		return decimal.Zero, &domain.ArithmeticGuardError{Step: "fv_lumpsum", Err: err}
	}
	return present.Mul(factor), nil
}

// FutureValueSIP is the annuity-due future value of a monthly contribution:
// PMT * ((1+r)^n - 1) / r * (1+r). Contributions land at the start of each
// month. A zero rate degrades to PMT * n.
func FutureValueSIP(monthlyPayment, annualROI decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, nil
	}
	n := decimal.NewFromInt(int64(months))
	r := annualROI.Div(twelve)
	if r.IsZero() {
		return monthlyPayment.Mul(n), nil
	}
	factor, err := pdecimal.GrowthFactor(r, n)
	if err != nil {
		return decimal.Zero, &domain.ArithmeticGuardError{Step: "fv_sip", Err: err}
	}
	return monthlyPayment.Mul(factor.Sub(one)).Div(r).Mul(one.Add(r)), nil
}

// ProjectedCorpus is what current investments plus the current SIP run rate
// grow to by retirement.
func ProjectedCorpus(currentInvestments, monthlySIP, preRetireROI decimal.Decimal, monthsToRetire int) (decimal.Decimal, error) {
	lump, err := FutureValueLumpsum(currentInvestments, preRetireROI, monthsToRetire)
	if err != nil {
		return decimal.Zero, err
	}
	sip, err := FutureValueSIP(monthlySIP, preRetireROI, monthsToRetire)
	if err != nil {
		return decimal.Zero, err
	}
	return lump.Add(sip), nil
}

// ExtraSIPRequired solves the annuity-due SIP that closes a corpus gap over
// n months: gap * r / (((1+r)^n - 1) * (1+r)). Zero when the gap is at or
// below zero, and zero when no months remain, because no monthly
// contribution schedule exists past the horizon.
func ExtraSIPRequired(gap, annualROI decimal.Decimal, months int) (decimal.Decimal, error) {
	if gap.LessThanOrEqual(decimal.Zero) || months <= 0 {
		return decimal.Zero, nil
	}
	n := decimal.NewFromInt(int64(months))
	r := annualROI.Div(twelve)
	if r.IsZero() {
		return gap.Div(n), nil
	}
	factor, err := pdecimal.GrowthFactor(r, n)
	if err != nil {
		return decimal.Zero, &domain.ArithmeticGuardError{Step: "extra_sip", Err: err}
	}
	return gap.Mul(r).Div(factor.Sub(one).Mul(one.Add(r))), nil
}

// GoalSIPRequired is the monthly contribution that funds a goal's target
// amount by its due date. A goal due today cannot be spread over any monthly
// schedule, so the whole amount falls due at once.
func GoalSIPRequired(target, annualROI decimal.Decimal, months int) (decimal.Decimal, error) {
	if target.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}
	if months <= 0 {
		return target, nil
	}
	return ExtraSIPRequired(target, annualROI, months)
}
