package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RealRatePolicy selects how the post-retirement real rate is applied as the
// per-period annuity rate.
type RealRatePolicy string

const (
	// RealRateCompatAnnualAsMonthly applies the annual real rate directly
	// per monthly period, matching the legacy calculation the dashboards
	// were built against. This is the default for output compatibility.
	RealRateCompatAnnualAsMonthly RealRatePolicy = "compat_annual_as_monthly"
	// RealRateMonthlyCompounded converts the annual real rate to its
	// monthly equivalent, (1+real)^(1/12)-1, before use.
	RealRateMonthlyCompounded RealRatePolicy = "monthly_compounded"
)

func (p RealRatePolicy) valid() bool {
	return p == RealRateCompatAnnualAsMonthly || p == RealRateMonthlyCompounded
}

// ChildInflationScope selects which goals inflate at child_inflation instead
// of general inflation.
type ChildInflationScope string

const (
	// ChildInflationChildGoals applies child_inflation to goals whose
	// person resolves to a CHILD family member. Default.
	ChildInflationChildGoals ChildInflationScope = "child_goals"
	// ChildInflationAllGoals applies child_inflation to every goal.
	ChildInflationAllGoals ChildInflationScope = "all_goals"
	// ChildInflationNever always uses general inflation.
	ChildInflationNever ChildInflationScope = "never"
)

func (s ChildInflationScope) valid() bool {
	return s == ChildInflationChildGoals || s == ChildInflationAllGoals || s == ChildInflationNever
}

// ContingencyBase selects which monthly outgo the emergency fund covers.
type ContingencyBase string

const (
	// ContingencyBaseCommitted covers essential and lifestyle expenses plus
	// EMIs, the outgo that cannot pause in an emergency. Default.
	ContingencyBaseCommitted ContingencyBase = "committed_outgo"
	// ContingencyBaseLiving covers essential and lifestyle expenses only.
	ContingencyBaseLiving ContingencyBase = "living_expenses"
)

func (b ContingencyBase) valid() bool {
	return b == ContingencyBaseCommitted || b == ContingencyBaseLiving
}

// FeasibilityThresholds are the surplus-share boundaries that grade a goal.
// A goal needing up to OnTrackShare of the monthly surplus is ON_TRACK, up
// to AttentionShare NEEDS_ATTENTION, up to AtRiskShare AT_RISK, beyond that
// CRITICAL.
type FeasibilityThresholds struct {
	OnTrackShare   decimal.Decimal
	AttentionShare decimal.Decimal
	AtRiskShare    decimal.Decimal
}

// DefaultFeasibilityThresholds returns the documented 30/60/100 grading.
func DefaultFeasibilityThresholds() FeasibilityThresholds {
	return FeasibilityThresholds{
		OnTrackShare:   decimal.NewFromFloat(0.30),
		AttentionShare: decimal.NewFromFloat(0.60),
		AtRiskShare:    decimal.NewFromInt(1),
	}
}

// Options carries every engine policy knob. All knobs have defaults; zero
// values are rejected by Validate so misloaded configuration fails loudly
// instead of silently grading everything CRITICAL.
type Options struct {
	RealRate            RealRatePolicy
	ChildInflationScope ChildInflationScope
	Feasibility         FeasibilityThresholds

	// ContingencyMonths sizes the emergency fund (months of expenses).
	ContingencyMonths int
	// ContingencyScope selects the monthly outgo the fund multiplies.
	ContingencyScope ContingencyBase
	// InsuranceIncomeGrowth is the assumed income growth rate in the
	// life-cover formula.
	InsuranceIncomeGrowth decimal.Decimal
}

// DefaultOptions returns the policy set matching the legacy system.
func DefaultOptions() Options {
	return Options{
		RealRate:              RealRateCompatAnnualAsMonthly,
		ChildInflationScope:   ChildInflationChildGoals,
		Feasibility:           DefaultFeasibilityThresholds(),
		ContingencyMonths:     6,
		ContingencyScope:      ContingencyBaseCommitted,
		InsuranceIncomeGrowth: decimal.NewFromFloat(0.05),
	}
}

// Validate rejects incoherent option sets.
func (o Options) Validate() error {
	if !o.RealRate.valid() {
		return fmt.Errorf("unknown real rate policy %q", o.RealRate)
	}
	if !o.ChildInflationScope.valid() {
		return fmt.Errorf("unknown child inflation scope %q", o.ChildInflationScope)
	}
	f := o.Feasibility
	if f.OnTrackShare.LessThanOrEqual(decimal.Zero) ||
		f.AttentionShare.LessThan(f.OnTrackShare) ||
		f.AtRiskShare.LessThan(f.AttentionShare) {
		return fmt.Errorf("feasibility thresholds must satisfy 0 < on_track <= attention <= at_risk")
	}
	if o.ContingencyMonths <= 0 {
		return fmt.Errorf("contingency months must be positive, got %d", o.ContingencyMonths)
	}
	if !o.ContingencyScope.valid() {
		return fmt.Errorf("unknown contingency base %q", o.ContingencyScope)
	}
	if o.InsuranceIncomeGrowth.IsNegative() {
		return fmt.Errorf("insurance income growth cannot be negative")
	}
	return nil
}
