package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/arthaplan/engine/internal/domain"
)

// percentSumEpsilon is the tolerance on the five cash-flow ratios summing to
// exactly one hundred.
var percentSumEpsilon = decimal.NewFromFloat(0.01)

// magnitudeCeiling bounds every output amount. Decimal arithmetic cannot
// produce NaN or infinity, so a runaway magnitude is the failure mode this
// scan catches instead.
var magnitudeCeiling = decimal.New(1, 18)

// EnforceConsistency re-derives every cross-section invariant from the
// snapshot and the assembled result. It is the audit gate before results are
// surfaced: any failure here with validated input is an engine defect, so
// the whole analysis is discarded rather than partially returned.
func EnforceConsistency(snap *domain.Snapshot, result *domain.AnalysisResult) error {
	if err := checkLinkage(snap, result); err != nil {
		return err
	}
	if err := checkRatioSum(result.Summary); err != nil {
		return err
	}
	if err := checkRealEstate(snap); err != nil {
		return err
	}
	return checkMagnitudes(result)
}

func checkLinkage(snap *domain.Snapshot, result *domain.AnalysisResult) error {
	emis := LinkedEMITotal(snap.Liabilities)
	if !snap.CashFlow.Outflows.LinkedEMIs.Equal(emis) {
		return &domain.ConsistencyError{
			Invariant: "emi_linkage",
			Detail: fmt.Sprintf("snapshot linked_emis %s != derived %s",
				snap.CashFlow.Outflows.LinkedEMIs, emis),
		}
	}
	sips := LinkedSIPTotal(snap.Assets.Investments)
	if !snap.CashFlow.Outflows.LinkedInvestments.Equal(sips) {
		return &domain.ConsistencyError{
			Invariant: "sip_linkage",
			Detail: fmt.Sprintf("snapshot linked_investments %s != derived %s",
				snap.CashFlow.Outflows.LinkedInvestments, sips),
		}
	}
	return nil
}

// checkRatioSum verifies the five ratios partition total inflow. The ratios
// are published rounded, so the tolerance absorbs per-field rounding drift.
func checkRatioSum(summary domain.DashboardMetrics) error {
	sum := summary.SavingsRate.
		Add(summary.EMIBurden).
		Add(summary.InvestmentRate).
		Add(summary.EssentialExpensePercent).
		Add(summary.LifestyleExpensePercent)
	if sum.Sub(hundred).Abs().GreaterThan(percentSumEpsilon) {
		return &domain.ConsistencyError{
			Invariant: "ratio_sum",
			Detail:    fmt.Sprintf("cash-flow ratios sum to %s, expected 100 ± %s", sum, percentSumEpsilon),
		}
	}
	return nil
}

func checkRealEstate(snap *domain.Snapshot) error {
	for i, re := range snap.Assets.RealEstate {
		if re.OutstandingLoan.GreaterThan(re.PresentValue) {
			return &domain.ConsistencyError{
				Invariant: "real_estate_loan",
				Detail: fmt.Sprintf("real_estate[%d] loan %s exceeds value %s",
					i, re.OutstandingLoan, re.PresentValue),
			}
		}
	}
	return nil
}

func checkMagnitudes(result *domain.AnalysisResult) error {
	check := func(name string, d decimal.Decimal) error {
		if d.Abs().GreaterThan(magnitudeCeiling) {
			return &domain.ConsistencyError{
				Invariant: "magnitude",
				Detail:    fmt.Sprintf("%s = %s exceeds the plausible range", name, d),
			}
		}
		return nil
	}

	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"retirement.expense_at_retirement_monthly", result.Retirement.ExpenseAtRetirementMonthly},
		{"retirement.corpus_required", result.Retirement.CorpusRequired},
		{"retirement.money_to_retire_now", result.Retirement.MoneyToRetireNow},
		{"summary.total_assets", result.Summary.TotalAssets},
		{"summary.total_liabilities", result.Summary.TotalLiabilities},
		{"summary.net_worth", result.Summary.NetWorth},
		{"summary.projected_corpus", result.Summary.ProjectedCorpus},
		{"summary.retirement_gap", result.Summary.RetirementGap},
		{"summary.extra_sip_required", result.Summary.ExtraSIPRequired},
	}
	for _, f := range fields {
		if err := check(f.name, f.value); err != nil {
			return err
		}
	}
	for i, g := range result.Goals {
		if err := check(fmt.Sprintf("goals[%d].future_cost", i), g.FutureCost); err != nil {
			return err
		}
		if err := check(fmt.Sprintf("goals[%d].monthly_sip_required", i), g.MonthlySIPRequired); err != nil {
			return err
		}
	}
	return nil
}
