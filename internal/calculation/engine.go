package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/arthaplan/engine/internal/domain"
	"github.com/arthaplan/engine/pkg/dateutil"
)

// Engine runs the full analysis pipeline over a snapshot: linkage
// derivation, validation, the computation chain, result assembly and the
// consistency audit. An Engine is stateless and safe for concurrent use;
// every call owns its snapshot clone and result.
type Engine struct {
	opts   Options
	logger Logger
}

// NewEngine builds an engine with the given policy options. A nil logger
// falls back to the no-op logger.
func NewEngine(opts Options, logger Logger) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine options: %w", err)
	}
	if logger == nil {
		logger = NopLogger{}
	}
	return &Engine{opts: opts, logger: logger}, nil
}

// NewEngineWithDefaults builds an engine with the default policy set and no
// logging.
func NewEngineWithDefaults() *Engine {
	return &Engine{opts: DefaultOptions(), logger: NopLogger{}}
}

// Analyze computes the complete analysis for a snapshot as of the given
// reference date. The input is never mutated; all derived figures live in
// the returned result. Two calls with the same snapshot and date produce
// identical results.
func (e *Engine) Analyze(ctx context.Context, input *domain.Snapshot, asOf time.Time) (*domain.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := input.Clone()
	today := dateutil.MidnightUTC(asOf)

	// Linked cash-flow values are always re-derived from the liability and
	// investment tables before anything else looks at them.
	snap.CashFlow.Outflows.LinkedEMIs = LinkedEMITotal(snap.Liabilities)
	snap.CashFlow.Outflows.LinkedInvestments = LinkedSIPTotal(snap.Assets.Investments)

	if verrs := ValidateSnapshot(snap, today); verrs != nil {
		e.logger.Warnf("snapshot rejected: %d violations, %d unresolved references",
			len(verrs.Violations), len(verrs.References))
		return nil, verrs
	}

	t := newTracer()

	tm := ResolveTimeMetrics(snap.UserProfile.Primary, today)
	t.record("time_metrics", "age and retirement horizon from birth date",
		in("dob", snap.UserProfile.Primary.BirthDate.String(), "as_of", today.Format("2006-01-02")),
		fmt.Sprintf("age=%s years_to_retire=%s months=%d",
			tm.CurrentAge.Round(2), tm.YearsToRetire.Round(2), tm.MonthsToRetire))

	cf := AggregateCashFlow(snap)
	t.record("cash_flow", "monthly totals with derived EMI and SIP linkage",
		in("linked_emis", cf.LinkedEMIs.String(), "linked_investments", cf.LinkedSIPs.String()),
		fmt.Sprintf("inflow=%s outflow=%s leftover=%s",
			cf.TotalInflow.Round(2), cf.TotalOutflow.Round(2), cf.Leftover.Round(2)))

	nw := ComputeNetWorth(snap)
	t.record("net_worth", "balance sheet totals",
		in("total_assets", nw.TotalAssets.Round(2).String(), "total_liabilities", nw.TotalLiabilities.Round(2).String()),
		nw.NetWorth.Round(2).String())

	ratios := ComputeRatios(cf)

	// Retirement chain. The monthly living expense excludes EMIs and SIPs.
	monthlyExpense := cf.Essential.Add(cf.Lifestyle)
	expenseAtRetirement, err := ExpenseAtRetirement(monthlyExpense, snap.Assumptions.Inflation, tm.YearsToRetire)
	if err != nil {
		return nil, e.defect(err)
	}
	t.record("expense_at_retirement", "living expense projected to retirement at inflation",
		in("monthly_expense", monthlyExpense.Round(2).String(), "inflation", snap.Assumptions.Inflation.String(), "years", tm.YearsToRetire.Round(2).String()),
		expenseAtRetirement.Round(2).String())

	annualReal := RealRate(snap.Assumptions.PostRetireROI, snap.Assumptions.Inflation)
	periodRate, err := periodRealRate(annualReal, e.opts.RealRate)
	if err != nil {
		return nil, e.defect(err)
	}
	t.record("real_rate", "inflation-adjusted post-retirement return",
		in("post_retire_roi", snap.Assumptions.PostRetireROI.String(), "inflation", snap.Assumptions.Inflation.String()),
		annualReal.Round(6).String())

	horizonAge := snap.UserProfile.Primary.PensionHorizonAge()
	pensionMonths := PensionMonths(snap.UserProfile.Primary.RetirementAge, horizonAge)
	corpus, err := CorpusRequired(expenseAtRetirement, periodRate, pensionMonths)
	if err != nil {
		return nil, e.defect(err)
	}
	t.record("corpus_required", "present value at retirement of the expense annuity",
		in("monthly_expense", expenseAtRetirement.Round(2).String(), "rate", periodRate.Round(6).String(), "months", fmt.Sprint(pensionMonths)),
		corpus.Round(2).String())

	moneyNow, err := MoneyToRetireNow(corpus, snap.Assumptions.PreRetireROI, tm.MonthsToRetire)
	if err != nil {
		return nil, e.defect(err)
	}
	t.record("money_to_retire_now", "corpus discounted to today",
		in("corpus", corpus.Round(2).String(), "pre_retire_roi", snap.Assumptions.PreRetireROI.String(), "months", fmt.Sprint(tm.MonthsToRetire)),
		moneyNow.Round(2).String())

	projected, err := ProjectedCorpus(nw.InvestibleAssets, cf.LinkedSIPs, snap.Assumptions.PreRetireROI, tm.MonthsToRetire)
	if err != nil {
		return nil, e.defect(err)
	}
	gap := corpus.Sub(projected)
	extraSIP, err := ExtraSIPRequired(gap, snap.Assumptions.PreRetireROI, tm.MonthsToRetire)
	if err != nil {
		return nil, e.defect(err)
	}
	t.record("retirement_gap", "corpus shortfall against projected holdings",
		in("corpus_required", corpus.Round(2).String(), "projected_corpus", projected.Round(2).String()),
		fmt.Sprintf("gap=%s extra_sip=%s", gap.Round(2), extraSIP.Round(2)))

	goalRows, goalSteps, goalSummary, err := AnalyzeGoals(ctx, snap, today, cf.Surplus(), e.opts)
	if err != nil {
		if verrs := asValidation(err); verrs != nil {
			return nil, verrs
		}
		return nil, e.defect(err)
	}
	t.append(goalSteps...)

	cashflowTable, err := BuildRetirementCashflowTable(corpus, expenseAtRetirement, snap.Assumptions,
		snap.UserProfile.Primary.RetirementAge, horizonAge)
	if err != nil {
		return nil, e.defect(err)
	}
	childPlanning, err := BuildChildPlanning(snap, today)
	if err != nil {
		return nil, e.defect(err)
	}
	insurance, err := BuildInsuranceCover(snap, today, e.opts.InsuranceIncomeGrowth)
	if err != nil {
		return nil, e.defect(err)
	}

	result := &domain.AnalysisResult{
		TimeMetrics: domain.TimeMetrics{
			CurrentAge:     tm.CurrentAge,
			RetirementAge:  tm.RetirementAge,
			YearsToRetire:  tm.YearsToRetire,
			MonthsToRetire: tm.MonthsToRetire,
		},
		Retirement: domain.RetirementAnalysis{
			CurrentMonthlyExpenses:     monthlyExpense,
			ExpenseAtRetirementMonthly: expenseAtRetirement,
			RealRatePercent:            annualReal.Mul(hundred),
			PensionYears:               horizonAge - snap.UserProfile.Primary.RetirementAge,
			PensionMonths:              pensionMonths,
			CorpusRequired:             corpus,
			MoneyToRetireNow:           moneyNow,
		},
		Goals:       goalRows,
		GoalSummary: goalSummary,
		Summary: domain.DashboardMetrics{
			TotalAssets:      nw.TotalAssets,
			TotalLiabilities: nw.TotalLiabilities,
			NetWorth:         nw.NetWorth,

			TotalMonthlyInflow:  cf.TotalInflow,
			TotalMonthlyOutflow: cf.TotalOutflow,
			LeftoverSavings:     cf.Leftover,

			SavingsRate:             ratios.SavingsRate,
			EMIBurden:               ratios.EMIBurden,
			InvestmentRate:          ratios.InvestmentRate,
			EssentialExpensePercent: ratios.EssentialExpensePercent,
			LifestyleExpensePercent: ratios.LifestyleExpensePercent,

			ProjectedCorpus:  projected,
			RetirementGap:    gap,
			ExtraSIPRequired: extraSIP,
		},
		Trace: t.steps,

		RetirementCashflowTable: cashflowTable,
		ChildPlanning:           childPlanning,
		ContingencyFund:         BuildContingencyFund(cf, e.opts.ContingencyMonths, e.opts.ContingencyScope),
		InsuranceCover:          insurance,
	}

	// The audit runs on full-precision figures; rounding happens only after
	// the invariants hold.
	if err := EnforceConsistency(snap, result); err != nil {
		return nil, e.defect(err)
	}
	roundResult(result)

	e.logger.Infof("analysis complete: net_worth=%s corpus_required=%s goals=%d",
		result.Summary.NetWorth, result.Retirement.CorpusRequired, len(result.Goals))
	return result, nil
}

// defect logs and passes through errors that should be unreachable with
// validated input.
func (e *Engine) defect(err error) error {
	e.logger.Errorf("engine defect: %v", err)
	return err
}

// asValidation normalizes single validation or reference errors raised
// inside the goal fan-out into the aggregated form callers expect.
func asValidation(err error) *domain.ValidationErrors {
	switch v := err.(type) {
	case *domain.ValidationErrors:
		return v
	case domain.ValidationError:
		return &domain.ValidationErrors{Violations: []domain.ValidationError{v}}
	case domain.ReferenceError:
		return &domain.ValidationErrors{References: []domain.ReferenceError{v}}
	}
	return nil
}

// roundResult applies the output rounding rules in place: two decimals for
// money and percentages. Intermediate computation never rounds.
func roundResult(r *domain.AnalysisResult) {
	r.TimeMetrics.CurrentAge = r.TimeMetrics.CurrentAge.Round(2)
	r.TimeMetrics.YearsToRetire = r.TimeMetrics.YearsToRetire.Round(2)

	ret := &r.Retirement
	ret.CurrentMonthlyExpenses = ret.CurrentMonthlyExpenses.Round(2)
	ret.ExpenseAtRetirementMonthly = ret.ExpenseAtRetirementMonthly.Round(2)
	ret.RealRatePercent = ret.RealRatePercent.Round(2)
	ret.CorpusRequired = ret.CorpusRequired.Round(2)
	ret.MoneyToRetireNow = ret.MoneyToRetireNow.Round(2)

	for i := range r.Goals {
		g := &r.Goals[i]
		g.CurrentCost = g.CurrentCost.Round(2)
		g.YearsToGoal = g.YearsToGoal.Round(2)
		g.FutureCost = g.FutureCost.Round(2)
		g.MonthlySIPRequired = g.MonthlySIPRequired.Round(2)
		g.SurplusAllocationPercent = g.SurplusAllocationPercent.Round(2)
	}

	gs := &r.GoalSummary
	gs.TotalMonthlySIPForAllGoals = gs.TotalMonthlySIPForAllGoals.Round(2)
	gs.MonthlySurplusAvailable = gs.MonthlySurplusAvailable.Round(2)
	gs.SurplusAfterAllGoals = gs.SurplusAfterAllGoals.Round(2)

	s := &r.Summary
	s.TotalAssets = s.TotalAssets.Round(2)
	s.TotalLiabilities = s.TotalLiabilities.Round(2)
	s.NetWorth = s.NetWorth.Round(2)
	s.TotalMonthlyInflow = s.TotalMonthlyInflow.Round(2)
	s.TotalMonthlyOutflow = s.TotalMonthlyOutflow.Round(2)
	s.LeftoverSavings = s.LeftoverSavings.Round(2)
	s.SavingsRate = s.SavingsRate.Round(2)
	s.EMIBurden = s.EMIBurden.Round(2)
	s.InvestmentRate = s.InvestmentRate.Round(2)
	s.EssentialExpensePercent = s.EssentialExpensePercent.Round(2)
	s.LifestyleExpensePercent = s.LifestyleExpensePercent.Round(2)
	s.ProjectedCorpus = s.ProjectedCorpus.Round(2)
	s.RetirementGap = s.RetirementGap.Round(2)
	s.ExtraSIPRequired = s.ExtraSIPRequired.Round(2)
}
