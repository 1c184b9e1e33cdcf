package domain

import (
	"github.com/shopspring/decimal"
)

// AnalysisResult is the full computed output of one engine run. It is
// immutable once produced; the engine holds no state between runs, so two
// runs over the same snapshot and as-of date are byte-identical when
// serialized.
type AnalysisResult struct {
	TimeMetrics TimeMetrics         `json:"time_metrics" yaml:"time_metrics"`
	Retirement  RetirementAnalysis  `json:"retirement" yaml:"retirement"`
	Goals       []GoalAnalysis      `json:"goals" yaml:"goals"`
	GoalSummary GoalSummary         `json:"goal_summary" yaml:"goal_summary"`
	Summary     DashboardMetrics    `json:"summary" yaml:"summary"`
	Trace       []TraceStep         `json:"trace" yaml:"trace"`

	RetirementCashflowTable []RetirementCashflowRow `json:"retirement_cashflow_table,omitempty" yaml:"retirement_cashflow_table,omitempty"`
	ChildPlanning           []ChildPlanningResult   `json:"child_planning,omitempty" yaml:"child_planning,omitempty"`
	ContingencyFund         *ContingencyFundResult  `json:"contingency_fund,omitempty" yaml:"contingency_fund,omitempty"`
	InsuranceCover          []InsuranceCoverResult  `json:"insurance_cover,omitempty" yaml:"insurance_cover,omitempty"`
}

// TimeMetrics are the age and horizon figures every projection keys off.
type TimeMetrics struct {
	CurrentAge     decimal.Decimal `json:"current_age" yaml:"current_age"`
	RetirementAge  int             `json:"retirement_age" yaml:"retirement_age"`
	YearsToRetire  decimal.Decimal `json:"years_to_retire" yaml:"years_to_retire"`
	MonthsToRetire int             `json:"months_to_retire" yaml:"months_to_retire"`
}

// RetirementAnalysis is the corpus requirement picture.
type RetirementAnalysis struct {
	CurrentMonthlyExpenses      decimal.Decimal `json:"current_monthly_expenses" yaml:"current_monthly_expenses"`
	ExpenseAtRetirementMonthly  decimal.Decimal `json:"expense_at_retirement_monthly" yaml:"expense_at_retirement_monthly"`
	RealRatePercent             decimal.Decimal `json:"real_rate_percent" yaml:"real_rate_percent"`
	PensionYears                int             `json:"pension_years" yaml:"pension_years"`
	PensionMonths               int             `json:"pension_months" yaml:"pension_months"`
	CorpusRequired              decimal.Decimal `json:"corpus_required" yaml:"corpus_required"`
	MoneyToRetireNow            decimal.Decimal `json:"money_to_retire_now" yaml:"money_to_retire_now"`
}

// GoalAnalysis is the per-goal feasibility row.
type GoalAnalysis struct {
	ID                       string          `json:"id" yaml:"id"`
	Name                     string          `json:"name" yaml:"name"`
	PersonName               string          `json:"person_name,omitempty" yaml:"person_name,omitempty"`
	CurrentCost              decimal.Decimal `json:"current_cost" yaml:"current_cost"`
	YearsToGoal              decimal.Decimal `json:"years_to_goal" yaml:"years_to_goal"`
	MonthsToGoal             int             `json:"months_to_goal" yaml:"months_to_goal"`
	FutureCost               decimal.Decimal `json:"future_cost" yaml:"future_cost"`
	MonthlySIPRequired       decimal.Decimal `json:"monthly_sip_required" yaml:"monthly_sip_required"`
	Status                   GoalStatus      `json:"status" yaml:"status"`
	Feasibility              string          `json:"feasibility" yaml:"feasibility"`
	SurplusAllocationPercent decimal.Decimal `json:"surplus_allocation_percent" yaml:"surplus_allocation_percent"`
}

// GoalSummary aggregates the goal rows against the available surplus.
type GoalSummary struct {
	TotalMonthlySIPForAllGoals decimal.Decimal `json:"total_monthly_sip_for_all_goals" yaml:"total_monthly_sip_for_all_goals"`
	MonthlySurplusAvailable    decimal.Decimal `json:"monthly_surplus_available" yaml:"monthly_surplus_available"`
	SurplusAfterAllGoals       decimal.Decimal `json:"surplus_after_all_goals" yaml:"surplus_after_all_goals"`
	AllGoalsFeasible           bool            `json:"all_goals_feasible" yaml:"all_goals_feasible"`
}

// DashboardMetrics is the summary consumed by the dashboard and the
// narrative generator.
type DashboardMetrics struct {
	TotalAssets      decimal.Decimal `json:"total_assets" yaml:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities" yaml:"total_liabilities"`
	NetWorth         decimal.Decimal `json:"net_worth" yaml:"net_worth"`

	TotalMonthlyInflow  decimal.Decimal `json:"total_monthly_inflow" yaml:"total_monthly_inflow"`
	TotalMonthlyOutflow decimal.Decimal `json:"total_monthly_outflow" yaml:"total_monthly_outflow"`
	LeftoverSavings     decimal.Decimal `json:"leftover_savings" yaml:"leftover_savings"`

	SavingsRate             decimal.Decimal `json:"savings_rate" yaml:"savings_rate"`
	EMIBurden               decimal.Decimal `json:"emi_burden" yaml:"emi_burden"`
	InvestmentRate          decimal.Decimal `json:"investment_rate" yaml:"investment_rate"`
	EssentialExpensePercent decimal.Decimal `json:"essential_expense_percent" yaml:"essential_expense_percent"`
	LifestyleExpensePercent decimal.Decimal `json:"lifestyle_expense_percent" yaml:"lifestyle_expense_percent"`

	ProjectedCorpus  decimal.Decimal `json:"projected_corpus" yaml:"projected_corpus"`
	RetirementGap    decimal.Decimal `json:"retirement_gap" yaml:"retirement_gap"`
	ExtraSIPRequired decimal.Decimal `json:"extra_sip_required" yaml:"extra_sip_required"`
}

// TraceStep records one computed quantity: what was computed, from which
// inputs, with which formula. Steps appear in computation order and make a
// run auditable.
type TraceStep struct {
	StepID      string            `json:"step_id" yaml:"step_id"`
	Description string            `json:"description" yaml:"description"`
	Inputs      map[string]string `json:"inputs" yaml:"inputs"`
	Result      string            `json:"result" yaml:"result"`
}

// RetirementCashflowRow is one year of corpus runoff after retirement.
type RetirementCashflowRow struct {
	Year              int             `json:"year" yaml:"year"`
	BeginValue        decimal.Decimal `json:"begin_value" yaml:"begin_value"`
	MonthlyPension    decimal.Decimal `json:"monthly_pension" yaml:"monthly_pension"`
	PensionPaidYearly decimal.Decimal `json:"pension_paid_yearly" yaml:"pension_paid_yearly"`
	EndValue          decimal.Decimal `json:"end_value" yaml:"end_value"`
}

// ChildGoalPlan is the funding plan for a single child goal.
type ChildGoalPlan struct {
	GoalName           string          `json:"goal_name" yaml:"goal_name"`
	PresentCost        decimal.Decimal `json:"present_cost" yaml:"present_cost"`
	TargetAge          int             `json:"target_age" yaml:"target_age"`
	MonthsLeft         int             `json:"months_left" yaml:"months_left"`
	Inflation          decimal.Decimal `json:"inflation" yaml:"inflation"`
	CostAtTarget       decimal.Decimal `json:"cost_at_target" yaml:"cost_at_target"`
	ExpectedReturn     decimal.Decimal `json:"expected_return" yaml:"expected_return"`
	MonthlySIPRequired decimal.Decimal `json:"monthly_sip_required" yaml:"monthly_sip_required"`
}

// ChildPlanningResult groups the plans for one child.
type ChildPlanningResult struct {
	ChildName       string          `json:"child_name" yaml:"child_name"`
	ChildCurrentAge decimal.Decimal `json:"child_current_age" yaml:"child_current_age"`
	Goals           []ChildGoalPlan `json:"goals" yaml:"goals"`
	TotalMonthlySIP decimal.Decimal `json:"total_monthly_sip" yaml:"total_monthly_sip"`
}

// ContingencyFundResult is the emergency-fund requirement.
type ContingencyFundResult struct {
	MonthlyExpenses           decimal.Decimal `json:"monthly_expenses" yaml:"monthly_expenses"`
	MonthsRequired            int             `json:"months_required" yaml:"months_required"`
	ContingencyFundRequired   decimal.Decimal `json:"contingency_fund_required" yaml:"contingency_fund_required"`
}

// InsuranceCoverResult is the life-cover requirement for one earning member.
type InsuranceCoverResult struct {
	MemberName             string          `json:"member_name" yaml:"member_name"`
	MonthlyIncome          decimal.Decimal `json:"monthly_income" yaml:"monthly_income"`
	CurrentAge             decimal.Decimal `json:"current_age" yaml:"current_age"`
	RetirementAge          int             `json:"retirement_age" yaml:"retirement_age"`
	ExpectedGrowth         decimal.Decimal `json:"expected_growth" yaml:"expected_growth"`
	YearsLeft              int             `json:"years_left" yaml:"years_left"`
	InsuranceCoverRequired decimal.Decimal `json:"insurance_cover_required" yaml:"insurance_cover_required"`
}
