package calculation

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthaplan/engine/internal/domain"
)

func newFullSnapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		UserProfile: domain.UserProfile{
			Primary: domain.PrimaryUser{
				Name:           "Ravi",
				BirthDate:      domain.NewDate(1986, time.March, 15),
				RetirementAge:  60,
				LifeExpectancy: 85,
			},
			Spouse: &domain.SpouseInfo{
				Name:          "Priya",
				BirthDate:     domain.NewDate(1988, time.August, 2),
				WorkingStatus: true,
				RetirementAge: 58,
			},
			FamilyMembers: []domain.FamilyMember{
				{Name: "Anika", BirthDate: domain.NewDate(2016, time.July, 1), RelationType: domain.RelationChild},
			},
		},
		Goals: []domain.Goal{
			{ID: "g1", Name: "Higher education", PersonName: "Anika", CurrentCost: decimal.NewFromInt(2000000), TargetType: domain.TargetAge, TargetValue: "18"},
			{ID: "g2", Name: "Car upgrade", CurrentCost: decimal.NewFromInt(1500000), TargetType: domain.TargetDate, TargetValue: "2031-01-17"},
		},
		Assets: domain.Assets{
			RealEstate: []domain.RealEstateAsset{
				{Name: "Flat", PresentValue: decimal.NewFromInt(9000000), OutstandingLoan: decimal.NewFromInt(3500000)},
			},
			BankAccounts: []domain.BankAccount{
				{BankName: "HDFC", AccountType: domain.AccountSavings, Balance: decimal.NewFromInt(400000)},
			},
			Investments: []domain.Investment{
				{Type: domain.InvestmentMF, CurrentValue: decimal.NewFromInt(1500000), MonthlySIP: decimal.NewFromInt(25000)},
			},
			LiquidCash: decimal.NewFromInt(200000),
		},
		Liabilities: []domain.Liability{
			{Type: domain.LiabilityHome, Outstanding: decimal.NewFromInt(3500000), EMI: decimal.NewFromInt(35000)},
			{Type: domain.LiabilityCar, Outstanding: decimal.NewFromInt(600000), EMI: decimal.NewFromInt(18000)},
		},
		CashFlow: domain.CashFlow{
			Inflows: domain.Inflows{
				PrimaryIncome: decimal.NewFromInt(200000),
				SpouseIncome:  decimal.NewFromInt(80000),
			},
			Outflows: domain.Outflows{
				Essential: decimal.NewFromInt(45000),
				Lifestyle: decimal.NewFromInt(25000),
				// Stale values the engine must overwrite.
				LinkedEMIs:        decimal.NewFromInt(1),
				LinkedInvestments: decimal.NewFromInt(1),
			},
		},
		Assumptions: domain.Assumptions{
			Inflation:      decimal.NewFromFloat(0.06),
			ChildInflation: decimal.NewFromFloat(0.10),
			PreRetireROI:   decimal.NewFromFloat(0.12),
			PostRetireROI:  decimal.NewFromFloat(0.08),
		},
	}
	return snap
}

var testAsOf = time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC)

func TestEngineAnalyze(t *testing.T) {
	engine := NewEngineWithDefaults()
	snap := newFullSnapshot()

	result, err := engine.Analyze(context.Background(), snap, testAsOf)

	require.NoError(t, err)
	require.NotNil(t, result)

	assert.InDelta(t, 39.84, result.TimeMetrics.CurrentAge.InexactFloat64(), 0.02)
	assert.InDelta(t, 20.16, result.TimeMetrics.YearsToRetire.InexactFloat64(), 0.02)
	assert.Equal(t, 242, result.TimeMetrics.MonthsToRetire)

	// Expense base excludes EMIs and SIPs.
	assert.True(t, result.Retirement.CurrentMonthlyExpenses.Equal(decimal.NewFromInt(70000)))
	assert.True(t, result.Retirement.ExpenseAtRetirementMonthly.GreaterThan(decimal.NewFromInt(200000)),
		"70k at 6%% over ~20 years should more than triple, got %s", result.Retirement.ExpenseAtRetirementMonthly)
	assert.Equal(t, 25, result.Retirement.PensionYears)
	assert.Equal(t, 300, result.Retirement.PensionMonths)
	assert.True(t, result.Retirement.CorpusRequired.GreaterThan(decimal.Zero))
	assert.True(t, result.Retirement.MoneyToRetireNow.LessThan(result.Retirement.CorpusRequired))

	// Linkage derived, stale values overridden.
	assert.True(t, result.Summary.TotalMonthlyOutflow.Equal(decimal.NewFromInt(148000)),
		"45k+25k+53k+25k, got %s", result.Summary.TotalMonthlyOutflow)
	assert.True(t, result.Summary.LeftoverSavings.Equal(decimal.NewFromInt(132000)))

	// The input snapshot is untouched.
	assert.True(t, snap.CashFlow.Outflows.LinkedEMIs.Equal(decimal.NewFromInt(1)))

	ratioSum := result.Summary.SavingsRate.
		Add(result.Summary.EMIBurden).
		Add(result.Summary.InvestmentRate).
		Add(result.Summary.EssentialExpensePercent).
		Add(result.Summary.LifestyleExpensePercent)
	assert.True(t, ratioSum.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(decimal.NewFromFloat(0.01)),
		"ratio sum %s", ratioSum)

	assert.True(t, result.Summary.NetWorth.Equal(result.Summary.TotalAssets.Sub(result.Summary.TotalLiabilities)))

	require.Len(t, result.Goals, 2)
	assert.Equal(t, "g1", result.Goals[0].ID)

	assert.NotEmpty(t, result.Trace)
	assert.Equal(t, "time_metrics", result.Trace[0].StepID)

	// Supplemental sections.
	assert.Len(t, result.RetirementCashflowTable, 26)
	require.Len(t, result.ChildPlanning, 1)
	assert.Equal(t, "Anika", result.ChildPlanning[0].ChildName)
	require.NotNil(t, result.ContingencyFund)
	assert.Equal(t, 6, result.ContingencyFund.MonthsRequired)
	assert.True(t, result.ContingencyFund.ContingencyFundRequired.Equal(decimal.NewFromInt(738000)),
		"6 x (45k+25k+53k), got %s", result.ContingencyFund.ContingencyFundRequired)
	require.Len(t, result.InsuranceCover, 2)
	assert.Equal(t, "Ravi", result.InsuranceCover[0].MemberName)
	assert.Equal(t, "Priya", result.InsuranceCover[1].MemberName)
}

func TestEngineAnalyzeIdempotent(t *testing.T) {
	engine := NewEngineWithDefaults()
	snap := newFullSnapshot()

	first, err := engine.Analyze(context.Background(), snap, testAsOf)
	require.NoError(t, err)
	second, err := engine.Analyze(context.Background(), snap, testAsOf)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON, "two runs over the same snapshot must serialize identically")
}

func TestEngineAnalyzeAggregatesValidationErrors(t *testing.T) {
	engine := NewEngineWithDefaults()
	snap := newFullSnapshot()
	snap.UserProfile.Primary.BirthDate = domain.NewDate(2040, time.January, 1)
	snap.UserProfile.Primary.LifeExpectancy = 50
	snap.Assumptions.Inflation = decimal.NewFromInt(2)
	snap.Goals = append(snap.Goals, domain.Goal{
		ID: "g9", Name: "Ghost goal", PersonName: "Nobody",
		CurrentCost: decimal.NewFromInt(100000), TargetType: domain.TargetAge, TargetValue: "30",
	})

	_, err := engine.Analyze(context.Background(), snap, testAsOf)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrReference)

	var verrs *domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.GreaterOrEqual(t, len(verrs.Violations), 3, "all violations reported together: %v", verrs.Violations)
	require.Len(t, verrs.References, 1)
	assert.Equal(t, "g9", verrs.References[0].GoalID)
}

func TestEngineAnalyzeRejectsZeroInflow(t *testing.T) {
	engine := NewEngineWithDefaults()
	snap := newFullSnapshot()
	snap.CashFlow.Inflows = domain.Inflows{}

	_, err := engine.Analyze(context.Background(), snap, testAsOf)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEngineAnalyzeCancelledContext(t *testing.T) {
	engine := NewEngineWithDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Analyze(ctx, newFullSnapshot(), testAsOf)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewEngineRejectsBadOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.ContingencyMonths = 0

	_, err := NewEngine(opts, nil)

	assert.Error(t, err)
}

func TestEngineRealRatePolicies(t *testing.T) {
	compat := DefaultOptions()
	monthly := DefaultOptions()
	monthly.RealRate = RealRateMonthlyCompounded

	compatEngine, err := NewEngine(compat, nil)
	require.NoError(t, err)
	monthlyEngine, err := NewEngine(monthly, nil)
	require.NoError(t, err)

	snap := newFullSnapshot()
	compatResult, err := compatEngine.Analyze(context.Background(), snap, testAsOf)
	require.NoError(t, err)
	monthlyResult, err := monthlyEngine.Analyze(context.Background(), snap, testAsOf)
	require.NoError(t, err)

	// The compat policy discounts harder per month, so it needs a smaller
	// corpus than the true monthly-equivalent rate.
	assert.True(t, compatResult.Retirement.CorpusRequired.LessThan(monthlyResult.Retirement.CorpusRequired),
		"compat %s vs monthly %s",
		compatResult.Retirement.CorpusRequired, monthlyResult.Retirement.CorpusRequired)
}
