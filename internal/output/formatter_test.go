package output

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthaplan/engine/internal/domain"
)

func sampleResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		TimeMetrics: domain.TimeMetrics{
			CurrentAge:     decimal.NewFromFloat(39.84),
			RetirementAge:  60,
			YearsToRetire:  decimal.NewFromFloat(20.16),
			MonthsToRetire: 242,
		},
		Retirement: domain.RetirementAnalysis{
			CurrentMonthlyExpenses:     decimal.NewFromInt(70000),
			ExpenseAtRetirementMonthly: decimal.NewFromFloat(226558.12),
			PensionYears:               25,
			PensionMonths:              300,
			CorpusRequired:             decimal.NewFromInt(11900000),
			MoneyToRetireNow:           decimal.NewFromInt(1090000),
		},
		Goals: []domain.GoalAnalysis{
			{
				ID: "g1", Name: "Higher education", Status: domain.GoalOnTrack,
				CurrentCost: decimal.NewFromInt(2000000), FutureCost: decimal.NewFromInt(4500000),
				MonthlySIPRequired: decimal.NewFromInt(23000), MonthsToGoal: 101,
			},
		},
		GoalSummary: domain.GoalSummary{
			TotalMonthlySIPForAllGoals: decimal.NewFromInt(23000),
			MonthlySurplusAvailable:    decimal.NewFromInt(132000),
			SurplusAfterAllGoals:       decimal.NewFromInt(109000),
			AllGoalsFeasible:           true,
		},
		Summary: domain.DashboardMetrics{
			TotalAssets:      decimal.NewFromInt(12500000),
			TotalLiabilities: decimal.NewFromInt(4100000),
			NetWorth:         decimal.NewFromInt(8400000),
		},
	}
}

func TestJSONFormatter(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleResult())

	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "time_metrics")
	assert.Contains(t, decoded, "retirement")
	assert.Contains(t, decoded, "summary")
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleResult())

	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "FINANCIAL PLAN SUMMARY")
	assert.Contains(t, text, "Higher education")
	assert.Contains(t, text, "₹84,00,000.00")
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "json", GetFormatterByName("json").Name())
	assert.Equal(t, "json", GetFormatterByName("JSON-Pretty").Name())
	assert.Equal(t, "console", GetFormatterByName("text").Name())
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestFormatCurrencyIndianGrouping(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		expected string
	}{
		{decimal.NewFromInt(0), "₹0.00"},
		{decimal.NewFromInt(999), "₹999.00"},
		{decimal.NewFromInt(1000), "₹1,000.00"},
		{decimal.NewFromInt(100000), "₹1,00,000.00"},
		{decimal.NewFromInt(12345678), "₹1,23,45,678.00"},
		{decimal.NewFromFloat(-53000.5), "-₹53,000.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCurrency(tt.amount))
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "26.50%", FormatPercentage(decimal.NewFromFloat(26.5)))
}
