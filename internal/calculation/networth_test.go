package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/arthaplan/engine/internal/domain"
)

func newBalanceSheetSnapshot() *domain.Snapshot {
	maturity := decimal.NewFromInt(800000)
	return &domain.Snapshot{
		Assets: domain.Assets{
			RealEstate: []domain.RealEstateAsset{
				{Name: "Flat", PresentValue: decimal.NewFromInt(9000000), OutstandingLoan: decimal.NewFromInt(3500000)},
			},
			BankAccounts: []domain.BankAccount{
				{BankName: "HDFC", AccountType: domain.AccountSavings, Balance: decimal.NewFromInt(400000)},
				{BankName: "SBI", AccountType: domain.AccountFD, Balance: decimal.NewFromInt(600000)},
			},
			Investments: []domain.Investment{
				{Type: domain.InvestmentMF, CurrentValue: decimal.NewFromInt(1500000), MonthlySIP: decimal.NewFromInt(25000)},
			},
			InsurancePolicies: []domain.InsurancePolicy{
				{PolicyName: "Term", PolicyType: domain.PolicyTerm, SumAssured: decimal.NewFromInt(10000000)},
				{PolicyName: "Endowment", PolicyType: domain.PolicyEndowment, SumAssured: decimal.NewFromInt(500000), MaturityAmount: &maturity},
			},
			LiquidCash: decimal.NewFromInt(200000),
		},
		Liabilities: []domain.Liability{
			{Type: domain.LiabilityHome, Outstanding: decimal.NewFromInt(3500000), EMI: decimal.NewFromInt(35000)},
			{Type: domain.LiabilityCar, Outstanding: decimal.NewFromInt(600000), EMI: decimal.NewFromInt(18000)},
		},
	}
}

func TestComputeNetWorth(t *testing.T) {
	nw := ComputeNetWorth(newBalanceSheetSnapshot())

	// 9,000,000 + 400,000 + 600,000 + 1,500,000 + 800,000 + 200,000.
	assert.True(t, nw.TotalAssets.Equal(decimal.NewFromInt(12500000)), "got %s", nw.TotalAssets)
	assert.True(t, nw.TotalLiabilities.Equal(decimal.NewFromInt(4100000)))
	assert.True(t, nw.NetWorth.Equal(decimal.NewFromInt(8400000)))

	// Investible excludes real estate and insurance maturities.
	assert.True(t, nw.InvestibleAssets.Equal(decimal.NewFromInt(2700000)), "got %s", nw.InvestibleAssets)
}

func TestComputeNetWorthAllZero(t *testing.T) {
	nw := ComputeNetWorth(&domain.Snapshot{})

	assert.True(t, nw.TotalAssets.IsZero())
	assert.True(t, nw.TotalLiabilities.IsZero())
	assert.True(t, nw.NetWorth.IsZero())
}

func TestComputeNetWorthIdentity(t *testing.T) {
	nw := ComputeNetWorth(newBalanceSheetSnapshot())
	assert.True(t, nw.NetWorth.Equal(nw.TotalAssets.Sub(nw.TotalLiabilities)))
}

func TestComputeRatiosSumToHundred(t *testing.T) {
	cf := CashFlowTotals{
		TotalInflow:  decimal.NewFromInt(200000),
		Essential:    decimal.NewFromInt(40000),
		Lifestyle:    decimal.NewFromInt(20000),
		LinkedEMIs:   decimal.NewFromInt(53000),
		LinkedSIPs:   decimal.NewFromInt(25000),
		TotalOutflow: decimal.NewFromInt(138000),
		Leftover:     decimal.NewFromInt(62000),
	}

	r := ComputeRatios(cf)

	sum := r.SavingsRate.Add(r.EMIBurden).Add(r.InvestmentRate).
		Add(r.EssentialExpensePercent).Add(r.LifestyleExpensePercent)
	assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(decimal.NewFromFloat(0.01)),
		"ratios must partition inflow, sum %s", sum)
	assert.True(t, r.SavingsRate.Equal(decimal.NewFromInt(31)), "got %s", r.SavingsRate)
	assert.True(t, r.EMIBurden.Equal(decimal.NewFromFloat(26.5)), "got %s", r.EMIBurden)
}

func TestComputeRatiosNegativeLeftover(t *testing.T) {
	cf := CashFlowTotals{
		TotalInflow:  decimal.NewFromInt(100000),
		Essential:    decimal.NewFromInt(70000),
		Lifestyle:    decimal.NewFromInt(40000),
		TotalOutflow: decimal.NewFromInt(110000),
		Leftover:     decimal.NewFromInt(-10000),
	}

	r := ComputeRatios(cf)

	// A deficit is reported as-is, never clamped.
	assert.True(t, r.SavingsRate.Equal(decimal.NewFromInt(-10)), "got %s", r.SavingsRate)
	sum := r.SavingsRate.Add(r.EMIBurden).Add(r.InvestmentRate).
		Add(r.EssentialExpensePercent).Add(r.LifestyleExpensePercent)
	assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(decimal.NewFromFloat(0.01)))
}
