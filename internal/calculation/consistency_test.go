package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthaplan/engine/internal/domain"
)

func consistentFixture() (*domain.Snapshot, *domain.AnalysisResult) {
	snap := &domain.Snapshot{
		Liabilities: []domain.Liability{
			{Type: domain.LiabilityHome, Outstanding: decimal.NewFromInt(3500000), EMI: decimal.NewFromInt(35000)},
		},
	}
	snap.Assets.Investments = []domain.Investment{
		{Type: domain.InvestmentMF, CurrentValue: decimal.NewFromInt(500000), MonthlySIP: decimal.NewFromInt(25000)},
	}
	snap.CashFlow.Outflows.LinkedEMIs = decimal.NewFromInt(35000)
	snap.CashFlow.Outflows.LinkedInvestments = decimal.NewFromInt(25000)

	result := &domain.AnalysisResult{
		Summary: domain.DashboardMetrics{
			SavingsRate:             decimal.NewFromInt(31),
			EMIBurden:               decimal.NewFromFloat(26.5),
			InvestmentRate:          decimal.NewFromFloat(12.5),
			EssentialExpensePercent: decimal.NewFromInt(20),
			LifestyleExpensePercent: decimal.NewFromInt(10),
		},
	}
	return snap, result
}

func TestEnforceConsistencyClean(t *testing.T) {
	snap, result := consistentFixture()
	assert.NoError(t, EnforceConsistency(snap, result))
}

func TestEnforceConsistencyEMILinkage(t *testing.T) {
	snap, result := consistentFixture()
	snap.CashFlow.Outflows.LinkedEMIs = decimal.NewFromInt(1)

	err := EnforceConsistency(snap, result)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConsistency)
	var cerr *domain.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "emi_linkage", cerr.Invariant)
}

func TestEnforceConsistencySIPLinkage(t *testing.T) {
	snap, result := consistentFixture()
	snap.CashFlow.Outflows.LinkedInvestments = decimal.NewFromInt(1)

	err := EnforceConsistency(snap, result)

	require.Error(t, err)
	var cerr *domain.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "sip_linkage", cerr.Invariant)
}

func TestEnforceConsistencyRatioSum(t *testing.T) {
	snap, result := consistentFixture()
	result.Summary.SavingsRate = decimal.NewFromInt(35)

	err := EnforceConsistency(snap, result)

	require.Error(t, err)
	var cerr *domain.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "ratio_sum", cerr.Invariant)
}

func TestEnforceConsistencyRatioSumWithinEpsilon(t *testing.T) {
	snap, result := consistentFixture()
	result.Summary.SavingsRate = decimal.NewFromFloat(31.009)

	assert.NoError(t, EnforceConsistency(snap, result))
}

func TestEnforceConsistencyRealEstate(t *testing.T) {
	snap, result := consistentFixture()
	snap.Assets.RealEstate = []domain.RealEstateAsset{
		{Name: "Flat", PresentValue: decimal.NewFromInt(100), OutstandingLoan: decimal.NewFromInt(200)},
	}

	err := EnforceConsistency(snap, result)

	require.Error(t, err)
	var cerr *domain.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "real_estate_loan", cerr.Invariant)
}

func TestEnforceConsistencyMagnitude(t *testing.T) {
	snap, result := consistentFixture()
	result.Summary.ProjectedCorpus = decimal.New(2, 18)

	err := EnforceConsistency(snap, result)

	require.Error(t, err)
	var cerr *domain.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "magnitude", cerr.Invariant)
}
