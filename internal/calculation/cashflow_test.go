package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/arthaplan/engine/internal/domain"
)

func TestAggregateCashFlowDerivesLinkedValues(t *testing.T) {
	snap := &domain.Snapshot{
		Liabilities: []domain.Liability{
			{Type: domain.LiabilityHome, Outstanding: decimal.NewFromInt(3500000), EMI: decimal.NewFromInt(35000)},
			{Type: domain.LiabilityCar, Outstanding: decimal.NewFromInt(600000), EMI: decimal.NewFromInt(18000)},
		},
		CashFlow: domain.CashFlow{
			Inflows: domain.Inflows{PrimaryIncome: decimal.NewFromInt(200000)},
			Outflows: domain.Outflows{
				Essential: decimal.NewFromInt(40000),
				Lifestyle: decimal.NewFromInt(20000),
				// Stale stored linkage that must be ignored.
				LinkedEMIs:        decimal.NewFromInt(99999),
				LinkedInvestments: decimal.NewFromInt(99999),
			},
		},
	}
	snap.Assets.Investments = []domain.Investment{
		{Type: domain.InvestmentMF, CurrentValue: decimal.NewFromInt(500000), MonthlySIP: decimal.NewFromInt(25000)},
	}

	cf := AggregateCashFlow(snap)

	assert.True(t, cf.LinkedEMIs.Equal(decimal.NewFromInt(53000)),
		"linked EMIs must come from the liability table, got %s", cf.LinkedEMIs)
	assert.True(t, cf.LinkedSIPs.Equal(decimal.NewFromInt(25000)))
	assert.True(t, cf.TotalInflow.Equal(decimal.NewFromInt(200000)))
	assert.True(t, cf.TotalOutflow.Equal(decimal.NewFromInt(138000)))
	assert.True(t, cf.Leftover.Equal(decimal.NewFromInt(62000)))
}

func TestAggregateCashFlowItemizedMode(t *testing.T) {
	snap := &domain.Snapshot{
		CashFlow: domain.CashFlow{
			Inflows: domain.Inflows{PrimaryIncome: decimal.NewFromInt(150000)},
			Outflows: domain.Outflows{
				// Lump totals present but the itemized breakdown wins.
				Essential: decimal.NewFromInt(1),
				Lifestyle: decimal.NewFromInt(1),
				EssentialDetails: &domain.EssentialExpenses{
					HouseRent: decimal.NewFromInt(25000),
					Groceries: decimal.NewFromInt(12000),
					Utilities: decimal.NewFromInt(3000),
				},
				LifestyleDetails: &domain.LifestyleExpenses{
					Shopping: decimal.NewFromInt(8000),
					Travel:   decimal.NewFromInt(4000),
				},
			},
		},
	}

	cf := AggregateCashFlow(snap)

	assert.True(t, cf.Essential.Equal(decimal.NewFromInt(40000)))
	assert.True(t, cf.Lifestyle.Equal(decimal.NewFromInt(12000)))
	assert.True(t, cf.TotalOutflow.Equal(decimal.NewFromInt(52000)))
}

func TestSurplusFloorsAtZero(t *testing.T) {
	cf := CashFlowTotals{Leftover: decimal.NewFromInt(-5000)}
	assert.True(t, cf.Surplus().IsZero())

	cf = CashFlowTotals{Leftover: decimal.NewFromInt(5000)}
	assert.True(t, cf.Surplus().Equal(decimal.NewFromInt(5000)))
}
