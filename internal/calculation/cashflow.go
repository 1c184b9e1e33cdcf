package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/arthaplan/engine/internal/domain"
)

// CashFlowTotals is the household's monthly money picture after linkage.
// Linked figures are always derived from the liability and investment
// tables; stored linked_emis/linked_investments values are ignored.
type CashFlowTotals struct {
	TotalInflow  decimal.Decimal
	Essential    decimal.Decimal
	Lifestyle    decimal.Decimal
	LinkedEMIs   decimal.Decimal
	LinkedSIPs   decimal.Decimal
	TotalOutflow decimal.Decimal
	Leftover     decimal.Decimal
}

// Surplus is the money available for new goal funding: the leftover floored
// at zero. A deficit household has no surplus, not a negative one.
func (c CashFlowTotals) Surplus() decimal.Decimal {
	if c.Leftover.IsNegative() {
		return decimal.Zero
	}
	return c.Leftover
}

// LinkedEMITotal sums the emi of every liability.
func LinkedEMITotal(liabilities []domain.Liability) decimal.Decimal {
	total := decimal.Zero
	for _, l := range liabilities {
		total = total.Add(l.EMI)
	}
	return total
}

// LinkedSIPTotal sums the monthly_sip of every investment.
func LinkedSIPTotal(investments []domain.Investment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(inv.MonthlySIP)
	}
	return total
}

// essentialTotal prefers the itemized breakdown when present; the lump total
// is a fallback for sparse snapshots.
func essentialTotal(out domain.Outflows) decimal.Decimal {
	if out.EssentialDetails != nil {
		return out.EssentialDetails.Total()
	}
	return out.Essential
}

func lifestyleTotal(out domain.Outflows) decimal.Decimal {
	if out.LifestyleDetails != nil {
		return out.LifestyleDetails.Total()
	}
	return out.Lifestyle
}

// AggregateCashFlow derives the monthly totals for a snapshot. EMIs and SIPs
// come from the liability and investment tables, never from the stored
// cash-flow fields, so stale stored values cannot skew the outflow.
func AggregateCashFlow(snap *domain.Snapshot) CashFlowTotals {
	inf := snap.CashFlow.Inflows
	totalInflow := inf.PrimaryIncome.
		Add(inf.SpouseIncome).
		Add(inf.RentalIncome).
		Add(inf.AdditionalIncome).
		Add(inf.Other)

	essential := essentialTotal(snap.CashFlow.Outflows)
	lifestyle := lifestyleTotal(snap.CashFlow.Outflows)
	emis := LinkedEMITotal(snap.Liabilities)
	sips := LinkedSIPTotal(snap.Assets.Investments)

	totalOutflow := essential.Add(lifestyle).Add(emis).Add(sips)

	return CashFlowTotals{
		TotalInflow:  totalInflow,
		Essential:    essential,
		Lifestyle:    lifestyle,
		LinkedEMIs:   emis,
		LinkedSIPs:   sips,
		TotalOutflow: totalOutflow,
		Leftover:     totalInflow.Sub(totalOutflow),
	}
}
