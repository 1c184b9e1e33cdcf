package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/arthaplan/engine/internal/domain"
)

// NetWorthTotals is the balance-sheet view of a snapshot.
type NetWorthTotals struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	NetWorth         decimal.Decimal

	// InvestibleAssets is the liquid, growable subset: investments, bank
	// balances and cash. Real estate and insurance maturities stay out of
	// the retirement projection.
	InvestibleAssets decimal.Decimal
}

// ComputeNetWorth sums the asset and liability books. Insurance policies
// count only when a maturity amount is recorded; pure term covers add
// nothing to the balance sheet.
func ComputeNetWorth(snap *domain.Snapshot) NetWorthTotals {
	assets := snap.Assets.LiquidCash
	investible := snap.Assets.LiquidCash

	for _, re := range snap.Assets.RealEstate {
		assets = assets.Add(re.PresentValue)
	}
	for _, acct := range snap.Assets.BankAccounts {
		assets = assets.Add(acct.Balance)
		investible = investible.Add(acct.Balance)
	}
	for _, inv := range snap.Assets.Investments {
		assets = assets.Add(inv.CurrentValue)
		investible = investible.Add(inv.CurrentValue)
	}
	for _, pol := range snap.Assets.InsurancePolicies {
		if pol.MaturityAmount != nil {
			assets = assets.Add(*pol.MaturityAmount)
		}
	}

	liabilities := decimal.Zero
	for _, l := range snap.Liabilities {
		liabilities = liabilities.Add(l.Outstanding)
	}

	return NetWorthTotals{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		NetWorth:         assets.Sub(liabilities),
		InvestibleAssets: investible,
	}
}

// Ratios are the cash-flow health percentages, all relative to total inflow.
type Ratios struct {
	SavingsRate             decimal.Decimal
	EMIBurden               decimal.Decimal
	InvestmentRate          decimal.Decimal
	EssentialExpensePercent decimal.Decimal
	LifestyleExpensePercent decimal.Decimal
}

// ComputeRatios expresses each cash-flow component as a percentage of total
// inflow. Validation rejects zero-inflow snapshots, so the divisions are
// safe here.
func ComputeRatios(cf CashFlowTotals) Ratios {
	pct := func(part decimal.Decimal) decimal.Decimal {
		return part.Div(cf.TotalInflow).Mul(hundred)
	}
	return Ratios{
		SavingsRate:             pct(cf.Leftover),
		EMIBurden:               pct(cf.LinkedEMIs),
		InvestmentRate:          pct(cf.LinkedSIPs),
		EssentialExpensePercent: pct(cf.Essential),
		LifestyleExpensePercent: pct(cf.Lifestyle),
	}
}
