package domain

import "github.com/shopspring/decimal"

// Clone returns a deep copy of the snapshot. The engine normalizes linked
// values on a copy so the caller's snapshot is never mutated.
func (s *Snapshot) Clone() *Snapshot {
	out := *s

	out.UserProfile.FamilyMembers = append([]FamilyMember(nil), s.UserProfile.FamilyMembers...)
	if s.UserProfile.Spouse != nil {
		spouse := *s.UserProfile.Spouse
		out.UserProfile.Spouse = &spouse
	}

	out.Goals = append([]Goal(nil), s.Goals...)

	out.Assets.RealEstate = append([]RealEstateAsset(nil), s.Assets.RealEstate...)
	out.Assets.BankAccounts = append([]BankAccount(nil), s.Assets.BankAccounts...)
	out.Assets.Investments = append([]Investment(nil), s.Assets.Investments...)
	out.Assets.InsurancePolicies = append([]InsurancePolicy(nil), s.Assets.InsurancePolicies...)
	for i, p := range out.Assets.InsurancePolicies {
		if p.MaturityAmount != nil {
			out.Assets.InsurancePolicies[i].MaturityAmount = copyDecimal(p.MaturityAmount)
		}
	}

	out.Liabilities = append([]Liability(nil), s.Liabilities...)
	for i, l := range out.Liabilities {
		if l.TotalLoanAmount != nil {
			out.Liabilities[i].TotalLoanAmount = copyDecimal(l.TotalLoanAmount)
		}
	}

	if s.CashFlow.Outflows.EssentialDetails != nil {
		ed := *s.CashFlow.Outflows.EssentialDetails
		out.CashFlow.Outflows.EssentialDetails = &ed
	}
	if s.CashFlow.Outflows.LifestyleDetails != nil {
		ld := *s.CashFlow.Outflows.LifestyleDetails
		out.CashFlow.Outflows.LifestyleDetails = &ld
	}

	return &out
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	v := *d
	return &v
}
