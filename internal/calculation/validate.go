package calculation

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthaplan/engine/internal/domain"
	"github.com/arthaplan/engine/pkg/dateutil"
	pdecimal "github.com/arthaplan/engine/pkg/decimal"
)

// validator collects every problem found in a snapshot. Nothing short-
// circuits; the caller gets the complete list in one pass.
type validator struct {
	errs domain.ValidationErrors
}

func (v *validator) addf(field, value, reasonFormat string, args ...any) {
	v.errs.Violations = append(v.errs.Violations, domain.ValidationError{
		Field:  field,
		Value:  value,
		Reason: fmt.Sprintf(reasonFormat, args...),
	})
}

func (v *validator) addRef(goalID, personName string) {
	v.errs.References = append(v.errs.References, domain.ReferenceError{
		GoalID:     goalID,
		PersonName: personName,
	})
}

// money checks the [0, 1e12] bound common to every monetary input.
func (v *validator) money(field string, amount decimal.Decimal) {
	if !pdecimal.NewMoneyFromDecimal(amount).InBounds() {
		v.addf(field, amount.String(), "amount must be between 0 and %s", pdecimal.MaxAmount)
	}
}

// rate checks an assumption rate lies in [0, 1] (decimal fraction, not
// percent).
func (v *validator) rate(field string, rate decimal.Decimal) {
	if rate.IsNegative() || rate.GreaterThan(one) {
		v.addf(field, rate.String(), "rate must be a fraction between 0 and 1")
	}
}

// ValidateSnapshot checks every structural and semantic rule and returns the
// aggregated problem list, or nil when the snapshot is clean. Validation
// runs before any computation; a snapshot that passes cannot trip the
// arithmetic guards through ordinary inputs.
func ValidateSnapshot(snap *domain.Snapshot, asOf time.Time) *domain.ValidationErrors {
	v := &validator{}

	v.validateProfile(snap.UserProfile, asOf)
	v.validateGoals(snap)
	v.validateAssets(snap.Assets)
	v.validateLiabilities(snap.Liabilities)
	v.validateCashFlow(snap.CashFlow)
	v.validateAssumptions(snap.Assumptions)

	if v.errs.Empty() {
		return nil
	}
	return &v.errs
}

func (v *validator) validateProfile(profile domain.UserProfile, asOf time.Time) {
	p := profile.Primary
	if p.Name == "" {
		v.addf("user_profile.primary.name", "", "name is required")
	}
	if p.BirthDate.IsZero() {
		v.addf("user_profile.primary.dob", "", "birth date is required")
	} else if p.BirthDate.After(asOf) {
		v.addf("user_profile.primary.dob", p.BirthDate.String(), "birth date cannot be in the future")
	}
	if p.RetirementAge < 18 || p.RetirementAge > 100 {
		v.addf("user_profile.primary.retire_age", strconv.Itoa(p.RetirementAge), "retirement age must be between 18 and 100")
	} else if !p.BirthDate.IsZero() && !p.BirthDate.After(asOf) &&
		float64(p.RetirementAge) <= dateutil.Age(p.BirthDate.Time, asOf) {
		v.addf("user_profile.primary.retire_age", strconv.Itoa(p.RetirementAge), "retirement age must exceed the current age")
	}
	if p.LifeExpectancy <= p.RetirementAge {
		v.addf("user_profile.primary.life_expectancy", strconv.Itoa(p.LifeExpectancy), "life expectancy must exceed retirement age")
	}
	if p.PensionTillAge != 0 && p.PensionTillAge <= p.RetirementAge {
		v.addf("user_profile.primary.pension_till_age", strconv.Itoa(p.PensionTillAge), "pension horizon must exceed retirement age")
	}

	if profile.Spouse != nil && !profile.Spouse.BirthDate.IsZero() && profile.Spouse.BirthDate.After(asOf) {
		v.addf("user_profile.spouse.dob", profile.Spouse.BirthDate.String(), "birth date cannot be in the future")
	}
	for i, m := range profile.FamilyMembers {
		field := fmt.Sprintf("user_profile.family_members[%d]", i)
		if m.Name == "" {
			v.addf(field+".name", "", "name is required")
		}
		if !m.RelationType.Valid() {
			v.addf(field+".relation_type", string(m.RelationType), "unknown relation type")
		}
		if !m.BirthDate.IsZero() && m.BirthDate.After(asOf) {
			v.addf(field+".dob", m.BirthDate.String(), "birth date cannot be in the future")
		}
	}
}

func (v *validator) validateGoals(snap *domain.Snapshot) {
	for i, g := range snap.Goals {
		field := fmt.Sprintf("goals[%d]", i)
		if g.ID == "" {
			v.addf(field+".id", "", "goal id is required")
		}
		if g.Name == "" {
			v.addf(field+".name", "", "goal name is required")
		}
		v.money(field+".current_cost", g.CurrentCost)

		switch g.TargetType {
		case domain.TargetAge:
			if age, err := strconv.Atoi(g.TargetValue); err != nil {
				v.addf(field+".target_value", g.TargetValue, "AGE target must be a whole number")
			} else if age < 0 || age > 120 {
				v.addf(field+".target_value", g.TargetValue, "AGE target must be between 0 and 120")
			}
		case domain.TargetDate:
			if _, err := domain.ParseDateString(g.TargetValue); err != nil {
				v.addf(field+".target_value", g.TargetValue, "DATE target must be YYYY-MM-DD")
			}
		default:
			v.addf(field+".target_type", string(g.TargetType), "target_type must be AGE or DATE")
		}

		if g.PersonName != "" {
			if _, ok := snap.UserProfile.FindFamilyMember(g.PersonName); !ok {
				v.addRef(g.ID, g.PersonName)
			}
		}
	}
}

func (v *validator) validateAssets(assets domain.Assets) {
	v.money("assets.liquid_cash", assets.LiquidCash)

	for i, re := range assets.RealEstate {
		field := fmt.Sprintf("assets.real_estate[%d]", i)
		v.money(field+".present_value", re.PresentValue)
		v.money(field+".outstanding_loan", re.OutstandingLoan)
		if re.OutstandingLoan.GreaterThan(re.PresentValue) {
			v.addf(field+".outstanding_loan", re.OutstandingLoan.String(), "loan cannot exceed the property value")
		}
	}
	for i, acct := range assets.BankAccounts {
		field := fmt.Sprintf("assets.bank_accounts[%d]", i)
		if !acct.AccountType.Valid() {
			v.addf(field+".account_type", string(acct.AccountType), "unknown account type")
		}
		v.money(field+".balance", acct.Balance)
	}
	for i, inv := range assets.Investments {
		field := fmt.Sprintf("assets.investments[%d]", i)
		if !inv.Type.Valid() {
			v.addf(field+".type", string(inv.Type), "unknown investment type")
		}
		v.money(field+".current_value", inv.CurrentValue)
		v.money(field+".monthly_sip", inv.MonthlySIP)
	}
	for i, pol := range assets.InsurancePolicies {
		field := fmt.Sprintf("assets.insurance_policies[%d]", i)
		if !pol.PolicyType.Valid() {
			v.addf(field+".policy_type", string(pol.PolicyType), "unknown policy type")
		}
		v.money(field+".sum_assured", pol.SumAssured)
		v.money(field+".premium", pol.Premium)
		if pol.MaturityAmount != nil {
			v.money(field+".maturity_amount", *pol.MaturityAmount)
		}
	}
}

func (v *validator) validateLiabilities(liabilities []domain.Liability) {
	for i, l := range liabilities {
		field := fmt.Sprintf("liabilities[%d]", i)
		if !l.Type.Valid() {
			v.addf(field+".type", string(l.Type), "unknown liability type")
		}
		v.money(field+".outstanding", l.Outstanding)
		if l.EMI.LessThanOrEqual(decimal.Zero) {
			v.addf(field+".emi", l.EMI.String(), "emi must be positive")
		}
		v.money(field+".emi", l.EMI)
		if l.InterestRate.IsNegative() {
			v.addf(field+".interest_rate", l.InterestRate.String(), "interest rate cannot be negative")
		}
		if l.TenureMonths < 0 {
			v.addf(field+".tenure_months", strconv.Itoa(l.TenureMonths), "tenure cannot be negative")
		}
		if l.TotalLoanAmount != nil {
			v.money(field+".total_loan_amount", *l.TotalLoanAmount)
			if l.Outstanding.GreaterThan(*l.TotalLoanAmount) {
				v.addf(field+".outstanding", l.Outstanding.String(), "outstanding cannot exceed the total loan amount")
			}
		}
	}
}

func (v *validator) validateCashFlow(cf domain.CashFlow) {
	inf := cf.Inflows
	v.money("cash_flow.inflows.primary_income", inf.PrimaryIncome)
	v.money("cash_flow.inflows.spouse_income", inf.SpouseIncome)
	v.money("cash_flow.inflows.rental_income", inf.RentalIncome)
	v.money("cash_flow.inflows.additional_income", inf.AdditionalIncome)
	v.money("cash_flow.inflows.other", inf.Other)

	total := inf.PrimaryIncome.Add(inf.SpouseIncome).Add(inf.RentalIncome).
		Add(inf.AdditionalIncome).Add(inf.Other)
	if total.LessThanOrEqual(decimal.Zero) {
		v.addf("cash_flow.inflows", total.String(), "total inflow must be positive")
	}

	out := cf.Outflows
	v.money("cash_flow.outflows.essential", out.Essential)
	v.money("cash_flow.outflows.lifestyle", out.Lifestyle)
	if out.EssentialDetails != nil {
		v.money("cash_flow.outflows.essential_details", out.EssentialDetails.Total())
	}
	if out.LifestyleDetails != nil {
		v.money("cash_flow.outflows.lifestyle_details", out.LifestyleDetails.Total())
	}
}

func (v *validator) validateAssumptions(a domain.Assumptions) {
	v.rate("assumptions.inflation", a.Inflation)
	v.rate("assumptions.child_inflation", a.ChildInflation)
	v.rate("assumptions.pre_retire_roi", a.PreRetireROI)
	v.rate("assumptions.post_retire_roi", a.PostRetireROI)
}
