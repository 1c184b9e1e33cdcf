package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Snapshot is the complete household picture the engine analyzes: profile,
// goals, assets, liabilities, cash flow and economic assumptions. Field names
// and nesting match the TRS JSON shape consumed by existing callers. The
// engine treats a Snapshot as immutable; every derived value is recomputed
// per analysis.
type Snapshot struct {
	UserProfile UserProfile `yaml:"user_profile" json:"user_profile"`
	Goals       []Goal      `yaml:"goals" json:"goals"`
	Assets      Assets      `yaml:"assets" json:"assets"`
	Liabilities []Liability `yaml:"liabilities" json:"liabilities"`
	CashFlow    CashFlow    `yaml:"cash_flow" json:"cash_flow"`
	Assumptions Assumptions `yaml:"assumptions" json:"assumptions"`
}

// UserProfile holds the primary user plus spouse and dependents.
type UserProfile struct {
	Primary       PrimaryUser    `yaml:"primary" json:"primary"`
	Spouse        *SpouseInfo    `yaml:"spouse,omitempty" json:"spouse,omitempty"`
	FamilyMembers []FamilyMember `yaml:"family_members,omitempty" json:"family_members,omitempty"`
	Address       string         `yaml:"address,omitempty" json:"address,omitempty"`
}

// PrimaryUser is the planning subject. Age is always derived from the birth
// date, never stored.
type PrimaryUser struct {
	Name           string `yaml:"name" json:"name"`
	BirthDate      Date   `yaml:"dob" json:"dob"`
	RetirementAge  int    `yaml:"retire_age" json:"retire_age"`
	PensionTillAge int    `yaml:"pension_till_age,omitempty" json:"pension_till_age,omitempty"`
	LifeExpectancy int    `yaml:"life_expectancy" json:"life_expectancy"`
}

// PensionHorizonAge returns the age until which the pension must last.
// pension_till_age wins when supplied; life expectancy is the fallback.
func (p PrimaryUser) PensionHorizonAge() int {
	if p.PensionTillAge > 0 {
		return p.PensionTillAge
	}
	return p.LifeExpectancy
}

// SpouseInfo mirrors the spouse section of the TRS profile.
type SpouseInfo struct {
	Name          string `yaml:"name" json:"name"`
	BirthDate     Date   `yaml:"dob" json:"dob"`
	WorkingStatus bool   `yaml:"working_status" json:"working_status"`
	RetirementAge int    `yaml:"retire_age,omitempty" json:"retire_age,omitempty"`
}

// FamilyMember is a child or parent in the household roster. Goals reference
// members by name.
type FamilyMember struct {
	ID           string       `yaml:"id,omitempty" json:"id,omitempty"`
	Name         string       `yaml:"name" json:"name"`
	BirthDate    Date         `yaml:"dob,omitempty" json:"dob,omitempty"`
	RelationType RelationType `yaml:"relation_type" json:"relation_type"`
}

// Goal is a funded life event. The target is either an age of the named
// person (or the primary user when unnamed) or a calendar date.
type Goal struct {
	ID          string          `yaml:"id" json:"id"`
	PersonName  string          `yaml:"person_name,omitempty" json:"person_name,omitempty"`
	Name        string          `yaml:"name" json:"name"`
	CurrentCost decimal.Decimal `yaml:"current_cost" json:"current_cost"`
	TargetType  TargetType      `yaml:"target_type" json:"target_type"`
	TargetValue string          `yaml:"target_value" json:"target_value"`
}

// Assets groups everything the household owns.
type Assets struct {
	RealEstate        []RealEstateAsset `yaml:"real_estate,omitempty" json:"real_estate,omitempty"`
	BankAccounts      []BankAccount     `yaml:"bank_accounts,omitempty" json:"bank_accounts,omitempty"`
	Investments       []Investment      `yaml:"investments,omitempty" json:"investments,omitempty"`
	InsurancePolicies []InsurancePolicy `yaml:"insurance_policies,omitempty" json:"insurance_policies,omitempty"`
	LiquidCash        decimal.Decimal   `yaml:"liquid_cash" json:"liquid_cash"`
}

// RealEstateAsset is a property, possibly with a loan against it.
type RealEstateAsset struct {
	ID              string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name            string          `yaml:"name" json:"name"`
	PresentValue    decimal.Decimal `yaml:"present_value" json:"present_value"`
	OutstandingLoan decimal.Decimal `yaml:"outstanding_loan,omitempty" json:"outstanding_loan,omitempty"`
	InterestRate    decimal.Decimal `yaml:"interest_rate,omitempty" json:"interest_rate,omitempty"`
	EMI             decimal.Decimal `yaml:"emi,omitempty" json:"emi,omitempty"`
	Remarks         string          `yaml:"remarks,omitempty" json:"remarks,omitempty"`
}

// BankAccount is a deposit account balance.
type BankAccount struct {
	ID           string          `yaml:"id,omitempty" json:"id,omitempty"`
	BankName     string          `yaml:"bank_name" json:"bank_name"`
	AccountType  AccountType     `yaml:"account_type" json:"account_type"`
	Balance      decimal.Decimal `yaml:"balance" json:"balance"`
	InterestRate decimal.Decimal `yaml:"interest_rate,omitempty" json:"interest_rate,omitempty"`
	MaturityDate Date            `yaml:"maturity_date,omitempty" json:"maturity_date,omitempty"`
}

// Investment is a market asset whose monthly_sip feeds the cash-flow linkage.
type Investment struct {
	ID             string          `yaml:"id,omitempty" json:"id,omitempty"`
	Type           InvestmentType  `yaml:"type" json:"type"`
	InvestedAmount decimal.Decimal `yaml:"invested_amount,omitempty" json:"invested_amount,omitempty"`
	CurrentValue   decimal.Decimal `yaml:"current_value" json:"current_value"`
	MonthlySIP     decimal.Decimal `yaml:"monthly_sip" json:"monthly_sip"`
	StartDate      Date            `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate        Date            `yaml:"end_date,omitempty" json:"end_date,omitempty"`
}

// InsurancePolicy is a cover; maturity_amount, when present, counts toward
// total assets.
type InsurancePolicy struct {
	ID               string          `yaml:"id,omitempty" json:"id,omitempty"`
	PolicyName       string          `yaml:"policy_name" json:"policy_name"`
	PolicyType       PolicyType      `yaml:"policy_type" json:"policy_type"`
	SumAssured       decimal.Decimal `yaml:"sum_assured" json:"sum_assured"`
	Premium          decimal.Decimal `yaml:"premium" json:"premium"`
	PremiumFrequency string          `yaml:"premium_frequency,omitempty" json:"premium_frequency,omitempty"`
	MaturityAmount   *decimal.Decimal `yaml:"maturity_amount,omitempty" json:"maturity_amount,omitempty"`
}

// UnmarshalYAML handles the optional maturity_amount; the YAML decoder
// cannot fill a *decimal.Decimal directly.
func (p *InsurancePolicy) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		ID               string          `yaml:"id"`
		PolicyName       string          `yaml:"policy_name"`
		PolicyType       PolicyType      `yaml:"policy_type"`
		SumAssured       decimal.Decimal `yaml:"sum_assured"`
		Premium          decimal.Decimal `yaml:"premium"`
		PremiumFrequency string          `yaml:"premium_frequency"`
		MaturityAmount   *string         `yaml:"maturity_amount"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	p.ID = aux.ID
	p.PolicyName = aux.PolicyName
	p.PolicyType = aux.PolicyType
	p.SumAssured = aux.SumAssured
	p.Premium = aux.Premium
	p.PremiumFrequency = aux.PremiumFrequency

	if aux.MaturityAmount != nil {
		val, err := decimal.NewFromString(*aux.MaturityAmount)
		if err != nil {
			return err
		}
		p.MaturityAmount = &val
	}
	return nil
}

// Liability is a loan. Its emi feeds the cash-flow linkage.
type Liability struct {
	ID              string           `yaml:"id,omitempty" json:"id,omitempty"`
	Type            LiabilityType    `yaml:"type" json:"type"`
	TotalLoanAmount *decimal.Decimal `yaml:"total_loan_amount,omitempty" json:"total_loan_amount,omitempty"`
	Outstanding     decimal.Decimal  `yaml:"outstanding" json:"outstanding"`
	EMI             decimal.Decimal  `yaml:"emi" json:"emi"`
	InterestRate    decimal.Decimal  `yaml:"interest_rate" json:"interest_rate"`
	TenureMonths    int              `yaml:"tenure_months" json:"tenure_months"`
}

// UnmarshalYAML handles the optional total_loan_amount; the YAML decoder
// cannot fill a *decimal.Decimal directly.
func (l *Liability) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		ID              string          `yaml:"id"`
		Type            LiabilityType   `yaml:"type"`
		TotalLoanAmount *string         `yaml:"total_loan_amount"`
		Outstanding     decimal.Decimal `yaml:"outstanding"`
		EMI             decimal.Decimal `yaml:"emi"`
		InterestRate    decimal.Decimal `yaml:"interest_rate"`
		TenureMonths    int             `yaml:"tenure_months"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	l.ID = aux.ID
	l.Type = aux.Type
	l.Outstanding = aux.Outstanding
	l.EMI = aux.EMI
	l.InterestRate = aux.InterestRate
	l.TenureMonths = aux.TenureMonths

	if aux.TotalLoanAmount != nil {
		val, err := decimal.NewFromString(*aux.TotalLoanAmount)
		if err != nil {
			return err
		}
		l.TotalLoanAmount = &val
	}
	return nil
}

// CashFlow is the monthly inflow/outflow picture.
type CashFlow struct {
	Inflows  Inflows  `yaml:"inflows" json:"inflows"`
	Outflows Outflows `yaml:"outflows" json:"outflows"`
}

// Inflows lists named monthly income sources.
type Inflows struct {
	PrimaryIncome    decimal.Decimal `yaml:"primary_income" json:"primary_income"`
	SpouseIncome     decimal.Decimal `yaml:"spouse_income" json:"spouse_income"`
	RentalIncome     decimal.Decimal `yaml:"rental_income" json:"rental_income"`
	AdditionalIncome decimal.Decimal `yaml:"additional_income" json:"additional_income"`
	Other            decimal.Decimal `yaml:"other" json:"other"`
}

// Outflows carries the expense side. essential/lifestyle may be lump totals
// or itemized; linked_emis and linked_investments are derived from the
// liability and investment tables and are never trusted as stored.
type Outflows struct {
	Essential decimal.Decimal `yaml:"essential" json:"essential"`
	Lifestyle decimal.Decimal `yaml:"lifestyle" json:"lifestyle"`

	EssentialDetails *EssentialExpenses `yaml:"essential_details,omitempty" json:"essential_details,omitempty"`
	LifestyleDetails *LifestyleExpenses `yaml:"lifestyle_details,omitempty" json:"lifestyle_details,omitempty"`

	LinkedEMIs        decimal.Decimal `yaml:"linked_emis" json:"linked_emis"`
	LinkedInvestments decimal.Decimal `yaml:"linked_investments" json:"linked_investments"`
}

// EssentialExpenses is the itemized essential breakdown.
type EssentialExpenses struct {
	HouseRent          decimal.Decimal `yaml:"house_rent" json:"house_rent"`
	Maintenance        decimal.Decimal `yaml:"maintenance" json:"maintenance"`
	PropertyTax        decimal.Decimal `yaml:"property_tax" json:"property_tax"`
	Utilities          decimal.Decimal `yaml:"utilities" json:"utilities"`
	Groceries          decimal.Decimal `yaml:"groceries" json:"groceries"`
	Transportation     decimal.Decimal `yaml:"transportation" json:"transportation"`
	MedicalExpenses    decimal.Decimal `yaml:"medical_expenses" json:"medical_expenses"`
	ChildrenSchoolFees decimal.Decimal `yaml:"children_school_fees" json:"children_school_fees"`
	InsurancePremiums  decimal.Decimal `yaml:"insurance_premiums" json:"insurance_premiums"`
	Other              decimal.Decimal `yaml:"other" json:"other"`
}

// Total sums the itemized essential categories.
func (e EssentialExpenses) Total() decimal.Decimal {
	return e.HouseRent.Add(e.Maintenance).Add(e.PropertyTax).Add(e.Utilities).
		Add(e.Groceries).Add(e.Transportation).Add(e.MedicalExpenses).
		Add(e.ChildrenSchoolFees).Add(e.InsurancePremiums).Add(e.Other)
}

// LifestyleExpenses is the itemized lifestyle breakdown.
type LifestyleExpenses struct {
	MaidExpense         decimal.Decimal `yaml:"maid_expense" json:"maid_expense"`
	Shopping            decimal.Decimal `yaml:"shopping" json:"shopping"`
	Travel              decimal.Decimal `yaml:"travel" json:"travel"`
	DiningEntertainment decimal.Decimal `yaml:"dining_entertainment" json:"dining_entertainment"`
	Other               decimal.Decimal `yaml:"other" json:"other"`
}

// Total sums the itemized lifestyle categories.
func (l LifestyleExpenses) Total() decimal.Decimal {
	return l.MaidExpense.Add(l.Shopping).Add(l.Travel).
		Add(l.DiningEntertainment).Add(l.Other)
}

// Assumptions are the economic rates driving every projection, as decimal
// fractions (0.06 = 6%).
type Assumptions struct {
	Inflation      decimal.Decimal `yaml:"inflation" json:"inflation"`
	ChildInflation decimal.Decimal `yaml:"child_inflation" json:"child_inflation"`
	PreRetireROI   decimal.Decimal `yaml:"pre_retire_roi" json:"pre_retire_roi"`
	PostRetireROI  decimal.Decimal `yaml:"post_retire_roi" json:"post_retire_roi"`
}

// FindFamilyMember resolves a person reference by case-insensitive name
// across the roster and the spouse. The second return is false when no one
// matches.
func (p UserProfile) FindFamilyMember(name string) (FamilyMember, bool) {
	for _, m := range p.FamilyMembers {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	if p.Spouse != nil && strings.EqualFold(p.Spouse.Name, name) {
		return FamilyMember{
			Name:         p.Spouse.Name,
			BirthDate:    p.Spouse.BirthDate,
			RelationType: RelationSpouse,
		}, true
	}
	if strings.EqualFold(p.Primary.Name, name) {
		return FamilyMember{
			Name:         p.Primary.Name,
			BirthDate:    p.Primary.BirthDate,
			RelationType: RelationPrimary,
		}, true
	}
	return FamilyMember{}, false
}

// Children returns the CHILD members of the roster, in input order.
func (p UserProfile) Children() []FamilyMember {
	var out []FamilyMember
	for _, m := range p.FamilyMembers {
		if m.RelationType == RelationChild {
			out = append(out, m)
		}
	}
	return out
}
