package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/arthaplan/engine/internal/domain"
)

// SnapshotLoader reads household snapshots from YAML or JSON files. JSON is
// a YAML subset, so one decoder covers both; structural validation happens
// in the engine, not here.
type SnapshotLoader struct{}

// NewSnapshotLoader creates a new snapshot loader.
func NewSnapshotLoader() *SnapshotLoader {
	return &SnapshotLoader{}
}

// LoadFromFile loads a snapshot from a YAML or JSON file.
func (sl *SnapshotLoader) LoadFromFile(filename string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	snap, err := sl.LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return snap, nil
}

// LoadFromBytes decodes a snapshot from raw YAML or JSON.
func (sl *SnapshotLoader) LoadFromBytes(data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snap, nil
}

// ExampleSnapshot returns a fully populated sample household, used by the
// `example` command and as a template for new users.
func ExampleSnapshot() *domain.Snapshot {
	maturity := decimal.NewFromInt(800000)
	totalHomeLoan := decimal.NewFromInt(5000000)

	return &domain.Snapshot{
		UserProfile: domain.UserProfile{
			Primary: domain.PrimaryUser{
				Name:           "Ravi Kumar",
				BirthDate:      domain.NewDate(1986, time.March, 15),
				RetirementAge:  60,
				LifeExpectancy: 85,
			},
			Spouse: &domain.SpouseInfo{
				Name:          "Priya Kumar",
				BirthDate:     domain.NewDate(1988, time.August, 2),
				WorkingStatus: true,
				RetirementAge: 58,
			},
			FamilyMembers: []domain.FamilyMember{
				{Name: "Anika", BirthDate: domain.NewDate(2016, time.July, 1), RelationType: domain.RelationChild},
				{Name: "Arjun", BirthDate: domain.NewDate(2020, time.February, 14), RelationType: domain.RelationChild},
			},
		},
		Goals: []domain.Goal{
			{
				ID: "goal-edu-anika", PersonName: "Anika", Name: "Higher education",
				CurrentCost: decimal.NewFromInt(2500000),
				TargetType:  domain.TargetAge, TargetValue: "18",
			},
			{
				ID: "goal-edu-arjun", PersonName: "Arjun", Name: "Higher education",
				CurrentCost: decimal.NewFromInt(2500000),
				TargetType:  domain.TargetAge, TargetValue: "18",
			},
			{
				ID: "goal-home-upgrade", Name: "Home upgrade",
				CurrentCost: decimal.NewFromInt(3000000),
				TargetType:  domain.TargetDate, TargetValue: "2032-04-01",
			},
		},
		Assets: domain.Assets{
			RealEstate: []domain.RealEstateAsset{
				{
					Name:            "Apartment, Whitefield",
					PresentValue:    decimal.NewFromInt(9500000),
					OutstandingLoan: decimal.NewFromInt(3800000),
					InterestRate:    decimal.NewFromFloat(8.5),
					EMI:             decimal.NewFromInt(35000),
				},
			},
			BankAccounts: []domain.BankAccount{
				{BankName: "HDFC", AccountType: domain.AccountSavings, Balance: decimal.NewFromInt(450000)},
				{BankName: "SBI", AccountType: domain.AccountFD, Balance: decimal.NewFromInt(600000), InterestRate: decimal.NewFromFloat(7.1), MaturityDate: domain.NewDate(2027, time.June, 30)},
			},
			Investments: []domain.Investment{
				{Type: domain.InvestmentMF, InvestedAmount: decimal.NewFromInt(1200000), CurrentValue: decimal.NewFromInt(1650000), MonthlySIP: decimal.NewFromInt(30000)},
				{Type: domain.InvestmentStock, InvestedAmount: decimal.NewFromInt(300000), CurrentValue: decimal.NewFromInt(420000), MonthlySIP: decimal.Zero},
			},
			InsurancePolicies: []domain.InsurancePolicy{
				{PolicyName: "Term cover", PolicyType: domain.PolicyTerm, SumAssured: decimal.NewFromInt(20000000), Premium: decimal.NewFromInt(28000), PremiumFrequency: "yearly"},
				{PolicyName: "Endowment", PolicyType: domain.PolicyEndowment, SumAssured: decimal.NewFromInt(500000), Premium: decimal.NewFromInt(24000), PremiumFrequency: "yearly", MaturityAmount: &maturity},
			},
			LiquidCash: decimal.NewFromInt(250000),
		},
		Liabilities: []domain.Liability{
			{
				Type: domain.LiabilityHome, TotalLoanAmount: &totalHomeLoan,
				Outstanding: decimal.NewFromInt(3800000), EMI: decimal.NewFromInt(35000),
				InterestRate: decimal.NewFromFloat(8.5), TenureMonths: 180,
			},
			{
				Type:        domain.LiabilityCar,
				Outstanding: decimal.NewFromInt(450000), EMI: decimal.NewFromInt(14500),
				InterestRate: decimal.NewFromFloat(9.2), TenureMonths: 48,
			},
		},
		CashFlow: domain.CashFlow{
			Inflows: domain.Inflows{
				PrimaryIncome: decimal.NewFromInt(250000),
				SpouseIncome:  decimal.NewFromInt(90000),
				RentalIncome:  decimal.NewFromInt(18000),
			},
			Outflows: domain.Outflows{
				EssentialDetails: &domain.EssentialExpenses{
					HouseRent:          decimal.Zero,
					Maintenance:        decimal.NewFromInt(4500),
					Utilities:          decimal.NewFromInt(6000),
					Groceries:          decimal.NewFromInt(22000),
					Transportation:     decimal.NewFromInt(8000),
					MedicalExpenses:    decimal.NewFromInt(4000),
					ChildrenSchoolFees: decimal.NewFromInt(28000),
					InsurancePremiums:  decimal.NewFromInt(4300),
				},
				LifestyleDetails: &domain.LifestyleExpenses{
					MaidExpense:         decimal.NewFromInt(9000),
					Shopping:            decimal.NewFromInt(12000),
					Travel:              decimal.NewFromInt(8000),
					DiningEntertainment: decimal.NewFromInt(7000),
				},
			},
		},
		Assumptions: domain.Assumptions{
			Inflation:      decimal.NewFromFloat(0.06),
			ChildInflation: decimal.NewFromFloat(0.10),
			PreRetireROI:   decimal.NewFromFloat(0.12),
			PostRetireROI:  decimal.NewFromFloat(0.08),
		},
	}
}
