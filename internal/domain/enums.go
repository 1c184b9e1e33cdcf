package domain

// RelationType identifies how a family member relates to the primary user.
type RelationType string

const (
	RelationPrimary RelationType = "PRIMARY"
	RelationSpouse  RelationType = "SPOUSE"
	RelationChild   RelationType = "CHILD"
	RelationFather  RelationType = "FATHER"
	RelationMother  RelationType = "MOTHER"
)

// Valid reports whether the relation is one of the known values.
func (r RelationType) Valid() bool {
	switch r {
	case RelationPrimary, RelationSpouse, RelationChild, RelationFather, RelationMother:
		return true
	}
	return false
}

// TargetType selects how a goal's target is expressed.
type TargetType string

const (
	TargetAge  TargetType = "AGE"
	TargetDate TargetType = "DATE"
)

func (t TargetType) Valid() bool {
	return t == TargetAge || t == TargetDate
}

// InvestmentType classes an investment asset.
type InvestmentType string

const (
	InvestmentMF    InvestmentType = "MF"
	InvestmentStock InvestmentType = "Stock"
	InvestmentFD    InvestmentType = "FD"
	InvestmentRD    InvestmentType = "RD"
	InvestmentChit  InvestmentType = "Chit"
	InvestmentOther InvestmentType = "Other"
)

func (t InvestmentType) Valid() bool {
	switch t {
	case InvestmentMF, InvestmentStock, InvestmentFD, InvestmentRD, InvestmentChit, InvestmentOther:
		return true
	}
	return false
}

// LiabilityType classes a loan.
type LiabilityType string

const (
	LiabilityHome     LiabilityType = "Home"
	LiabilityCar      LiabilityType = "Car"
	LiabilityPersonal LiabilityType = "Personal"
	LiabilityOther    LiabilityType = "Other"
)

func (t LiabilityType) Valid() bool {
	switch t {
	case LiabilityHome, LiabilityCar, LiabilityPersonal, LiabilityOther:
		return true
	}
	return false
}

// AccountType classes a bank account or deposit.
type AccountType string

const (
	AccountSavings AccountType = "Savings"
	AccountCurrent AccountType = "Current"
	AccountFD      AccountType = "FD"
	AccountRD      AccountType = "RD"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountSavings, AccountCurrent, AccountFD, AccountRD:
		return true
	}
	return false
}

// PolicyType classes an insurance policy.
type PolicyType string

const (
	PolicyTerm      PolicyType = "Term"
	PolicyEndowment PolicyType = "Endowment"
	PolicyULIP      PolicyType = "ULIP"
	PolicyWholeLife PolicyType = "Whole Life"
	PolicyHealth    PolicyType = "Health"
	PolicyOther     PolicyType = "Other"
)

func (t PolicyType) Valid() bool {
	switch t {
	case PolicyTerm, PolicyEndowment, PolicyULIP, PolicyWholeLife, PolicyHealth, PolicyOther:
		return true
	}
	return false
}

// GoalStatus is the feasibility verdict for a single goal.
type GoalStatus string

const (
	GoalOnTrack        GoalStatus = "ON_TRACK"
	GoalNeedsAttention GoalStatus = "NEEDS_ATTENTION"
	GoalAtRisk         GoalStatus = "AT_RISK"
	GoalCritical       GoalStatus = "CRITICAL"
	GoalPastDue        GoalStatus = "PAST_DUE"
	GoalAchieved       GoalStatus = "ACHIEVED"
)
