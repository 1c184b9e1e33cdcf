package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/arthaplan/engine/internal/domain"
	pdecimal "github.com/arthaplan/engine/pkg/decimal"
)

// FutureCost inflates a present cost over a fractional number of years:
// cost * (1+rate)^years. Zero or negative horizons return the present cost
// unchanged.
func FutureCost(presentCost, annualRate, years decimal.Decimal) (decimal.Decimal, error) {
	if years.LessThanOrEqual(decimal.Zero) {
		return presentCost, nil
	}
	factor, err := pdecimal.GrowthFactor(annualRate, years)
	if err != nil {
		return decimal.Zero, &domain.ArithmeticGuardError{Step: "future_cost", Err: err}
	}
	return presentCost.Mul(factor), nil
}

// ExpenseAtRetirement projects today's monthly expenses to the retirement
// date at general inflation.
func ExpenseAtRetirement(monthlyExpenses, inflation, yearsToRetire decimal.Decimal) (decimal.Decimal, error) {
	out, err := FutureCost(monthlyExpenses, inflation, yearsToRetire)
	if err != nil {
		return decimal.Zero, &domain.ArithmeticGuardError{Step: "expense_at_retirement", Err: err}
	}
	return out, nil
}

// goalInflationRate picks the inflation rate for a goal under the configured
// scope. Child goals inflate at child_inflation when the scope says so and
// the goal's person resolves to a CHILD member.
func goalInflationRate(goal domain.Goal, profile domain.UserProfile, assumptions domain.Assumptions, scope ChildInflationScope) decimal.Decimal {
	switch scope {
	case ChildInflationAllGoals:
		return assumptions.ChildInflation
	case ChildInflationNever:
		return assumptions.Inflation
	}
	if goal.PersonName != "" {
		if member, ok := profile.FindFamilyMember(goal.PersonName); ok && member.RelationType == domain.RelationChild {
			return assumptions.ChildInflation
		}
	}
	return assumptions.Inflation
}
