package calculation

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthaplan/engine/internal/domain"
	"github.com/arthaplan/engine/pkg/dateutil"
)

// TimeMetrics are the resolved age and horizon figures for the primary user.
// Ages are fractional by convention (days/365.25) because downstream
// exponents consume fractional years; flooring here would shift every
// projection.
type TimeMetrics struct {
	CurrentAge    decimal.Decimal
	RetirementAge int
	// YearsToRetire is clamped at zero for reporting; MonthsToRetire is
	// the rounded period count, also clamped, with zero meaning "already
	// retired" (corpus required immediately, no further discounting).
	YearsToRetire  decimal.Decimal
	MonthsToRetire int
}

// ResolveTimeMetrics derives the primary user's age and retirement horizon
// from the single as-of reference date.
func ResolveTimeMetrics(primary domain.PrimaryUser, asOf time.Time) TimeMetrics {
	age := dateutil.Age(primary.BirthDate.Time, asOf)
	years := float64(primary.RetirementAge) - age
	months := dateutil.ClampMonths(dateutil.MonthsFromYears(years))
	if years < 0 {
		years = 0
	}
	return TimeMetrics{
		CurrentAge:     decimal.NewFromFloat(age),
		RetirementAge:  primary.RetirementAge,
		YearsToRetire:  decimal.NewFromFloat(years),
		MonthsToRetire: months,
	}
}

// GoalHorizon is a goal's resolved distance in time.
type GoalHorizon struct {
	// YearsToGoal is the raw horizon; negative means the goal is past due.
	YearsToGoal  decimal.Decimal
	MonthsToGoal int
	PastDue      bool
}

// ResolveGoalHorizon turns a goal target into years and whole months from
// the as-of date. Age targets resolve against the named person's birth date
// (falling back to the primary user's age when the member has no recorded
// birth date); date targets resolve by calendar distance. A horizon of
// exactly zero is due now, not past due.
func ResolveGoalHorizon(goal domain.Goal, profile domain.UserProfile, asOf time.Time) (GoalHorizon, error) {
	var years float64

	switch goal.TargetType {
	case domain.TargetAge:
		targetAge, err := strconv.Atoi(goal.TargetValue)
		if err != nil {
			return GoalHorizon{}, domain.ValidationError{
				Field:  "goals." + goal.ID + ".target_value",
				Value:  goal.TargetValue,
				Reason: "AGE target must be a whole number",
			}
		}
		refAge := dateutil.Age(profile.Primary.BirthDate.Time, asOf)
		if goal.PersonName != "" {
			member, ok := profile.FindFamilyMember(goal.PersonName)
			if !ok {
				return GoalHorizon{}, domain.ReferenceError{GoalID: goal.ID, PersonName: goal.PersonName}
			}
			if !member.BirthDate.IsZero() {
				refAge = dateutil.Age(member.BirthDate.Time, asOf)
			}
		}
		years = float64(targetAge) - refAge

	case domain.TargetDate:
		target, err := domain.ParseDateString(goal.TargetValue)
		if err != nil {
			return GoalHorizon{}, domain.ValidationError{
				Field:  "goals." + goal.ID + ".target_value",
				Value:  goal.TargetValue,
				Reason: "DATE target must be YYYY-MM-DD",
			}
		}
		years = dateutil.YearsBetween(asOf, target.Time)

	default:
		return GoalHorizon{}, domain.ValidationError{
			Field:  "goals." + goal.ID + ".target_type",
			Value:  string(goal.TargetType),
			Reason: "target_type must be AGE or DATE",
		}
	}

	months := dateutil.MonthsFromYears(years)
	pastDue := years < 0
	if pastDue {
		months = 0
	}
	return GoalHorizon{
		YearsToGoal:  decimal.NewFromFloat(years),
		MonthsToGoal: months,
		PastDue:      pastDue,
	}, nil
}
