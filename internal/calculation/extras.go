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

// BuildRetirementCashflowTable simulates the corpus runoff year by year, one
// row per age from retirement to the pension horizon inclusive. The monthly
// withdrawal starts at the projected retirement expense and grows with
// inflation; the balance earns a full year of post-retirement return before
// the year's pension is drawn. A depleted corpus carries forward as zero, so
// a negative end value only ever appears in the year the money runs out.
func BuildRetirementCashflowTable(corpus, monthlyExpenseAtRetirement decimal.Decimal, assumptions domain.Assumptions, retirementAge, pensionHorizonAge int) ([]domain.RetirementCashflowRow, error) {
	years := pensionHorizonAge - retirementAge
	if years <= 0 {
		return nil, nil
	}

	rows := make([]domain.RetirementCashflowRow, 0, years+1)
	balance := corpus
	pension := monthlyExpenseAtRetirement
	growth := one.Add(assumptions.PostRetireROI)

	for y := 1; y <= years+1; y++ {
		paid := pension.Mul(twelve)
		end := balance.Mul(growth).Sub(paid)
		rows = append(rows, domain.RetirementCashflowRow{
			Year:              y,
			BeginValue:        balance.Round(2),
			MonthlyPension:    pension.Round(2),
			PensionPaidYearly: paid.Round(2),
			EndValue:          end.Round(2),
		})
		balance = decimal.Max(end, decimal.Zero)
		pension = pension.Mul(one.Add(assumptions.Inflation))
	}
	return rows, nil
}

// BuildChildPlanning produces a funding plan per child from the goals that
// name them. Child goal SIPs use the ordinary-annuity form (payment at
// period end), the convention the existing child-planning reports were
// published with.
func BuildChildPlanning(snap *domain.Snapshot, asOf time.Time) ([]domain.ChildPlanningResult, error) {
	children := snap.UserProfile.Children()
	if len(children) == 0 {
		return nil, nil
	}

	var out []domain.ChildPlanningResult
	for _, child := range children {
		if child.BirthDate.IsZero() {
			continue
		}
		childAge := dateutil.Age(child.BirthDate.Time, asOf)

		var plans []domain.ChildGoalPlan
		total := decimal.Zero
		for _, goal := range snap.Goals {
			if goal.PersonName == "" || goal.TargetType != domain.TargetAge {
				continue
			}
			member, ok := snap.UserProfile.FindFamilyMember(goal.PersonName)
			if !ok || member.Name != child.Name {
				continue
			}
			targetAge, err := strconv.Atoi(goal.TargetValue)
			if err != nil {
				continue
			}
			years := float64(targetAge) - childAge
			months := dateutil.ClampMonths(dateutil.MonthsFromYears(years))
			if months == 0 {
				continue
			}

			cost, err := FutureCost(goal.CurrentCost, snap.Assumptions.ChildInflation, decimal.NewFromFloat(years))
			if err != nil {
				return nil, err
			}
			sip, err := ordinaryAnnuitySIP(cost, snap.Assumptions.PreRetireROI, months)
			if err != nil {
				return nil, err
			}
			plans = append(plans, domain.ChildGoalPlan{
				GoalName:           goal.Name,
				PresentCost:        goal.CurrentCost.Round(2),
				TargetAge:          targetAge,
				MonthsLeft:         months,
				Inflation:          snap.Assumptions.ChildInflation,
				CostAtTarget:       cost.Round(2),
				ExpectedReturn:     snap.Assumptions.PreRetireROI,
				MonthlySIPRequired: sip.Round(2),
			})
			total = total.Add(sip)
		}
		if len(plans) == 0 {
			continue
		}
		out = append(out, domain.ChildPlanningResult{
			ChildName:       child.Name,
			ChildCurrentAge: decimal.NewFromFloat(childAge).Round(2),
			Goals:           plans,
			TotalMonthlySIP: total.Round(2),
		})
	}
	return out, nil
}

// ordinaryAnnuitySIP solves PMT for a future value with payments at period
// end: FV * r / ((1+r)^n - 1).
func ordinaryAnnuitySIP(futureValue, annualROI decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return futureValue, nil
	}
	n := decimal.NewFromInt(int64(months))
	r := annualROI.Div(twelve)
	if r.IsZero() {
		return futureValue.Div(n), nil
	}
	factor, err := pdecimal.GrowthFactor(r, n)
	if err != nil {
		return decimal.Zero, &domain.ArithmeticGuardError{Step: "child_sip", Err: err}
	}
	return futureValue.Mul(r).Div(factor.Sub(one)), nil
}

// BuildContingencyFund sizes the emergency fund as a number of months of the
// selected outgo base. The committed base adds EMIs on top of living
// expenses; discretionary SIPs can pause in an emergency and never count.
func BuildContingencyFund(cf CashFlowTotals, months int, base ContingencyBase) *domain.ContingencyFundResult {
	monthly := cf.Essential.Add(cf.Lifestyle)
	if base == ContingencyBaseCommitted {
		monthly = monthly.Add(cf.LinkedEMIs)
	}
	return &domain.ContingencyFundResult{
		MonthlyExpenses:         monthly.Round(2),
		MonthsRequired:          months,
		ContingencyFundRequired: monthly.Mul(decimal.NewFromInt(int64(months))).Round(2),
	}
}

// BuildInsuranceCover estimates the life cover each earning member needs as
// the sum of their projected earnings until retirement, income growing at
// the configured rate. Covers only the primary user and a working spouse;
// non-earning members need no income replacement.
func BuildInsuranceCover(snap *domain.Snapshot, asOf time.Time, growth decimal.Decimal) ([]domain.InsuranceCoverResult, error) {
	var out []domain.InsuranceCoverResult

	primary := snap.UserProfile.Primary
	cover, err := insuranceCoverFor(primary.Name, snap.CashFlow.Inflows.PrimaryIncome,
		primary.BirthDate.Time, primary.RetirementAge, growth, asOf)
	if err != nil {
		return nil, err
	}
	if cover != nil {
		out = append(out, *cover)
	}

	spouse := snap.UserProfile.Spouse
	if spouse != nil && spouse.WorkingStatus && !spouse.BirthDate.IsZero() {
		retireAge := spouse.RetirementAge
		if retireAge == 0 {
			retireAge = primary.RetirementAge
		}
		cover, err := insuranceCoverFor(spouse.Name, snap.CashFlow.Inflows.SpouseIncome,
			spouse.BirthDate.Time, retireAge, growth, asOf)
		if err != nil {
			return nil, err
		}
		if cover != nil {
			out = append(out, *cover)
		}
	}
	return out, nil
}

func insuranceCoverFor(name string, monthlyIncome decimal.Decimal, birthDate time.Time, retirementAge int, growth decimal.Decimal, asOf time.Time) (*domain.InsuranceCoverResult, error) {
	if monthlyIncome.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	age := dateutil.Age(birthDate, asOf)
	// Fractional horizon feeds the growth factor; the whole-year figure is
	// display only.
	yearsLeft := float64(retirementAge) - age
	if yearsLeft <= 0 {
		return nil, nil
	}
	horizon := decimal.NewFromFloat(yearsLeft)

	annual := monthlyIncome.Mul(twelve)
	var total decimal.Decimal
	if growth.IsZero() {
		total = annual.Mul(horizon)
	} else {
		factor, err := pdecimal.GrowthFactor(growth, horizon)
		if err != nil {
			return nil, &domain.ArithmeticGuardError{Step: fmt.Sprintf("insurance_cover.%s", name), Err: err}
		}
		total = annual.Mul(factor.Sub(one)).Div(growth)
	}

	return &domain.InsuranceCoverResult{
		MemberName:             name,
		MonthlyIncome:          monthlyIncome.Round(2),
		CurrentAge:             decimal.NewFromFloat(age).Round(2),
		RetirementAge:          retirementAge,
		ExpectedGrowth:         growth,
		YearsLeft:              int(yearsLeft),
		InsuranceCoverRequired: total.Round(2),
	}, nil
}
