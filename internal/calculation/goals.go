package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/arthaplan/engine/internal/domain"
)

// goalOutcome pairs one goal's analysis row with the trace steps it produced.
// Goals are computed concurrently; the steps are published per goal, in input
// order, after the group joins.
type goalOutcome struct {
	row   domain.GoalAnalysis
	steps []domain.TraceStep
}

// AnalyzeGoals computes every goal row plus the aggregate summary. The
// per-goal work fans out across goroutines and lands in an index-addressed
// slice, so the result order always matches the input order.
func AnalyzeGoals(ctx context.Context, snap *domain.Snapshot, asOf time.Time, surplus decimal.Decimal, opts Options) ([]domain.GoalAnalysis, []domain.TraceStep, domain.GoalSummary, error) {
	outcomes := make([]goalOutcome, len(snap.Goals))

	g, ctx := errgroup.WithContext(ctx)
	for i, goal := range snap.Goals {
		i, goal := i, goal
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := analyzeGoal(goal, snap, asOf, surplus, opts)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, domain.GoalSummary{}, err
	}

	rows := make([]domain.GoalAnalysis, len(outcomes))
	var steps []domain.TraceStep
	totalSIP := decimal.Zero
	allFeasible := true
	for i, out := range outcomes {
		rows[i] = out.row
		steps = append(steps, out.steps...)
		totalSIP = totalSIP.Add(out.row.MonthlySIPRequired)
		switch out.row.Status {
		case domain.GoalOnTrack, domain.GoalAchieved:
		default:
			allFeasible = false
		}
	}

	summary := domain.GoalSummary{
		TotalMonthlySIPForAllGoals: totalSIP,
		MonthlySurplusAvailable:    surplus,
		SurplusAfterAllGoals:       surplus.Sub(totalSIP),
		AllGoalsFeasible:           allFeasible,
	}
	return rows, steps, summary, nil
}

func analyzeGoal(goal domain.Goal, snap *domain.Snapshot, asOf time.Time, surplus decimal.Decimal, opts Options) (goalOutcome, error) {
	t := newTracer()
	horizon, err := ResolveGoalHorizon(goal, snap.UserProfile, asOf)
	if err != nil {
		return goalOutcome{}, err
	}
	t.record("goal."+goal.ID+".horizon", "years and months until goal target",
		in("target_type", string(goal.TargetType), "target_value", goal.TargetValue),
		fmt.Sprintf("years=%s months=%d", horizon.YearsToGoal.Round(4), horizon.MonthsToGoal))

	row := domain.GoalAnalysis{
		ID:           goal.ID,
		Name:         goal.Name,
		PersonName:   goal.PersonName,
		CurrentCost:  goal.CurrentCost,
		YearsToGoal:  horizon.YearsToGoal,
		MonthsToGoal: horizon.MonthsToGoal,
	}

	if horizon.PastDue {
		// Past-due goals stay out of SIP arithmetic; the future cost is
		// reported at today's cost.
		row.FutureCost = goal.CurrentCost
		row.MonthlySIPRequired = decimal.Zero
		row.Status = domain.GoalPastDue
		row.Feasibility = feasibilityNote(domain.GoalPastDue)
		row.SurplusAllocationPercent = decimal.Zero
		t.record("goal."+goal.ID+".status", "goal target already passed", nil, string(domain.GoalPastDue))
		return goalOutcome{row: row, steps: t.steps}, nil
	}

	rate := goalInflationRate(goal, snap.UserProfile, snap.Assumptions, opts.ChildInflationScope)
	futureCost, err := FutureCost(goal.CurrentCost, rate, horizon.YearsToGoal)
	if err != nil {
		return goalOutcome{}, err
	}
	t.record("goal."+goal.ID+".future_cost", "current cost inflated to goal date",
		in("current_cost", goal.CurrentCost.String(), "rate", rate.String(), "years", horizon.YearsToGoal.Round(4).String()),
		futureCost.Round(2).String())

	sip, err := GoalSIPRequired(futureCost, snap.Assumptions.PreRetireROI, horizon.MonthsToGoal)
	if err != nil {
		return goalOutcome{}, err
	}
	t.record("goal."+goal.ID+".sip", "monthly contribution funding the future cost",
		in("future_cost", futureCost.Round(2).String(), "roi", snap.Assumptions.PreRetireROI.String(), "months", fmt.Sprint(horizon.MonthsToGoal)),
		sip.Round(2).String())

	status, share := classifyGoal(sip, surplus, opts.Feasibility)
	row.FutureCost = futureCost
	row.MonthlySIPRequired = sip
	row.Status = status
	row.Feasibility = feasibilityNote(status)
	row.SurplusAllocationPercent = share
	t.record("goal."+goal.ID+".status", "feasibility grade from surplus share",
		in("sip", sip.Round(2).String(), "surplus", surplus.Round(2).String()),
		string(status))

	return goalOutcome{row: row, steps: t.steps}, nil
}

// classifyGoal grades a goal by the share of the monthly surplus its SIP
// consumes. A zero SIP is ACHIEVED; any positive SIP against a zero surplus
// is CRITICAL because the share is unbounded.
func classifyGoal(sip, surplus decimal.Decimal, th FeasibilityThresholds) (domain.GoalStatus, decimal.Decimal) {
	if sip.LessThanOrEqual(decimal.Zero) {
		return domain.GoalAchieved, decimal.Zero
	}
	if surplus.LessThanOrEqual(decimal.Zero) {
		return domain.GoalCritical, decimal.Zero
	}
	share := sip.Div(surplus)
	sharePct := share.Mul(hundred)
	switch {
	case share.LessThanOrEqual(th.OnTrackShare):
		return domain.GoalOnTrack, sharePct
	case share.LessThanOrEqual(th.AttentionShare):
		return domain.GoalNeedsAttention, sharePct
	case share.LessThanOrEqual(th.AtRiskShare):
		return domain.GoalAtRisk, sharePct
	default:
		return domain.GoalCritical, sharePct
	}
}

func feasibilityNote(status domain.GoalStatus) string {
	switch status {
	case domain.GoalOnTrack:
		return "comfortably fundable from monthly surplus"
	case domain.GoalNeedsAttention:
		return "fundable but consumes a large share of surplus"
	case domain.GoalAtRisk:
		return "requires nearly the entire monthly surplus"
	case domain.GoalCritical:
		return "cannot be funded from current surplus"
	case domain.GoalPastDue:
		return "target date has already passed"
	case domain.GoalAchieved:
		return "no further funding required"
	}
	return ""
}
