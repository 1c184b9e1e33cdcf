package output

import (
	"bytes"
	"fmt"

	"github.com/arthaplan/engine/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "FINANCIAL PLAN SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Current Age: %s   Retirement Age: %d   Years To Retire: %s\n",
		result.TimeMetrics.CurrentAge, result.TimeMetrics.RetirementAge, result.TimeMetrics.YearsToRetire)
	fmt.Fprintln(&buf)

	s := result.Summary
	fmt.Fprintln(&buf, "Net Worth")
	fmt.Fprintf(&buf, "  Assets=%s Liabilities=%s NetWorth=%s\n",
		FormatCurrency(s.TotalAssets), FormatCurrency(s.TotalLiabilities), FormatCurrency(s.NetWorth))
	fmt.Fprintln(&buf, "Monthly Cash Flow")
	fmt.Fprintf(&buf, "  Inflow=%s Outflow=%s Leftover=%s\n",
		FormatCurrency(s.TotalMonthlyInflow), FormatCurrency(s.TotalMonthlyOutflow), FormatCurrency(s.LeftoverSavings))
	fmt.Fprintf(&buf, "  Savings=%s EMI=%s Investing=%s Essential=%s Lifestyle=%s\n",
		FormatPercentage(s.SavingsRate), FormatPercentage(s.EMIBurden), FormatPercentage(s.InvestmentRate),
		FormatPercentage(s.EssentialExpensePercent), FormatPercentage(s.LifestyleExpensePercent))
	fmt.Fprintln(&buf)

	r := result.Retirement
	fmt.Fprintln(&buf, "Retirement")
	fmt.Fprintf(&buf, "  ExpenseNow=%s AtRetirement=%s over %d months\n",
		FormatCurrency(r.CurrentMonthlyExpenses), FormatCurrency(r.ExpenseAtRetirementMonthly), r.PensionMonths)
	fmt.Fprintf(&buf, "  CorpusRequired=%s MoneyToRetireNow=%s\n",
		FormatCurrency(r.CorpusRequired), FormatCurrency(r.MoneyToRetireNow))
	fmt.Fprintf(&buf, "  ProjectedCorpus=%s Gap=%s ExtraSIP=%s\n",
		FormatCurrency(s.ProjectedCorpus), FormatCurrency(s.RetirementGap), FormatCurrency(s.ExtraSIPRequired))
	fmt.Fprintln(&buf)

	if len(result.Goals) > 0 {
		fmt.Fprintln(&buf, "Goals")
		for _, g := range result.Goals {
			fmt.Fprintf(&buf, "  %s [%s]: FutureCost=%s SIP=%s in %d months\n",
				g.Name, g.Status, FormatCurrency(g.FutureCost), FormatCurrency(g.MonthlySIPRequired), g.MonthsToGoal)
		}
		gs := result.GoalSummary
		fmt.Fprintf(&buf, "  Total SIP=%s Surplus=%s After=%s\n",
			FormatCurrency(gs.TotalMonthlySIPForAllGoals), FormatCurrency(gs.MonthlySurplusAvailable),
			FormatCurrency(gs.SurplusAfterAllGoals))
		fmt.Fprintln(&buf)
	}

	if result.ContingencyFund != nil {
		fmt.Fprintf(&buf, "Contingency Fund: %s (%d months of %s)\n",
			FormatCurrency(result.ContingencyFund.ContingencyFundRequired),
			result.ContingencyFund.MonthsRequired,
			FormatCurrency(result.ContingencyFund.MonthlyExpenses))
	}
	for _, cover := range result.InsuranceCover {
		fmt.Fprintf(&buf, "Insurance Cover (%s): %s over %d earning years\n",
			cover.MemberName, FormatCurrency(cover.InsuranceCoverRequired), cover.YearsLeft)
	}

	return buf.Bytes(), nil
}
