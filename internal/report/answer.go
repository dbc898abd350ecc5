package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	carefulShare = decimal.RequireFromString("0.8")
	goodSavings  = decimal.NewFromInt(20)
	fairSavings  = decimal.NewFromInt(10)
)

// Answer replies to a free-text question by keyword. The first matching
// topic wins: budget, savings, income, expenses, goals. Anything else gets
// a general reply that echoes the question.
func Answer(question string, in Input) string {
	format := in.Format
	if format == nil {
		format = func(d decimal.Decimal) string { return d.StringFixed(2) }
	}
	q := strings.ToLower(question)

	switch {
	case containsAny(q, "budget", "spending"):
		return answerBudget(in, format)
	case containsAny(q, "save", "saving"):
		rate := in.Month.SavingsRate()
		var advice string
		switch {
		case rate.GreaterThanOrEqual(goodSavings):
			advice = "Excellent! You're saving a healthy amount."
		case rate.GreaterThanOrEqual(fairSavings):
			advice = "Good start! Try to increase your savings rate to 20% if possible."
		default:
			advice = "Consider reducing expenses or increasing income to improve your savings rate. Aim for at least 10-20% of your income."
		}
		return fmt.Sprintf("Your current savings rate is %s%%. %s", rate.StringFixed(1), advice)
	case containsAny(q, "income", "earn"):
		advice := "Consider ways to increase your income or reduce expenses to improve your financial health."
		if in.Month.Income.GreaterThan(in.Month.Expenses) {
			advice = "You're earning more than you spend, which is great!"
		}
		return fmt.Sprintf("Your current monthly income is %s. %s", format(in.Month.Income), advice)
	case containsAny(q, "expense", "spend"):
		return fmt.Sprintf("Your monthly expenses total %s. Your biggest expense categories might benefit from review. Consider tracking your daily expenses more closely to identify areas for potential savings.", format(in.Month.Expenses))
	case containsAny(q, "goal", "plan"):
		return "Setting financial goals is crucial for success! Based on your current financial situation, consider setting goals for: 1) Building an emergency fund (3-6 months of expenses), 2) Increasing your savings rate, 3) Paying off any high-interest debt, and 4) Long-term investment planning."
	}

	flow := "positive"
	if in.Month.Balance.IsNegative() {
		flow = "negative"
	}
	return fmt.Sprintf("I understand you're asking about \"%s\". Based on your financial data, I can help you with budgeting, spending analysis, savings strategies, and financial goal setting. Your current financial health shows %s cash flow. Would you like specific advice on any particular area?", question, flow)
}

func answerBudget(in Input, format func(decimal.Decimal) string) string {
	limit, spent := decimal.Zero, decimal.Zero
	for _, u := range in.Budgets {
		limit = limit.Add(u.Budget.Limit.Decimal())
		spent = spent.Add(u.Budget.Spent.Decimal())
	}
	if !limit.IsPositive() {
		return "You haven't set any budgets yet. Create one per spending category to start tracking your limits."
	}

	share := spent.Div(limit)
	advice := "You're doing well staying within your budgets!"
	if share.GreaterThan(carefulShare) {
		advice = "You might want to be more careful with your spending."
	}
	return fmt.Sprintf("Based on your current budgets, you have allocated %s across %d categories. You've spent %s so far, which is %s%% of your total budget. %s",
		format(limit), len(in.Budgets), format(spent), share.Mul(hundred).StringFixed(1), advice)
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
