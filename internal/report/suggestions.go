package report

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SuggestionType groups suggestions for display.
type SuggestionType string

const (
	SuggestionAlert SuggestionType = "alert"
	SuggestionTip   SuggestionType = "tip"
	SuggestionGoal  SuggestionType = "goal"
)

// Priority orders suggestions for display.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Suggestion is one templated piece of advice.
type Suggestion struct {
	ID          string
	Type        SuggestionType
	Title       string
	Description string
	Priority    Priority
}

var (
	alertThreshold   = decimal.NewFromInt(90)
	warnThreshold    = decimal.NewFromInt(75)
	minSavingsRate   = decimal.NewFromInt(20)
	topCategoryShare = decimal.RequireFromString("0.3")
)

// Input is what Suggestions needs: budget usage, the month's totals and
// expense totals per category (largest first).
type Input struct {
	Budgets    []BudgetUsage
	Month      Totals
	Categories []CategoryTotal

	// Format renders an amount for display.
	Format func(decimal.Decimal) string
}

// Suggestions applies the fixed advice rules to in.
func Suggestions(in Input) []Suggestion {
	format := in.Format
	if format == nil {
		format = func(d decimal.Decimal) string { return d.StringFixed(2) }
	}

	var out []Suggestion
	for _, u := range in.Budgets {
		b := u.Budget
		switch {
		case u.Percent.GreaterThan(alertThreshold):
			out = append(out, Suggestion{
				ID:          "budget-" + b.ID,
				Type:        SuggestionAlert,
				Title:       fmt.Sprintf("%s Budget Alert", b.Category),
				Description: fmt.Sprintf("You've spent %s%% of your %s budget. Consider reducing spending in this category.", u.Percent.StringFixed(0), b.Category),
				Priority:    PriorityHigh,
			})
		case u.Percent.GreaterThan(warnThreshold):
			out = append(out, Suggestion{
				ID:          "budget-warning-" + b.ID,
				Type:        SuggestionAlert,
				Title:       fmt.Sprintf("%s Budget Warning", b.Category),
				Description: fmt.Sprintf("You're approaching your %s budget limit (%s%% used).", b.Category, u.Percent.StringFixed(0)),
				Priority:    PriorityMedium,
			})
		}
	}

	rate := in.Month.SavingsRate()
	if rate.LessThan(minSavingsRate) {
		out = append(out, Suggestion{
			ID:          "savings-tip",
			Type:        SuggestionTip,
			Title:       "Improve Your Savings Rate",
			Description: fmt.Sprintf("Your current savings rate is %s%%. Try to save at least 20%% of your income for a healthy financial future.", rate.StringFixed(1)),
			Priority:    PriorityMedium,
		})
	}

	if len(in.Categories) > 0 {
		top := in.Categories[0]
		if top.Amount.GreaterThan(in.Month.Income.Mul(topCategoryShare)) {
			out = append(out, Suggestion{
				ID:          "spending-pattern",
				Type:        SuggestionTip,
				Title:       "High Spending Category Detected",
				Description: fmt.Sprintf("%s accounts for a large portion of your expenses (%s). Consider reviewing this category for potential savings.", top.Category, format(top.Amount)),
				Priority:    PriorityMedium,
			})
		}
	}

	if in.Month.Balance.IsPositive() {
		out = append(out, Suggestion{
			ID:          "investment-goal",
			Type:        SuggestionGoal,
			Title:       "Consider Investment Opportunities",
			Description: fmt.Sprintf("With a positive balance of %s, you might want to explore investment options to grow your wealth.", format(in.Month.Balance)),
			Priority:    PriorityLow,
		})
	}

	return out
}
