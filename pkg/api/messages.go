package api

import "github.com/shopspring/decimal"

// User is the public view of an account. The password hash never leaves
// the server.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by Signup and Login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetProfileRequest struct{}

type UpdateProfileRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// ProfileResponse is returned by GetProfile and UpdateProfile.
type ProfileResponse struct {
	User *User `json:"user"`
}

// Transaction is the stored representation of a ledger entry.
type Transaction struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Type      string          `json:"type"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt int64           `json:"createdAt"`
}

// TransactionInput holds the client-editable transaction fields. Amount
// is required; an omitted or null amount is rejected.
type TransactionInput struct {
	Title    string              `json:"title"`
	Amount   decimal.NullDecimal `json:"amount"`
	Category string              `json:"category"`
	Type     string              `json:"type"`
	Date     string              `json:"date"`
	Notes    string              `json:"notes,omitempty"`
}

type ListTransactionsRequest struct{}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type CreateTransactionRequest struct {
	TransactionInput
}

type UpdateTransactionRequest struct {
	ID string `json:"id"`
	TransactionInput
}

// TransactionResponse is returned by CreateTransaction and UpdateTransaction.
// BudgetsAdjusted counts the budget rows whose spend changed.
type TransactionResponse struct {
	Transaction     *Transaction `json:"transaction"`
	BudgetsAdjusted int64        `json:"budgetsAdjusted"`
}

type DeleteTransactionRequest struct {
	ID string `json:"id"`
}

type DeleteTransactionResponse struct {
	BudgetsAdjusted int64 `json:"budgetsAdjusted"`
}

// Budget is the stored representation of a category budget.
type Budget struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	Limit     decimal.Decimal `json:"limit"`
	Period    string          `json:"period"`
	StartDate string          `json:"startDate"`
	Spent     decimal.Decimal `json:"spent"`
	CreatedAt int64           `json:"createdAt"`
}

// BudgetInput holds the client-editable budget fields. Spent is not
// among them.
type BudgetInput struct {
	Category  string              `json:"category"`
	Limit     decimal.NullDecimal `json:"limit"`
	Period    string              `json:"period"`
	StartDate string              `json:"startDate"`
}

type ListBudgetsRequest struct{}

type ListBudgetsResponse struct {
	Budgets []*Budget `json:"budgets"`
}

type CreateBudgetRequest struct {
	BudgetInput
}

type UpdateBudgetRequest struct {
	ID string `json:"id"`
	BudgetInput
}

// BudgetResponse is returned by CreateBudget and UpdateBudget.
type BudgetResponse struct {
	Budget *Budget `json:"budget"`
}

type DeleteBudgetRequest struct {
	ID string `json:"id"`
}

type DeleteBudgetResponse struct{}

// ReportRequest selects the month (YYYY-MM, default current) and display
// currency (default INR) for report procedures.
type ReportRequest struct {
	Month    string `json:"month,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type BudgetUsage struct {
	BudgetID string          `json:"budgetId"`
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
	Spent    decimal.Decimal `json:"spent"`
	Percent  decimal.Decimal `json:"percent"`
}

type SummaryResponse struct {
	Month       string           `json:"month"`
	Currency    string           `json:"currency"`
	Income      decimal.Decimal  `json:"income"`
	Expenses    decimal.Decimal  `json:"expenses"`
	Balance     decimal.Decimal  `json:"balance"`
	SavingsRate decimal.Decimal  `json:"savingsRate"`
	Categories  []*CategoryTotal `json:"categories"`
	Budgets     []*BudgetUsage   `json:"budgets"`
}

type Suggestion struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type SuggestionsResponse struct {
	Suggestions []*Suggestion `json:"suggestions"`
}

type ListCurrenciesRequest struct{}

type Currency struct {
	Code   string          `json:"code"`
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
}

type ListCurrenciesResponse struct {
	Currencies []*Currency `json:"currencies"`
}

// RangeReportRequest selects a date window. Range is one of "7", "30",
// "90", "365" (days back from today), "all" or "custom". Custom reads
// From and To (YYYY-MM-DD, inclusive). Empty Range means "30".
type RangeReportRequest struct {
	Range    string `json:"range,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type TrendPoint struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// RangeReportResponse summarizes the window. From and To are empty for an
// unbounded side.
type RangeReportResponse struct {
	From          string           `json:"from,omitempty"`
	To            string           `json:"to,omitempty"`
	Currency      string           `json:"currency"`
	Income        decimal.Decimal  `json:"income"`
	Expenses      decimal.Decimal  `json:"expenses"`
	Balance       decimal.Decimal  `json:"balance"`
	SavingsRate   decimal.Decimal  `json:"savingsRate"`
	IncomeCount   int              `json:"incomeCount"`
	ExpenseCount  int              `json:"expenseCount"`
	Categories    []*CategoryTotal `json:"categories"`
	TopCategories []*CategoryTotal `json:"topCategories"`
	Trend         []*TrendPoint    `json:"trend"`
}

// AskRequest is a free-text question about the current month.
type AskRequest struct {
	Question string `json:"question"`
	Currency string `json:"currency,omitempty"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}
