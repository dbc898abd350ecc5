package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/fintrack/internal/currency"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/report"
	"github.com/mmynk/fintrack/pkg/api"
)

var _ api.ReportServiceHandler = (*ReportService)(nil)

// topCategories is how many categories a range report highlights.
const topCategories = 5

// ReportSource is the read side of the store used for reports.
type ReportSource interface {
	ListTransactions(ctx context.Context, ownerID string) ([]*models.Transaction, error)
	ListBudgets(ctx context.Context, ownerID string) ([]*models.Budget, error)
}

// ReportService implements the Connect ReportService. Reports are computed
// on demand from the caller's ledger and budgets.
type ReportService struct {
	source    ReportSource
	converter *currency.Converter
	logger    *slog.Logger
	now       func() time.Time
}

// NewReportService creates a ReportService using the given rate table.
func NewReportService(source ReportSource, converter *currency.Converter, logger *slog.Logger) *ReportService {
	return &ReportService{
		source:    source,
		converter: converter,
		logger:    logger,
		now:       time.Now,
	}
}

// reportData is everything one report request needs.
type reportData struct {
	month      report.Month
	currency   currency.Currency
	totals     report.Totals
	categories []report.CategoryTotal
	usage      []report.BudgetUsage
}

func (s *ReportService) load(ctx context.Context, req *api.ReportRequest) (*reportData, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	month, err := report.ParseMonth(req.Month, s.now())
	if err != nil {
		return nil, toConnectError(err)
	}
	cur, err := s.converter.Lookup(req.Currency)
	if err != nil {
		return nil, toConnectError(err)
	}

	txns, budgets, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	inMonth := report.InMonth(txns, month)
	return &reportData{
		month:      month,
		currency:   cur,
		totals:     report.Sum(inMonth),
		categories: report.ByCategory(inMonth),
		usage:      report.Utilization(budgets),
	}, nil
}

// fetch loads the caller's transactions and budgets concurrently.
func (s *ReportService) fetch(ctx context.Context, userID string) ([]*models.Transaction, []*models.Budget, error) {
	var (
		txns    []*models.Transaction
		budgets []*models.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.source.ListTransactions(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.source.ListBudgets(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load report data", "user_id", userID, "error", err)
		return nil, nil, toConnectError(err)
	}
	return txns, budgets, nil
}

// convert renders a base-currency amount in the requested currency. The
// currency was validated by load, so conversion cannot fail.
func (d *reportData) convert(c *currency.Converter, amount decimal.Decimal) decimal.Decimal {
	out, err := c.Convert(amount, currency.Base, d.currency.Code)
	if err != nil {
		return amount
	}
	return out
}

// GetSummary returns the month's totals, per-category expenses and budget
// utilization.
func (s *ReportService) GetSummary(ctx context.Context, req *connect.Request[api.ReportRequest]) (*connect.Response[api.SummaryResponse], error) {
	d, err := s.load(ctx, req.Msg)
	if err != nil {
		return nil, err
	}

	resp := &api.SummaryResponse{
		Month:       d.month.String(),
		Currency:    d.currency.Code,
		Income:      d.convert(s.converter, d.totals.Income),
		Expenses:    d.convert(s.converter, d.totals.Expenses),
		Balance:     d.convert(s.converter, d.totals.Balance),
		SavingsRate: d.totals.SavingsRate(),
		Categories:  s.categoryTotals(d, d.categories),
		Budgets:     make([]*api.BudgetUsage, len(d.usage)),
	}
	for i, u := range d.usage {
		resp.Budgets[i] = &api.BudgetUsage{
			BudgetID: u.Budget.ID,
			Category: u.Budget.Category,
			Limit:    d.convert(s.converter, u.Budget.Limit.Decimal()),
			Spent:    d.convert(s.converter, u.Budget.Spent.Decimal()),
			Percent:  u.Percent,
		}
	}
	return connect.NewResponse(resp), nil
}

// GetSuggestions returns rule-based advice for the month.
func (s *ReportService) GetSuggestions(ctx context.Context, req *connect.Request[api.ReportRequest]) (*connect.Response[api.SuggestionsResponse], error) {
	d, err := s.load(ctx, req.Msg)
	if err != nil {
		return nil, err
	}

	suggestions := report.Suggestions(report.Input{
		Budgets:    d.usage,
		Month:      d.totals,
		Categories: d.categories,
		Format: func(amount decimal.Decimal) string {
			return currency.Format(d.convert(s.converter, amount), d.currency)
		},
	})

	out := make([]*api.Suggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = &api.Suggestion{
			ID:          sg.ID,
			Type:        string(sg.Type),
			Title:       sg.Title,
			Description: sg.Description,
			Priority:    string(sg.Priority),
		}
	}
	return connect.NewResponse(&api.SuggestionsResponse{Suggestions: out}), nil
}

// ListCurrencies returns the rate table.
func (s *ReportService) ListCurrencies(ctx context.Context, req *connect.Request[api.ListCurrenciesRequest]) (*connect.Response[api.ListCurrenciesResponse], error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	list := s.converter.List()
	out := make([]*api.Currency, len(list))
	for i, c := range list {
		out[i] = &api.Currency{Code: c.Code, Symbol: c.Symbol, Name: c.Name, Rate: c.Rate}
	}
	return connect.NewResponse(&api.ListCurrenciesResponse{Currencies: out}), nil
}

// GetRangeReport summarizes a date window: totals, transaction counts,
// per-category expenses with the top five, and a monthly trend.
func (s *ReportService) GetRangeReport(ctx context.Context, req *connect.Request[api.RangeReportRequest]) (*connect.Response[api.RangeReportResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	from, to, err := report.ParseRange(req.Msg.Range, req.Msg.From, req.Msg.To, s.now())
	if err != nil {
		return nil, toConnectError(err)
	}
	cur, err := s.converter.Lookup(req.Msg.Currency)
	if err != nil {
		return nil, toConnectError(err)
	}

	txns, _, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	window := report.Between(txns, from, to)

	d := &reportData{currency: cur, totals: report.Sum(window), categories: report.ByCategory(window)}
	incomeCount, expenseCount := report.Count(window)
	resp := &api.RangeReportResponse{
		From:          from,
		To:            to,
		Currency:      cur.Code,
		Income:        d.convert(s.converter, d.totals.Income),
		Expenses:      d.convert(s.converter, d.totals.Expenses),
		Balance:       d.convert(s.converter, d.totals.Balance),
		SavingsRate:   d.totals.SavingsRate(),
		IncomeCount:   incomeCount,
		ExpenseCount:  expenseCount,
		Categories:    s.categoryTotals(d, d.categories),
		TopCategories: s.categoryTotals(d, report.Top(d.categories, topCategories)),
	}
	trend := report.Trend(window)
	resp.Trend = make([]*api.TrendPoint, len(trend))
	for i, p := range trend {
		resp.Trend[i] = &api.TrendPoint{
			Month:    p.Month.String(),
			Income:   d.convert(s.converter, p.Income),
			Expenses: d.convert(s.converter, p.Expenses),
		}
	}
	return connect.NewResponse(resp), nil
}

// Ask answers a free-text question from the current month and the
// caller's budgets.
func (s *ReportService) Ask(ctx context.Context, req *connect.Request[api.AskRequest]) (*connect.Response[api.AskResponse], error) {
	if strings.TrimSpace(req.Msg.Question) == "" {
		return nil, toConnectError(&models.ValidationError{Field: "question", Reason: "is required"})
	}
	d, err := s.load(ctx, &api.ReportRequest{Currency: req.Msg.Currency})
	if err != nil {
		return nil, err
	}

	answer := report.Answer(req.Msg.Question, report.Input{
		Budgets:    d.usage,
		Month:      d.totals,
		Categories: d.categories,
		Format: func(amount decimal.Decimal) string {
			return currency.Format(d.convert(s.converter, amount), d.currency)
		},
	})
	return connect.NewResponse(&api.AskResponse{Answer: answer}), nil
}

func (s *ReportService) categoryTotals(d *reportData, cats []report.CategoryTotal) []*api.CategoryTotal {
	out := make([]*api.CategoryTotal, len(cats))
	for i, c := range cats {
		out[i] = &api.CategoryTotal{
			Category: c.Category,
			Amount:   d.convert(s.converter, c.Amount),
		}
	}
	return out
}
