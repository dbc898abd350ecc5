package service

import (
	"context"
	"io"
	"strings"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/currency"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/storage/sqlite"
	"github.com/mmynk/fintrack/pkg/api"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

type testServer struct {
	url string
}

type clients struct {
	auth    *api.AuthServiceClient
	ledger  *api.LedgerServiceClient
	budgets *api.BudgetServiceClient
	reports *api.ReportServiceClient
}

// setupTestServer starts all four services behind the auth and logging
// interceptors, backed by a fresh database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager(testSecret, auth.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store, bcrypt.MinCost)
	coordinator := ledger.NewCoordinator(store, ledger.PolicyReconcile, ledger.WithLogger(logger))

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(logger),
		middleware.RequireAuth(jwtManager, PublicProcedures...),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store, logger), interceptors))
	mux.Handle(api.NewLedgerServiceHandler(NewLedgerService(coordinator, logger), interceptors))
	mux.Handle(api.NewBudgetServiceHandler(NewBudgetService(store, logger), interceptors))
	mux.Handle(api.NewReportServiceHandler(NewReportService(store, currency.Default(), logger), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return &testServer{url: server.URL}
}

// clients returns service clients that send token, or no token when empty.
func (s *testServer) clients(token string) *clients {
	var opts []connect.ClientOption
	if token != "" {
		opts = append(opts, connect.WithInterceptors(api.BearerToken(token)))
	}
	return &clients{
		auth:    api.NewAuthServiceClient(http.DefaultClient, s.url, opts...),
		ledger:  api.NewLedgerServiceClient(http.DefaultClient, s.url, opts...),
		budgets: api.NewBudgetServiceClient(http.DefaultClient, s.url, opts...),
		reports: api.NewReportServiceClient(http.DefaultClient, s.url, opts...),
	}
}

func (s *testServer) signup(t *testing.T, name, email string) (*clients, *api.User) {
	t.Helper()
	resp, err := s.clients("").auth.Signup(context.Background(), connect.NewRequest(&api.SignupRequest{
		Name:     name,
		Email:    email,
		Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Signup(%s) failed: %v", email, err)
	}
	if resp.Msg.Token == "" {
		t.Fatal("expected non-empty token")
	}
	return s.clients(resp.Msg.Token), resp.Msg.User
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amt(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func expense(title, amount, category string) api.TransactionInput {
	return api.TransactionInput{
		Title:    title,
		Amount:   amt(amount),
		Category: category,
		Type:     "expense",
		Date:     "2024-03-05",
	}
}

func createBudget(t *testing.T, c *clients, category, limit string) *api.Budget {
	t.Helper()
	resp, err := c.budgets.CreateBudget(context.Background(), connect.NewRequest(&api.CreateBudgetRequest{
		BudgetInput: api.BudgetInput{
			Category:  category,
			Limit:     amt(limit),
			Period:    "monthly",
			StartDate: "2024-03-01",
		},
	}))
	if err != nil {
		t.Fatalf("CreateBudget failed: %v", err)
	}
	return resp.Msg.Budget
}

func spentOf(t *testing.T, c *clients, budgetID string) decimal.Decimal {
	t.Helper()
	resp, err := c.budgets.ListBudgets(context.Background(), connect.NewRequest(&api.ListBudgetsRequest{}))
	if err != nil {
		t.Fatalf("ListBudgets failed: %v", err)
	}
	for _, b := range resp.Msg.Budgets {
		if b.ID == budgetID {
			return b.Spent
		}
	}
	t.Fatalf("budget %s not listed", budgetID)
	return decimal.Zero
}

func assertKind(t *testing.T, err error, kind api.ErrorKind, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := api.KindOf(err); got != kind {
		t.Errorf("kind: expected %s, got %s (%v)", kind, got, err)
	}
	if got := connect.CodeOf(err); got != code {
		t.Errorf("code: expected %v, got %v", code, got)
	}
}

func TestExpenseChargesBudget(t *testing.T) {
	srv := setupTestServer(t)
	alice, _ := srv.signup(t, "Alice", "alice@example.com")
	ctx := context.Background()

	budget := createBudget(t, alice, "Food", "5000")
	if !budget.Spent.IsZero() {
		t.Fatalf("new budget spent: expected 0, got %s", budget.Spent)
	}

	resp, err := alice.ledger.CreateTransaction(ctx, connect.NewRequest(&api.CreateTransactionRequest{
		TransactionInput: expense("Groceries", "450", "Food"),
	}))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	if resp.Msg.Transaction.ID == "" {
		t.Error("expected non-empty transaction ID")
	}
	if resp.Msg.BudgetsAdjusted != 1 {
		t.Errorf("budgets adjusted: expected 1, got %d", resp.Msg.BudgetsAdjusted)
	}
	if got := spentOf(t, alice, budget.ID); !got.Equal(dec("450")) {
		t.Errorf("spent: expected 450, got %s", got)
	}

	_, err = alice.ledger.CreateTransaction(ctx, connect.NewRequest(&api.CreateTransactionRequest{
		TransactionInput: expense("Dinner", "200", "Food"),
	}))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	if got := spentOf(t, alice, budget.ID); !got.Equal(dec("650")) {
		t.Errorf("spent: expected 650, got %s", got)
	}

	list, err := alice.ledger.ListTransactions(ctx, connect.NewRequest(&api.ListTransactionsRequest{}))
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(list.Msg.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(list.Msg.Transactions))
	}
	if list.Msg.Transactions[0].Title != "Groceries" {
		t.Errorf("expected creation order, got %q first", list.Msg.Transactions[0].Title)
	}
}

func TestUpdateAndDeleteReconcileSpend(t *testing.T) {
	srv := setupTestServer(t)
	alice, _ := srv.signup(t, "Alice", "alice@example.com")
	ctx := context.Background()

	food := createBudget(t, alice, "Food", "5000")
	travel := createBudget(t, alice, "Travel", "3000")

	created, err := alice.ledger.CreateTransaction(ctx, connect.NewRequest(&api.CreateTransactionRequest{
		TransactionInput: expense("Groceries", "450", "Food"),
	}))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	id := created.Msg.Transaction.ID

	_, err = alice.ledger.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{
		ID:               id,
		TransactionInput: expense("Train", "300", "Travel"),
	}))
	if err != nil {
		t.Fatalf("UpdateTransaction failed: %v", err)
	}
	if got := spentOf(t, alice, food.ID); !got.IsZero() {
		t.Errorf("food spent: expected 0, got %s", got)
	}
	if got := spentOf(t, alice, travel.ID); !got.Equal(dec("300")) {
		t.Errorf("travel spent: expected 300, got %s", got)
	}

	_, err = alice.ledger.DeleteTransaction(ctx, connect.NewRequest(&api.DeleteTransactionRequest{ID: id}))
	if err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
	if got := spentOf(t, alice, travel.ID); !got.IsZero() {
		t.Errorf("travel spent after delete: expected 0, got %s", got)
	}

	_, err = alice.ledger.DeleteTransaction(ctx, connect.NewRequest(&api.DeleteTransactionRequest{ID: id}))
	assertKind(t, err, api.KindNotFound, connect.CodeNotFound)
}

func TestInvalidTransactionRejected(t *testing.T) {
	srv := setupTestServer(t)
	alice, _ := srv.signup(t, "Alice", "alice@example.com")
	ctx := context.Background()

	tests := []struct {
		name  string
		input api.TransactionInput
	}{
		{"negative amount", expense("Refund", "-5", "Food")},
		{"missing title", expense("", "5", "Food")},
		{"missing category", expense("Lunch", "5", "")},
		{"bad type", api.TransactionInput{Title: "x", Amount: amt("1"), Category: "Food", Type: "gift", Date: "2024-03-05"}},
		{"bad date", api.TransactionInput{Title: "x", Amount: amt("1"), Category: "Food", Type: "expense", Date: "05/03/2024"}},
		{"null amount", api.TransactionInput{Title: "x", Category: "Food", Type: "expense", Date: "2024-03-05"}},
		{"amount over maximum", expense("Yacht", "100000000000.01", "Food")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := alice.ledger.CreateTransaction(ctx, connect.NewRequest(&api.CreateTransactionRequest{
				TransactionInput: tt.input,
			}))
			assertKind(t, err, api.KindInvalidInput, connect.CodeInvalidArgument)
		})
	}

	list, err := alice.ledger.ListTransactions(ctx, connect.NewRequest(&api.ListTransactionsRequest{}))
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(list.Msg.Transactions) != 0 {
		t.Errorf("expected no transactions stored, got %d", len(list.Msg.Transactions))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	srv := setupTestServer(t)
	srv.signup(t, "Alice", "alice@example.com")
	anon := srv.clients("")
	ctx := context.Background()

	_, err := anon.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	}))
	assertKind(t, err, api.KindInvalidCredentials, connect.CodeInvalidArgument)

	_, err = anon.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	}))
	assertKind(t, err, api.KindInvalidCredentials, connect.CodeInvalidArgument)

	resp, err := anon.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "  ALICE@example.com ",
		Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Msg.User.Email != "alice@example.com" {
		t.Errorf("email: expected normalized address, got %q", resp.Msg.User.Email)
	}
}

func TestDuplicateSignup(t *testing.T) {
	srv := setupTestServer(t)
	srv.signup(t, "Alice", "alice@example.com")

	_, err := srv.clients("").auth.Signup(context.Background(), connect.NewRequest(&api.SignupRequest{
		Name:     "Other Alice",
		Email:    "Alice@Example.com",
		Password: "another-password",
	}))
	assertKind(t, err, api.KindDuplicateIdentity, connect.CodeAlreadyExists)
}

func TestCrossUserIsolation(t *testing.T) {
	srv := setupTestServer(t)
	alice, _ := srv.signup(t, "Alice", "alice@example.com")
	bob, _ := srv.signup(t, "Bob", "bob@example.com")
	ctx := context.Background()

	budget := createBudget(t, alice, "Food", "5000")
	created, err := alice.ledger.CreateTransaction(ctx, connect.NewRequest(&api.CreateTransactionRequest{
		TransactionInput: expense("Groceries", "450", "Food"),
	}))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	id := created.Msg.Transaction.ID

	_, err = bob.ledger.DeleteTransaction(ctx, connect.NewRequest(&api.DeleteTransactionRequest{ID: id}))
	assertKind(t, err, api.KindNotFound, connect.CodeNotFound)

	_, err = bob.ledger.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{
		ID:               id,
		TransactionInput: expense("Stolen", "1", "Food"),
	}))
	assertKind(t, err, api.KindNotFound, connect.CodeNotFound)

	_, err = bob.budgets.DeleteBudget(ctx, connect.NewRequest(&api.DeleteBudgetRequest{ID: budget.ID}))
	assertKind(t, err, api.KindNotFound, connect.CodeNotFound)

	// Bob's own Food expense must not touch Alice's budget.
	_, err = bob.ledger.CreateTransaction(ctx, connect.NewRequest(&api.CreateTransactionRequest{
		TransactionInput: expense("Snacks", "99", "Food"),
	}))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	list, err := alice.ledger.ListTransactions(ctx, connect.NewRequest(&api.ListTransactionsRequest{}))
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(list.Msg.Transactions) != 1 || list.Msg.Transactions[0].Title != "Groceries" {
		t.Errorf("alice's ledger changed: %+v", list.Msg.Transactions)
	}
	if got := spentOf(t, alice, budget.ID); !got.Equal(dec("450")) {
		t.Errorf("alice spent: expected 450, got %s", got)
	}

	bobBudgets, err := bob.budgets.ListBudgets(ctx, connect.NewRequest(&api.ListBudgetsRequest{}))
	if err != nil {
		t.Fatalf("ListBudgets failed: %v", err)
	}
	if len(bobBudgets.Msg.Budgets) != 0 {
		t.Errorf("bob sees %d budgets, expected 0", len(bobBudgets.Msg.Budgets))
	}
}

func TestMissingToken(t *testing.T) {
	srv := setupTestServer(t)
	anon := srv.clients("")
	ctx := context.Background()

	_, err := anon.ledger.ListTransactions(ctx, connect.NewRequest(&api.ListTransactionsRequest{}))
	assertKind(t, err, api.KindUnauthenticated, connect.CodeUnauthenticated)

	_, err = anon.auth.GetProfile(ctx, connect.NewRequest(&api.GetProfileRequest{}))
	assertKind(t, err, api.KindUnauthenticated, connect.CodeUnauthenticated)

	bad := srv.clients("not-a-jwt")
	_, err = bad.budgets.ListBudgets(ctx, connect.NewRequest(&api.ListBudgetsRequest{}))
	assertKind(t, err, api.KindUnauthenticated, connect.CodeUnauthenticated)
}

func TestProfile(t *testing.T) {
	srv := setupTestServer(t)
	alice, user := srv.signup(t, "Alice", "alice@example.com")
	srv.signup(t, "Bob", "bob@example.com")
	ctx := context.Background()

	got, err := alice.auth.GetProfile(ctx, connect.NewRequest(&api.GetProfileRequest{}))
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if got.Msg.User.ID != user.ID {
		t.Errorf("id: expected %s, got %s", user.ID, got.Msg.User.ID)
	}

	updated, err := alice.auth.UpdateProfile(ctx, connect.NewRequest(&api.UpdateProfileRequest{
		Name:   "Alice Liddell",
		Email:  "liddell@example.com",
		Avatar: "https://example.com/a.png",
	}))
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Msg.User.Name != "Alice Liddell" || updated.Msg.User.Email != "liddell@example.com" {
		t.Errorf("unexpected profile: %+v", updated.Msg.User)
	}

	_, err = alice.auth.UpdateProfile(ctx, connect.NewRequest(&api.UpdateProfileRequest{
		Name:  "Alice",
		Email: "bob@example.com",
	}))
	assertKind(t, err, api.KindDuplicateIdentity, connect.CodeAlreadyExists)

	_, err = alice.auth.UpdateProfile(ctx, connect.NewRequest(&api.UpdateProfileRequest{
		Name:  "",
		Email: "liddell@example.com",
	}))
	assertKind(t, err, api.KindInvalidInput, connect.CodeInvalidArgument)

	if _, err := alice.auth.Logout(ctx, connect.NewRequest(&api.LogoutRequest{})); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
}

func TestBudgetUpdateKeepsSpent(t *testing.T) {
	srv := setupTestServer(t)
	alice, _ := srv.signup(t, "Alice", "alice@example.com")
	ctx := context.Background()

	budget := createBudget(t, alice, "Food", "5000")
	_, err := alice.ledger.CreateTransaction(ctx, connect.NewRequest(&api.CreateTransactionRequest{
		TransactionInput: expense("Groceries", "450", "Food"),
	}))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	resp, err := alice.budgets.UpdateBudget(ctx, connect.NewRequest(&api.UpdateBudgetRequest{
		ID: budget.ID,
		BudgetInput: api.BudgetInput{
			Category:  "Food",
			Limit:     amt("6000"),
			Period:    "monthly",
			StartDate: "2024-03-01",
		},
	}))
	if err != nil {
		t.Fatalf("UpdateBudget failed: %v", err)
	}
	if !resp.Msg.Budget.Limit.Equal(dec("6000")) {
		t.Errorf("limit: expected 6000, got %s", resp.Msg.Budget.Limit)
	}
	if !resp.Msg.Budget.Spent.Equal(dec("450")) {
		t.Errorf("spent: expected 450, got %s", resp.Msg.Budget.Spent)
	}

	_, err = alice.budgets.CreateBudget(ctx, connect.NewRequest(&api.CreateBudgetRequest{
		BudgetInput: api.BudgetInput{Category: "Fun", Limit: amt("0"), Period: "monthly", StartDate: "2024-03-01"},
	}))
	assertKind(t, err, api.KindInvalidInput, connect.CodeInvalidArgument)
}

func TestReports(t *testing.T) {
	srv := setupTestServer(t)
	alice, _ := srv.signup(t, "Alice", "alice@example.com")
	ctx := context.Background()

	budget := createBudget(t, alice, "Food", "5000")
	inputs := []api.TransactionInput{
		{Title: "Salary", Amount: amt("10000"), Category: "Salary", Type: "income", Date: "2024-03-01"},
		expense("Groceries", "4500", "Food"),
		{Title: "Old", Amount: amt("999"), Category: "Food", Type: "expense", Date: "2024-02-10"},
	}
	for _, in := range inputs {
		if _, err := alice.ledger.CreateTransaction(ctx, connect.NewRequest(&api.CreateTransactionRequest{TransactionInput: in})); err != nil {
			t.Fatalf("CreateTransaction(%s) failed: %v", in.Title, err)
		}
	}

	summary, err := alice.reports.GetSummary(ctx, connect.NewRequest(&api.ReportRequest{Month: "2024-03"}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	s := summary.Msg
	if s.Currency != "INR" {
		t.Errorf("currency: expected INR, got %s", s.Currency)
	}
	if !s.Income.Equal(dec("10000")) || !s.Expenses.Equal(dec("4500")) || !s.Balance.Equal(dec("5500")) {
		t.Errorf("totals: got income=%s expenses=%s balance=%s", s.Income, s.Expenses, s.Balance)
	}
	if !s.SavingsRate.Equal(dec("55")) {
		t.Errorf("savings rate: expected 55, got %s", s.SavingsRate)
	}
	if len(s.Categories) != 1 || s.Categories[0].Category != "Food" {
		t.Errorf("categories: %+v", s.Categories)
	}
	if len(s.Budgets) != 1 || s.Budgets[0].BudgetID != budget.ID {
		t.Fatalf("budgets: %+v", s.Budgets)
	}

	usd, err := alice.reports.GetSummary(ctx, connect.NewRequest(&api.ReportRequest{Month: "2024-03", Currency: "usd"}))
	if err != nil {
		t.Fatalf("GetSummary(USD) failed: %v", err)
	}
	if usd.Msg.Currency != "USD" || !usd.Msg.Income.Equal(dec("120")) {
		t.Errorf("USD summary: currency=%s income=%s", usd.Msg.Currency, usd.Msg.Income)
	}

	_, err = alice.reports.GetSummary(ctx, connect.NewRequest(&api.ReportRequest{Currency: "XYZ"}))
	assertKind(t, err, api.KindInvalidInput, connect.CodeInvalidArgument)

	_, err = alice.reports.GetSummary(ctx, connect.NewRequest(&api.ReportRequest{Month: "March"}))
	assertKind(t, err, api.KindInvalidInput, connect.CodeInvalidArgument)

	sugg, err := alice.reports.GetSuggestions(ctx, connect.NewRequest(&api.ReportRequest{Month: "2024-03"}))
	if err != nil {
		t.Fatalf("GetSuggestions failed: %v", err)
	}
	ids := make(map[string]bool)
	for _, sg := range sugg.Msg.Suggestions {
		ids[sg.ID] = true
	}
	// Food includes the February expense in its running spend: 5499 of 5000.
	for _, want := range []string{"budget-" + budget.ID, "spending-pattern", "investment-goal"} {
		if !ids[want] {
			t.Errorf("missing suggestion %q in %v", want, ids)
		}
	}
	if ids["savings-tip"] {
		t.Error("unexpected savings-tip at 55% savings rate")
	}

	currencies, err := alice.reports.ListCurrencies(ctx, connect.NewRequest(&api.ListCurrenciesRequest{}))
	if err != nil {
		t.Fatalf("ListCurrencies failed: %v", err)
	}
	if len(currencies.Msg.Currencies) != 5 {
		t.Errorf("expected 5 currencies, got %d", len(currencies.Msg.Currencies))
	}
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	resp, err := s.clients("").auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    email,
		Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Login(%s) failed: %v", email, err)
	}
	return resp.Msg.Token
}

func TestCreateTransactionWithoutAmount(t *testing.T) {
	srv := setupTestServer(t)
	srv.signup(t, "Alice", "alice@example.com")
	token := srv.login(t, "alice@example.com")

	body := `{"title":"Lunch","category":"Food","type":"expense","date":"2024-03-05"}`
	req, err := http.NewRequest(http.MethodPost, srv.url+api.LedgerServiceCreateTransactionProcedure, strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: expected 400, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get(api.ErrorKindHeader); got != string(api.KindInvalidInput) {
		t.Errorf("error kind: expected %s, got %q", api.KindInvalidInput, got)
	}
}

func TestSignupRejectsUnhashablePassword(t *testing.T) {
	srv := setupTestServer(t)

	_, err := srv.clients("").auth.Signup(context.Background(), connect.NewRequest(&api.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: strings.Repeat("p", 80),
	}))
	assertKind(t, err, api.KindInvalidInput, connect.CodeInvalidArgument)
	if api.KindOf(err).Retryable() {
		t.Error("an over-long password must not be reported as retryable")
	}
}

func TestEmailWithDisplayNameRejected(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	_, err := srv.clients("").auth.Signup(ctx, connect.NewRequest(&api.SignupRequest{
		Name:     "Alice",
		Email:    "Alice <alice@example.com>",
		Password: "correct-horse",
	}))
	assertKind(t, err, api.KindInvalidInput, connect.CodeInvalidArgument)

	alice, _ := srv.signup(t, "Alice", "alice@example.com")
	_, err = alice.auth.UpdateProfile(ctx, connect.NewRequest(&api.UpdateProfileRequest{
		Name:  "Alice",
		Email: "Alice <alice@example.com>",
	}))
	assertKind(t, err, api.KindInvalidInput, connect.CodeInvalidArgument)

	// The bare address still owns the account.
	srv.login(t, "alice@example.com")
}

func TestRangeReport(t *testing.T) {
	srv := setupTestServer(t)
	alice, _ := srv.signup(t, "Alice", "alice@example.com")
	ctx := context.Background()

	inputs := []api.TransactionInput{
		{Title: "Salary", Amount: amt("10000"), Category: "Salary", Type: "income", Date: "2024-01-01"},
		{Title: "Salary", Amount: amt("10000"), Category: "Salary", Type: "income", Date: "2024-03-01"},
		{Title: "Rent", Amount: amt("3000"), Category: "Rent", Type: "expense", Date: "2024-01-02"},
		expense("Groceries", "500", "Food"),
		expense("Cinema", "100", "Fun"),
		expense("Bus", "60", "Transport"),
		expense("Books", "50", "Education"),
		expense("Pills", "40", "Health"),
		{Title: "Later", Amount: amt("999"), Category: "Food", Type: "expense", Date: "2024-04-01"},
	}
	for _, in := range inputs {
		if _, err := alice.ledger.CreateTransaction(ctx, connect.NewRequest(&api.CreateTransactionRequest{TransactionInput: in})); err != nil {
			t.Fatalf("CreateTransaction(%s) failed: %v", in.Title, err)
		}
	}

	resp, err := alice.reports.GetRangeReport(ctx, connect.NewRequest(&api.RangeReportRequest{
		Range: "custom", From: "2024-01-01", To: "2024-03-31",
	}))
	if err != nil {
		t.Fatalf("GetRangeReport failed: %v", err)
	}
	r := resp.Msg
	if r.From != "2024-01-01" || r.To != "2024-03-31" {
		t.Errorf("window: got [%s, %s]", r.From, r.To)
	}
	if !r.Income.Equal(dec("20000")) || !r.Expenses.Equal(dec("3750")) {
		t.Errorf("totals: got income=%s expenses=%s", r.Income, r.Expenses)
	}
	if r.IncomeCount != 2 || r.ExpenseCount != 6 {
		t.Errorf("counts: got %d income, %d expense", r.IncomeCount, r.ExpenseCount)
	}
	if len(r.Categories) != 6 {
		t.Errorf("expected 6 categories, got %d", len(r.Categories))
	}
	if len(r.TopCategories) != 5 || r.TopCategories[0].Category != "Rent" || r.TopCategories[4].Category != "Education" {
		t.Errorf("top categories: %+v", r.TopCategories)
	}
	if len(r.Trend) != 2 || r.Trend[0].Month != "2024-01" || r.Trend[1].Month != "2024-03" {
		t.Fatalf("trend: %+v", r.Trend)
	}
	if !r.Trend[0].Expenses.Equal(dec("3000")) || !r.Trend[1].Expenses.Equal(dec("750")) {
		t.Errorf("trend expenses: %s, %s", r.Trend[0].Expenses, r.Trend[1].Expenses)
	}

	all, err := alice.reports.GetRangeReport(ctx, connect.NewRequest(&api.RangeReportRequest{Range: "all", Currency: "USD"}))
	if err != nil {
		t.Fatalf("GetRangeReport(all) failed: %v", err)
	}
	if all.Msg.Currency != "USD" || all.Msg.ExpenseCount != 7 || len(all.Msg.Trend) != 3 {
		t.Errorf("all-time report: currency=%s expenses=%d trend=%d", all.Msg.Currency, all.Msg.ExpenseCount, len(all.Msg.Trend))
	}

	bad := []*api.RangeReportRequest{
		{Range: "custom", From: "2024-03-31", To: "2024-01-01"},
		{Range: "custom", From: "2024-01-01"},
		{Range: "fortnight"},
	}
	for _, req := range bad {
		_, err := alice.reports.GetRangeReport(ctx, connect.NewRequest(req))
		assertKind(t, err, api.KindInvalidInput, connect.CodeInvalidArgument)
	}
}

func TestAsk(t *testing.T) {
	srv := setupTestServer(t)
	alice, _ := srv.signup(t, "Alice", "alice@example.com")
	ctx := context.Background()

	createBudget(t, alice, "Food", "1000")
	if _, err := alice.ledger.CreateTransaction(ctx, connect.NewRequest(&api.CreateTransactionRequest{
		TransactionInput: expense("Groceries", "900", "Food"),
	})); err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	tests := []struct {
		question string
		want     string
	}{
		{"How is my budget?", "across 1 categories. You've spent ₹900 so far, which is 90.0% of your total budget. You might want to be more careful"},
		{"How much am I saving?", "Your current savings rate is 0.0%."},
		{"What's the weather?", `I understand you're asking about "What's the weather?".`},
	}
	for _, tt := range tests {
		resp, err := alice.reports.Ask(ctx, connect.NewRequest(&api.AskRequest{Question: tt.question}))
		if err != nil {
			t.Fatalf("Ask(%q) failed: %v", tt.question, err)
		}
		if !strings.Contains(resp.Msg.Answer, tt.want) {
			t.Errorf("Ask(%q) = %q, want it to contain %q", tt.question, resp.Msg.Answer, tt.want)
		}
	}

	_, err := alice.reports.Ask(ctx, connect.NewRequest(&api.AskRequest{Question: "  "}))
	assertKind(t, err, api.KindInvalidInput, connect.CodeInvalidArgument)
}
