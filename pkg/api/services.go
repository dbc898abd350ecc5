package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Fully-qualified service names.
const (
	AuthServiceName   = "fintrack.v1.AuthService"
	LedgerServiceName = "fintrack.v1.LedgerService"
	BudgetServiceName = "fintrack.v1.BudgetService"
	ReportServiceName = "fintrack.v1.ReportService"
)

// Procedure paths, one per RPC.
const (
	AuthServiceSignupProcedure              = "/" + AuthServiceName + "/Signup"
	AuthServiceLoginProcedure               = "/" + AuthServiceName + "/Login"
	AuthServiceLogoutProcedure              = "/" + AuthServiceName + "/Logout"
	AuthServiceGetProfileProcedure          = "/" + AuthServiceName + "/GetProfile"
	AuthServiceUpdateProfileProcedure       = "/" + AuthServiceName + "/UpdateProfile"
	LedgerServiceListTransactionsProcedure  = "/" + LedgerServiceName + "/ListTransactions"
	LedgerServiceCreateTransactionProcedure = "/" + LedgerServiceName + "/CreateTransaction"
	LedgerServiceUpdateTransactionProcedure = "/" + LedgerServiceName + "/UpdateTransaction"
	LedgerServiceDeleteTransactionProcedure = "/" + LedgerServiceName + "/DeleteTransaction"
	BudgetServiceListBudgetsProcedure       = "/" + BudgetServiceName + "/ListBudgets"
	BudgetServiceCreateBudgetProcedure      = "/" + BudgetServiceName + "/CreateBudget"
	BudgetServiceUpdateBudgetProcedure      = "/" + BudgetServiceName + "/UpdateBudget"
	BudgetServiceDeleteBudgetProcedure      = "/" + BudgetServiceName + "/DeleteBudget"
	ReportServiceGetSummaryProcedure        = "/" + ReportServiceName + "/GetSummary"
	ReportServiceGetSuggestionsProcedure    = "/" + ReportServiceName + "/GetSuggestions"
	ReportServiceListCurrenciesProcedure    = "/" + ReportServiceName + "/ListCurrencies"
	ReportServiceGetRangeReportProcedure    = "/" + ReportServiceName + "/GetRangeReport"
	ReportServiceAskProcedure               = "/" + ReportServiceName + "/Ask"
)

// AuthServiceHandler is implemented by the server side of AuthService.
// AuthService handles signup, login and the caller's profile.
type AuthServiceHandler interface {
	Signup(context.Context, *connect.Request[SignupRequest]) (*connect.Response[AuthResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error)
	Logout(context.Context, *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error)
	GetProfile(context.Context, *connect.Request[GetProfileRequest]) (*connect.Response[ProfileResponse], error)
	UpdateProfile(context.Context, *connect.Request[UpdateProfileRequest]) (*connect.Response[ProfileResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler serving every AuthService procedure.
// It returns the path prefix to mount the handler on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceSignupProcedure, connect.NewUnaryHandler(AuthServiceSignupProcedure, svc.Signup, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceLogoutProcedure, connect.NewUnaryHandler(AuthServiceLogoutProcedure, svc.Logout, opts...))
	mux.Handle(AuthServiceGetProfileProcedure, connect.NewUnaryHandler(AuthServiceGetProfileProcedure, svc.GetProfile, opts...))
	mux.Handle(AuthServiceUpdateProfileProcedure, connect.NewUnaryHandler(AuthServiceUpdateProfileProcedure, svc.UpdateProfile, opts...))
	return "/" + AuthServiceName + "/", mux
}

// AuthServiceClient is a typed client for AuthService.
type AuthServiceClient struct {
	signup        *connect.Client[SignupRequest, AuthResponse]
	login         *connect.Client[LoginRequest, AuthResponse]
	logout        *connect.Client[LogoutRequest, LogoutResponse]
	getProfile    *connect.Client[GetProfileRequest, ProfileResponse]
	updateProfile *connect.Client[UpdateProfileRequest, ProfileResponse]
}

// NewAuthServiceClient creates a client for the AuthService served at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AuthServiceClient{
		signup:        connect.NewClient[SignupRequest, AuthResponse](httpClient, baseURL+AuthServiceSignupProcedure, opts...),
		login:         connect.NewClient[LoginRequest, AuthResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		logout:        connect.NewClient[LogoutRequest, LogoutResponse](httpClient, baseURL+AuthServiceLogoutProcedure, opts...),
		getProfile:    connect.NewClient[GetProfileRequest, ProfileResponse](httpClient, baseURL+AuthServiceGetProfileProcedure, opts...),
		updateProfile: connect.NewClient[UpdateProfileRequest, ProfileResponse](httpClient, baseURL+AuthServiceUpdateProfileProcedure, opts...),
	}
}

func (c *AuthServiceClient) Signup(ctx context.Context, req *connect.Request[SignupRequest]) (*connect.Response[AuthResponse], error) {
	return c.signup.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Logout(ctx context.Context, req *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error) {
	return c.logout.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetProfile(ctx context.Context, req *connect.Request[GetProfileRequest]) (*connect.Response[ProfileResponse], error) {
	return c.getProfile.CallUnary(ctx, req)
}

func (c *AuthServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[UpdateProfileRequest]) (*connect.Response[ProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

// LedgerServiceHandler is implemented by the server side of LedgerService.
// LedgerService manages the caller's transactions.
type LedgerServiceHandler interface {
	ListTransactions(context.Context, *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error)
	CreateTransaction(context.Context, *connect.Request[CreateTransactionRequest]) (*connect.Response[TransactionResponse], error)
	UpdateTransaction(context.Context, *connect.Request[UpdateTransactionRequest]) (*connect.Response[TransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler serving every LedgerService procedure.
// It returns the path prefix to mount the handler on.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceListTransactionsProcedure, connect.NewUnaryHandler(LedgerServiceListTransactionsProcedure, svc.ListTransactions, opts...))
	mux.Handle(LedgerServiceCreateTransactionProcedure, connect.NewUnaryHandler(LedgerServiceCreateTransactionProcedure, svc.CreateTransaction, opts...))
	mux.Handle(LedgerServiceUpdateTransactionProcedure, connect.NewUnaryHandler(LedgerServiceUpdateTransactionProcedure, svc.UpdateTransaction, opts...))
	mux.Handle(LedgerServiceDeleteTransactionProcedure, connect.NewUnaryHandler(LedgerServiceDeleteTransactionProcedure, svc.DeleteTransaction, opts...))
	return "/" + LedgerServiceName + "/", mux
}

// LedgerServiceClient is a typed client for LedgerService.
type LedgerServiceClient struct {
	listTransactions  *connect.Client[ListTransactionsRequest, ListTransactionsResponse]
	createTransaction *connect.Client[CreateTransactionRequest, TransactionResponse]
	updateTransaction *connect.Client[UpdateTransactionRequest, TransactionResponse]
	deleteTransaction *connect.Client[DeleteTransactionRequest, DeleteTransactionResponse]
}

// NewLedgerServiceClient creates a client for the LedgerService served at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &LedgerServiceClient{
		listTransactions:  connect.NewClient[ListTransactionsRequest, ListTransactionsResponse](httpClient, baseURL+LedgerServiceListTransactionsProcedure, opts...),
		createTransaction: connect.NewClient[CreateTransactionRequest, TransactionResponse](httpClient, baseURL+LedgerServiceCreateTransactionProcedure, opts...),
		updateTransaction: connect.NewClient[UpdateTransactionRequest, TransactionResponse](httpClient, baseURL+LedgerServiceUpdateTransactionProcedure, opts...),
		deleteTransaction: connect.NewClient[DeleteTransactionRequest, DeleteTransactionResponse](httpClient, baseURL+LedgerServiceDeleteTransactionProcedure, opts...),
	}
}

func (c *LedgerServiceClient) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) CreateTransaction(ctx context.Context, req *connect.Request[CreateTransactionRequest]) (*connect.Response[TransactionResponse], error) {
	return c.createTransaction.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) UpdateTransaction(ctx context.Context, req *connect.Request[UpdateTransactionRequest]) (*connect.Response[TransactionResponse], error) {
	return c.updateTransaction.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[DeleteTransactionRequest]) (*connect.Response[DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}

// BudgetServiceHandler is implemented by the server side of BudgetService.
// BudgetService manages the caller's category budgets.
type BudgetServiceHandler interface {
	ListBudgets(context.Context, *connect.Request[ListBudgetsRequest]) (*connect.Response[ListBudgetsResponse], error)
	CreateBudget(context.Context, *connect.Request[CreateBudgetRequest]) (*connect.Response[BudgetResponse], error)
	UpdateBudget(context.Context, *connect.Request[UpdateBudgetRequest]) (*connect.Response[BudgetResponse], error)
	DeleteBudget(context.Context, *connect.Request[DeleteBudgetRequest]) (*connect.Response[DeleteBudgetResponse], error)
}

// NewBudgetServiceHandler builds an HTTP handler serving every BudgetService procedure.
// It returns the path prefix to mount the handler on.
func NewBudgetServiceHandler(svc BudgetServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(BudgetServiceListBudgetsProcedure, connect.NewUnaryHandler(BudgetServiceListBudgetsProcedure, svc.ListBudgets, opts...))
	mux.Handle(BudgetServiceCreateBudgetProcedure, connect.NewUnaryHandler(BudgetServiceCreateBudgetProcedure, svc.CreateBudget, opts...))
	mux.Handle(BudgetServiceUpdateBudgetProcedure, connect.NewUnaryHandler(BudgetServiceUpdateBudgetProcedure, svc.UpdateBudget, opts...))
	mux.Handle(BudgetServiceDeleteBudgetProcedure, connect.NewUnaryHandler(BudgetServiceDeleteBudgetProcedure, svc.DeleteBudget, opts...))
	return "/" + BudgetServiceName + "/", mux
}

// BudgetServiceClient is a typed client for BudgetService.
type BudgetServiceClient struct {
	listBudgets  *connect.Client[ListBudgetsRequest, ListBudgetsResponse]
	createBudget *connect.Client[CreateBudgetRequest, BudgetResponse]
	updateBudget *connect.Client[UpdateBudgetRequest, BudgetResponse]
	deleteBudget *connect.Client[DeleteBudgetRequest, DeleteBudgetResponse]
}

// NewBudgetServiceClient creates a client for the BudgetService served at baseURL.
func NewBudgetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BudgetServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &BudgetServiceClient{
		listBudgets:  connect.NewClient[ListBudgetsRequest, ListBudgetsResponse](httpClient, baseURL+BudgetServiceListBudgetsProcedure, opts...),
		createBudget: connect.NewClient[CreateBudgetRequest, BudgetResponse](httpClient, baseURL+BudgetServiceCreateBudgetProcedure, opts...),
		updateBudget: connect.NewClient[UpdateBudgetRequest, BudgetResponse](httpClient, baseURL+BudgetServiceUpdateBudgetProcedure, opts...),
		deleteBudget: connect.NewClient[DeleteBudgetRequest, DeleteBudgetResponse](httpClient, baseURL+BudgetServiceDeleteBudgetProcedure, opts...),
	}
}

func (c *BudgetServiceClient) ListBudgets(ctx context.Context, req *connect.Request[ListBudgetsRequest]) (*connect.Response[ListBudgetsResponse], error) {
	return c.listBudgets.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) CreateBudget(ctx context.Context, req *connect.Request[CreateBudgetRequest]) (*connect.Response[BudgetResponse], error) {
	return c.createBudget.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) UpdateBudget(ctx context.Context, req *connect.Request[UpdateBudgetRequest]) (*connect.Response[BudgetResponse], error) {
	return c.updateBudget.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) DeleteBudget(ctx context.Context, req *connect.Request[DeleteBudgetRequest]) (*connect.Response[DeleteBudgetResponse], error) {
	return c.deleteBudget.CallUnary(ctx, req)
}

// ReportServiceHandler is implemented by the server side of ReportService.
// ReportService serves read-only aggregates over the caller's data.
type ReportServiceHandler interface {
	GetSummary(context.Context, *connect.Request[ReportRequest]) (*connect.Response[SummaryResponse], error)
	GetSuggestions(context.Context, *connect.Request[ReportRequest]) (*connect.Response[SuggestionsResponse], error)
	ListCurrencies(context.Context, *connect.Request[ListCurrenciesRequest]) (*connect.Response[ListCurrenciesResponse], error)
	GetRangeReport(context.Context, *connect.Request[RangeReportRequest]) (*connect.Response[RangeReportResponse], error)
	Ask(context.Context, *connect.Request[AskRequest]) (*connect.Response[AskResponse], error)
}

// NewReportServiceHandler builds an HTTP handler serving every ReportService procedure.
// It returns the path prefix to mount the handler on.
func NewReportServiceHandler(svc ReportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ReportServiceGetSummaryProcedure, connect.NewUnaryHandler(ReportServiceGetSummaryProcedure, svc.GetSummary, opts...))
	mux.Handle(ReportServiceGetSuggestionsProcedure, connect.NewUnaryHandler(ReportServiceGetSuggestionsProcedure, svc.GetSuggestions, opts...))
	mux.Handle(ReportServiceListCurrenciesProcedure, connect.NewUnaryHandler(ReportServiceListCurrenciesProcedure, svc.ListCurrencies, opts...))
	mux.Handle(ReportServiceGetRangeReportProcedure, connect.NewUnaryHandler(ReportServiceGetRangeReportProcedure, svc.GetRangeReport, opts...))
	mux.Handle(ReportServiceAskProcedure, connect.NewUnaryHandler(ReportServiceAskProcedure, svc.Ask, opts...))
	return "/" + ReportServiceName + "/", mux
}

// ReportServiceClient is a typed client for ReportService.
type ReportServiceClient struct {
	getSummary     *connect.Client[ReportRequest, SummaryResponse]
	getSuggestions *connect.Client[ReportRequest, SuggestionsResponse]
	listCurrencies *connect.Client[ListCurrenciesRequest, ListCurrenciesResponse]
	getRangeReport *connect.Client[RangeReportRequest, RangeReportResponse]
	ask            *connect.Client[AskRequest, AskResponse]
}

// NewReportServiceClient creates a client for the ReportService served at baseURL.
func NewReportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ReportServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ReportServiceClient{
		getSummary:     connect.NewClient[ReportRequest, SummaryResponse](httpClient, baseURL+ReportServiceGetSummaryProcedure, opts...),
		getSuggestions: connect.NewClient[ReportRequest, SuggestionsResponse](httpClient, baseURL+ReportServiceGetSuggestionsProcedure, opts...),
		listCurrencies: connect.NewClient[ListCurrenciesRequest, ListCurrenciesResponse](httpClient, baseURL+ReportServiceListCurrenciesProcedure, opts...),
		getRangeReport: connect.NewClient[RangeReportRequest, RangeReportResponse](httpClient, baseURL+ReportServiceGetRangeReportProcedure, opts...),
		ask:            connect.NewClient[AskRequest, AskResponse](httpClient, baseURL+ReportServiceAskProcedure, opts...),
	}
}

func (c *ReportServiceClient) GetSummary(ctx context.Context, req *connect.Request[ReportRequest]) (*connect.Response[SummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *ReportServiceClient) GetSuggestions(ctx context.Context, req *connect.Request[ReportRequest]) (*connect.Response[SuggestionsResponse], error) {
	return c.getSuggestions.CallUnary(ctx, req)
}

func (c *ReportServiceClient) ListCurrencies(ctx context.Context, req *connect.Request[ListCurrenciesRequest]) (*connect.Response[ListCurrenciesResponse], error) {
	return c.listCurrencies.CallUnary(ctx, req)
}

func (c *ReportServiceClient) GetRangeReport(ctx context.Context, req *connect.Request[RangeReportRequest]) (*connect.Response[RangeReportResponse], error) {
	return c.getRangeReport.CallUnary(ctx, req)
}

func (c *ReportServiceClient) Ask(ctx context.Context, req *connect.Request[AskRequest]) (*connect.Response[AskResponse], error) {
	return c.ask.CallUnary(ctx, req)
}

// BearerToken returns a client interceptor that attaches token to every
// outgoing request.
func BearerToken(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}
