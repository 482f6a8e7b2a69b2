package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	portssvc "github.com/KwakuBoohene/ackontant/internal/core/ports/services"
	"github.com/KwakuBoohene/ackontant/internal/dto"
	"github.com/KwakuBoohene/ackontant/internal/handlers"
	"github.com/KwakuBoohene/ackontant/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, userID string, accountID string) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string, allowNegative bool) error {
	args := m.Called(ctx, userID, transactionID, allowNegative)
	return args.Error(0)
}
func (m *MockTransactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactionsByAccount(ctx context.Context, userID, accountID string, params portssvc.ListTransactionsParams) (*portssvc.ListTransactionsResult, error) {
	args := m.Called(ctx, userID, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ListTransactionsResult), args.Error(1)
}
func (m *MockTransactionService) GetSummary(ctx context.Context, userID string, from, to *string) (*domain.TransactionSummary, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSummary), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockAccountService     *MockAccountService
	mockTransactionService *MockTransactionService
	jwtSecret              string
}

// generateTestToken creates a signed JWT for the given user.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ackontant-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)
	suite.mockTransactionService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService, suite.mockTransactionService)
}

func (suite *AccountHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")
	return req
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	userID := uuid.NewString()
	reqBody := dto.CreateAccountRequest{
		Name:           "Wallet",
		AccountType:    domain.AccountCash,
		CurrencyCode:   "GHS",
		InitialBalance: decimal.RequireFromString("100.00"),
	}
	created := &domain.Account{
		AccountID:           uuid.NewString(),
		UserID:              userID,
		Name:                "Wallet",
		AccountType:         domain.AccountCash,
		CurrencyCode:        "GHS",
		InitialBalance:      reqBody.InitialBalance,
		CurrentBalance:      reqBody.InitialBalance,
		BaseCurrencyBalance: reqBody.InitialBalance,
		IsActive:            true,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.Name == "Wallet" && r.CurrencyCode == "GHS"
		}),
	).Return(created, nil).Once()

	body, _ := json.Marshal(reqBody)
	req := suite.authedRequest(http.MethodPost, "/api/v1/accounts", body, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.True(resp.CurrentBalance.Equal(reqBody.InitialBalance))

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_UnknownCurrency() {
	userID := uuid.NewString()
	reqBody := dto.CreateAccountRequest{
		Name:         "Wallet",
		AccountType:  domain.AccountCash,
		CurrencyCode: "XXX",
	}

	suite.mockAccountService.On("CreateAccount",
		mock.AnythingOfType("*context.valueCtx"), userID, mock.Anything,
	).Return(nil, fmt.Errorf("%w: unknown currency XXX", apperrors.ErrValidation)).Once()

	body, _ := json.Marshal(reqBody)
	req := suite.authedRequest(http.MethodPost, "/api/v1/accounts", body, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccountByID_NotFound() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID",
		mock.AnythingOfType("*context.valueCtx"), userID, accountID,
	).Return(nil, apperrors.ErrNotFound).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccountTransactions_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()
	limit := 10

	transactions := []domain.Transaction{
		{
			TransactionID:      uuid.NewString(),
			UserID:             userID,
			AccountID:          accountID,
			TransactionType:    domain.Income,
			Amount:             decimal.NewFromInt(100),
			CurrencyCode:       "GHS",
			BaseCurrencyAmount: decimal.NewFromInt(100),
			TransactionDate:    time.Now().UTC(),
		},
		{
			TransactionID:      uuid.NewString(),
			UserID:             userID,
			AccountID:          accountID,
			TransactionType:    domain.Expense,
			Amount:             decimal.NewFromInt(50),
			CurrencyCode:       "GHS",
			BaseCurrencyAmount: decimal.NewFromInt(50),
			TransactionDate:    time.Now().UTC().Add(-time.Hour),
		},
	}
	expected := &portssvc.ListTransactionsResult{
		Transactions: transactions,
		NextToken:    nil,
	}

	suite.mockTransactionService.On("ListTransactionsByAccount",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		accountID,
		mock.MatchedBy(func(p portssvc.ListTransactionsParams) bool {
			return p.Limit == limit && p.NextToken == nil
		}),
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s/transactions?limit=%d", accountID, limit)
	req := suite.authedRequest(http.MethodGet, url, nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ListTransactionsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Len(responseBody.Transactions, len(transactions))
	if len(responseBody.Transactions) == len(transactions) {
		suite.Equal(transactions[0].TransactionID, responseBody.Transactions[0].TransactionID)
		suite.Equal(transactions[1].TransactionID, responseBody.Transactions[1].TransactionID)
	}

	suite.mockTransactionService.AssertExpectations(suite.T())
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts")
}

func (suite *AccountHandlerTestSuite) TestListAccountTransactions_MissingToken() {
	accountID := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/"+accountID+"/transactions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "ListTransactionsByAccount")
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("DeactivateAccount",
		mock.AnythingOfType("*context.valueCtx"), userID, accountID,
	).Return(nil).Once()

	req := suite.authedRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
