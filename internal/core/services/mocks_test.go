package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
)

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, userID string) ([]domain.Currency, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) DeleteCurrency(ctx context.Context, currencyCode string) error {
	args := m.Called(ctx, currencyCode)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangeInTx(ctx context.Context, tx pgx.Tx, locked domain.Account, change domain.BalanceChange, userID string, now time.Time) error {
	args := m.Called(ctx, tx, locked, change, userID, now)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---

type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindPlatformRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestPlatformRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListPlatformRates(ctx context.Context, fromCurrencyCode, toCurrencyCode *string, limit int, offset int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertPlatformRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindUserExchangeRateByID(ctx context.Context, userExchangeRateID string) (*domain.UserExchangeRate, error) {
	args := m.Called(ctx, userExchangeRateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindActiveUserRate(ctx context.Context, userID, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.UserExchangeRate, error) {
	args := m.Called(ctx, userID, fromCurrencyCode, toCurrencyCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListUserRates(ctx context.Context, userID string, limit int, offset int) ([]domain.UserExchangeRate, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveUserExchangeRate(ctx context.Context, rate domain.UserExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) DeactivateUserExchangeRate(ctx context.Context, userExchangeRateID string, userID string, now time.Time) error {
	args := m.Called(ctx, userExchangeRateID, userID, now)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, userID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) SummarizeTransactions(ctx context.Context, userID string, from, to *string) (*domain.TransactionSummary, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSummary), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, change domain.BalanceChange) error {
	args := m.Called(ctx, txn, change)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, change domain.BalanceChange, userID string) error {
	args := m.Called(ctx, transactionID, change, userID)
	return args.Error(0)
}

// --- Mock TransferRepository ---

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockTransferRepository) ListTransfersByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transfer, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var transfers []domain.Transfer
	if args.Get(0) != nil {
		transfers = args.Get(0).([]domain.Transfer)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return transfers, token, args.Error(2)
}

func (m *MockTransferRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer, sourceTxn, destTxn domain.Transaction, sourceChange, destChange domain.BalanceChange) error {
	args := m.Called(ctx, transfer, sourceTxn, destTxn, sourceChange, destChange)
	return args.Error(0)
}

func (m *MockTransferRepository) CancelTransfer(ctx context.Context, transfer domain.Transfer, sourceChange, destChange domain.BalanceChange, userID string) error {
	args := m.Called(ctx, transfer, sourceChange, destChange, userID)
	return args.Error(0)
}

// --- Mock ExchangeRateReaderSvc ---

type MockRateReaderSvc struct {
	mock.Mock
}

func (m *MockRateReaderSvc) ListPlatformRates(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockRateReaderSvc) ResolveRate(ctx context.Context, userID, fromCode, toCode string, date time.Time) (*domain.ResolvedRate, error) {
	args := m.Called(ctx, userID, fromCode, toCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedRate), args.Error(1)
}

func (m *MockRateReaderSvc) GetUserRateByID(ctx context.Context, userID, userExchangeRateID string) (*domain.UserExchangeRate, error) {
	args := m.Called(ctx, userID, userExchangeRateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserExchangeRate), args.Error(1)
}

// --- Mock BalanceSvc ---

type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) ComputeChange(ctx context.Context, user *domain.User, account *domain.Account, direction domain.EntryDirection, amount decimal.Decimal, currencyCode string, date time.Time, allowNegative bool) (*domain.BalanceChange, *domain.ResolvedRate, error) {
	args := m.Called(ctx, user, account, direction, amount, currencyCode, date, allowNegative)
	var change *domain.BalanceChange
	if args.Get(0) != nil {
		change = args.Get(0).(*domain.BalanceChange)
	}
	var resolved *domain.ResolvedRate
	if args.Get(1) != nil {
		resolved = args.Get(1).(*domain.ResolvedRate)
	}
	return change, resolved, args.Error(2)
}

func (m *MockBalanceService) ComputeChangeWithRate(ctx context.Context, user *domain.User, account *domain.Account, direction domain.EntryDirection, amount decimal.Decimal, currencyCode string, rate decimal.Decimal, date time.Time, allowNegative bool) (*domain.BalanceChange, error) {
	args := m.Called(ctx, user, account, direction, amount, currencyCode, rate, date, allowNegative)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceChange), args.Error(1)
}
