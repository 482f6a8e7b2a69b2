package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	portsrepo "github.com/KwakuBoohene/ackontant/internal/core/ports/repositories"
	portssvc "github.com/KwakuBoohene/ackontant/internal/core/ports/services"
	"github.com/KwakuBoohene/ackontant/internal/dto"
	"github.com/KwakuBoohene/ackontant/internal/middleware"
)

var (
	ErrTransferLinked  = errors.New("transaction belongs to a transfer; cancel the transfer instead")
	ErrAccountInactive = errors.New("account is inactive")
)

// transactionService provides income and expense transaction operations.
// Transfer-linked rows are read-only here; their lifecycle belongs to the
// transfer service.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	userRepo        portsrepo.UserRepositoryFacade
	balanceSvc      portssvc.BalanceSvc
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, balanceSvc portssvc.BalanceSvc) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		userRepo:        userRepo,
		balanceSvc:      balanceSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// loadOwnedAccount fetches an account and verifies the user owns it.
// Accounts of other users are reported as not found.
func (s *transactionService) loadOwnedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.TransactionType != domain.Income && req.TransactionType != domain.Expense {
		return nil, fmt.Errorf("%w: transaction type must be INCOME or EXPENSE", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	account, err := s.loadOwnedAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAccountInactive)
	}

	direction := domain.DirectionCredit
	if req.TransactionType == domain.Expense {
		direction = domain.DirectionDebit
	}

	change, resolved, err := s.balanceSvc.ComputeChange(ctx, user, account, direction, req.Amount, req.CurrencyCode, req.TransactionDate, req.AllowNegative)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		UserID:             userID,
		AccountID:          account.AccountID,
		TransactionType:    req.TransactionType,
		Amount:             req.Amount.Round(amountScale),
		CurrencyCode:       req.CurrencyCode,
		BaseCurrencyAmount: change.BaseDelta.Abs(),
		Description:        req.Description,
		TransactionDate:    req.TransactionDate,
		CategoryID:         req.CategoryID,
		TagIDs:             req.TagIDs,
		IsRecurring:        req.IsRecurring,
		RecurringRule:      req.RecurringRule,
		IsArchived:         req.IsArchived,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if resolved != nil {
		rate := resolved.Rate
		txn.ExchangeRate = &rate
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, *change); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Warn("Transaction rejected for insufficient funds", slog.String("account_id", account.AccountID))
			return nil, err
		}
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created successfully", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", account.AccountID), slog.String("type", string(txn.TransactionType)))
	return &txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string, allowNegative bool) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.UserID != userID {
		return apperrors.ErrNotFound
	}
	if txn.TransferID != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidState, ErrTransferLinked)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}

	// Reversal is the original operation with the direction flipped, using
	// the rate stored at creation. Reversing an expense credits and cannot
	// fail on funds; reversing an income debits and honours allowNegative.
	direction := domain.DirectionDebit
	if txn.TransactionType == domain.Expense {
		direction = domain.DirectionCredit
		allowNegative = true
	}

	rate := decimal.NewFromInt(1)
	if txn.ExchangeRate != nil {
		rate = *txn.ExchangeRate
	}

	change, err := s.balanceSvc.ComputeChangeWithRate(ctx, user, account, direction, txn.Amount, txn.CurrencyCode, rate, txn.TransactionDate, allowNegative)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID, *change, userID); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Warn("Transaction reversal rejected for insufficient funds", slog.String("transaction_id", transactionID))
			return err
		}
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	logger.Info("Transaction deleted successfully", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

func (s *transactionService) ListTransactionsByAccount(ctx context.Context, userID, accountID string, params portssvc.ListTransactionsParams) (*portssvc.ListTransactionsResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.loadOwnedAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	txns, nextToken, err := s.transactionRepo.ListTransactionsByAccount(ctx, userID, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}

	return &portssvc.ListTransactionsResult{
		Transactions: txns,
		NextToken:    nextToken,
	}, nil
}

func (s *transactionService) GetSummary(ctx context.Context, userID string, from, to *string) (*domain.TransactionSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	summary, err := s.transactionRepo.SummarizeTransactions(ctx, userID, from, to)
	if err != nil {
		logger.Error("Failed to summarize transactions", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	return summary, nil
}
