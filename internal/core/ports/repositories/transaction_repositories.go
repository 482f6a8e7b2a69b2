package repositories

import (
	"context"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
)

// TransactionReader defines read operations for ledger rows
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction (with tag IDs).
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a paginated list of transactions
	// for an account using token-based pagination, newest first.
	ListTransactionsByAccount(ctx context.Context, userID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// SummarizeTransactions returns base-currency income and expense totals
	// for a user over an inclusive date range.
	SummarizeTransactions(ctx context.Context, userID string, from, to *string) (*domain.TransactionSummary, error)
}

// TransactionWriter defines the atomic ledger mutations. Each method runs the
// account lock, funds pre-check, balance update and row write inside one
// database transaction; any failure aborts all of it.
type TransactionWriter interface {
	// SaveTransaction persists a transaction and applies its balance change.
	SaveTransaction(ctx context.Context, txn domain.Transaction, change domain.BalanceChange) error

	// DeleteTransaction applies the reversing balance change and removes the
	// transaction row.
	DeleteTransaction(ctx context.Context, transactionID string, change domain.BalanceChange, userID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
