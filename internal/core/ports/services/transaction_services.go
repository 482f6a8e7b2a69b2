package services

import (
	"context"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/KwakuBoohene/ackontant/internal/dto"
)

// ListTransactionsParams holds pagination parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int
	NextToken *string
}

// ListTransactionsResult holds a page of transactions and the token for the next page.
type ListTransactionsResult struct {
	Transactions []domain.Transaction
	NextToken    *string
}

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction owned by the user.
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a page of an account's transactions, newest first.
	ListTransactionsByAccount(ctx context.Context, userID, accountID string, params ListTransactionsParams) (*ListTransactionsResult, error)

	// GetSummary returns base-currency income and expense totals over a date range.
	GetSummary(ctx context.Context, userID string, from, to *string) (*domain.TransactionSummary, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction persists an income or expense transaction and applies
	// its balance change atomically.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction reverses the transaction's balance change and removes
	// the row atomically. Transfer-linked rows must go through the transfer service.
	DeleteTransaction(ctx context.Context, userID, transactionID string, allowNegative bool) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
