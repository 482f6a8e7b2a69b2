package dto

import (
	"time"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a new income or
// expense transaction. TRANSFER rows cannot be created here; they are managed
// by the transfer endpoints.
type CreateTransactionRequest struct {
	AccountID       string                 `json:"accountID" binding:"required"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=INCOME EXPENSE"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	CurrencyCode    string                 `json:"currencyCode" binding:"required,uppercase,len=3"`
	Description     string                 `json:"description"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
	CategoryID      *string                `json:"categoryID"`
	TagIDs          []string               `json:"tagIDs"`
	// IsRecurring marks the row as the template of a repeating entry;
	// RecurringRule holds the schedule as a JSON document. IsArchived marks
	// the row as archived; an archived row keeps its balance effect.
	IsRecurring   bool    `json:"isRecurring"`
	RecurringRule *string `json:"recurringRule"`
	IsArchived    bool    `json:"isArchived"`
	// AllowNegative permits an expense to push the account balance below zero.
	AllowNegative bool `json:"allowNegative"`
}

// DeleteTransactionRequest carries the reversal policy for a delete.
type DeleteTransactionRequest struct {
	// AllowNegative permits reversing an income to push the balance below zero.
	AllowNegative bool `json:"allowNegative"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID      string                 `json:"transactionID"`
	AccountID          string                 `json:"accountID"`
	TransactionType    domain.TransactionType `json:"transactionType"`
	Amount             decimal.Decimal        `json:"amount"`
	CurrencyCode       string                 `json:"currencyCode"`
	BaseCurrencyAmount decimal.Decimal        `json:"baseCurrencyAmount"`
	ExchangeRate       *decimal.Decimal       `json:"exchangeRate,omitempty"`
	Description        string                 `json:"description"`
	TransactionDate    time.Time              `json:"transactionDate"`
	CategoryID         *string                `json:"categoryID,omitempty"`
	TagIDs             []string               `json:"tagIDs,omitempty"`
	TransferID         *string                `json:"transferID,omitempty"`
	IsRecurring        bool                   `json:"isRecurring"`
	RecurringRule      *string                `json:"recurringRule,omitempty"`
	IsArchived         bool                   `json:"isArchived"`
	CreatedAt          time.Time              `json:"createdAt"`
	CreatedBy          string                 `json:"createdBy"`
}

// ListTransactionsResponse wraps a page of transactions with the pagination token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// TransactionSummaryResponse reports base-currency totals over a date range.
type TransactionSummaryResponse struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetAmount    decimal.Decimal `json:"netAmount"`
	Count        int64           `json:"count"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      txn.TransactionID,
		AccountID:          txn.AccountID,
		TransactionType:    txn.TransactionType,
		Amount:             txn.Amount,
		CurrencyCode:       txn.CurrencyCode,
		BaseCurrencyAmount: txn.BaseCurrencyAmount,
		ExchangeRate:       txn.ExchangeRate,
		Description:        txn.Description,
		TransactionDate:    txn.TransactionDate,
		CategoryID:         txn.CategoryID,
		TagIDs:             txn.TagIDs,
		TransferID:         txn.TransferID,
		IsRecurring:        txn.IsRecurring,
		RecurringRule:      txn.RecurringRule,
		IsArchived:         txn.IsArchived,
		CreatedAt:          txn.CreatedAt,
		CreatedBy:          txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ToTransactionSummaryResponse converts a domain.TransactionSummary to its DTO.
func ToTransactionSummaryResponse(s *domain.TransactionSummary) TransactionSummaryResponse {
	return TransactionSummaryResponse{
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		NetAmount:    s.NetAmount,
		Count:        s.Count,
	}
}
