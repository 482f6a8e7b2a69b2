package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the kind of ledger entry.
type TransactionType string

const (
	Income      TransactionType = "INCOME"
	Expense     TransactionType = "EXPENSE"
	TransferTxn TransactionType = "TRANSFER"
)

// Transaction is a single ledger row against one account.
//
// Amount is positive and denominated in CurrencyCode, which is not necessarily
// the account's currency. BaseCurrencyAmount is the amount expressed in the
// platform base currency, computed at creation from ExchangeRate. Rows of type
// TRANSFER are created and deleted only through the transfer service, which
// manages the paired expense/income rows as one unit.
type Transaction struct {
	TransactionID      string           `json:"transactionID"` // Primary Key (UUID)
	UserID             string           `json:"userID"`
	AccountID          string           `json:"accountID"`
	TransactionType    TransactionType  `json:"transactionType"`
	Amount             decimal.Decimal  `json:"amount"` // positive
	CurrencyCode       string           `json:"currencyCode"`
	BaseCurrencyAmount decimal.Decimal  `json:"baseCurrencyAmount"`
	ExchangeRate       *decimal.Decimal `json:"exchangeRate,omitempty"` // rate used at creation
	Description        string           `json:"description"`
	TransactionDate    time.Time        `json:"transactionDate"`
	CategoryID         *string          `json:"categoryID,omitempty"`
	TagIDs             []string         `json:"tagIDs,omitempty"`
	TransferID         *string          `json:"transferID,omitempty"` // back-reference to generating transfer
	IsRecurring        bool             `json:"isRecurring"`
	RecurringRule      *string          `json:"recurringRule,omitempty"` // JSON document describing the repeat schedule
	IsArchived         bool             `json:"isArchived"`
	AuditFields
}
