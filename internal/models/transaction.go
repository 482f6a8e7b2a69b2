package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType for storage.
type TransactionType string

// Transaction is the persistence representation of a ledger row.
type Transaction struct {
	TransactionID      string           `db:"transaction_id"`
	UserID             string           `db:"user_id"`
	AccountID          string           `db:"account_id"`
	TransactionType    TransactionType  `db:"transaction_type"`
	Amount             decimal.Decimal  `db:"amount"`
	CurrencyCode       string           `db:"currency_code"`
	BaseCurrencyAmount decimal.Decimal  `db:"base_currency_amount"`
	ExchangeRate       *decimal.Decimal `db:"exchange_rate"`
	Description        string           `db:"description"`
	TransactionDate    time.Time        `db:"transaction_date"`
	CategoryID         *string          `db:"category_id"`
	TransferID         *string          `db:"transfer_id"`
	IsRecurring        bool             `db:"is_recurring"`
	RecurringRule      *string          `db:"recurring_rule"`
	IsArchived         bool             `db:"is_archived"`
	AuditFields
}
