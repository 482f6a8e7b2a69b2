package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus mirrors domain.TransferStatus for storage.
type TransferStatus string

// Transfer is the persistence representation of a transfer aggregate row.
type Transfer struct {
	TransferID               string          `db:"transfer_id"`
	UserID                   string          `db:"user_id"`
	SourceAccountID          string          `db:"source_account_id"`
	DestinationAccountID     string          `db:"destination_account_id"`
	Amount                   decimal.Decimal `db:"amount"`
	SourceCurrencyCode       string          `db:"source_currency_code"`
	DestinationCurrencyCode  string          `db:"destination_currency_code"`
	ExchangeRate             decimal.Decimal `db:"exchange_rate"`
	BaseCurrencyAmount       decimal.Decimal `db:"base_currency_amount"`
	TransferDate             time.Time       `db:"transfer_date"`
	Description              string          `db:"description"`
	Status                   TransferStatus  `db:"status"`
	RateSource               string          `db:"rate_source"`
	UserExchangeRateID       *string         `db:"user_exchange_rate_id"`
	SourceTransactionID      *string         `db:"source_transaction_id"`
	DestinationTransactionID *string         `db:"destination_transaction_id"`
	AuditFields
}
