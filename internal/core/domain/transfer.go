package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus tracks the transfer lifecycle:
// PENDING -> COMPLETED -> CANCELLED. FAILED exists for wire compatibility but
// is never persisted: a failure during creation aborts all writes instead.
type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferCompleted TransferStatus = "COMPLETED"
	TransferFailed    TransferStatus = "FAILED"
	TransferCancelled TransferStatus = "CANCELLED"
)

// Transfer is a paired debit+credit across two accounts of the same user,
// represented by this aggregate row plus two linked Transaction rows.
//
// ExchangeRate is interpreted as the source -> base-currency rate when
// computing BaseCurrencyAmount. The same value converts the source amount to
// the destination amount, which is exact whenever the destination currency is
// the platform base currency.
type Transfer struct {
	TransferID               string           `json:"transferID"` // Primary Key (UUID)
	UserID                   string           `json:"userID"`
	SourceAccountID          string           `json:"sourceAccountID"`
	DestinationAccountID     string           `json:"destinationAccountID"`
	Amount                   decimal.Decimal  `json:"amount"` // positive, in source currency
	SourceCurrencyCode       string           `json:"sourceCurrencyCode"`
	DestinationCurrencyCode  string           `json:"destinationCurrencyCode"`
	ExchangeRate             decimal.Decimal  `json:"exchangeRate"`
	BaseCurrencyAmount       decimal.Decimal  `json:"baseCurrencyAmount"`
	TransferDate             time.Time        `json:"transferDate"`
	Description              string           `json:"description"`
	Status                   TransferStatus   `json:"status"`
	RateSource               RateSource       `json:"rateSource"`
	UserExchangeRateID       *string          `json:"userExchangeRateID,omitempty"`
	SourceTransactionID      *string          `json:"sourceTransactionID,omitempty"`
	DestinationTransactionID *string          `json:"destinationTransactionID,omitempty"`
	AuditFields
}
