package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies where a resolved exchange rate came from.
type RateSource string

const (
	RateSourceUser     RateSource = "USER"
	RateSourcePlatform RateSource = "PLATFORM"
)

// ExchangeRate is a platform rate: system-sourced, shared by all users,
// unique per (from, to, date). Rate means "1 unit of from = Rate units of to"
// on that calendar date.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"` // positive, 6 fractional digits
	RateDate         time.Time       `json:"rateDate"`
	AuditFields
}

// UserExchangeRate is a per-user override rate. An active row takes precedence
// over the platform rate for the same pair and date; deactivated rows are kept
// as history.
type UserExchangeRate struct {
	UserExchangeRateID string          `json:"userExchangeRateID"` // Primary Key (UUID)
	UserID             string          `json:"userID"`
	FromCurrencyCode   string          `json:"fromCurrencyCode"`
	ToCurrencyCode     string          `json:"toCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	RateDate           time.Time       `json:"rateDate"`
	IsActive           bool            `json:"isActive"`
	Note               string          `json:"note,omitempty"`
	AuditFields
}

// ResolvedRate is the outcome of rate resolution: the applicable rate plus
// where it came from, and the override row used (if any).
type ResolvedRate struct {
	Rate               decimal.Decimal `json:"rate"`
	Source             RateSource      `json:"source"`
	UserExchangeRateID *string         `json:"userExchangeRateID,omitempty"`
	RateDate           time.Time       `json:"rateDate"`
}
