package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the persistence representation of a platform rate.
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"`
	FromCurrencyCode string          `db:"from_currency_code"`
	ToCurrencyCode   string          `db:"to_currency_code"`
	Rate             decimal.Decimal `db:"rate"`
	RateDate         time.Time       `db:"rate_date"`
	AuditFields
}

// UserExchangeRate is the persistence representation of a user override rate.
type UserExchangeRate struct {
	UserExchangeRateID string          `db:"user_exchange_rate_id"`
	UserID             string          `db:"user_id"`
	FromCurrencyCode   string          `db:"from_currency_code"`
	ToCurrencyCode     string          `db:"to_currency_code"`
	Rate               decimal.Decimal `db:"rate"`
	RateDate           time.Time       `db:"rate_date"`
	IsActive           bool            `db:"is_active"`
	Note               string          `db:"note"`
	AuditFields
}
