package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType for storage.
type AccountType string

// Account is the persistence representation of an account row.
type Account struct {
	AccountID           string           `db:"account_id"`
	UserID              string           `db:"user_id"`
	Name                string           `db:"name"`
	AccountType         AccountType      `db:"account_type"`
	CurrencyCode        string           `db:"currency_code"`
	InitialBalance      decimal.Decimal  `db:"initial_balance"`
	CurrentBalance      decimal.Decimal  `db:"current_balance"`
	BaseCurrencyBalance decimal.Decimal  `db:"base_currency_balance"`
	LastExchangeRate    *decimal.Decimal `db:"last_exchange_rate"`
	LastConversionDate  *time.Time       `db:"last_conversion_date"`
	IsActive            bool             `db:"is_active"`
	AuditFields
}
