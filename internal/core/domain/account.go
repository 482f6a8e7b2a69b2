package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account for display and filtering.
type AccountType string

const (
	AccountBank   AccountType = "BANK"
	AccountCash   AccountType = "CASH"
	AccountMobile AccountType = "MOBILE"
	AccountCredit AccountType = "CREDIT"
	AccountOther  AccountType = "OTHER"
)

// Account represents a user-owned account holding funds in a single currency.
//
// Three monetary fields stay mutually consistent: InitialBalance is set once at
// creation; CurrentBalance is the native-currency running balance; and
// BaseCurrencyBalance is the same position expressed in the platform base
// currency. Both running balances start equal to InitialBalance and are mutated
// only through balance changes computed by the balance service.
type Account struct {
	AccountID      string          `json:"accountID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`    // FK -> users.user_id (owner)
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	CurrencyCode   string          `json:"currencyCode"` // FK -> currencies.currency_code, fixed at creation
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	// BaseCurrencyBalance starts equal to InitialBalance (1:1 assumption at creation).
	BaseCurrencyBalance decimal.Decimal `json:"baseCurrencyBalance"`
	// LastExchangeRate / LastConversionDate cache the most recent conversion
	// applied to this account. Audit/display only, not authoritative.
	LastExchangeRate   *decimal.Decimal `json:"lastExchangeRate,omitempty"`
	LastConversionDate *time.Time       `json:"lastConversionDate,omitempty"`
	IsActive           bool             `json:"isActive"`
	AuditFields
}
