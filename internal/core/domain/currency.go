package domain

// CurrencySource records who introduced a currency into the platform.
type CurrencySource string

const (
	CurrencySourceSystem CurrencySource = "system"
	CurrencySourceUser   CurrencySource = "user"
)

// Currency represents a supported currency.
// Currencies are shared platform data: they are never hard-deleted while a
// balance-bearing entity references them, and only display fields (name,
// symbol) may change after creation.
type Currency struct {
	CurrencyCode       string         `json:"currencyCode"` // Primary Key (e.g., "USD")
	Name               string         `json:"name"`         // e.g., "US Dollar"
	Symbol             string         `json:"symbol"`       // e.g., "$"
	DecimalPlaces      int16          `json:"decimalPlaces"`
	IsActive           bool           `json:"isActive"`
	IsPlatformCurrency bool           `json:"isPlatformCurrency"` // available to all users
	Source             CurrencySource `json:"source"`
	AuditFields
}
