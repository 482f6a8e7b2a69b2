package models

// Currency is the persistence representation of a currency.
type Currency struct {
	CurrencyCode       string `db:"currency_code"`
	Name               string `db:"name"`
	Symbol             string `db:"symbol"`
	DecimalPlaces      int16  `db:"decimal_places"`
	IsActive           bool   `db:"is_active"`
	IsPlatformCurrency bool   `db:"is_platform_currency"`
	Source             string `db:"source"`
	AuditFields
}
