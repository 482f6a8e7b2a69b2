package models

// User is the persistence representation of a user row. Only the fields the
// ledger core needs are stored here; authentication data lives elsewhere.
type User struct {
	UserID           string `db:"user_id"`
	Username         string `db:"username"`
	BaseCurrencyCode string `db:"base_currency_code"`
	AuditFields
}
