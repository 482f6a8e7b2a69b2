package domain

// User is the acting identity handed to every core operation. Authentication
// lives with the external identity provider; the core only needs the user's
// ID and configured base currency.
type User struct {
	UserID           string `json:"userID"`
	Username         string `json:"username"`
	BaseCurrencyCode string `json:"baseCurrencyCode"`
	AuditFields
}
