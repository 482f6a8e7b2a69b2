package repositories

import (
	"context"
	"time"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
)

// ExchangeRateReader defines read operations for platform rate data
type ExchangeRateReader interface {
	// FindPlatformRate retrieves the platform rate for a currency pair on an
	// exact date. Rate resolution is strictly date-scoped; there is no
	// fallback to neighbouring dates.
	FindPlatformRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error)

	// FindLatestPlatformRate retrieves the most recent platform rate for a
	// currency pair regardless of date. Used by the balance engine to pivot
	// an account's currency through the base currency.
	FindLatestPlatformRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)

	// ListPlatformRates retrieves platform rates with optional pair filtering.
	ListPlatformRates(ctx context.Context, fromCurrencyCode, toCurrencyCode *string, limit int, offset int) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for platform rate data
type ExchangeRateWriter interface {
	// UpsertPlatformRate inserts a platform rate or updates the existing row
	// for the same (from, to, date) triple. This is the write path consumed
	// by the external rate ingestion job.
	UpsertPlatformRate(ctx context.Context, rate domain.ExchangeRate) error
}

// UserExchangeRateReader defines read operations for user override rates
type UserExchangeRateReader interface {
	// FindUserExchangeRateByID retrieves a specific override row by its ID.
	FindUserExchangeRateByID(ctx context.Context, userExchangeRateID string) (*domain.UserExchangeRate, error)

	// FindActiveUserRate retrieves the active override for (user, from, to,
	// date). When duplicates exist the most recently created row wins.
	FindActiveUserRate(ctx context.Context, userID, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.UserExchangeRate, error)

	// ListUserRates retrieves a user's override rates, active and historical.
	ListUserRates(ctx context.Context, userID string, limit int, offset int) ([]domain.UserExchangeRate, error)
}

// UserExchangeRateWriter defines write operations for user override rates
type UserExchangeRateWriter interface {
	// SaveUserExchangeRate persists a new override, deactivating any previous
	// active row for the same (user, from, to, date) in the same transaction.
	SaveUserExchangeRate(ctx context.Context, rate domain.UserExchangeRate) error

	// DeactivateUserExchangeRate clears the is_active flag on an override.
	DeactivateUserExchangeRate(ctx context.Context, userExchangeRateID string, userID string, now time.Time) error
}

// ExchangeRateRepositoryFacade combines all rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
	UserExchangeRateReader
	UserExchangeRateWriter
}
