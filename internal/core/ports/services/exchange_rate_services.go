package services

import (
	"context"
	"time"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/KwakuBoohene/ackontant/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for platform exchange rate data
type ExchangeRateReaderSvc interface {
	// ListPlatformRates retrieves platform rates for a currency pair, newest first.
	ListPlatformRates(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRate, error)

	// ResolveRate determines the rate applicable for a user, pair and date:
	// an active user override wins over the platform rate for that exact date.
	ResolveRate(ctx context.Context, userID, fromCode, toCode string, date time.Time) (*domain.ResolvedRate, error)

	// GetUserRateByID retrieves one of the caller's override rates. A row
	// owned by another user yields ErrForbidden.
	GetUserRateByID(ctx context.Context, userID, userExchangeRateID string) (*domain.UserExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for platform exchange rate data
type ExchangeRateWriterSvc interface {
	// UpsertPlatformRate creates or replaces the platform rate for a (from, to, date) key.
	UpsertPlatformRate(ctx context.Context, req dto.UpsertExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// UserExchangeRateSvc defines operations for per-user override rates
type UserExchangeRateSvc interface {
	// CreateUserRate persists a new override and deactivates any previous
	// active override for the same pair and date.
	CreateUserRate(ctx context.Context, userID string, req dto.CreateUserExchangeRateRequest) (*domain.UserExchangeRate, error)

	// DeactivateUserRate marks an override inactive, restoring platform fallback.
	DeactivateUserRate(ctx context.Context, userID, userExchangeRateID string) error

	// ListUserRates retrieves a user's override rates, newest first.
	ListUserRates(ctx context.Context, userID string, limit int) ([]domain.UserExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
	UserExchangeRateSvc
}
