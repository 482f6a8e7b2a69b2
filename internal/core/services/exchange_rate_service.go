package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	portsrepo "github.com/KwakuBoohene/ackontant/internal/core/ports/repositories"
	portssvc "github.com/KwakuBoohene/ackontant/internal/core/ports/services"
	"github.com/KwakuBoohene/ackontant/internal/dto"
	"github.com/KwakuBoohene/ackontant/internal/middleware"
)

// rateScale is the number of fractional digits stored for exchange rates.
const rateScale = 6

// exchangeRateService provides platform rate management, per-user overrides
// and rate resolution.
type exchangeRateService struct {
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// validateRatePair checks the common invariants shared by platform and user rates.
func (s *exchangeRateService) validateRatePair(ctx context.Context, fromCode, toCode string, rate decimal.Decimal) error {
	if fromCode == toCode {
		return fmt.Errorf("%w: from and to currencies must differ", apperrors.ErrValidation)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}
	for _, code := range []string{fromCode, toCode} {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, code)
			}
			return fmt.Errorf("failed to validate currency %s: %w", code, err)
		}
	}
	return nil
}

// normalizeRateDate truncates a timestamp to its calendar date in UTC.
// Rates are keyed by date, not by time of day.
func normalizeRateDate(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

func (s *exchangeRateService) UpsertPlatformRate(ctx context.Context, req dto.UpsertExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateRatePair(ctx, req.FromCurrencyCode, req.ToCurrencyCode, req.Rate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		Rate:             req.Rate.Round(rateScale),
		RateDate:         normalizeRateDate(req.RateDate),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.UpsertPlatformRate(ctx, rate); err != nil {
		logger.Error("Failed to upsert platform rate", slog.String("error", err.Error()), slog.String("from", req.FromCurrencyCode), slog.String("to", req.ToCurrencyCode))
		return nil, fmt.Errorf("failed to upsert platform rate: %w", err)
	}

	logger.Info("Platform rate upserted", slog.String("exchange_rate_id", rate.ExchangeRateID), slog.String("from", rate.FromCurrencyCode), slog.String("to", rate.ToCurrencyCode))
	return &rate, nil
}

func (s *exchangeRateService) ListPlatformRates(ctx context.Context, fromCode, toCode string, limit int) ([]domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if limit <= 0 {
		limit = 20
	}
	var fromFilter, toFilter *string
	if fromCode != "" {
		fromFilter = &fromCode
	}
	if toCode != "" {
		toFilter = &toCode
	}
	rates, err := s.rateRepo.ListPlatformRates(ctx, fromFilter, toFilter, limit, 0)
	if err != nil {
		logger.Error("Failed to list platform rates", slog.String("error", err.Error()), slog.String("from", fromCode), slog.String("to", toCode))
		return nil, fmt.Errorf("failed to list platform rates: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

// ResolveRate picks the rate applicable for a user, pair and calendar date.
// An active user override for the exact date wins over the platform rate for
// the exact date. Rates from neighbouring dates are never substituted.
func (s *exchangeRateService) ResolveRate(ctx context.Context, userID, fromCode, toCode string, date time.Time) (*domain.ResolvedRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if fromCode == toCode {
		return &domain.ResolvedRate{
			Rate:     decimal.NewFromInt(1),
			Source:   domain.RateSourcePlatform,
			RateDate: normalizeRateDate(date),
		}, nil
	}

	rateDate := normalizeRateDate(date)

	userRate, err := s.rateRepo.FindActiveUserRate(ctx, userID, fromCode, toCode, rateDate)
	if err == nil {
		return &domain.ResolvedRate{
			Rate:               userRate.Rate,
			Source:             domain.RateSourceUser,
			UserExchangeRateID: &userRate.UserExchangeRateID,
			RateDate:           userRate.RateDate,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up user rate override", slog.String("error", err.Error()), slog.String("from", fromCode), slog.String("to", toCode))
		return nil, fmt.Errorf("failed to look up user rate override: %w", err)
	}

	platformRate, err := s.rateRepo.FindPlatformRate(ctx, fromCode, toCode, rateDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no rate for %s/%s on %s: %w", fromCode, toCode, rateDate.Format("2006-01-02"), apperrors.ErrNotFound)
		}
		logger.Error("Failed to look up platform rate", slog.String("error", err.Error()), slog.String("from", fromCode), slog.String("to", toCode))
		return nil, fmt.Errorf("failed to look up platform rate: %w", err)
	}

	return &domain.ResolvedRate{
		Rate:     platformRate.Rate,
		Source:   domain.RateSourcePlatform,
		RateDate: platformRate.RateDate,
	}, nil
}

func (s *exchangeRateService) CreateUserRate(ctx context.Context, userID string, req dto.CreateUserExchangeRateRequest) (*domain.UserExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateRatePair(ctx, req.FromCurrencyCode, req.ToCurrencyCode, req.Rate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	userRate := domain.UserExchangeRate{
		UserExchangeRateID: uuid.NewString(),
		UserID:             userID,
		FromCurrencyCode:   req.FromCurrencyCode,
		ToCurrencyCode:     req.ToCurrencyCode,
		Rate:               req.Rate.Round(rateScale),
		RateDate:           normalizeRateDate(req.RateDate),
		IsActive:           true,
		Note:               req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// SaveUserExchangeRate deactivates any previous active override for the
	// same (user, from, to, date) key in the same database transaction.
	if err := s.rateRepo.SaveUserExchangeRate(ctx, userRate); err != nil {
		logger.Error("Failed to save user rate override", slog.String("error", err.Error()), slog.String("from", req.FromCurrencyCode), slog.String("to", req.ToCurrencyCode))
		return nil, fmt.Errorf("failed to save user rate override: %w", err)
	}

	logger.Info("User rate override created", slog.String("user_exchange_rate_id", userRate.UserExchangeRateID), slog.String("user_id", userID))
	return &userRate, nil
}

func (s *exchangeRateService) GetUserRateByID(ctx context.Context, userID, userExchangeRateID string) (*domain.UserExchangeRate, error) {
	existing, err := s.rateRepo.FindUserExchangeRateByID(ctx, userExchangeRateID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, fmt.Errorf("%w: exchange rate %s belongs to another user", apperrors.ErrForbidden, userExchangeRateID)
	}
	return existing, nil
}

func (s *exchangeRateService) DeactivateUserRate(ctx context.Context, userID, userExchangeRateID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.rateRepo.FindUserExchangeRateByID(ctx, userExchangeRateID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		// Hide the row's existence from other users.
		return apperrors.ErrNotFound
	}
	if !existing.IsActive {
		return fmt.Errorf("%w: rate override is already inactive", apperrors.ErrInvalidState)
	}

	if err := s.rateRepo.DeactivateUserExchangeRate(ctx, userExchangeRateID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate user rate override", slog.String("error", err.Error()), slog.String("user_exchange_rate_id", userExchangeRateID))
		return fmt.Errorf("failed to deactivate user rate override: %w", err)
	}

	logger.Info("User rate override deactivated", slog.String("user_exchange_rate_id", userExchangeRateID), slog.String("user_id", userID))
	return nil
}

func (s *exchangeRateService) ListUserRates(ctx context.Context, userID string, limit int) ([]domain.UserExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if limit <= 0 {
		limit = 20
	}
	rates, err := s.rateRepo.ListUserRates(ctx, userID, limit, 0)
	if err != nil {
		logger.Error("Failed to list user rate overrides", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list user rate overrides: %w", err)
	}
	if rates == nil {
		return []domain.UserExchangeRate{}, nil
	}
	return rates, nil
}
