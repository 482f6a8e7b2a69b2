package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	portsrepo "github.com/KwakuBoohene/ackontant/internal/core/ports/repositories"
	portssvc "github.com/KwakuBoohene/ackontant/internal/core/ports/services"
	"github.com/KwakuBoohene/ackontant/internal/dto"
	"github.com/KwakuBoohene/ackontant/internal/middleware"
)

// currencyService provides currency management operations.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	decimalPlaces := int16(2)
	if req.DecimalPlaces != nil {
		if *req.DecimalPlaces < 0 || *req.DecimalPlaces > 8 {
			return nil, fmt.Errorf("%w: decimalPlaces must be between 0 and 8", apperrors.ErrValidation)
		}
		decimalPlaces = *req.DecimalPlaces
	}

	currency := domain.Currency{
		CurrencyCode:       req.CurrencyCode,
		Symbol:             req.Symbol,
		Name:               req.Name,
		DecimalPlaces:      decimalPlaces,
		IsActive:           true,
		IsPlatformCurrency: false,
		Source:             domain.CurrencySourceUser,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("currency %s already exists: %w", req.CurrencyCode, err)
		}
		logger.Error("Failed to save currency", slog.String("error", err.Error()), slog.String("currency_code", req.CurrencyCode))
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	logger.Info("Currency created successfully", slog.String("currency_code", currency.CurrencyCode))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find currency by code", slog.String("error", err.Error()), slog.String("currency_code", currencyCode))
		}
		return nil, err
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context, userID string) ([]domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	currencies, err := s.currencyRepo.ListCurrencies(ctx, userID)
	if err != nil {
		logger.Error("Failed to list currencies", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, currencyCode string, req dto.UpdateCurrencyRequest, userID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, err
	}

	// Only display fields are mutable; code and decimal places are fixed
	// because stored amounts depend on them.
	updated := false
	if req.Name != nil && *req.Name != currency.Name {
		currency.Name = *req.Name
		updated = true
	}
	if req.Symbol != nil && *req.Symbol != currency.Symbol {
		currency.Symbol = *req.Symbol
		updated = true
	}

	if !updated {
		return currency, nil
	}

	currency.LastUpdatedAt = time.Now().UTC()
	currency.LastUpdatedBy = userID

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		logger.Error("Failed to update currency", slog.String("error", err.Error()), slog.String("currency_code", currencyCode))
		return nil, fmt.Errorf("failed to update currency: %w", err)
	}

	logger.Info("Currency updated successfully", slog.String("currency_code", currencyCode))
	return currency, nil
}

func (s *currencyService) DeleteCurrency(ctx context.Context, currencyCode string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.currencyRepo.DeleteCurrency(ctx, currencyCode); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Currency delete blocked by existing references", slog.String("currency_code", currencyCode))
			return err
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete currency", slog.String("error", err.Error()), slog.String("currency_code", currencyCode))
		}
		return err
	}

	logger.Info("Currency deleted successfully", slog.String("currency_code", currencyCode), slog.String("user_id", userID))
	return nil
}
