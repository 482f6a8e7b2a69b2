package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	portsrepo "github.com/KwakuBoohene/ackontant/internal/core/ports/repositories"
	portssvc "github.com/KwakuBoohene/ackontant/internal/core/ports/services"
	"github.com/KwakuBoohene/ackontant/internal/middleware"
)

// amountScale is the number of fractional digits stored for monetary deltas.
// Rounding happens once, at the storage boundary, so applying a change and
// later applying its inverse restores the exact prior balances.
const amountScale = 2

// balanceService converts operation amounts into signed account balance
// changes. All conversion pivots through the user's base currency: an amount
// in currency X becomes base via the X-to-base rate for the operation date,
// and becomes account-native via the latest account-currency-to-base rate.
type balanceService struct {
	rateSvc  portssvc.ExchangeRateReaderSvc
	rateRepo portsrepo.ExchangeRateReader
}

// NewBalanceService creates a new balance service.
func NewBalanceService(rateSvc portssvc.ExchangeRateReaderSvc, rateRepo portsrepo.ExchangeRateReader) portssvc.BalanceSvc {
	return &balanceService{
		rateSvc:  rateSvc,
		rateRepo: rateRepo,
	}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

func (s *balanceService) ComputeChange(ctx context.Context, user *domain.User, account *domain.Account, direction domain.EntryDirection, amount decimal.Decimal, currencyCode string, date time.Time, allowNegative bool) (*domain.BalanceChange, *domain.ResolvedRate, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	var resolved *domain.ResolvedRate
	baseAmount := amount
	if currencyCode != user.BaseCurrencyCode {
		r, err := s.rateSvc.ResolveRate(ctx, user.UserID, currencyCode, user.BaseCurrencyCode, date)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil, fmt.Errorf("no %s to %s rate for %s: %w", currencyCode, user.BaseCurrencyCode, date.Format("2006-01-02"), apperrors.ErrRateUnavailable)
			}
			return nil, nil, fmt.Errorf("failed to resolve rate: %w", err)
		}
		resolved = r
		baseAmount = amount.Mul(r.Rate)
	}

	change, err := s.buildChange(ctx, user, account, direction, amount, currencyCode, baseAmount, date, allowNegative)
	if err != nil {
		return nil, nil, err
	}
	return change, resolved, nil
}

func (s *balanceService) ComputeChangeWithRate(ctx context.Context, user *domain.User, account *domain.Account, direction domain.EntryDirection, amount decimal.Decimal, currencyCode string, rate decimal.Decimal, date time.Time, allowNegative bool) (*domain.BalanceChange, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	baseAmount := amount
	if currencyCode != user.BaseCurrencyCode {
		baseAmount = amount.Mul(rate)
	}

	return s.buildChange(ctx, user, account, direction, amount, currencyCode, baseAmount, date, allowNegative)
}

// buildChange derives the native-currency delta from the base-currency amount
// and assembles the signed change. baseAmount is unrounded.
func (s *balanceService) buildChange(ctx context.Context, user *domain.User, account *domain.Account, direction domain.EntryDirection, amount decimal.Decimal, currencyCode string, baseAmount decimal.Decimal, date time.Time, allowNegative bool) (*domain.BalanceChange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	nativeAmount := amount
	converted := false
	if currencyCode != account.CurrencyCode {
		converted = true
		if account.CurrencyCode == user.BaseCurrencyCode {
			nativeAmount = baseAmount
		} else {
			// Pivot through base with the latest known rate for the
			// account's currency. Reversals re-fetch this rate, so a
			// platform upsert between apply and reverse shifts the
			// native delta; immediate reversals net to zero exactly.
			pivot, err := s.rateRepo.FindLatestPlatformRate(ctx, account.CurrencyCode, user.BaseCurrencyCode)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("no %s to %s rate known: %w", account.CurrencyCode, user.BaseCurrencyCode, apperrors.ErrRateUnavailable)
				}
				logger.Error("Failed to fetch pivot rate", slog.String("error", err.Error()), slog.String("currency_code", account.CurrencyCode))
				return nil, fmt.Errorf("failed to fetch pivot rate: %w", err)
			}
			if pivot.Rate.LessThanOrEqual(decimal.Zero) {
				return nil, fmt.Errorf("%w: non-positive pivot rate for %s", apperrors.ErrRateUnavailable, account.CurrencyCode)
			}
			nativeAmount = baseAmount.Div(pivot.Rate)
		}
	}

	nativeDelta := nativeAmount.Round(amountScale)
	baseDelta := baseAmount.Round(amountScale)
	if direction == domain.DirectionDebit {
		nativeDelta = nativeDelta.Neg()
		baseDelta = baseDelta.Neg()
	}

	change := &domain.BalanceChange{
		AccountID:     account.AccountID,
		NativeDelta:   nativeDelta,
		BaseDelta:     baseDelta,
		AllowNegative: allowNegative,
	}

	if converted {
		// Cache the effective amount-to-native rate on the account.
		effectiveRate := nativeAmount.Div(amount).Round(rateScale)
		conversionDate := date.UTC()
		change.LastExchangeRate = &effectiveRate
		change.LastConversionDate = &conversionDate
	}

	return change, nil
}
