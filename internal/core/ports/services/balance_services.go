package services

import (
	"context"
	"time"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvc computes the signed balance change an operation must apply to an
// account. It owns all currency conversion and rounding; callers hand the
// resulting change to a repository unchanged so the funds pre-check and the
// mutation agree on the converted amount.
type BalanceSvc interface {
	// ComputeChange converts a positive amount in currencyCode into a signed
	// change against account, resolving rates for the user on date. The
	// returned ResolvedRate is the amount-currency to base-currency rate used,
	// nil when no conversion was needed.
	ComputeChange(ctx context.Context, user *domain.User, account *domain.Account, direction domain.EntryDirection, amount decimal.Decimal, currencyCode string, date time.Time, allowNegative bool) (*domain.BalanceChange, *domain.ResolvedRate, error)

	// ComputeChangeWithRate is ComputeChange with a caller-supplied
	// amount-currency to base-currency rate, bypassing rate resolution.
	ComputeChangeWithRate(ctx context.Context, user *domain.User, account *domain.Account, direction domain.EntryDirection, amount decimal.Decimal, currencyCode string, rate decimal.Decimal, date time.Time, allowNegative bool) (*domain.BalanceChange, error)
}
