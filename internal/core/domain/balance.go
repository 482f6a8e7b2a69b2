package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection is the direction of a balance mutation. Debit decreases the
// account's balance fields, credit increases them.
type EntryDirection string

const (
	DirectionCredit EntryDirection = "CREDIT"
	DirectionDebit  EntryDirection = "DEBIT"
)

// BalanceChange is a fully-converted, signed mutation of one account's balance
// fields, computed by the balance service and applied by the repository inside
// the operation's database transaction.
//
// NativeDelta and BaseDelta are signed (negative for debits). The funds
// pre-check runs against the locked account row using NativeDelta, so the
// check and the mutation always use the same converted amount.
type BalanceChange struct {
	AccountID   string
	NativeDelta decimal.Decimal
	BaseDelta   decimal.Decimal
	// AllowNegative skips the non-negative-balance policy for debits.
	AllowNegative bool
	// LastExchangeRate / LastConversionDate refresh the account's conversion
	// cache when a cross-currency rate was involved; nil leaves it untouched.
	LastExchangeRate   *decimal.Decimal
	LastConversionDate *time.Time
}

// Inverse returns the exact opposite change, used to reverse a previously
// applied transaction. Reversals never re-check funds going up, and carry the
// caller's allow-negative choice going down.
func (c BalanceChange) Inverse(allowNegative bool) BalanceChange {
	return BalanceChange{
		AccountID:          c.AccountID,
		NativeDelta:        c.NativeDelta.Neg(),
		BaseDelta:          c.BaseDelta.Neg(),
		AllowNegative:      allowNegative,
		LastExchangeRate:   c.LastExchangeRate,
		LastConversionDate: c.LastConversionDate,
	}
}
