package repositories

import (
	"context"
	"time"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByUser retrieves a paginated list of a user's active accounts.
	ListAccountsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable details (name, type).
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountBalanceSupport defines the locking and balance mutation operations
// used inside ledger transactions. The funds pre-check against a locked row
// and the subsequent mutation always use the same converted amounts, so two
// concurrent debits on one account cannot jointly overdraw it.
type AccountBalanceSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for
	// update within a transaction. Callers must pass account IDs in a
	// deterministic order to avoid lock cycles.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangeInTx applies one balance change to a locked account
	// row: enforces the non-negative-balance policy for debits (unless the
	// change allows negative balances), adjusts current_balance and
	// base_currency_balance, and refreshes the conversion cache fields.
	ApplyBalanceChangeInTx(ctx context.Context, tx pgx.Tx, locked domain.Account, change domain.BalanceChange, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
}
