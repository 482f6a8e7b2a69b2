package repositories

import (
	"context"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
)

// TransferReader defines read operations for transfers
type TransferReader interface {
	// FindTransferByID retrieves a transfer by its ID.
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)

	// ListTransfersByUser retrieves a paginated list of transfers for a user
	// using token-based pagination, newest first.
	ListTransfersByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transfer, *string, error)
}

// TransferWriter defines the transfer protocol mutations. SaveTransfer and
// CancelTransfer each run as a single database transaction covering the
// transfer row, both linked transaction rows and both account balances.
type TransferWriter interface {
	// SaveTransfer persists the transfer with its two linked transactions and
	// applies both balance changes. The transfer is written as PENDING and
	// marked COMPLETED in the same database transaction once both balances
	// have been applied.
	SaveTransfer(ctx context.Context, transfer domain.Transfer, sourceTxn, destTxn domain.Transaction, sourceChange, destChange domain.BalanceChange) error

	// CancelTransfer applies both reversing balance changes, deletes the two
	// linked transactions and marks the transfer CANCELLED.
	CancelTransfer(ctx context.Context, transfer domain.Transfer, sourceChange, destChange domain.BalanceChange, userID string) error
}

// TransferRepositoryFacade combines all transfer repository interfaces
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}
