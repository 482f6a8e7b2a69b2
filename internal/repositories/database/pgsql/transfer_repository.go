package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	portsrepo "github.com/KwakuBoohene/ackontant/internal/core/ports/repositories"
	"github.com/KwakuBoohene/ackontant/internal/models"
	"github.com/KwakuBoohene/ackontant/internal/utils/mapping"
	"github.com/KwakuBoohene/ackontant/internal/utils/pagination"
)

const transferColumns = `transfer_id, user_id, source_account_id, destination_account_id, amount, source_currency_code, destination_currency_code, exchange_rate, base_currency_amount, transfer_date, description, status, rate_source, user_exchange_rate_id, source_transaction_id, destination_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransferRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransferRepository creates a new repository for transfer aggregates.
func newPgxTransferRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

func scanTransferRow(row pgx.Row) (models.Transfer, error) {
	var m models.Transfer
	err := row.Scan(
		&m.TransferID,
		&m.UserID,
		&m.SourceAccountID,
		&m.DestinationAccountID,
		&m.Amount,
		&m.SourceCurrencyCode,
		&m.DestinationCurrencyCode,
		&m.ExchangeRate,
		&m.BaseCurrencyAmount,
		&m.TransferDate,
		&m.Description,
		&m.Status,
		&m.RateSource,
		&m.UserExchangeRateID,
		&m.SourceTransactionID,
		&m.DestinationTransactionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// lockBothAccounts locks the two account rows in ascending ID order so two
// opposing transfers cannot deadlock each other.
func (r *PgxTransferRepository) lockBothAccounts(ctx context.Context, tx pgx.Tx, firstID, secondID string) (map[string]domain.Account, error) {
	ids := []string{firstID, secondID}
	sort.Strings(ids)
	return r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, ids)
}

// SaveTransfer persists the transfer with its two linked transactions and
// applies both balance changes in one database transaction. The transfer row
// is written as PENDING and marked COMPLETED once both balances are applied;
// a failure at any point aborts everything, so a partially applied transfer
// is never visible.
func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer, sourceTxn, destTxn domain.Transaction, sourceChange, destChange domain.BalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelTransfer := mapping.ToModelTransfer(transfer)
	insertQuery := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		modelTransfer.TransferID,
		modelTransfer.UserID,
		modelTransfer.SourceAccountID,
		modelTransfer.DestinationAccountID,
		modelTransfer.Amount,
		modelTransfer.SourceCurrencyCode,
		modelTransfer.DestinationCurrencyCode,
		modelTransfer.ExchangeRate,
		modelTransfer.BaseCurrencyAmount,
		modelTransfer.TransferDate,
		modelTransfer.Description,
		modelTransfer.Status,
		modelTransfer.RateSource,
		modelTransfer.UserExchangeRateID,
		modelTransfer.SourceTransactionID,
		modelTransfer.DestinationTransactionID,
		modelTransfer.CreatedAt,
		modelTransfer.CreatedBy,
		modelTransfer.LastUpdatedAt,
		modelTransfer.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert transfer %s: %w", modelTransfer.TransferID, err)
	}

	locked, err := r.lockBothAccounts(ctx, tx, transfer.SourceAccountID, transfer.DestinationAccountID)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for transfer: %w", err)
	}

	// The source debit carries the funds pre-check; the destination credit
	// cannot fail on funds.
	if err := r.accountRepo.ApplyBalanceChangeInTx(ctx, tx, locked[sourceChange.AccountID], sourceChange, transfer.CreatedBy, transfer.CreatedAt); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceChangeInTx(ctx, tx, locked[destChange.AccountID], destChange, transfer.CreatedBy, transfer.CreatedAt); err != nil {
		return err
	}

	if err := insertTransactionInTx(ctx, tx, sourceTxn); err != nil {
		return err
	}
	if err := insertTransactionInTx(ctx, tx, destTxn); err != nil {
		return err
	}

	completeQuery := `UPDATE transfers SET status = $2 WHERE transfer_id = $1;`
	if _, err := tx.Exec(ctx, completeQuery, transfer.TransferID, string(domain.TransferCompleted)); err != nil {
		return fmt.Errorf("failed to complete transfer %s: %w", transfer.TransferID, err)
	}

	return r.Commit(ctx, tx)
}

// CancelTransfer applies both reversing balance changes, deletes the two
// linked transactions and marks the transfer CANCELLED, all in one database
// transaction.
func (r *PgxTransferRepository) CancelTransfer(ctx context.Context, transfer domain.Transfer, sourceChange, destChange domain.BalanceChange, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()

	locked, err := r.lockBothAccounts(ctx, tx, transfer.SourceAccountID, transfer.DestinationAccountID)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for transfer cancel: %w", err)
	}

	if err := r.accountRepo.ApplyBalanceChangeInTx(ctx, tx, locked[sourceChange.AccountID], sourceChange, userID, now); err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceChangeInTx(ctx, tx, locked[destChange.AccountID], destChange, userID, now); err != nil {
		return err
	}

	// Clear the transaction pointers before deleting the rows they refer to.
	cancelQuery := `
		UPDATE transfers
		SET status = $2, source_transaction_id = NULL, destination_transaction_id = NULL, last_updated_at = $3, last_updated_by = $4
		WHERE transfer_id = $1 AND status = $5;
	`
	ct, err := tx.Exec(ctx, cancelQuery, transfer.TransferID, string(domain.TransferCancelled), now, userID, string(domain.TransferCompleted))
	if err != nil {
		return fmt.Errorf("failed to cancel transfer %s: %w", transfer.TransferID, err)
	}
	if ct.RowsAffected() == 0 {
		// The row changed state between the service's check and this update.
		return fmt.Errorf("%w: transfer %s is not in a cancellable state", apperrors.ErrInvalidState, transfer.TransferID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transfer_id = $1;`, transfer.TransferID); err != nil {
		return fmt.Errorf("failed to delete transactions for transfer %s: %w", transfer.TransferID, err)
	}

	return r.Commit(ctx, tx)
}

// FindTransferByID retrieves a transfer by its ID.
func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_id = $1;`

	modelTransfer, err := scanTransferRow(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transfer by ID %s: %w", transferID, err)
	}

	domainTransfer := mapping.ToDomainTransfer(modelTransfer)
	return &domainTransfer, nil
}

// ListTransfersByUser retrieves a paginated list of a user's transfers using
// token-based pagination, newest first.
func (r *PgxTransferRepository) ListTransfersByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transfer, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE user_id = $1
	`
	orderByClause := `ORDER BY transfer_date DESC, created_at DESC`

	args := []interface{}{userID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (transfer_date, created_at) < ($2, $3)`
	}

	args = append(args, fetchLimit)
	query += ` ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transfers for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelTransfers := []models.Transfer{}
	for rows.Next() {
		m, err := scanTransferRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transfer row: %w", err)
		}
		modelTransfers = append(modelTransfers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transfer rows: %w", err)
	}

	var nextTokenVal *string
	if len(modelTransfers) > limit {
		last := modelTransfers[limit-1]
		token := pagination.EncodeToken(last.TransferDate, last.CreatedAt)
		nextTokenVal = &token
		modelTransfers = modelTransfers[:limit]
	}

	return mapping.ToDomainTransferSlice(modelTransfers), nextTokenVal, nil
}
