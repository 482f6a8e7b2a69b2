package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	portsrepo "github.com/KwakuBoohene/ackontant/internal/core/ports/repositories"
	"github.com/KwakuBoohene/ackontant/internal/models"
	"github.com/KwakuBoohene/ackontant/internal/utils/mapping"
	"github.com/KwakuBoohene/ackontant/internal/utils/pagination"
)

const transactionColumns = `transaction_id, user_id, account_id, transaction_type, amount, currency_code, base_currency_amount, exchange_rate, description, transaction_date, category_id, transfer_id, is_recurring, recurring_rule, is_archived, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for ledger rows.
// The account repository dependency provides row locking and balance writes
// inside this repository's transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransactionRow(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.TransactionType,
		&m.Amount,
		&m.CurrencyCode,
		&m.BaseCurrencyAmount,
		&m.ExchangeRate,
		&m.Description,
		&m.TransactionDate,
		&m.CategoryID,
		&m.TransferID,
		&m.IsRecurring,
		&m.RecurringRule,
		&m.IsArchived,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertTransactionInTx writes one ledger row plus its tag links.
func insertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	if _, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.UserID,
		modelTxn.AccountID,
		modelTxn.TransactionType,
		modelTxn.Amount,
		modelTxn.CurrencyCode,
		modelTxn.BaseCurrencyAmount,
		modelTxn.ExchangeRate,
		modelTxn.Description,
		modelTxn.TransactionDate,
		modelTxn.CategoryID,
		modelTxn.TransferID,
		modelTxn.IsRecurring,
		modelTxn.RecurringRule,
		modelTxn.IsArchived,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
	}

	if len(txn.TagIDs) > 0 {
		batch := &pgx.Batch{}
		tagQuery := `INSERT INTO transaction_tags (transaction_id, tag_id) VALUES ($1, $2);`
		for _, tagID := range txn.TagIDs {
			batch.Queue(tagQuery, txn.TransactionID, tagID)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to insert tags for transaction %s: %w", txn.TransactionID, err)
		}
	}

	return nil
}

// SaveTransaction persists a transaction and applies its balance change as
// one database transaction: the account row is locked, the funds pre-check
// and balance mutation run against the locked row, and the ledger row is
// inserted; any failure aborts all of it.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, change domain.BalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{change.AccountID})
	if err != nil {
		return fmt.Errorf("failed to lock account for transaction: %w", err)
	}

	if err := r.accountRepo.ApplyBalanceChangeInTx(ctx, tx, locked[change.AccountID], change, txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}

	if err := insertTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction applies the reversing balance change and removes the
// ledger row in one database transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, change domain.BalanceChange, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{change.AccountID})
	if err != nil {
		return fmt.Errorf("failed to lock account for transaction delete: %w", err)
	}

	if err := r.accountRepo.ApplyBalanceChangeInTx(ctx, tx, locked[change.AccountID], change, userID, time.Now().UTC()); err != nil {
		return err
	}

	// Tag links are removed by the ON DELETE CASCADE on transaction_tags.
	ct, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction with its tag IDs.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	modelTxn, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	tagIDs, err := r.findTagIDs(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	domainTxn.TagIDs = tagIDs
	return &domainTxn, nil
}

func (r *PgxTransactionRepository) findTagIDs(ctx context.Context, transactionID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT tag_id FROM transaction_tags WHERE transaction_id = $1 ORDER BY tag_id;`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	var tagIDs []string
	for rows.Next() {
		var tagID string
		if err := rows.Scan(&tagID); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tagIDs = append(tagIDs, tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return tagIDs, nil
}

// ListTransactionsByAccount retrieves a paginated list of an account's
// transactions using token-based pagination, newest first. Ordering is by
// transaction_date with created_at as the tie-breaker, which the token
// encodes as the cursor.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, userID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND account_id = $2
	`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	args := []interface{}{userID, accountID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		query += ` AND (transaction_date, created_at) < ($3, $4)`
	}

	args = append(args, fetchLimit)
	query += ` ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var nextTokenVal *string
	if len(modelTxns) > limit {
		last := modelTxns[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
		modelTxns = modelTxns[:limit]
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nextTokenVal, nil
}

// SummarizeTransactions returns base-currency income and expense totals for a
// user over an inclusive date range. Transfer-linked rows move money between
// the user's own accounts and are excluded from the totals.
func (r *PgxTransactionRepository) SummarizeTransactions(ctx context.Context, userID string, from, to *string) (*domain.TransactionSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(base_currency_amount) FILTER (WHERE transaction_type = 'INCOME'), 0),
			COALESCE(SUM(base_currency_amount) FILTER (WHERE transaction_type = 'EXPENSE'), 0),
			COUNT(*)
		FROM transactions
		WHERE user_id = $1 AND transaction_type IN ('INCOME', 'EXPENSE')
	`
	args := []interface{}{userID}
	if from != nil && *from != "" {
		args = append(args, *from)
		query += ` AND transaction_date::date >= $` + strconv.Itoa(len(args))
	}
	if to != nil && *to != "" {
		args = append(args, *to)
		query += ` AND transaction_date::date <= $` + strconv.Itoa(len(args))
	}
	query += `;`

	var totalIncome, totalExpense decimal.Decimal
	var count int64
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&totalIncome, &totalExpense, &count); err != nil {
		return nil, fmt.Errorf("failed to summarize transactions for user %s: %w", userID, err)
	}

	return &domain.TransactionSummary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		NetAmount:    totalIncome.Sub(totalExpense),
		Count:        count,
	}, nil
}
