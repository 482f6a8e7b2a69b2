package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	portsrepo "github.com/KwakuBoohene/ackontant/internal/core/ports/repositories"
	"github.com/KwakuBoohene/ackontant/internal/models"
	"github.com/KwakuBoohene/ackontant/internal/utils/mapping"
)

const platformRateColumns = `exchange_rate_id, from_currency_code, to_currency_code, rate, rate_date, created_at, created_by, last_updated_at, last_updated_by`

const userRateColumns = `user_exchange_rate_id, user_id, from_currency_code, to_currency_code, rate, rate_date, is_active, note, created_at, created_by, last_updated_at, last_updated_by`

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for platform and user
// exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func scanPlatformRateRow(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID,
		&m.FromCurrencyCode,
		&m.ToCurrencyCode,
		&m.Rate,
		&m.RateDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanUserRateRow(row pgx.Row) (models.UserExchangeRate, error) {
	var m models.UserExchangeRate
	err := row.Scan(
		&m.UserExchangeRateID,
		&m.UserID,
		&m.FromCurrencyCode,
		&m.ToCurrencyCode,
		&m.Rate,
		&m.RateDate,
		&m.IsActive,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// UpsertPlatformRate inserts a platform rate or replaces the rate value for
// an existing (from, to, date) key.
func (r *PgxExchangeRateRepository) UpsertPlatformRate(ctx context.Context, rate domain.ExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (` + platformRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (from_currency_code, to_currency_code, rate_date) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.FromCurrencyCode,
		modelRate.ToCurrencyCode,
		modelRate.Rate,
		modelRate.RateDate,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert platform rate %s/%s: %w", modelRate.FromCurrencyCode, modelRate.ToCurrencyCode, err)
	}
	return nil
}

// FindPlatformRate retrieves the platform rate for a pair on an exact date.
func (r *PgxExchangeRateRepository) FindPlatformRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + platformRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND rate_date = $3;
	`
	modelRate, err := scanPlatformRateRow(r.Pool.QueryRow(ctx, query, fromCurrencyCode, toCurrencyCode, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find platform rate %s/%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// FindLatestPlatformRate retrieves the most recent platform rate for a pair.
func (r *PgxExchangeRateRepository) FindLatestPlatformRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + platformRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY rate_date DESC
		LIMIT 1;
	`
	modelRate, err := scanPlatformRateRow(r.Pool.QueryRow(ctx, query, fromCurrencyCode, toCurrencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest platform rate %s/%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListPlatformRates retrieves platform rates with optional pair filtering,
// newest first.
func (r *PgxExchangeRateRepository) ListPlatformRates(ctx context.Context, fromCurrencyCode, toCurrencyCode *string, limit int, offset int) ([]domain.ExchangeRate, error) {
	query := `SELECT ` + platformRateColumns + ` FROM exchange_rates`
	args := []interface{}{}
	where := ""
	if fromCurrencyCode != nil {
		args = append(args, *fromCurrencyCode)
		where = ` WHERE from_currency_code = $` + strconv.Itoa(len(args))
	}
	if toCurrencyCode != nil {
		args = append(args, *toCurrencyCode)
		if where == "" {
			where = ` WHERE to_currency_code = $` + strconv.Itoa(len(args))
		} else {
			where += ` AND to_currency_code = $` + strconv.Itoa(len(args))
		}
	}
	args = append(args, limit, offset)
	query += where + ` ORDER BY rate_date DESC, from_currency_code, to_currency_code LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query platform rates: %w", err)
	}
	defer rows.Close()

	modelRates := []models.ExchangeRate{}
	for rows.Next() {
		m, err := scanPlatformRateRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan platform rate row: %w", err)
		}
		modelRates = append(modelRates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating platform rate rows: %w", err)
	}

	return mapping.ToDomainExchangeRateSlice(modelRates), nil
}

// FindUserExchangeRateByID retrieves a user override row by its ID.
func (r *PgxExchangeRateRepository) FindUserExchangeRateByID(ctx context.Context, userExchangeRateID string) (*domain.UserExchangeRate, error) {
	query := `
		SELECT ` + userRateColumns + `
		FROM user_exchange_rates
		WHERE user_exchange_rate_id = $1;
	`
	modelRate, err := scanUserRateRow(r.Pool.QueryRow(ctx, query, userExchangeRateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user rate %s: %w", userExchangeRateID, err)
	}

	domainRate := mapping.ToDomainUserExchangeRate(modelRate)
	return &domainRate, nil
}

// FindActiveUserRate retrieves the active override for (user, from, to, date).
// When duplicates exist the most recently created row wins.
func (r *PgxExchangeRateRepository) FindActiveUserRate(ctx context.Context, userID, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.UserExchangeRate, error) {
	query := `
		SELECT ` + userRateColumns + `
		FROM user_exchange_rates
		WHERE user_id = $1 AND from_currency_code = $2 AND to_currency_code = $3 AND rate_date = $4 AND is_active
		ORDER BY created_at DESC
		LIMIT 1;
	`
	modelRate, err := scanUserRateRow(r.Pool.QueryRow(ctx, query, userID, fromCurrencyCode, toCurrencyCode, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active user rate %s/%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}

	domainRate := mapping.ToDomainUserExchangeRate(modelRate)
	return &domainRate, nil
}

// ListUserRates retrieves a user's override rates, newest first.
func (r *PgxExchangeRateRepository) ListUserRates(ctx context.Context, userID string, limit int, offset int) ([]domain.UserExchangeRate, error) {
	query := `
		SELECT ` + userRateColumns + `
		FROM user_exchange_rates
		WHERE user_id = $1
		ORDER BY rate_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query user rates for %s: %w", userID, err)
	}
	defer rows.Close()

	modelRates := []models.UserExchangeRate{}
	for rows.Next() {
		m, err := scanUserRateRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user rate row: %w", err)
		}
		modelRates = append(modelRates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rate rows: %w", err)
	}

	return mapping.ToDomainUserExchangeRateSlice(modelRates), nil
}

// SaveUserExchangeRate inserts a new override and deactivates any previous
// active override for the same (user, from, to, date) in one transaction.
func (r *PgxExchangeRateRepository) SaveUserExchangeRate(ctx context.Context, rate domain.UserExchangeRate) error {
	modelRate := mapping.ToModelUserExchangeRate(rate)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	deactivateQuery := `
		UPDATE user_exchange_rates
		SET is_active = FALSE, last_updated_at = $5, last_updated_by = $1
		WHERE user_id = $1 AND from_currency_code = $2 AND to_currency_code = $3 AND rate_date = $4 AND is_active;
	`
	if _, err := tx.Exec(ctx, deactivateQuery,
		modelRate.UserID,
		modelRate.FromCurrencyCode,
		modelRate.ToCurrencyCode,
		modelRate.RateDate,
		modelRate.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to deactivate previous user rates: %w", err)
	}

	insertQuery := `
		INSERT INTO user_exchange_rates (` + userRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		modelRate.UserExchangeRateID,
		modelRate.UserID,
		modelRate.FromCurrencyCode,
		modelRate.ToCurrencyCode,
		modelRate.Rate,
		modelRate.RateDate,
		modelRate.IsActive,
		modelRate.Note,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to insert user rate %s: %w", modelRate.UserExchangeRateID, err)
	}

	return r.Commit(ctx, tx)
}

// DeactivateUserExchangeRate clears the is_active flag on an override.
func (r *PgxExchangeRateRepository) DeactivateUserExchangeRate(ctx context.Context, userExchangeRateID string, userID string, now time.Time) error {
	query := `
		UPDATE user_exchange_rates
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE user_exchange_rate_id = $1 AND is_active;
	`
	ct, err := r.Pool.Exec(ctx, query, userExchangeRateID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate user rate %s: %w", userExchangeRateID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
