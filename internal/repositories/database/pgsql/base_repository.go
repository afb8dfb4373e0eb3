package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
)

// BaseRepository provides common transaction handling for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back an already finished
// transaction is not an error.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// replaceBalanceInTx replaces the user's balance inside an open transaction,
// guarded by the optimistic version check. If the version moved since the
// caller read it, no row matches and apperrors.ErrConflict is returned so the
// surrounding transaction rolls back with nothing applied.
func replaceBalanceInTx(ctx context.Context, tx pgx.Tx, userID string, newBalance domain.Money, expectedVersion int64) error {
	query := `
		UPDATE users
		SET balance_amount = $1, balance_currency = $2, balance_version = balance_version + 1, last_updated_at = NOW(), last_updated_by = $3
		WHERE user_id = $3 AND balance_version = $4 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, newBalance.Amount(), newBalance.CurrencyCode(), userID, expectedVersion)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for user "+userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}
