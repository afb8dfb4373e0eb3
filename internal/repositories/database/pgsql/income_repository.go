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

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	portsrepo "github.com/dpmarinov/personal_budget_app/internal/core/ports/repositories"
	"github.com/dpmarinov/personal_budget_app/internal/models"
	"github.com/dpmarinov/personal_budget_app/internal/utils/mapping"
	"github.com/dpmarinov/personal_budget_app/internal/utils/pagination"
)

type PgxIncomeRepository struct {
	BaseRepository
}

func newPgxIncomeRepository(pool *pgxpool.Pool) portsrepo.IncomeRepositoryFacade {
	return &PgxIncomeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.IncomeRepositoryFacade = (*PgxIncomeRepository)(nil)

const incomeColumns = `income_id, user_id, amount, currency_code, income_date, description, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanIncome(row pgx.Row) (models.Income, error) {
	var m models.Income
	err := row.Scan(
		&m.IncomeID,
		&m.UserID,
		&m.Amount,
		&m.CurrencyCode,
		&m.IncomeDate,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

// SaveIncomeWithBalance inserts the income row and replaces the owner's
// balance inside a single database transaction, under the same version
// discipline as the expense writes.
func (r *PgxIncomeRepository) SaveIncomeWithBalance(ctx context.Context, income domain.Income, newBalance domain.Money, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelIncome := mapping.ToModelIncome(income)
	query := `
		INSERT INTO incomes (income_id, user_id, amount, currency_code, income_date, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		modelIncome.IncomeID,
		modelIncome.UserID,
		modelIncome.Amount,
		modelIncome.CurrencyCode,
		modelIncome.IncomeDate,
		modelIncome.Description,
		modelIncome.CreatedAt,
		modelIncome.CreatedBy,
		modelIncome.LastUpdatedAt,
		modelIncome.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert income "+modelIncome.IncomeID, err)
	}

	if err := replaceBalanceInTx(ctx, tx, income.UserID, newBalance, expectedVersion); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateIncomeWithBalance updates the income row and replaces the owner's
// balance in one transaction.
func (r *PgxIncomeRepository) UpdateIncomeWithBalance(ctx context.Context, income domain.Income, newBalance domain.Money, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelIncome := mapping.ToModelIncome(income)
	query := `
		UPDATE incomes
		SET amount = $1, currency_code = $2, income_date = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE income_id = $7 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelIncome.Amount,
		modelIncome.CurrencyCode,
		modelIncome.IncomeDate,
		modelIncome.Description,
		modelIncome.LastUpdatedAt,
		modelIncome.LastUpdatedBy,
		modelIncome.IncomeID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update income "+modelIncome.IncomeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := replaceBalanceInTx(ctx, tx, income.UserID, newBalance, expectedVersion); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// MarkIncomeDeletedWithBalance soft-deletes the income row and replaces the
// owner's balance with the compensated value in one transaction.
func (r *PgxIncomeRepository) MarkIncomeDeletedWithBalance(ctx context.Context, income domain.Income, deletedAt time.Time, newBalance domain.Money, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE incomes
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE income_id = $3 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, deletedAt, income.UserID, income.IncomeID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark income deleted "+income.IncomeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := replaceBalanceInTx(ctx, tx, income.UserID, newBalance, expectedVersion); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxIncomeRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE income_id = $1 AND deleted_at IS NULL;`
	modelIncome, err := scanIncome(r.Pool.QueryRow(ctx, query, incomeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find income by ID %s: %w", incomeID, err)
	}

	domainIncome, err := mapping.ToDomainIncome(modelIncome)
	if err != nil {
		return nil, fmt.Errorf("failed to map income %s: %w", incomeID, err)
	}
	return &domainIncome, nil
}

// ListIncomesByUser retrieves a page of incomes ordered by income_date DESC,
// created_at DESC, using token-based pagination.
func (r *PgxIncomeRepository) ListIncomesByUser(ctx context.Context, userID string, limit int, nextToken *string, from, to *time.Time) ([]domain.Income, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + incomeColumns + `
		FROM incomes
		WHERE user_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{userID}

	if from != nil {
		args = append(args, *from)
		baseQuery += ` AND income_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		baseQuery += ` AND income_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		baseQuery += ` AND (income_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY income_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query incomes for user "+userID, err)
	}
	defer rows.Close()

	modelIncomes := make([]models.Income, 0, fetchLimit)
	for rows.Next() {
		m, err := scanIncome(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan income row", err)
		}
		modelIncomes = append(modelIncomes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating income rows", err)
	}

	var nextTokenVal *string
	if len(modelIncomes) > limit {
		last := modelIncomes[limit-1]
		token := pagination.EncodeToken(last.IncomeDate, last.CreatedAt)
		nextTokenVal = &token
		modelIncomes = modelIncomes[:limit]
	}

	domainIncomes, err := mapping.ToDomainIncomeSlice(modelIncomes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to map incomes: %w", err)
	}
	return domainIncomes, nextTokenVal, nil
}

// SumIncomesForMonth returns the total of non-deleted incomes within the given
// calendar month.
func (r *PgxIncomeRepository) SumIncomesForMonth(ctx context.Context, userID string, year int, month time.Month) (decimal.Decimal, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM incomes
		WHERE user_id = $1 AND deleted_at IS NULL AND income_date >= $2 AND income_date < $3;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum incomes for user %s: %w", userID, err)
	}
	return total, nil
}
