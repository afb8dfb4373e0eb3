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

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, user_id, amount, currency_code, expense_date, description, category, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.UserID,
		&m.Amount,
		&m.CurrencyCode,
		&m.ExpenseDate,
		&m.Description,
		&m.Category,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

// SaveExpenseWithBalance inserts the expense row and replaces the owner's
// balance inside a single database transaction. A stale expectedVersion makes
// the balance update match no row, the transaction rolls back and
// apperrors.ErrConflict comes back to the caller.
func (r *PgxExpenseRepository) SaveExpenseWithBalance(ctx context.Context, expense domain.Expense, newBalance domain.Money, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelExpense := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (expense_id, user_id, amount, currency_code, expense_date, description, category, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		modelExpense.ExpenseID,
		modelExpense.UserID,
		modelExpense.Amount,
		modelExpense.CurrencyCode,
		modelExpense.ExpenseDate,
		modelExpense.Description,
		modelExpense.Category,
		modelExpense.CreatedAt,
		modelExpense.CreatedBy,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert expense "+modelExpense.ExpenseID, err)
	}

	if err := replaceBalanceInTx(ctx, tx, expense.UserID, newBalance, expectedVersion); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateExpenseWithBalance updates the expense row and replaces the owner's
// balance under the same transactional and version discipline as
// SaveExpenseWithBalance.
func (r *PgxExpenseRepository) UpdateExpenseWithBalance(ctx context.Context, expense domain.Expense, newBalance domain.Money, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelExpense := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET amount = $1, currency_code = $2, expense_date = $3, description = $4, category = $5, last_updated_at = $6, last_updated_by = $7
		WHERE expense_id = $8 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelExpense.Amount,
		modelExpense.CurrencyCode,
		modelExpense.ExpenseDate,
		modelExpense.Description,
		modelExpense.Category,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
		modelExpense.ExpenseID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+modelExpense.ExpenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := replaceBalanceInTx(ctx, tx, expense.UserID, newBalance, expectedVersion); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// MarkExpenseDeletedWithBalance soft-deletes the expense row and replaces the
// owner's balance with the compensated value in one transaction.
func (r *PgxExpenseRepository) MarkExpenseDeletedWithBalance(ctx context.Context, expense domain.Expense, deletedAt time.Time, newBalance domain.Money, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE expenses
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE expense_id = $3 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, deletedAt, expense.UserID, expense.ExpenseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark expense deleted "+expense.ExpenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := replaceBalanceInTx(ctx, tx, expense.UserID, newBalance, expectedVersion); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 AND deleted_at IS NULL;`
	modelExpense, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}

	domainExpense, err := mapping.ToDomainExpense(modelExpense)
	if err != nil {
		return nil, fmt.Errorf("failed to map expense %s: %w", expenseID, err)
	}
	return &domainExpense, nil
}

// ListExpensesByUser retrieves a page of expenses ordered by expense_date DESC,
// created_at DESC, using token-based pagination. One extra row is fetched to
// decide whether a next page exists.
func (r *PgxExpenseRepository) ListExpensesByUser(ctx context.Context, userID string, limit int, nextToken *string, from, to *time.Time) ([]domain.Expense, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{userID}

	if from != nil {
		args = append(args, *from)
		baseQuery += ` AND expense_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		baseQuery += ` AND expense_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		baseQuery += ` AND (expense_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY expense_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query expenses for user "+userID, err)
	}
	defer rows.Close()

	modelExpenses := make([]models.Expense, 0, fetchLimit)
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		modelExpenses = append(modelExpenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}

	var nextTokenVal *string
	if len(modelExpenses) > limit {
		last := modelExpenses[limit-1]
		token := pagination.EncodeToken(last.ExpenseDate, last.CreatedAt)
		nextTokenVal = &token
		modelExpenses = modelExpenses[:limit]
	}

	domainExpenses, err := mapping.ToDomainExpenseSlice(modelExpenses)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to map expenses: %w", err)
	}
	return domainExpenses, nextTokenVal, nil
}

// SumExpensesByCategoryForMonth returns per-category totals of non-deleted
// expenses within the given calendar month. Categories with no expenses are
// absent from the map.
func (r *PgxExpenseRepository) SumExpensesByCategoryForMonth(ctx context.Context, userID string, year int, month time.Month) (map[domain.ExpenseCategory]decimal.Decimal, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query := `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1 AND deleted_at IS NULL AND expense_date >= $2 AND expense_date < $3
		GROUP BY category;
	`
	rows, err := r.Pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses for user %s: %w", userID, err)
	}
	defer rows.Close()

	sums := make(map[domain.ExpenseCategory]decimal.Decimal)
	for rows.Next() {
		var category string
		var total decimal.Decimal
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense sum row: %w", err)
		}
		sums[domain.ExpenseCategory(category)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense sum rows: %w", err)
	}

	return sums, nil
}
