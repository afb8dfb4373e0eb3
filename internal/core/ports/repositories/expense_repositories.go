package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
)

// ExpenseBalanceWriter defines the balance-coupled write operations for
// expenses. Each call runs as one atomic unit: the expense row and the owner's
// balance change together or not at all. The owner's balance row is replaced
// only if its version still equals expectedVersion; otherwise the unit rolls
// back and apperrors.ErrConflict is returned, distinctly from all other
// failures, so the caller can re-read and retry.
type ExpenseBalanceWriter interface {
	// SaveExpenseWithBalance inserts the expense and replaces the owner's balance.
	SaveExpenseWithBalance(ctx context.Context, expense domain.Expense, newBalance domain.Money, expectedVersion int64) error

	// UpdateExpenseWithBalance updates the expense row and replaces the owner's balance.
	UpdateExpenseWithBalance(ctx context.Context, expense domain.Expense, newBalance domain.Money, expectedVersion int64) error

	// MarkExpenseDeletedWithBalance soft-deletes the expense and replaces the
	// owner's balance with the compensated value.
	MarkExpenseDeletedWithBalance(ctx context.Context, expense domain.Expense, deletedAt time.Time, newBalance domain.Money, expectedVersion int64) error
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific non-deleted expense.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByUser retrieves a page of non-deleted expenses for a user,
	// newest first, optionally bounded by an inclusive date range. It returns
	// the expenses and a cursor for the next page.
	ListExpensesByUser(ctx context.Context, userID string, limit int, nextToken *string, from, to *time.Time) ([]domain.Expense, *string, error)

	// SumExpensesByCategoryForMonth returns per-category totals of non-deleted
	// expenses for the given calendar month.
	SumExpensesByCategoryForMonth(ctx context.Context, userID string, year int, month time.Month) (map[domain.ExpenseCategory]decimal.Decimal, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseBalanceWriter
	ExpenseReader
}
