package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
)

// IncomeBalanceWriter defines the balance-coupled write operations for
// incomes, under the same atomic and versioned discipline as
// ExpenseBalanceWriter.
type IncomeBalanceWriter interface {
	// SaveIncomeWithBalance inserts the income and replaces the owner's balance.
	SaveIncomeWithBalance(ctx context.Context, income domain.Income, newBalance domain.Money, expectedVersion int64) error

	// UpdateIncomeWithBalance updates the income row and replaces the owner's balance.
	UpdateIncomeWithBalance(ctx context.Context, income domain.Income, newBalance domain.Money, expectedVersion int64) error

	// MarkIncomeDeletedWithBalance soft-deletes the income and replaces the
	// owner's balance with the compensated value.
	MarkIncomeDeletedWithBalance(ctx context.Context, income domain.Income, deletedAt time.Time, newBalance domain.Money, expectedVersion int64) error
}

// IncomeReader defines read operations for income data
type IncomeReader interface {
	// FindIncomeByID retrieves a specific non-deleted income.
	FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error)

	// ListIncomesByUser retrieves a page of non-deleted incomes for a user,
	// newest first, optionally bounded by an inclusive date range.
	ListIncomesByUser(ctx context.Context, userID string, limit int, nextToken *string, from, to *time.Time) ([]domain.Income, *string, error)

	// SumIncomesForMonth returns the total of non-deleted incomes for the
	// given calendar month.
	SumIncomesForMonth(ctx context.Context, userID string, year int, month time.Month) (decimal.Decimal, error)
}

// IncomeRepositoryFacade combines all income-related repository interfaces
type IncomeRepositoryFacade interface {
	IncomeBalanceWriter
	IncomeReader
}
