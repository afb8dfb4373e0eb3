package services

import (
	"context"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	"github.com/dpmarinov/personal_budget_app/internal/dto"
)

// ExpenseWriterSvc defines the balance-coupled expense operations. Each call
// either records the expense and its balance effect together or changes
// nothing, reporting a typed failure.
type ExpenseWriterSvc interface {
	// AddExpense records a new expense and withdraws its amount from the
	// owner's balance. Returns the new expense's ID.
	AddExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (string, error)

	// UpdateExpense amends an expense and applies the amount delta to the
	// owner's balance.
	UpdateExpense(ctx context.Context, userID string, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)

	// DeleteExpense soft-deletes an expense and deposits its amount back.
	DeleteExpense(ctx context.Context, userID string, expenseID string) error
}

// ExpenseReaderSvc defines pure read projections over committed expenses.
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves one of the user's expenses.
	GetExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a paginated list of the user's expenses.
	ListExpenses(ctx context.Context, userID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseWriterSvc
	ExpenseReaderSvc
}
