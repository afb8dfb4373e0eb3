package services

import (
	"context"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	"github.com/dpmarinov/personal_budget_app/internal/dto"
)

// IncomeWriterSvc defines the balance-coupled income operations, symmetric to
// ExpenseWriterSvc with the balance effect reversed.
type IncomeWriterSvc interface {
	// AddIncome records a new income and deposits its amount into the owner's
	// balance. Returns the new income's ID.
	AddIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (string, error)

	// UpdateIncome amends an income and applies the amount delta to the
	// owner's balance.
	UpdateIncome(ctx context.Context, userID string, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error)

	// DeleteIncome soft-deletes an income and withdraws its amount back.
	DeleteIncome(ctx context.Context, userID string, incomeID string) error
}

// IncomeReaderSvc defines pure read projections over committed incomes.
type IncomeReaderSvc interface {
	// GetIncomeByID retrieves one of the user's incomes.
	GetIncomeByID(ctx context.Context, userID string, incomeID string) (*domain.Income, error)

	// ListIncomes retrieves a paginated list of the user's incomes.
	ListIncomes(ctx context.Context, userID string, params dto.ListIncomesParams) (*dto.ListIncomesResponse, error)
}

// IncomeSvcFacade combines all income-related service interfaces
type IncomeSvcFacade interface {
	IncomeWriterSvc
	IncomeReaderSvc
}
