package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	portsrepo "github.com/dpmarinov/personal_budget_app/internal/core/ports/repositories"
	portssvc "github.com/dpmarinov/personal_budget_app/internal/core/ports/services"
	"github.com/dpmarinov/personal_budget_app/internal/dto"
	"github.com/dpmarinov/personal_budget_app/internal/middleware"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// expenseService implements the balance-coupled expense workflow. Every write
// goes through the repository as one atomic unit carrying the recomputed
// balance and the balance version the computation was based on.
type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	userRepo    portsrepo.UserReader
	registry    *domain.CurrencyRegistry
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, userRepo portsrepo.UserReader, registry *domain.CurrencyRegistry) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		registry:    registry,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// AddExpense records a new expense and withdraws its amount from the owner's
// balance in one atomic unit. A stale balance version surfaces as
// apperrors.ErrConflict and leaves nothing recorded.
func (s *expenseService) AddExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	amount, err := domain.NewMoneyWithRegistry(s.registry, req.Amount, req.CurrencyCode)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if amount.CurrencyCode() != user.CurrencyPreference() {
		return "", fmt.Errorf("%w: expense is in %s but the balance is kept in %s",
			domain.ErrCurrencyMismatch, amount.CurrencyCode(), user.CurrencyPreference())
	}

	expense, err := domain.NewExpense(amount, req.ExpenseDate, req.Description, domain.ExpenseCategory(req.Category), userID)
	if err != nil {
		return "", err
	}

	if err := user.Withdraw(amount); err != nil {
		return "", err
	}

	err = s.expenseRepo.SaveExpenseWithBalance(ctx, *expense, user.Balance, user.BalanceVersion)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Info("expense save lost a concurrent balance update", slog.String("user_id", userID))
			return "", err
		}
		logger.Error("failed to save expense", slog.String("user_id", userID), slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to save expense: %w", err)
	}

	logger.Info("expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("user_id", userID),
		slog.String("amount", expense.Amount.String()))
	return expense.ExpenseID, nil
}

// UpdateExpense amends an expense and applies the amount delta to the owner's
// balance in the same atomic unit.
func (s *expenseService) UpdateExpense(ctx context.Context, userID string, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.findOwnedExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	oldAmount := expense.Amount

	if req.Amount != nil {
		newAmount, err := domain.NewMoneyWithRegistry(s.registry, *req.Amount, oldAmount.CurrencyCode())
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		if err := expense.UpdateAmount(newAmount); err != nil {
			return nil, err
		}
	}
	if req.ExpenseDate != nil {
		if err := expense.UpdateDate(*req.ExpenseDate); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := expense.UpdateDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		if err := expense.ChangeCategory(domain.ExpenseCategory(*req.Category)); err != nil {
			return nil, err
		}
	}

	// Reverse the old amount, then apply the new one.
	if err := user.Deposit(oldAmount); err != nil {
		return nil, err
	}
	if err := user.Withdraw(expense.Amount); err != nil {
		return nil, err
	}

	err = s.expenseRepo.UpdateExpenseWithBalance(ctx, *expense, user.Balance, user.BalanceVersion)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Info("expense update lost a concurrent balance update", slog.String("user_id", userID))
			return nil, err
		}
		logger.Error("failed to update expense", slog.String("expense_id", expenseID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return expense, nil
}

// DeleteExpense soft-deletes an expense and deposits its amount back into the
// owner's balance in the same atomic unit.
func (s *expenseService) DeleteExpense(ctx context.Context, userID string, expenseID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.findOwnedExpense(ctx, userID, expenseID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	if err := user.Deposit(expense.Amount); err != nil {
		return err
	}

	err = s.expenseRepo.MarkExpenseDeletedWithBalance(ctx, *expense, time.Now().UTC(), user.Balance, user.BalanceVersion)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Info("expense delete lost a concurrent balance update", slog.String("user_id", userID))
			return err
		}
		logger.Error("failed to delete expense", slog.String("expense_id", expenseID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	logger.Info("expense deleted", slog.String("expense_id", expenseID), slog.String("user_id", userID))
	return nil
}

// GetExpenseByID retrieves one of the user's expenses. Expenses of other users
// are reported as not found.
func (s *expenseService) GetExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	return s.findOwnedExpense(ctx, userID, expenseID)
}

// ListExpenses retrieves a paginated list of the user's expenses, newest first.
func (s *expenseService) ListExpenses(ctx context.Context, userID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	expenses, nextToken, err := s.expenseRepo.ListExpensesByUser(ctx, userID, limit, params.NextToken, params.From, params.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return &dto.ListExpensesResponse{
		Expenses:  dto.ToExpenseResponses(expenses),
		NextToken: nextToken,
	}, nil
}

func (s *expenseService) findOwnedExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	if expense.UserID != userID {
		// Do not reveal that the expense exists for someone else.
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("expense %s not found", expenseID))
	}
	return expense, nil
}
