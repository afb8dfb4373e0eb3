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

// incomeService mirrors expenseService with the balance effect reversed:
// recording an income deposits, deleting one withdraws.
type incomeService struct {
	incomeRepo portsrepo.IncomeRepositoryFacade
	userRepo   portsrepo.UserReader
	registry   *domain.CurrencyRegistry
}

// NewIncomeService creates a new income service.
func NewIncomeService(incomeRepo portsrepo.IncomeRepositoryFacade, userRepo portsrepo.UserReader, registry *domain.CurrencyRegistry) portssvc.IncomeSvcFacade {
	return &incomeService{
		incomeRepo: incomeRepo,
		userRepo:   userRepo,
		registry:   registry,
	}
}

var _ portssvc.IncomeSvcFacade = (*incomeService)(nil)

// AddIncome records a new income and deposits its amount into the owner's
// balance in one atomic unit.
func (s *incomeService) AddIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (string, error) {
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
		return "", fmt.Errorf("%w: income is in %s but the balance is kept in %s",
			domain.ErrCurrencyMismatch, amount.CurrencyCode(), user.CurrencyPreference())
	}

	income, err := domain.NewIncome(amount, req.IncomeDate, req.Description, userID)
	if err != nil {
		return "", err
	}

	if err := user.Deposit(amount); err != nil {
		return "", err
	}

	err = s.incomeRepo.SaveIncomeWithBalance(ctx, *income, user.Balance, user.BalanceVersion)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Info("income save lost a concurrent balance update", slog.String("user_id", userID))
			return "", err
		}
		logger.Error("failed to save income", slog.String("user_id", userID), slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to save income: %w", err)
	}

	logger.Info("income recorded",
		slog.String("income_id", income.IncomeID),
		slog.String("user_id", userID),
		slog.String("amount", income.Amount.String()))
	return income.IncomeID, nil
}

// UpdateIncome amends an income and applies the amount delta to the owner's
// balance in the same atomic unit.
func (s *incomeService) UpdateIncome(ctx context.Context, userID string, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	income, err := s.findOwnedIncome(ctx, userID, incomeID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	oldAmount := income.Amount

	if req.Amount != nil {
		newAmount, err := domain.NewMoneyWithRegistry(s.registry, *req.Amount, oldAmount.CurrencyCode())
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		if err := income.UpdateAmount(newAmount); err != nil {
			return nil, err
		}
	}
	if req.IncomeDate != nil {
		if err := income.UpdateDate(*req.IncomeDate); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := income.UpdateDescription(*req.Description); err != nil {
			return nil, err
		}
	}

	// Reverse the old amount, then apply the new one.
	if err := user.Withdraw(oldAmount); err != nil {
		return nil, err
	}
	if err := user.Deposit(income.Amount); err != nil {
		return nil, err
	}

	err = s.incomeRepo.UpdateIncomeWithBalance(ctx, *income, user.Balance, user.BalanceVersion)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Info("income update lost a concurrent balance update", slog.String("user_id", userID))
			return nil, err
		}
		logger.Error("failed to update income", slog.String("income_id", incomeID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update income: %w", err)
	}

	return income, nil
}

// DeleteIncome soft-deletes an income and withdraws its amount back out of the
// owner's balance in the same atomic unit.
func (s *incomeService) DeleteIncome(ctx context.Context, userID string, incomeID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	income, err := s.findOwnedIncome(ctx, userID, incomeID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	if err := user.Withdraw(income.Amount); err != nil {
		return err
	}

	err = s.incomeRepo.MarkIncomeDeletedWithBalance(ctx, *income, time.Now().UTC(), user.Balance, user.BalanceVersion)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Info("income delete lost a concurrent balance update", slog.String("user_id", userID))
			return err
		}
		logger.Error("failed to delete income", slog.String("income_id", incomeID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete income: %w", err)
	}

	logger.Info("income deleted", slog.String("income_id", incomeID), slog.String("user_id", userID))
	return nil
}

// GetIncomeByID retrieves one of the user's incomes. Incomes of other users
// are reported as not found.
func (s *incomeService) GetIncomeByID(ctx context.Context, userID string, incomeID string) (*domain.Income, error) {
	return s.findOwnedIncome(ctx, userID, incomeID)
}

// ListIncomes retrieves a paginated list of the user's incomes, newest first.
func (s *incomeService) ListIncomes(ctx context.Context, userID string, params dto.ListIncomesParams) (*dto.ListIncomesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	incomes, nextToken, err := s.incomeRepo.ListIncomesByUser(ctx, userID, limit, params.NextToken, params.From, params.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}

	return &dto.ListIncomesResponse{
		Incomes:   dto.ToIncomeResponses(incomes),
		NextToken: nextToken,
	}, nil
}

func (s *incomeService) findOwnedIncome(ctx context.Context, userID, incomeID string) (*domain.Income, error) {
	income, err := s.incomeRepo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find income %s: %w", incomeID, err)
	}
	if income.UserID != userID {
		// Do not reveal that the income exists for someone else.
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("income %s not found", incomeID))
	}
	return income, nil
}
