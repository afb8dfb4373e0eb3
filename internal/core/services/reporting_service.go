package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	portsrepo "github.com/dpmarinov/personal_budget_app/internal/core/ports/repositories"
	portssvc "github.com/dpmarinov/personal_budget_app/internal/core/ports/services"
	"github.com/dpmarinov/personal_budget_app/internal/dto"
)

// reportingService aggregates committed incomes and expenses into monthly
// summaries. It only reads; all figures come from the database sums.
type reportingService struct {
	userRepo    portsrepo.UserReader
	expenseRepo portsrepo.ExpenseReader
	incomeRepo  portsrepo.IncomeReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(userRepo portsrepo.UserReader, expenseRepo portsrepo.ExpenseReader, incomeRepo portsrepo.IncomeReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		userRepo:    userRepo,
		expenseRepo: expenseRepo,
		incomeRepo:  incomeRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetMonthlySummary aggregates one calendar month of the user's transactions,
// in the user's balance currency.
func (s *reportingService) GetMonthlySummary(ctx context.Context, userID string, year int, month time.Month) (*dto.MonthlySummaryResponse, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}
	if year < 1900 {
		return nil, fmt.Errorf("%w: year must be 1900 or later", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	totalIncome, err := s.incomeRepo.SumIncomesForMonth(ctx, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to sum incomes: %w", err)
	}

	byCategory, err := s.expenseRepo.SumExpensesByCategoryForMonth(ctx, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	needs := byCategory[domain.CategoryNeeds]
	wants := byCategory[domain.CategoryWants]
	savings := byCategory[domain.CategorySavings]
	totalExpenses := decimal.Sum(needs, wants, savings)

	return &dto.MonthlySummaryResponse{
		Year:          year,
		Month:         int(month),
		CurrencyCode:  user.CurrencyPreference(),
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		Needs:         needs,
		Wants:         wants,
		Savings:       savings,
		Net:           totalIncome.Sub(totalExpenses),
	}, nil
}
