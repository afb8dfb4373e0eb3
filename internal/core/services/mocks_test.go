package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	portsrepo "github.com/dpmarinov/personal_budget_app/internal/core/ports/repositories"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) SaveExpenseWithBalance(ctx context.Context, expense domain.Expense, newBalance domain.Money, expectedVersion int64) error {
	args := m.Called(ctx, expense, newBalance, expectedVersion)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpenseWithBalance(ctx context.Context, expense domain.Expense, newBalance domain.Money, expectedVersion int64) error {
	args := m.Called(ctx, expense, newBalance, expectedVersion)
	return args.Error(0)
}

func (m *MockExpenseRepository) MarkExpenseDeletedWithBalance(ctx context.Context, expense domain.Expense, deletedAt time.Time, newBalance domain.Money, expectedVersion int64) error {
	args := m.Called(ctx, expense, deletedAt, newBalance, expectedVersion)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByUser(ctx context.Context, userID string, limit int, nextToken *string, from, to *time.Time) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken, from, to)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Expense), returnedNextToken, args.Error(2)
}

func (m *MockExpenseRepository) SumExpensesByCategoryForMonth(ctx context.Context, userID string, year int, month time.Month) (map[domain.ExpenseCategory]decimal.Decimal, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.ExpenseCategory]decimal.Decimal), args.Error(1)
}

// --- Mock IncomeRepository ---
type MockIncomeRepository struct {
	mock.Mock
}

var _ portsrepo.IncomeRepositoryFacade = (*MockIncomeRepository)(nil)

func (m *MockIncomeRepository) SaveIncomeWithBalance(ctx context.Context, income domain.Income, newBalance domain.Money, expectedVersion int64) error {
	args := m.Called(ctx, income, newBalance, expectedVersion)
	return args.Error(0)
}

func (m *MockIncomeRepository) UpdateIncomeWithBalance(ctx context.Context, income domain.Income, newBalance domain.Money, expectedVersion int64) error {
	args := m.Called(ctx, income, newBalance, expectedVersion)
	return args.Error(0)
}

func (m *MockIncomeRepository) MarkIncomeDeletedWithBalance(ctx context.Context, income domain.Income, deletedAt time.Time, newBalance domain.Money, expectedVersion int64) error {
	args := m.Called(ctx, income, deletedAt, newBalance, expectedVersion)
	return args.Error(0)
}

func (m *MockIncomeRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	args := m.Called(ctx, incomeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockIncomeRepository) ListIncomesByUser(ctx context.Context, userID string, limit int, nextToken *string, from, to *time.Time) ([]domain.Income, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken, from, to)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Income), returnedNextToken, args.Error(2)
}

func (m *MockIncomeRepository) SumIncomesForMonth(ctx context.Context, userID string, year int, month time.Month) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// mustMoney builds a Money value or fails the test.
func mustMoney(t *testing.T, amount string, currencyCode string) domain.Money {
	t.Helper()
	dec, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	m, err := domain.NewMoney(dec, currencyCode)
	require.NoError(t, err)
	return m
}
