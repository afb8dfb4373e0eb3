package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
)

func validExpenseDate() time.Time {
	return time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
}

func TestNewExpense_Valid(t *testing.T) {
	amount := mustMoney(t, "100.00", "BGN")
	exp, err := domain.NewExpense(amount, validExpenseDate(), "  Groceries  ", domain.CategoryNeeds, "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, exp.ExpenseID)
	assert.Equal(t, "user-1", exp.UserID)
	assert.True(t, exp.Amount.Equal(amount))
	assert.Equal(t, "Groceries", exp.Description, "description is trimmed")
	assert.Equal(t, domain.CategoryNeeds, exp.Category)
	assert.Equal(t, "user-1", exp.CreatedBy)
	assert.Nil(t, exp.DeletedAt)
}

func TestNewExpense_Validation(t *testing.T) {
	amount := mustMoney(t, "100.00", "BGN")
	zero := mustMoney(t, "0.00", "BGN")

	tests := []struct {
		name string
		fn   func() (*domain.Expense, error)
	}{
		{"zero amount", func() (*domain.Expense, error) {
			return domain.NewExpense(zero, validExpenseDate(), "Groceries", domain.CategoryNeeds, "user-1")
		}},
		{"negative amount", func() (*domain.Expense, error) {
			return domain.NewExpense(zero.Negate(), validExpenseDate(), "Groceries", domain.CategoryNeeds, "user-1")
		}},
		{"date before 1900", func() (*domain.Expense, error) {
			return domain.NewExpense(amount, time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC), "Groceries", domain.CategoryNeeds, "user-1")
		}},
		{"date too far in the future", func() (*domain.Expense, error) {
			return domain.NewExpense(amount, time.Now().UTC().Add(48*time.Hour), "Groceries", domain.CategoryNeeds, "user-1")
		}},
		{"empty description", func() (*domain.Expense, error) {
			return domain.NewExpense(amount, validExpenseDate(), "   ", domain.CategoryNeeds, "user-1")
		}},
		{"description too long", func() (*domain.Expense, error) {
			return domain.NewExpense(amount, validExpenseDate(), strings.Repeat("x", 501), domain.CategoryNeeds, "user-1")
		}},
		{"empty owner", func() (*domain.Expense, error) {
			return domain.NewExpense(amount, validExpenseDate(), "Groceries", domain.CategoryNeeds, "")
		}},
		{"undefined category", func() (*domain.Expense, error) {
			return domain.NewExpense(amount, validExpenseDate(), "Groceries", domain.ExpenseCategory("FUN"), "user-1")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestNewExpense_NegativeAmountRejected(t *testing.T) {
	neg := mustMoney(t, "5.00", "BGN").Negate()
	_, err := domain.NewExpense(neg, validExpenseDate(), "Refund gone wrong", domain.CategoryWants, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewExpense_ClockSkewTolerated(t *testing.T) {
	amount := mustMoney(t, "10.00", "BGN")
	slightlyAhead := time.Now().UTC().Add(6 * time.Hour)
	_, err := domain.NewExpense(amount, slightlyAhead, "Train ticket", domain.CategoryNeeds, "user-1")
	assert.NoError(t, err)
}

func TestExpense_MutatorsRevalidate(t *testing.T) {
	exp, err := domain.NewExpense(mustMoney(t, "100.00", "BGN"), validExpenseDate(), "Groceries", domain.CategoryNeeds, "user-1")
	require.NoError(t, err)

	assert.ErrorIs(t, exp.UpdateAmount(mustMoney(t, "0.00", "BGN")), apperrors.ErrValidation)
	assert.ErrorIs(t, exp.UpdateDate(time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC)), apperrors.ErrValidation)
	assert.ErrorIs(t, exp.UpdateDescription("  "), apperrors.ErrValidation)
	assert.ErrorIs(t, exp.ChangeCategory(domain.ExpenseCategory("OTHER")), apperrors.ErrValidation)

	// Failed mutations leave the entity unchanged.
	assert.True(t, exp.Amount.Equal(mustMoney(t, "100.00", "BGN")))
	assert.Equal(t, "Groceries", exp.Description)
	assert.Equal(t, domain.CategoryNeeds, exp.Category)

	require.NoError(t, exp.UpdateAmount(mustMoney(t, "42.00", "BGN")))
	require.NoError(t, exp.UpdateDescription("Weekly groceries"))
	require.NoError(t, exp.ChangeCategory(domain.CategoryWants))
	assert.True(t, exp.Amount.Equal(mustMoney(t, "42.00", "BGN")))
	assert.Equal(t, "Weekly groceries", exp.Description)
	assert.True(t, exp.IsWant())
}

func TestExpense_QueryHelpers(t *testing.T) {
	exp, err := domain.NewExpense(mustMoney(t, "10.00", "BGN"),
		time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), "Groceries", domain.CategorySavings, "user-1")
	require.NoError(t, err)

	assert.True(t, exp.IsInMonth(2024, time.March))
	assert.False(t, exp.IsInMonth(2024, time.April))
	assert.True(t, exp.IsInYear(2024))
	assert.False(t, exp.IsInYear(2023))

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	assert.True(t, exp.IsWithinDateRange(start, end))
	assert.True(t, exp.IsWithinDateRange(exp.ExpenseDate, exp.ExpenseDate), "range bounds are inclusive")
	assert.False(t, exp.IsWithinDateRange(end.Add(24*time.Hour), end.Add(48*time.Hour)))

	assert.True(t, exp.IsSavings())
	assert.False(t, exp.IsNeed())
	assert.False(t, exp.IsWant())
}
