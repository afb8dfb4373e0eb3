package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
)

func TestNewIncome_Valid(t *testing.T) {
	amount := mustMoney(t, "2000.00", "BGN")
	inc, err := domain.NewIncome(amount, validExpenseDate(), "Bonus", "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, inc.IncomeID)
	assert.Equal(t, "user-1", inc.UserID)
	assert.True(t, inc.Amount.Equal(amount))
	assert.Equal(t, "Bonus", inc.Description)
	assert.Nil(t, inc.DeletedAt)
}

func TestNewIncome_Validation(t *testing.T) {
	amount := mustMoney(t, "2000.00", "BGN")

	_, err := domain.NewIncome(mustMoney(t, "0.00", "BGN"), validExpenseDate(), "Bonus", "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewIncome(amount, time.Date(1850, 1, 1, 0, 0, 0, 0, time.UTC), "Bonus", "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewIncome(amount, validExpenseDate(), "", "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewIncome(amount, validExpenseDate(), "Bonus", " ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestIncome_MutatorsRevalidate(t *testing.T) {
	inc, err := domain.NewIncome(mustMoney(t, "2000.00", "BGN"), validExpenseDate(), "Bonus", "user-1")
	require.NoError(t, err)

	assert.ErrorIs(t, inc.UpdateAmount(mustMoney(t, "0.00", "BGN")), apperrors.ErrValidation)
	assert.ErrorIs(t, inc.UpdateDescription(""), apperrors.ErrValidation)

	require.NoError(t, inc.UpdateAmount(mustMoney(t, "2500.00", "BGN")))
	require.NoError(t, inc.UpdateDate(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, inc.Amount.Equal(mustMoney(t, "2500.00", "BGN")))
	assert.True(t, inc.IsInMonth(2024, time.April))
	assert.True(t, inc.IsInYear(2024))
}
