package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
)

func newTestUser(t *testing.T, balance string) *domain.User {
	t.Helper()
	u, err := domain.NewUser("dmarinov", "Dimitar Marinov", "hash", mustMoney(t, balance, "BGN"))
	require.NoError(t, err)
	return u
}

func TestNewUser_Validation(t *testing.T) {
	balance := mustMoney(t, "1000.00", "BGN")

	_, err := domain.NewUser("", "Dimitar", "hash", balance)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewUser("dmarinov", "  ", "hash", balance)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	u, err := domain.NewUser("dmarinov", "Dimitar", "hash", balance)
	require.NoError(t, err)
	assert.Equal(t, "BGN", u.CurrencyPreference())
	assert.EqualValues(t, 0, u.BalanceVersion)
}

func TestUser_DepositWithdraw(t *testing.T) {
	u := newTestUser(t, "1000.00")

	require.NoError(t, u.Withdraw(mustMoney(t, "100.00", "BGN")))
	assert.True(t, u.Balance.Equal(mustMoney(t, "900.00", "BGN")))

	require.NoError(t, u.Deposit(mustMoney(t, "2000.00", "BGN")))
	assert.True(t, u.Balance.Equal(mustMoney(t, "2900.00", "BGN")))

	// Overdraft is allowed; the aggregate only guards currency identity.
	require.NoError(t, u.Withdraw(mustMoney(t, "5000.00", "BGN")))
	assert.True(t, u.Balance.IsNegative())
}

func TestUser_CurrencyMismatchBlocksMutation(t *testing.T) {
	u := newTestUser(t, "1000.00")
	usd := mustMoney(t, "100.00", "USD")

	assert.ErrorIs(t, u.Withdraw(usd), domain.ErrCurrencyMismatch)
	assert.ErrorIs(t, u.Deposit(usd), domain.ErrCurrencyMismatch)

	// A failed mutation leaves the balance untouched.
	assert.True(t, u.Balance.Equal(mustMoney(t, "1000.00", "BGN")))
	assert.Equal(t, "BGN", u.CurrencyPreference())
}
