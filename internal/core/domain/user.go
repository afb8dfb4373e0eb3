package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
)

// User is the aggregate owning a single monetary balance. The balance currency
// is the user's currency preference; the two can never diverge because the
// balance is only replaced through Deposit and Withdraw, which re-check
// currency equality first.
type User struct {
	UserID       string
	Username     string
	Name         string
	PasswordHash string
	Balance      Money
	// BalanceVersion increments on every committed balance replacement and
	// backs the optimistic concurrency check at the persistence layer.
	BalanceVersion int64
	AuditFields
	DeletedAt *time.Time // Used for soft delete
}

// NewUser validates and constructs a user with the given opening balance.
func NewUser(username, name, passwordHash string, openingBalance Money) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username must not be empty", apperrors.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
	}
	if openingBalance.CurrencyCode() == "" {
		return nil, fmt.Errorf("%w: opening balance must carry a currency", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	return &User{
		UserID:       userID,
		Username:     strings.TrimSpace(username),
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
		Balance:      openingBalance,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

// CurrencyPreference returns the currency the user keeps their balance in.
func (u *User) CurrencyPreference() string {
	return u.Balance.CurrencyCode()
}

// Deposit replaces the balance with balance + amount. The amount currency must
// match the balance currency.
func (u *User) Deposit(amount Money) error {
	newBalance, err := u.Balance.Add(amount)
	if err != nil {
		return err
	}
	u.Balance = newBalance
	return nil
}

// Withdraw replaces the balance with balance - amount. The amount currency
// must match the balance currency. The balance may go negative; overdrafts are
// the user's business.
func (u *User) Withdraw(amount Money) error {
	newBalance, err := u.Balance.Subtract(amount)
	if err != nil {
		return err
	}
	u.Balance = newBalance
	return nil
}
