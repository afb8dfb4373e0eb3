package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a user row. The balance is stored as a decimal amount plus a
// currency code column; the two always change together with a version bump.
type User struct {
	UserID          string          `json:"userID" db:"user_id"`
	Username        string          `json:"username" db:"username"`
	PasswordHash    string          `json:"-" db:"password_hash"`
	Name            string          `json:"name" db:"name"`
	BalanceAmount   decimal.Decimal `json:"balanceAmount" db:"balance_amount"`
	BalanceCurrency string          `json:"balanceCurrency" db:"balance_currency"`
	BalanceVersion  int64           `json:"balanceVersion" db:"balance_version"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}
