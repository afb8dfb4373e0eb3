package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory mirrors domain.ExpenseCategory at the storage layer.
type ExpenseCategory string

// Expense represents an expense row.
type Expense struct {
	ExpenseID    string          `json:"expenseID" db:"expense_id"`
	UserID       string          `json:"userID" db:"user_id"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	CurrencyCode string          `json:"currencyCode" db:"currency_code"`
	ExpenseDate  time.Time       `json:"expenseDate" db:"expense_date"`
	Description  string          `json:"description" db:"description"`
	Category     ExpenseCategory `json:"category" db:"category"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}
