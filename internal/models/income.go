package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income represents an income row.
type Income struct {
	IncomeID     string          `json:"incomeID" db:"income_id"`
	UserID       string          `json:"userID" db:"user_id"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	CurrencyCode string          `json:"currencyCode" db:"currency_code"`
	IncomeDate   time.Time       `json:"incomeDate" db:"income_date"`
	Description  string          `json:"description" db:"description"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}
