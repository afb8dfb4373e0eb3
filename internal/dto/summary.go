package dto

import (
	"github.com/shopspring/decimal"
)

// MonthlySummaryResponse aggregates one calendar month of committed
// transactions for a user, in the user's balance currency.
type MonthlySummaryResponse struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	CurrencyCode  string          `json:"currencyCode"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Needs         decimal.Decimal `json:"needs"`
	Wants         decimal.Decimal `json:"wants"`
	Savings       decimal.Decimal `json:"savings"`
	Net           decimal.Decimal `json:"net"` // TotalIncome - TotalExpenses
}
