package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to record a new expense.
type CreateExpenseRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,alpha,supportedcurrency"`
	ExpenseDate  time.Time       `json:"expenseDate" binding:"required"`
	Description  string          `json:"description" binding:"required,max=500"`
	Category     string          `json:"category" binding:"required,oneof=NEEDS WANTS SAVINGS"`
}

// UpdateExpenseRequest defines the data allowed for amending an expense.
// Pointers distinguish omitted fields from zero values.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	ExpenseDate *time.Time       `json:"expenseDate"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID    string          `json:"expenseID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	ExpenseDate  time.Time       `json:"expenseDate"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"nextToken"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListExpensesResponse wraps a page of expenses with the cursor for the next page.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:    e.ExpenseID,
		Amount:       e.Amount.Amount(),
		CurrencyCode: e.Amount.CurrencyCode(),
		ExpenseDate:  e.ExpenseDate,
		Description:  e.Description,
		Category:     string(e.Category),
		CreatedAt:    e.CreatedAt,
	}
}

// ToExpenseResponses converts a slice of domain.Expense to []ExpenseResponse.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
