package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
)

// CreateIncomeRequest defines the data needed to record a new income.
type CreateIncomeRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,alpha,supportedcurrency"`
	IncomeDate   time.Time       `json:"incomeDate" binding:"required"`
	Description  string          `json:"description" binding:"required,max=500"`
}

// UpdateIncomeRequest defines the data allowed for amending an income.
type UpdateIncomeRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	IncomeDate  *time.Time       `json:"incomeDate"`
	Description *string          `json:"description"`
}

// IncomeResponse defines the data returned for an income.
type IncomeResponse struct {
	IncomeID     string          `json:"incomeID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	IncomeDate   time.Time       `json:"incomeDate"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ListIncomesParams defines query parameters for listing incomes.
type ListIncomesParams struct {
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"nextToken"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListIncomesResponse wraps a page of incomes with the cursor for the next page.
type ListIncomesResponse struct {
	Incomes   []IncomeResponse `json:"incomes"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToIncomeResponse converts a domain.Income to IncomeResponse DTO.
func ToIncomeResponse(in *domain.Income) IncomeResponse {
	return IncomeResponse{
		IncomeID:     in.IncomeID,
		Amount:       in.Amount.Amount(),
		CurrencyCode: in.Amount.CurrencyCode(),
		IncomeDate:   in.IncomeDate,
		Description:  in.Description,
		CreatedAt:    in.CreatedAt,
	}
}

// ToIncomeResponses converts a slice of domain.Income to []IncomeResponse.
func ToIncomeResponses(incomes []domain.Income) []IncomeResponse {
	responses := make([]IncomeResponse, len(incomes))
	for i := range incomes {
		responses[i] = ToIncomeResponse(&incomes[i])
	}
	return responses
}
