package services

import (
	"context"
	"time"

	"github.com/dpmarinov/personal_budget_app/internal/dto"
)

// ReportingSvcFacade defines read-only aggregations over committed state.
type ReportingSvcFacade interface {
	// GetMonthlySummary aggregates the user's committed incomes and expenses
	// for one calendar month, in the user's balance currency.
	GetMonthlySummary(ctx context.Context, userID string, year int, month time.Month) (*dto.MonthlySummaryResponse, error)
}
