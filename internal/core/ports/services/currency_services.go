package services

import (
	"context"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
)

// CurrencyReaderSvc defines read operations over the compiled-in currency
// registry. There is no writer: the supported set changes at deploy time only.
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all supported currencies in registry order.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
}
