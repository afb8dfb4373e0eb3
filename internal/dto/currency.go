package dto

import (
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
)

// CurrencyResponse defines the data returned for a supported currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Name         string `json:"name"`
	NativeName   string `json:"nativeName"`
	Symbol       string `json:"symbol"`
}

// ListCurrenciesResponse wraps the registry contents.
type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO.
func ToCurrencyResponse(c domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Name:         c.Name,
		NativeName:   c.NativeName,
		Symbol:       c.Symbol,
	}
}

// ToListCurrenciesResponse converts registry entries to the list DTO.
func ToListCurrenciesResponse(currencies []domain.Currency) ListCurrenciesResponse {
	responses := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		responses[i] = ToCurrencyResponse(c)
	}
	return ListCurrenciesResponse{Currencies: responses}
}
