package services

import (
	"context"
	"fmt"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	portssvc "github.com/dpmarinov/personal_budget_app/internal/core/ports/services"
)

// currencyService serves currency data from the compiled-in registry.
type currencyService struct {
	registry *domain.CurrencyRegistry
}

// NewCurrencyService creates a new currency service backed by the given registry.
func NewCurrencyService(registry *domain.CurrencyRegistry) portssvc.CurrencySvcFacade {
	return &currencyService{registry: registry}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// GetCurrencyByCode retrieves a specific currency by its code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, ok := s.registry.Lookup(currencyCode)
	if !ok {
		return nil, fmt.Errorf("%w: currency %s is not supported", apperrors.ErrNotFound, currencyCode)
	}
	return &currency, nil
}

// ListCurrencies retrieves all supported currencies in registry order.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.registry.All(), nil
}
