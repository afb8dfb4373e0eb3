package mapping

import (
	"fmt"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	"github.com/dpmarinov/personal_budget_app/internal/models"
)

// ToModelIncome converts a domain Income to a model Income.
func ToModelIncome(d domain.Income) models.Income {
	return models.Income{
		IncomeID:     d.IncomeID,
		UserID:       d.UserID,
		Amount:       d.Amount.Amount(),
		CurrencyCode: d.Amount.CurrencyCode(),
		IncomeDate:   d.IncomeDate,
		Description:  d.Description,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainIncome converts a model Income to a domain Income via the money
// storage path.
func ToDomainIncome(m models.Income) (domain.Income, error) {
	amount, err := domain.NewMoneyFromStorage(m.Amount, m.CurrencyCode)
	if err != nil {
		return domain.Income{}, fmt.Errorf("invalid stored amount for income %s: %w", m.IncomeID, err)
	}
	return domain.Income{
		IncomeID:    m.IncomeID,
		UserID:      m.UserID,
		Amount:      amount,
		IncomeDate:  m.IncomeDate,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}, nil
}

// ToDomainIncomeSlice converts a slice of model Incomes to domain Incomes.
func ToDomainIncomeSlice(ms []models.Income) ([]domain.Income, error) {
	ds := make([]domain.Income, len(ms))
	for i, m := range ms {
		d, err := ToDomainIncome(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
