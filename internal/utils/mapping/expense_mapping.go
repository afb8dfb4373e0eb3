package mapping

import (
	"fmt"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	"github.com/dpmarinov/personal_budget_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense.
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:    d.ExpenseID,
		UserID:       d.UserID,
		Amount:       d.Amount.Amount(),
		CurrencyCode: d.Amount.CurrencyCode(),
		ExpenseDate:  d.ExpenseDate,
		Description:  d.Description,
		Category:     models.ExpenseCategory(d.Category),
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainExpense converts a model Expense to a domain Expense via the money
// storage path.
func ToDomainExpense(m models.Expense) (domain.Expense, error) {
	amount, err := domain.NewMoneyFromStorage(m.Amount, m.CurrencyCode)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("invalid stored amount for expense %s: %w", m.ExpenseID, err)
	}
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		UserID:      m.UserID,
		Amount:      amount,
		ExpenseDate: m.ExpenseDate,
		Description: m.Description,
		Category:    domain.ExpenseCategory(m.Category),
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}, nil
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain Expenses.
func ToDomainExpenseSlice(ms []models.Expense) ([]domain.Expense, error) {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		d, err := ToDomainExpense(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
