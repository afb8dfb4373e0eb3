package domain

import (
	"time"

	"github.com/google/uuid"
)

// Income is a recorded incoming transaction owned by a single user. Like
// Expense, its balance effect belongs to the service workflow.
type Income struct {
	IncomeID    string
	UserID      string // Owner; never changes after creation
	Amount      Money
	IncomeDate  time.Time
	Description string
	AuditFields
	DeletedAt *time.Time // Soft delete marker
}

// NewIncome validates and constructs an income with the same rules as
// NewExpense, minus the category.
func NewIncome(amount Money, incomeDate time.Time, description string, ownerUserID string) (*Income, error) {
	if err := validateTransactionAmount(amount); err != nil {
		return nil, err
	}
	if err := validateTransactionDate(incomeDate); err != nil {
		return nil, err
	}
	trimmed, err := validateTransactionDescription(description)
	if err != nil {
		return nil, err
	}
	if err := validateOwnerUserID(ownerUserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Income{
		IncomeID:    uuid.NewString(),
		UserID:      ownerUserID,
		Amount:      amount,
		IncomeDate:  incomeDate,
		Description: trimmed,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerUserID,
		},
	}, nil
}

// UpdateAmount replaces the amount after re-running construction validation.
func (i *Income) UpdateAmount(amount Money) error {
	if err := validateTransactionAmount(amount); err != nil {
		return err
	}
	i.Amount = amount
	i.touch()
	return nil
}

// UpdateDate replaces the income date after re-running construction validation.
func (i *Income) UpdateDate(incomeDate time.Time) error {
	if err := validateTransactionDate(incomeDate); err != nil {
		return err
	}
	i.IncomeDate = incomeDate
	i.touch()
	return nil
}

// UpdateDescription replaces the description after re-running construction validation.
func (i *Income) UpdateDescription(description string) error {
	trimmed, err := validateTransactionDescription(description)
	if err != nil {
		return err
	}
	i.Description = trimmed
	i.touch()
	return nil
}

func (i *Income) touch() {
	i.LastUpdatedAt = time.Now().UTC()
	i.LastUpdatedBy = i.UserID
}

// IsWithinDateRange reports whether the income date falls in [start, end].
func (i *Income) IsWithinDateRange(start, end time.Time) bool {
	return !i.IncomeDate.Before(start) && !i.IncomeDate.After(end)
}

// IsInMonth reports whether the income falls in the given year and month.
func (i *Income) IsInMonth(year int, month time.Month) bool {
	return i.IncomeDate.Year() == year && i.IncomeDate.Month() == month
}

// IsInYear reports whether the income falls in the given year.
func (i *Income) IsInYear(year int) bool {
	return i.IncomeDate.Year() == year
}
