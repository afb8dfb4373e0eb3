package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
)

// ExpenseCategory classifies an expense for budgeting purposes.
type ExpenseCategory string

const (
	CategoryNeeds   ExpenseCategory = "NEEDS"
	CategoryWants   ExpenseCategory = "WANTS"
	CategorySavings ExpenseCategory = "SAVINGS"
)

// IsValid reports whether the category is one of the defined values.
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case CategoryNeeds, CategoryWants, CategorySavings:
		return true
	}
	return false
}

// Expense is a recorded outgoing transaction owned by a single user. Its
// balance effect is applied by the service workflow, never by the entity.
type Expense struct {
	ExpenseID   string
	UserID      string // Owner; never changes after creation
	Amount      Money
	ExpenseDate time.Time
	Description string
	Category    ExpenseCategory
	AuditFields
	DeletedAt *time.Time // Soft delete marker
}

// NewExpense validates and constructs an expense. The amount must be strictly
// positive, the date within bounds, the description 1..500 chars after
// trimming, the owner non-empty and the category defined.
func NewExpense(amount Money, expenseDate time.Time, description string, category ExpenseCategory, ownerUserID string) (*Expense, error) {
	if err := validateTransactionAmount(amount); err != nil {
		return nil, err
	}
	if err := validateTransactionDate(expenseDate); err != nil {
		return nil, err
	}
	trimmed, err := validateTransactionDescription(description)
	if err != nil {
		return nil, err
	}
	if err := validateOwnerUserID(ownerUserID); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, category)
	}

	now := time.Now().UTC()
	return &Expense{
		ExpenseID:   uuid.NewString(),
		UserID:      ownerUserID,
		Amount:      amount,
		ExpenseDate: expenseDate,
		Description: trimmed,
		Category:    category,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerUserID,
		},
	}, nil
}

// UpdateAmount replaces the amount after re-running construction validation.
func (e *Expense) UpdateAmount(amount Money) error {
	if err := validateTransactionAmount(amount); err != nil {
		return err
	}
	e.Amount = amount
	e.touch()
	return nil
}

// UpdateDate replaces the expense date after re-running construction validation.
func (e *Expense) UpdateDate(expenseDate time.Time) error {
	if err := validateTransactionDate(expenseDate); err != nil {
		return err
	}
	e.ExpenseDate = expenseDate
	e.touch()
	return nil
}

// UpdateDescription replaces the description after re-running construction validation.
func (e *Expense) UpdateDescription(description string) error {
	trimmed, err := validateTransactionDescription(description)
	if err != nil {
		return err
	}
	e.Description = trimmed
	e.touch()
	return nil
}

// ChangeCategory replaces the category after re-running construction validation.
func (e *Expense) ChangeCategory(category ExpenseCategory) error {
	if !category.IsValid() {
		return fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, category)
	}
	e.Category = category
	e.touch()
	return nil
}

func (e *Expense) touch() {
	e.LastUpdatedAt = time.Now().UTC()
	e.LastUpdatedBy = e.UserID
}

// IsWithinDateRange reports whether the expense date falls in [start, end].
func (e *Expense) IsWithinDateRange(start, end time.Time) bool {
	return !e.ExpenseDate.Before(start) && !e.ExpenseDate.After(end)
}

// IsInMonth reports whether the expense falls in the given year and month.
func (e *Expense) IsInMonth(year int, month time.Month) bool {
	return e.ExpenseDate.Year() == year && e.ExpenseDate.Month() == month
}

// IsInYear reports whether the expense falls in the given year.
func (e *Expense) IsInYear(year int) bool {
	return e.ExpenseDate.Year() == year
}

func (e *Expense) IsNeed() bool    { return e.Category == CategoryNeeds }
func (e *Expense) IsWant() bool    { return e.Category == CategoryWants }
func (e *Expense) IsSavings() bool { return e.Category == CategorySavings }
