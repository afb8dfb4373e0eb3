package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/dpmarinov/personal_budget_app/internal/apperrors"
)

const (
	// descriptionMaxLength is the maximum length of a transaction description
	// after trimming.
	descriptionMaxLength = 500

	// dateSkewAllowance tolerates client clocks running ahead of the server.
	dateSkewAllowance = 24 * time.Hour
)

// earliestTransactionDate is the lower bound for recorded transaction dates.
var earliestTransactionDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// validateTransactionAmount rejects zero and negative amounts.
func validateTransactionAmount(amount Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: transaction amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}
	return nil
}

// validateTransactionDate rejects dates before 1900 and dates more than a day
// in the future.
func validateTransactionDate(date time.Time) error {
	if date.Before(earliestTransactionDate) {
		return fmt.Errorf("%w: transaction date %s is before %s", apperrors.ErrValidation,
			date.Format(time.DateOnly), earliestTransactionDate.Format(time.DateOnly))
	}
	if date.After(time.Now().UTC().Add(dateSkewAllowance)) {
		return fmt.Errorf("%w: transaction date %s is in the future", apperrors.ErrValidation, date.Format(time.DateOnly))
	}
	return nil
}

// validateTransactionDescription trims the description and enforces its length
// bounds, returning the trimmed value.
func validateTransactionDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
	}
	if len(trimmed) > descriptionMaxLength {
		return "", fmt.Errorf("%w: description exceeds %d characters", apperrors.ErrValidation, descriptionMaxLength)
	}
	return trimmed, nil
}

// validateOwnerUserID rejects an empty owner reference.
func validateOwnerUserID(ownerUserID string) error {
	if strings.TrimSpace(ownerUserID) == "" {
		return fmt.Errorf("%w: owner user ID must not be empty", apperrors.ErrValidation)
	}
	return nil
}
