package mapping

import (
	"fmt"

	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	"github.com/dpmarinov/personal_budget_app/internal/models"
)

// ToModelUser converts a domain User to a model User, splitting the balance
// into its amount and currency columns.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:          d.UserID,
		Username:        d.Username,
		PasswordHash:    d.PasswordHash,
		Name:            d.Name,
		BalanceAmount:   d.Balance.Amount(),
		BalanceCurrency: d.Balance.CurrencyCode(),
		BalanceVersion:  d.BalanceVersion,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		DeletedAt:       d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User. The balance is rebuilt
// through the storage path so rows recorded under a since-removed currency
// still load.
func ToDomainUser(m models.User) (domain.User, error) {
	balance, err := domain.NewMoneyFromStorage(m.BalanceAmount, m.BalanceCurrency)
	if err != nil {
		return domain.User{}, fmt.Errorf("invalid stored balance for user %s: %w", m.UserID, err)
	}
	return domain.User{
		UserID:         m.UserID,
		Username:       m.Username,
		PasswordHash:   m.PasswordHash,
		Name:           m.Name,
		Balance:        balance,
		BalanceVersion: m.BalanceVersion,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		DeletedAt:      m.DeletedAt,
	}, nil
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users.
func ToDomainUserSlice(ms []models.User) ([]domain.User, error) {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		d, err := ToDomainUser(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
