package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/dpmarinov/personal_budget_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories to the given pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(dbPool),
		ExpenseRepo: newPgxExpenseRepository(dbPool),
		IncomeRepo:  newPgxIncomeRepository(dbPool),
	}
}
