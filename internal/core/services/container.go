package services

import (
	"github.com/dpmarinov/personal_budget_app/internal/core/domain"
	portsrepo "github.com/dpmarinov/personal_budget_app/internal/core/ports/repositories"
	portssvc "github.com/dpmarinov/personal_budget_app/internal/core/ports/services"
)

// NewServiceContainer creates a service container with all services wired to
// the given repositories and the compiled-in currency registry.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	registry := domain.DefaultCurrencyRegistry

	container := &portssvc.ServiceContainer{}
	container.Currency = NewCurrencyService(registry)
	container.User = NewUserService(repos.UserRepo, registry)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.UserRepo, registry)
	container.Income = NewIncomeService(repos.IncomeRepo, repos.UserRepo, registry)
	container.Reporting = NewReportingService(repos.UserRepo, repos.ExpenseRepo, repos.IncomeRepo)
	return container
}
