package repositories

// RepositoryProvider bundles the repository facades for dependency injection
// into the service layer.
type RepositoryProvider struct {
	UserRepo    UserRepositoryFacade
	ExpenseRepo ExpenseRepositoryFacade
	IncomeRepo  IncomeRepositoryFacade
}
