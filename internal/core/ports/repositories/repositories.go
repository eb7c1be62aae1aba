package repositories

// RepositoryProvider bundles the repository implementations a store
// adapter exposes, so main can wire either the in-memory or the pgsql
// store without the services knowing which one they got.
type RepositoryProvider struct {
	Transaction TransactionRepositoryFacade
	Budget      BudgetRepositoryFacade
	Project     ProjectRepository
	User        UserRepository
}
