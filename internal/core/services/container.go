package services

import (
	portsrepo "github.com/uneural/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/uneural/treasury_backend/internal/core/ports/services"
)

// NewContainer wires the full service graph over a repository provider
// and the extraction boundary. The approval service feeds the budget
// service: that is the only path a ledger instruction can travel.
func NewContainer(repos *portsrepo.RepositoryProvider, extractor portssvc.TransactionExtractor, defaults IngestionDefaults) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Policy = NewPolicyService()
	container.Budget = NewBudgetService(repos.Budget, defaults.OrgID)
	container.Transaction = NewTransactionService(repos.Transaction)
	container.Approval = NewApprovalService(repos.Transaction, container.Budget)
	container.Ingestion = NewIngestionService(extractor, container.Policy, repos.Transaction, repos.Budget, defaults)
	container.Project = NewProjectService(repos.Project)
	container.User = NewUserService(repos.User)

	return container
}
