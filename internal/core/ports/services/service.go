package services

// ServiceContainer holds all the service facades handed to the HTTP
// layer. Handlers depend on these interfaces, never on concrete
// services.
type ServiceContainer struct {
	Ingestion   IngestionSvcFacade
	Transaction TransactionSvcFacade
	Approval    ApprovalSvcFacade
	Budget      BudgetSvcFacade
	Policy      PolicySvcFacade
	Project     ProjectSvcFacade
	User        UserSvcFacade
}
