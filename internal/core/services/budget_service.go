package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/uneural/treasury_backend/internal/core/domain"
	portsrepo "github.com/uneural/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/uneural/treasury_backend/internal/core/ports/services"
	"github.com/uneural/treasury_backend/internal/dto"
	"github.com/uneural/treasury_backend/internal/middleware"
)

// budgetService is the budget ledger plus the reference operations
// around it. It exclusively owns spent_amount: nothing else in the
// system writes to a budget after creation.
type budgetService struct {
	budgetRepo portsrepo.BudgetRepositoryFacade
	orgID      string
}

// NewBudgetService creates a new BudgetSvcFacade. orgID is stamped onto
// every budget; the service is single-tenant.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, orgID string) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo, orgID: orgID}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// CreateBudget creates a budget. Budgets enter the system through this
// external entry point; the domain constructor rejects scope and cap
// invariant violations before anything is persisted.
func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	budget, err := domain.NewBudget(
		uuid.NewString(),
		s.orgID,
		req.ProjectID,
		req.GroupID,
		req.Period,
		req.CapAmount,
		domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	)
	if err != nil {
		return nil, err
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		return nil, err
	}

	logger.Info("Budget created",
		slog.String("budget_id", budget.BudgetID),
		slog.String("project_id", budget.ProjectID),
		slog.String("group_id", budget.GroupID),
	)
	return &budget, nil
}

// GetBudgetByID retrieves a specific budget by its ID.
func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	return s.budgetRepo.FindBudgetByID(ctx, budgetID)
}

// ListBudgets retrieves the current budget snapshot.
func (s *budgetService) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	return s.budgetRepo.ListBudgets(ctx)
}

// ApplyExpense consumes a ledger instruction emitted by the approval
// state machine. The repository performs the increment atomically, so
// concurrent approvals against the same budget never lose updates. A
// scope with no matching budget is a no-op: the amount simply is not
// tracked against any cap. That gap is logged, not fixed.
func (s *budgetService) ApplyExpense(ctx context.Context, instruction domain.LedgerInstruction) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if instruction.Scope.Empty() {
		return nil, nil
	}

	budget, err := s.budgetRepo.ApplyExpense(ctx, instruction.Scope, instruction.Amount)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		logger.Warn("Approved expense not tracked against any budget",
			slog.String("transaction_id", instruction.TransactionID),
			slog.String("project_id", instruction.Scope.ProjectID),
			slog.String("group_id", instruction.Scope.GroupID),
			slog.String("amount", instruction.Amount.String()),
		)
		return nil, nil
	}

	logger.Info("Budget spent amount updated",
		slog.String("budget_id", budget.BudgetID),
		slog.String("transaction_id", instruction.TransactionID),
		slog.String("spent_amount", budget.SpentAmount.String()),
	)
	return budget, nil
}
