package services

import (
	"context"

	"github.com/uneural/treasury_backend/internal/core/domain"
	"github.com/uneural/treasury_backend/internal/dto"
)

// BudgetReaderSvc defines read operations for budget data
type BudgetReaderSvc interface {
	// GetBudgetByID retrieves a specific budget by its ID.
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgets retrieves the current budget snapshot.
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
}

// BudgetWriterSvc defines write operations for budget data
type BudgetWriterSvc interface {
	// CreateBudget creates a budget after the scope-exclusivity invariant
	// has been checked by the domain constructor.
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error)
}

// BudgetLedgerSvc consumes ledger instructions emitted by the approval
// state machine.
type BudgetLedgerSvc interface {
	// ApplyExpense increments spent_amount on the budget matching the
	// instruction's scope. A scope matching no budget is a no-op and
	// returns (nil, nil).
	ApplyExpense(ctx context.Context, instruction domain.LedgerInstruction) (*domain.Budget, error)
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
	BudgetLedgerSvc
}
