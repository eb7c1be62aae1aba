package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/uneural/treasury_backend/internal/core/domain"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget by its unique identifier.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgets retrieves the current budget snapshot. The policy
	// evaluator reads through this; the snapshot may be stale relative to
	// concurrent ApplyExpense calls.
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget persists a new budget. The scope invariant is validated
	// by domain.NewBudget before this is called.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// ApplyExpense atomically increments spent_amount on the first budget
	// matching the scope (project field first, then group) and returns the
	// updated budget. It returns (nil, nil) when no budget matches: the
	// amount is simply not tracked against any cap. Concurrent calls
	// against the same budget must not lose increments.
	ApplyExpense(ctx context.Context, scope domain.Scope, amount decimal.Decimal) (*domain.Budget, error)
}

// BudgetRepositoryFacade combines all budget repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
