package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/uneural/treasury_backend/internal/apperrors"
	"github.com/uneural/treasury_backend/internal/core/domain"
	portsrepo "github.com/uneural/treasury_backend/internal/core/ports/repositories"
)

// BudgetRepository is the in-memory budget store and ledger. The whole
// table shares one mutex: ApplyExpense's read-modify-write runs inside
// the critical section, so concurrent increments to the same budget can
// never overwrite one another.
type BudgetRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Budget
	ordered []string // budget IDs in insertion order; scope matching is first-by-insertion
}

// NewBudgetRepository creates a new in-memory budget repository.
func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{
		byID: make(map[string]*domain.Budget),
	}
}

var _ portsrepo.BudgetRepositoryFacade = (*BudgetRepository)(nil)

// SaveBudget persists a new budget.
func (r *BudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	if budget.BudgetID == "" {
		return fmt.Errorf("%w: budget ID is required", apperrors.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[budget.BudgetID]; exists {
		return fmt.Errorf("%w: budget %s", apperrors.ErrDuplicate, budget.BudgetID)
	}

	budgetCopy := budget
	r.byID[budget.BudgetID] = &budgetCopy
	r.ordered = append(r.ordered, budget.BudgetID)
	return nil
}

// ApplyExpense atomically increments spent_amount on the first budget
// matching the scope. Project scope is matched before group scope.
// No match is a no-op, reported as (nil, nil).
func (r *BudgetRepository) ApplyExpense(ctx context.Context, scope domain.Scope, amount decimal.Decimal) (*domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	budget := r.matchScopeLocked(scope)
	if budget == nil {
		return nil, nil
	}

	budget.SpentAmount = budget.SpentAmount.Add(amount)
	budgetCopy := *budget
	return &budgetCopy, nil
}

// matchScopeLocked finds the first budget whose set scope field equals
// the transaction's. Callers must hold the lock.
func (r *BudgetRepository) matchScopeLocked(scope domain.Scope) *domain.Budget {
	if scope.ProjectID != "" {
		for _, id := range r.ordered {
			if b := r.byID[id]; b.ProjectID == scope.ProjectID {
				return b
			}
		}
	}
	if scope.GroupID != "" {
		for _, id := range r.ordered {
			if b := r.byID[id]; b.GroupID == scope.GroupID {
				return b
			}
		}
	}
	return nil
}

// FindBudgetByID retrieves a budget by ID.
func (r *BudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	budget, exists := r.byID[budgetID]
	if !exists {
		return nil, fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, budgetID)
	}

	budgetCopy := *budget
	return &budgetCopy, nil
}

// ListBudgets retrieves the current budget snapshot in insertion order.
func (r *BudgetRepository) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Budget, 0, len(r.ordered))
	for _, id := range r.ordered {
		result = append(result, *r.byID[id])
	}
	return result, nil
}
