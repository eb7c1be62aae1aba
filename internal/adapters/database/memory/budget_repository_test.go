package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uneural/treasury_backend/internal/apperrors"
	"github.com/uneural/treasury_backend/internal/core/domain"
)

func newProjectBudget(id, projectID string, cap int64) domain.Budget {
	return domain.Budget{
		BudgetID:    id,
		OrgID:       "uneural",
		ProjectID:   projectID,
		Period:      "2026-09",
		CapAmount:   decimal.NewFromInt(cap),
		SpentAmount: decimal.Zero,
	}
}

func TestBudgetRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository()

	require.NoError(t, repo.SaveBudget(ctx, newProjectBudget("b-1", "proj-1", 1000)))

	found, err := repo.FindBudgetByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "proj-1", found.ProjectID)

	_, err = repo.FindBudgetByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBudgetRepository_ApplyExpenseIncrementsSpent(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository()
	require.NoError(t, repo.SaveBudget(ctx, newProjectBudget("b-1", "proj-1", 1000)))

	budget, err := repo.ApplyExpense(ctx, domain.Scope{ProjectID: "proj-1"}, decimal.NewFromInt(300))
	require.NoError(t, err)
	require.NotNil(t, budget)
	assert.True(t, budget.SpentAmount.Equal(decimal.NewFromInt(300)))

	budget, err = repo.ApplyExpense(ctx, domain.Scope{ProjectID: "proj-1"}, decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.True(t, budget.SpentAmount.Equal(decimal.NewFromInt(500)))
}

func TestBudgetRepository_ApplyExpenseNoMatchIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository()
	require.NoError(t, repo.SaveBudget(ctx, newProjectBudget("b-1", "proj-1", 1000)))

	budget, err := repo.ApplyExpense(ctx, domain.Scope{ProjectID: "untracked"}, decimal.NewFromInt(300))
	require.NoError(t, err)
	assert.Nil(t, budget)

	// The existing budget is untouched.
	found, err := repo.FindBudgetByID(ctx, "b-1")
	require.NoError(t, err)
	assert.True(t, found.SpentAmount.IsZero())
}

func TestBudgetRepository_ProjectMatchWinsOverGroup(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository()

	groupBudget := domain.Budget{
		BudgetID:    "b-group",
		OrgID:       "uneural",
		GroupID:     "operaciones",
		Period:      "2026-09",
		CapAmount:   decimal.NewFromInt(1000),
		SpentAmount: decimal.Zero,
	}
	require.NoError(t, repo.SaveBudget(ctx, groupBudget))
	require.NoError(t, repo.SaveBudget(ctx, newProjectBudget("b-project", "proj-1", 1000)))

	// The transaction carries both scope fields; the project budget wins
	// even though the group budget was saved first.
	scope := domain.Scope{ProjectID: "proj-1", GroupID: "operaciones"}
	budget, err := repo.ApplyExpense(ctx, scope, decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NotNil(t, budget)
	assert.Equal(t, "b-project", budget.BudgetID)
}

func TestBudgetRepository_GroupFallbackWhenNoProjectBudget(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository()

	groupBudget := domain.Budget{
		BudgetID:    "b-group",
		GroupID:     "operaciones",
		CapAmount:   decimal.NewFromInt(1000),
		SpentAmount: decimal.Zero,
	}
	require.NoError(t, repo.SaveBudget(ctx, groupBudget))

	scope := domain.Scope{ProjectID: "proj-1", GroupID: "operaciones"}
	budget, err := repo.ApplyExpense(ctx, scope, decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NotNil(t, budget)
	assert.Equal(t, "b-group", budget.BudgetID)
}

func TestBudgetRepository_ConcurrentApplyExpenseLosesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository()
	require.NoError(t, repo.SaveBudget(ctx, newProjectBudget("b-1", "proj-1", 1000000)))

	const workers = 100
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ApplyExpense(ctx, domain.Scope{ProjectID: "proj-1"}, decimal.NewFromInt(10))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	found, err := repo.FindBudgetByID(ctx, "b-1")
	require.NoError(t, err)
	assert.True(t, found.SpentAmount.Equal(decimal.NewFromInt(workers*10)),
		"spent %s, want %d", found.SpentAmount, workers*10)
}
