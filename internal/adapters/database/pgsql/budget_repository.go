package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/uneural/treasury_backend/internal/apperrors"
	"github.com/uneural/treasury_backend/internal/core/domain"
	portsrepo "github.com/uneural/treasury_backend/internal/core/ports/repositories"
)

type PgxBudgetRepository struct {
	pool *pgxpool.Pool
}

// NewPgxBudgetRepository creates a new repository for budget data.
func NewPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{pool: pool}
}

const budgetColumns = `
	budget_id, org_id, project_id, group_id, period, cap_amount, spent_amount,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveBudget persists a new budget.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		budget.BudgetID,
		budget.OrgID,
		budget.ProjectID,
		budget.GroupID,
		budget.Period,
		budget.CapAmount,
		budget.SpentAmount,
		budget.CreatedAt,
		budget.CreatedBy,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget %s: %w", budget.BudgetID, err)
	}
	return nil
}

// ApplyExpense increments spent_amount on the first budget matching the
// scope, project field before group field. The increment happens in the
// database, so concurrent postings against the same budget serialize on
// the row lock instead of overwriting each other. No match is a no-op,
// reported as (nil, nil).
func (r *PgxBudgetRepository) ApplyExpense(ctx context.Context, scope domain.Scope, amount decimal.Decimal) (*domain.Budget, error) {
	if scope.ProjectID != "" {
		budget, err := r.applyToMatch(ctx, `project_id = $1 AND project_id <> ''`, scope.ProjectID, amount)
		if err != nil || budget != nil {
			return budget, err
		}
	}
	if scope.GroupID != "" {
		return r.applyToMatch(ctx, `group_id = $1 AND group_id <> ''`, scope.GroupID, amount)
	}
	return nil, nil
}

func (r *PgxBudgetRepository) applyToMatch(ctx context.Context, predicate string, scopeID string, amount decimal.Decimal) (*domain.Budget, error) {
	query := `
		UPDATE budgets
		SET spent_amount = spent_amount + $2
		WHERE budget_id = (
			SELECT budget_id FROM budgets WHERE ` + predicate + ` ORDER BY created_at, budget_id LIMIT 1
		)
		RETURNING ` + budgetColumns + `;
	`
	budget, err := scanBudget(r.pool.QueryRow(ctx, query, scopeID, amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to apply expense to budget scope %s: %w", scopeID, err)
	}
	return budget, nil
}

// FindBudgetByID retrieves a budget by its ID.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE budget_id = $1;
	`
	budget, err := scanBudget(r.pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}
	return budget, nil
}

// ListBudgets retrieves all budgets in creation order.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		ORDER BY created_at, budget_id;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, *budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}
	return budgets, nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var budget domain.Budget
	err := row.Scan(
		&budget.BudgetID,
		&budget.OrgID,
		&budget.ProjectID,
		&budget.GroupID,
		&budget.Period,
		&budget.CapAmount,
		&budget.SpentAmount,
		&budget.CreatedAt,
		&budget.CreatedBy,
		&budget.LastUpdatedAt,
		&budget.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &budget, nil
}
