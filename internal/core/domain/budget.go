package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/uneural/treasury_backend/internal/apperrors"
)

// Budget caps spending for exactly one project or one group over a
// period. SpentAmount only grows, and only through the budget ledger in
// response to a posted expense. Scope is immutable after creation.
type Budget struct {
	BudgetID    string          `json:"budgetID"` // Primary Key (UUID)
	OrgID       string          `json:"orgId"`
	ProjectID   string          `json:"projectId,omitempty"`
	GroupID     string          `json:"groupId,omitempty"`
	Period      string          `json:"period"` // YYYY-MM
	CapAmount   decimal.Decimal `json:"cap_amount"`
	SpentAmount decimal.Decimal `json:"spent_amount"`
	AuditFields
}

// Scope returns the single scope this budget tracks.
func (b Budget) Scope() Scope {
	return Scope{ProjectID: b.ProjectID, GroupID: b.GroupID}
}

// NewBudget constructs a budget, rejecting invariant violations up front:
// a budget scopes exactly one of projectID/groupID, and its cap is
// non-negative. Spent starts at zero.
func NewBudget(budgetID, orgID, projectID, groupID, period string, capAmount decimal.Decimal, audit AuditFields) (Budget, error) {
	if projectID != "" && groupID != "" {
		return Budget{}, fmt.Errorf("%w: budget scope must be a project or a group, not both", apperrors.ErrValidation)
	}
	if projectID == "" && groupID == "" {
		return Budget{}, fmt.Errorf("%w: budget scope requires a projectId or a groupId", apperrors.ErrValidation)
	}
	if capAmount.IsNegative() {
		return Budget{}, fmt.Errorf("%w: cap_amount must not be negative", apperrors.ErrValidation)
	}
	return Budget{
		BudgetID:    budgetID,
		OrgID:       orgID,
		ProjectID:   projectID,
		GroupID:     groupID,
		Period:      period,
		CapAmount:   capAmount,
		SpentAmount: decimal.Zero,
		AuditFields: audit,
	}, nil
}
