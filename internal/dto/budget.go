package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/uneural/treasury_backend/internal/core/domain"
)

// CreateBudgetRequest defines the data needed to create a budget.
// Exactly one of ProjectID/GroupID must be set; the domain constructor
// enforces it.
type CreateBudgetRequest struct {
	ProjectID string          `json:"projectId"`
	GroupID   string          `json:"groupId"`
	Period    string          `json:"period" binding:"required"` // YYYY-MM
	CapAmount decimal.Decimal `json:"cap_amount" binding:"required"`
}

// BudgetResponse defines the data returned for a budget.
// Mirrors domain.Budget.
type BudgetResponse struct {
	BudgetID      string          `json:"budgetID"`
	OrgID         string          `json:"orgId"`
	ProjectID     string          `json:"projectId,omitempty"`
	GroupID       string          `json:"groupId,omitempty"`
	Period        string          `json:"period"`
	CapAmount     decimal.Decimal `json:"cap_amount"`
	SpentAmount   decimal.Decimal `json:"spent_amount"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ListBudgetsResponse wraps the list of budgets.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:      b.BudgetID,
		OrgID:         b.OrgID,
		ProjectID:     b.ProjectID,
		GroupID:       b.GroupID,
		Period:        b.Period,
		CapAmount:     b.CapAmount,
		SpentAmount:   b.SpentAmount,
		CreatedAt:     b.CreatedAt,
		CreatedBy:     b.CreatedBy,
		LastUpdatedAt: b.LastUpdatedAt,
		LastUpdatedBy: b.LastUpdatedBy,
	}
}

// ToListBudgetsResponse converts a slice of domain.Budget to ListBudgetsResponse DTO
func ToListBudgetsResponse(budgets []domain.Budget) ListBudgetsResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(&b)
	}
	return ListBudgetsResponse{Budgets: res}
}
