package services

import (
	"github.com/shopspring/decimal"

	"github.com/uneural/treasury_backend/internal/core/domain"
	portssvc "github.com/uneural/treasury_backend/internal/core/ports/services"
)

// Violation messages are part of the contract with the presentation
// layer; clients and tests match on them verbatim.
const (
	MsgMandatoryReview = "requires approval: amount exceeds 300,000 COP"
	MsgBudgetOverrun   = "rejected: exceeds project budget cap by more than 10%"
)

var (
	// Expenses above this amount in COP always need a human decision.
	mandatoryReviewCap = decimal.NewFromInt(300000)
	// A project may overshoot its cap by 10% before ingestion blocks it.
	overrunFactor = decimal.NewFromFloat(1.10)
)

// policyService evaluates spending policy against a budget snapshot.
// It holds no state: evaluation is a pure function of (draft, budgets),
// which keeps decisions auditable and repeatable.
type policyService struct{}

// NewPolicyService creates a new PolicySvcFacade.
func NewPolicyService() portssvc.PolicySvcFacade {
	return &policyService{}
}

var _ portssvc.PolicySvcFacade = (*policyService)(nil)

// Evaluate applies the spending rules in fixed order. Both rules can
// fire on the same draft; only the overrun rule changes the status, so
// a rejection always wins over a plain pending-with-note.
func (s *policyService) Evaluate(draft domain.Transaction, budgets []domain.Budget) (domain.TransactionStatus, []string) {
	status := domain.Pending
	var violations []string

	// Rule A: mandatory review for large COP expenses. Annotates only.
	if draft.Type == domain.Expense && draft.Currency == domain.COP && draft.Amount.GreaterThan(mandatoryReviewCap) {
		violations = append(violations, MsgMandatoryReview)
	}

	// Rule B: block expenses that would push the project budget more
	// than 10% past its cap. Applies only to project-scoped expenses.
	if draft.Type == domain.Expense && draft.ProjectID != "" {
		if budget := findProjectBudget(budgets, draft.ProjectID); budget != nil {
			projectedSpent := budget.SpentAmount.Add(draft.Amount)
			threshold := budget.CapAmount.Mul(overrunFactor)
			if projectedSpent.GreaterThan(threshold) {
				status = domain.Rejected
				violations = append(violations, MsgBudgetOverrun)
			}
		}
		// No budget for this project scope means the rule does not
		// apply: the expense passes unchecked and, on approval, goes
		// untracked. Known policy gap, preserved on purpose.
	}

	return status, violations
}

// findProjectBudget returns the budget scoped to projectID. Scope
// exclusivity guarantees at most one per project.
func findProjectBudget(budgets []domain.Budget, projectID string) *domain.Budget {
	for i := range budgets {
		if budgets[i].ProjectID == projectID {
			return &budgets[i]
		}
	}
	return nil
}
