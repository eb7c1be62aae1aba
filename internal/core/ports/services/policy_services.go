package services

import (
	"github.com/uneural/treasury_backend/internal/core/domain"
)

// PolicySvcFacade is the policy evaluator. Evaluate is a pure function
// of its arguments: no hidden state, repeatable for identical inputs,
// and it never fails; rules that do not apply simply do not fire.
type PolicySvcFacade interface {
	// Evaluate decides the initial status of a draft transaction against
	// the given budget snapshot and returns the ordered list of policy
	// violation messages.
	Evaluate(draft domain.Transaction, budgets []domain.Budget) (domain.TransactionStatus, []string)
}
