package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/uneural/treasury_backend/internal/apperrors"
	"github.com/uneural/treasury_backend/internal/core/domain"
	portsrepo "github.com/uneural/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/uneural/treasury_backend/internal/core/ports/services"
	"github.com/uneural/treasury_backend/internal/middleware"
)

// approvalService runs the approval state machine. The transition itself
// is pure (domain.Transition); this service owns the two effectful steps
// around it: the conditional store update that makes repeated decisions
// idempotent, and handing the resulting ledger instruction to the budget
// ledger.
type approvalService struct {
	txnRepo   portsrepo.TransactionRepositoryFacade
	budgetSvc portssvc.BudgetLedgerSvc
}

// NewApprovalService creates a new ApprovalSvcFacade.
func NewApprovalService(txnRepo portsrepo.TransactionRepositoryFacade, budgetSvc portssvc.BudgetLedgerSvc) portssvc.ApprovalSvcFacade {
	return &approvalService{
		txnRepo:   txnRepo,
		budgetSvc: budgetSvc,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// DecideTransaction moves a pending transaction to a terminal status.
// Only the call that actually flips pending to posted triggers a ledger
// update; repeats, races, rejections and non-expense types leave every
// budget untouched.
func (s *approvalService) DecideTransaction(ctx context.Context, transactionID string, target domain.TransactionStatus, deciderUserID string) (*domain.Transaction, *domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}

	approval := domain.Approval{By: deciderUserID, At: time.Now().UTC()}
	updated, instruction, err := domain.Transition(*txn, target, approval)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionFinalized) {
			// Already decided: report the stored state, touch nothing.
			return txn, nil, err
		}
		return nil, nil, err
	}

	changed, err := s.txnRepo.UpdateStatusIfPending(ctx, updated)
	if err != nil {
		return nil, nil, err
	}
	if !changed {
		// A concurrent decision won the race between our read and write.
		// The ledger belongs to whoever won; re-read and report.
		current, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
		if err != nil {
			return nil, nil, err
		}
		return current, nil, apperrors.ErrTransactionFinalized
	}

	var budget *domain.Budget
	if instruction != nil {
		budget, err = s.budgetSvc.ApplyExpense(ctx, *instruction)
		if err != nil {
			return nil, nil, err
		}
	}

	logger.Info("Transaction decided",
		slog.String("transaction_id", transactionID),
		slog.String("status", string(updated.Status)),
		slog.Bool("ledger_updated", budget != nil),
	)
	return &updated, budget, nil
}
