package services

import (
	"context"

	"github.com/uneural/treasury_backend/internal/core/domain"
	"github.com/uneural/treasury_backend/internal/dto"
)

// IngestionSvcFacade is the ingestion orchestrator: it calls the
// extraction service, runs the policy evaluator against the current
// budget snapshot, and commits the resulting transaction.
type IngestionSvcFacade interface {
	// IngestTransaction turns raw input into a committed transaction.
	// Extraction failure (or a malformed payload) fails with
	// apperrors.ErrExtraction and commits nothing.
	IngestTransaction(ctx context.Context, req dto.IngestTransactionRequest, creatorUserID string) (*domain.Transaction, error)
}

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction by its ID.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions, most recent first.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)

	// ListPendingTransactions retrieves the approval queue.
	ListPendingTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)
}

// TransactionSvcFacade combines the transaction read operations.
type TransactionSvcFacade interface {
	TransactionReaderSvc
}

// ApprovalSvcFacade is the approval state machine: it moves a pending
// transaction to a terminal status and hands the resulting ledger
// instruction, if any, to the budget ledger.
type ApprovalSvcFacade interface {
	// DecideTransaction applies a terminal decision. Deciding an already
	// terminal transaction is a no-op that returns the stored transaction
	// and apperrors.ErrTransactionFinalized; repeated identical decisions
	// update the ledger at most once.
	DecideTransaction(ctx context.Context, transactionID string, target domain.TransactionStatus, deciderUserID string) (*domain.Transaction, *domain.Budget, error)
}
