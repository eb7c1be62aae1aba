package repositories

import (
	"context"

	"github.com/uneural/treasury_backend/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions ordered most-recent-first.
	ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error)

	// ListTransactionsByStatus retrieves transactions with the given status,
	// ordered most-recent-first.
	ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus, limit int, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a newly ingested transaction. Insertion is
	// the point at which the transaction becomes visible; the store keeps
	// most-recent-first ordering.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateStatusIfPending persists the transitioned transaction only if
	// the stored copy is still pending. It reports whether the update was
	// applied; a false result means another decision won the race (or the
	// same decision was already applied) and the ledger must not be touched.
	UpdateStatusIfPending(ctx context.Context, txn domain.Transaction) (bool, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
