package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/uneural/treasury_backend/internal/apperrors"
	"github.com/uneural/treasury_backend/internal/core/domain"
	portsrepo "github.com/uneural/treasury_backend/internal/core/ports/repositories"
)

// TransactionRepository is the in-memory transaction store. It is safe
// for concurrent use; data is lost on restart. The ordered slice keeps
// most-recent-first ordering for display; the map serves id lookups.
type TransactionRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Transaction
	ordered []string // transaction IDs, most recent first
}

// NewTransactionRepository creates a new in-memory transaction repository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		byID: make(map[string]*domain.Transaction),
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

// SaveTransaction inserts a newly ingested transaction, prepending it to
// the display order.
func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if txn.TransactionID == "" {
		return fmt.Errorf("%w: transaction ID is required", apperrors.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}

	txnCopy := txn
	r.byID[txn.TransactionID] = &txnCopy
	r.ordered = append([]string{txn.TransactionID}, r.ordered...)
	return nil
}

// UpdateStatusIfPending persists the transitioned transaction only if
// the stored copy is still pending. The check and the write happen under
// the same lock, which is what makes repeated decisions idempotent.
func (r *TransactionRepository) UpdateStatusIfPending(ctx context.Context, txn domain.Transaction) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.byID[txn.TransactionID]
	if !exists {
		return false, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}
	if stored.Status != domain.Pending {
		return false, nil
	}

	txnCopy := txn
	r.byID[txn.TransactionID] = &txnCopy
	return true, nil
}

// FindTransactionByID retrieves a transaction by ID.
func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txn, exists := r.byID[transactionID]
	if !exists {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}

	// Return a copy to avoid external modifications
	txnCopy := *txn
	return &txnCopy, nil
}

// ListTransactions retrieves transactions, most recent first.
func (r *TransactionRepository) ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Transaction, 0, limit)
	for i := offset; i < len(r.ordered) && len(result) < limit; i++ {
		result = append(result, *r.byID[r.ordered[i]])
	}
	return result, nil
}

// ListTransactionsByStatus retrieves transactions with the given status,
// most recent first. Offset counts within the filtered sequence.
func (r *TransactionRepository) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus, limit int, offset int) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Transaction, 0, limit)
	skipped := 0
	for _, id := range r.ordered {
		txn := r.byID[id]
		if txn.Status != status {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		result = append(result, *txn)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}
