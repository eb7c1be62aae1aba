package services

import (
	"context"

	"github.com/uneural/treasury_backend/internal/core/domain"
	portsrepo "github.com/uneural/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/uneural/treasury_backend/internal/core/ports/services"
	"github.com/uneural/treasury_backend/internal/dto"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// transactionService is the read side of the transaction store.
type transactionService struct {
	txnRepo portsrepo.TransactionReader
}

// NewTransactionService creates a new TransactionSvcFacade.
func NewTransactionService(txnRepo portsrepo.TransactionReader) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// GetTransactionByID retrieves a specific transaction by its ID.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// ListTransactions retrieves transactions, most recent first.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	limit, offset := clampListParams(params)
	return s.txnRepo.ListTransactions(ctx, limit, offset)
}

// ListPendingTransactions retrieves the approval queue.
func (s *transactionService) ListPendingTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	limit, offset := clampListParams(params)
	return s.txnRepo.ListTransactionsByStatus(ctx, domain.Pending, limit, offset)
}

func clampListParams(params dto.ListTransactionsParams) (int, int) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
