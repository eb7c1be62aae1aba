package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uneural/treasury_backend/internal/apperrors"
	"github.com/uneural/treasury_backend/internal/core/domain"
)

func newPendingTxn(id string) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		OrgID:         "uneural",
		Type:          domain.Expense,
		Amount:        decimal.NewFromInt(1000),
		Currency:      domain.COP,
		Status:        domain.Pending,
	}
}

func TestTransactionRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository()

	require.NoError(t, repo.SaveTransaction(ctx, newPendingTxn("txn-1")))

	found, err := repo.FindTransactionByID(ctx, "txn-1")
	require.NoError(t, err)
	assert.Equal(t, "txn-1", found.TransactionID)

	_, err = repo.FindTransactionByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransactionRepository_SaveDuplicateFails(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository()

	require.NoError(t, repo.SaveTransaction(ctx, newPendingTxn("txn-1")))
	assert.ErrorIs(t, repo.SaveTransaction(ctx, newPendingTxn("txn-1")), apperrors.ErrDuplicate)
}

func TestTransactionRepository_ListMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.SaveTransaction(ctx, newPendingTxn(fmt.Sprintf("txn-%d", i))))
	}

	txns, err := repo.ListTransactions(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "txn-3", txns[0].TransactionID)
	assert.Equal(t, "txn-1", txns[2].TransactionID)

	// Pagination walks the same order.
	page, err := repo.ListTransactions(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "txn-2", page[0].TransactionID)
}

func TestTransactionRepository_ListByStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository()

	posted := newPendingTxn("txn-posted")
	posted.Status = domain.Posted
	require.NoError(t, repo.SaveTransaction(ctx, posted))
	require.NoError(t, repo.SaveTransaction(ctx, newPendingTxn("txn-pending")))

	pending, err := repo.ListTransactionsByStatus(ctx, domain.Pending, 10, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "txn-pending", pending[0].TransactionID)
}

func TestTransactionRepository_UpdateStatusIfPending(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository()
	require.NoError(t, repo.SaveTransaction(ctx, newPendingTxn("txn-1")))

	decided := newPendingTxn("txn-1")
	decided.Status = domain.Posted
	decided.Approvals = []domain.Approval{{By: "maria", At: time.Now().UTC()}}

	changed, err := repo.UpdateStatusIfPending(ctx, decided)
	require.NoError(t, err)
	assert.True(t, changed)

	// Second decision is a no-op.
	again := decided
	again.Status = domain.Rejected
	changed, err = repo.UpdateStatusIfPending(ctx, again)
	require.NoError(t, err)
	assert.False(t, changed)

	found, err := repo.FindTransactionByID(ctx, "txn-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, found.Status)
}

func TestTransactionRepository_UpdateStatusMissingTransaction(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository()

	_, err := repo.UpdateStatusIfPending(ctx, newPendingTxn("missing"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransactionRepository_ConcurrentDecisionsFlipOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository()
	require.NoError(t, repo.SaveTransaction(ctx, newPendingTxn("txn-1")))

	const attempts = 50
	var wg sync.WaitGroup
	wins := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decided := newPendingTxn("txn-1")
			decided.Status = domain.Posted
			changed, err := repo.UpdateStatusIfPending(ctx, decided)
			if err == nil && changed {
				wins <- true
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Equal(t, 1, len(wins), "exactly one concurrent decision must win")
}
