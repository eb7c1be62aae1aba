package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uneural/treasury_backend/internal/apperrors"
	"github.com/uneural/treasury_backend/internal/core/domain"
	portsrepo "github.com/uneural/treasury_backend/internal/core/ports/repositories"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

const transactionColumns = `
	transaction_id, org_id, group_id, project_id, type, category, vendor, txn_date,
	amount, currency, tax, method, description,
	source, confidence, attachments,
	status, approvals, policy_violations,
	invoice_number, ieee_chapter, event_type, payment_due_date, reimbursement_to,
	funding_source, attendee_count, related_task_ids, recurring, department,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveTransaction inserts a newly ingested transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33);
	`
	_, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.OrgID,
		txn.GroupID,
		txn.ProjectID,
		txn.Type,
		txn.Category,
		txn.Vendor,
		txn.Date,
		txn.Amount,
		txn.Currency,
		txn.Tax,
		txn.Method,
		txn.Description,
		txn.Source,
		txn.Confidence,
		txn.Attachments,
		txn.Status,
		txn.Approvals, // stored as jsonb
		txn.PolicyViolations,
		txn.InvoiceNumber,
		txn.IEEEChapter,
		txn.EventType,
		txn.PaymentDueDate,
		txn.ReimbursementTo,
		txn.FundingSource,
		txn.AttendeeCount,
		txn.RelatedTaskIDs,
		txn.Recurring,
		txn.Department,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// UpdateStatusIfPending applies the transitioned status, approvals and
// audit fields only when the stored row is still pending. The pending
// check is part of the UPDATE predicate, so concurrent decisions race on
// the row lock and exactly one of them reports changed=true.
func (r *PgxTransactionRepository) UpdateStatusIfPending(ctx context.Context, txn domain.Transaction) (bool, error) {
	query := `
		UPDATE transactions
		SET status = $2, approvals = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND status = 'pending';
	`
	tag, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.Status,
		txn.Approvals,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update status of transaction %s: %w", txn.TransactionID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves transactions, most recent first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY created_at DESC, transaction_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListTransactionsByStatus retrieves transactions with the given status,
// most recent first.
func (r *PgxTransactionRepository) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus, limit int, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status = $1
		ORDER BY created_at DESC, transaction_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by status %s: %w", status, err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.OrgID,
		&txn.GroupID,
		&txn.ProjectID,
		&txn.Type,
		&txn.Category,
		&txn.Vendor,
		&txn.Date,
		&txn.Amount,
		&txn.Currency,
		&txn.Tax,
		&txn.Method,
		&txn.Description,
		&txn.Source,
		&txn.Confidence,
		&txn.Attachments,
		&txn.Status,
		&txn.Approvals,
		&txn.PolicyViolations,
		&txn.InvoiceNumber,
		&txn.IEEEChapter,
		&txn.EventType,
		&txn.PaymentDueDate,
		&txn.ReimbursementTo,
		&txn.FundingSource,
		&txn.AttendeeCount,
		&txn.RelatedTaskIDs,
		&txn.Recurring,
		&txn.Department,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if txn.Approvals == nil {
		txn.Approvals = []domain.Approval{}
	}
	return &txn, nil
}
