package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/uneural/treasury_backend/internal/apperrors"
	"github.com/uneural/treasury_backend/internal/core/domain"
	portsrepo "github.com/uneural/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/uneural/treasury_backend/internal/core/ports/services"
	"github.com/uneural/treasury_backend/internal/dto"
	"github.com/uneural/treasury_backend/internal/middleware"
)

const dateLayout = "2006-01-02"

// defaultConfidence is stamped on every extracted draft. The extraction
// service gives no per-field confidence, so a flat prior is all we have.
const defaultConfidence = 0.85

// IngestionDefaults are the identity fields stamped onto every draft.
type IngestionDefaults struct {
	OrgID   string
	GroupID string
}

// ingestionService coordinates one ingestion: extraction round-trip,
// policy evaluation against the current budget snapshot, then a single
// atomic insert. Nothing is committed on any failure along the way.
type ingestionService struct {
	extractor  portssvc.TransactionExtractor
	policySvc  portssvc.PolicySvcFacade
	txnRepo    portsrepo.TransactionRepositoryFacade
	budgetRepo portsrepo.BudgetReader
	defaults   IngestionDefaults
}

// NewIngestionService creates a new IngestionSvcFacade.
func NewIngestionService(
	extractor portssvc.TransactionExtractor,
	policySvc portssvc.PolicySvcFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	budgetRepo portsrepo.BudgetReader,
	defaults IngestionDefaults,
) portssvc.IngestionSvcFacade {
	return &ingestionService{
		extractor:  extractor,
		policySvc:  policySvc,
		txnRepo:    txnRepo,
		budgetRepo: budgetRepo,
		defaults:   defaults,
	}
}

var _ portssvc.IngestionSvcFacade = (*ingestionService)(nil)

// IngestTransaction runs the full ingestion flow. The extraction call is
// the only suspension point; cancelling ctx before it resolves aborts
// the ingestion with nothing committed.
func (s *ingestionService) IngestTransaction(ctx context.Context, req dto.IngestTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payload, err := s.extractor.ExtractTransaction(ctx, dto.ExtractionInput{
		Attachment: req.Attachment,
		MIMEType:   req.MIMEType,
		Text:       req.Text,
	})
	if err != nil {
		return nil, err
	}

	draft, err := s.buildDraft(payload, req, creatorUserID)
	if err != nil {
		return nil, err
	}

	// Policy reads a snapshot; a concurrent approval may land between
	// this read and the insert. That staleness is accepted; the ledger
	// updates themselves are never lost.
	budgets, err := s.budgetRepo.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read budget snapshot: %w", err)
	}

	status, violations := s.policySvc.Evaluate(*draft, budgets)
	draft.Status = status
	draft.PolicyViolations = violations

	if err := s.txnRepo.SaveTransaction(ctx, *draft); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Transaction ingested",
		slog.String("transaction_id", draft.TransactionID),
		slog.String("type", string(draft.Type)),
		slog.String("status", string(draft.Status)),
		slog.Int("policy_violations", len(draft.PolicyViolations)),
	)
	return draft, nil
}

// buildDraft turns the extracted payload into a draft transaction,
// enforcing the required-field contract of the extraction boundary.
// A malformed payload is an extraction failure, never a silent default.
func (s *ingestionService) buildDraft(payload *dto.ExtractedTransaction, req dto.IngestTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if field := payload.Validate(); field != "" {
		return nil, fmt.Errorf("%w: payload field %q missing or invalid", apperrors.ErrExtraction, field)
	}

	date, err := time.Parse(dateLayout, payload.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: payload date %q is not an ISO date", apperrors.ErrExtraction, payload.Date)
	}

	// Optional date; a malformed value is dropped rather than failing
	// the whole ingestion.
	var paymentDueDate *time.Time
	if payload.PaymentDueDate != "" {
		if due, err := time.Parse(dateLayout, payload.PaymentDueDate); err == nil {
			paymentDueDate = &due
		}
	}

	source := "text"
	var attachments []string
	if len(req.Attachment) > 0 {
		source = mimeKind(req.MIMEType) + "+text"
		if req.Filename != "" {
			attachments = []string{req.Filename}
		}
	}

	now := time.Now().UTC()
	return &domain.Transaction{
		TransactionID:   uuid.NewString(),
		OrgID:           s.defaults.OrgID,
		GroupID:         s.defaults.GroupID,
		ProjectID:       req.ProjectID,
		Type:            domain.TransactionType(payload.Type),
		Category:        payload.Category,
		Vendor:          payload.Vendor,
		Date:            date,
		Amount:          payload.Amount,
		Currency:        domain.Currency(payload.Currency),
		Tax:             payload.Tax,
		Method:          domain.PaymentMethod(payload.Method),
		Description:     payload.Description,
		Source:          source,
		Confidence:      defaultConfidence,
		Attachments:     attachments,
		Approvals:       []domain.Approval{},
		InvoiceNumber:   payload.InvoiceNumber,
		IEEEChapter:     payload.IEEEChapter,
		EventType:       payload.EventType,
		PaymentDueDate:  paymentDueDate,
		ReimbursementTo: payload.ReimbursementTo,
		FundingSource:   payload.FundingSource,
		AttendeeCount:   payload.AttendeeCount,
		RelatedTaskIDs:  payload.RelatedTaskIDs,
		Recurring:       payload.Recurring,
		Department:      payload.Department,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}, nil
}

// mimeKind reduces a media type to its kind: "image/png" -> "image".
func mimeKind(mimeType string) string {
	if kind, _, ok := strings.Cut(mimeType, "/"); ok && kind != "" {
		return kind
	}
	return "file"
}
