package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/uneural/treasury_backend/internal/core/domain"
)

// IngestTransactionRequest carries the raw capture handed to the
// ingestion orchestrator. The handler assembles it from the multipart
// form; Attachment is nil when the user only typed text.
type IngestTransactionRequest struct {
	Text       string
	Attachment []byte
	MIMEType   string
	Filename   string
	// ProjectID optionally scopes the draft to a project; the extraction
	// service never infers it.
	ProjectID string
}

// DecisionRequest is the approval action submitted for a pending
// transaction. Status must be one of the two terminal states.
type DecisionRequest struct {
	Status domain.TransactionStatus `json:"status" binding:"required,txnstatus"`
}

// ApprovalResponse mirrors domain.Approval.
type ApprovalResponse struct {
	By string    `json:"by"`
	At time.Time `json:"at"`
}

// TransactionResponse defines the data returned for a transaction.
// Mirrors domain.Transaction.
type TransactionResponse struct {
	TransactionID    string                   `json:"transactionID"`
	OrgID            string                   `json:"orgId"`
	GroupID          string                   `json:"groupId,omitempty"`
	ProjectID        string                   `json:"projectId,omitempty"`
	Type             domain.TransactionType   `json:"type"`
	Category         string                   `json:"category"`
	Vendor           string                   `json:"vendor"`
	Date             time.Time                `json:"date"`
	Amount           decimal.Decimal          `json:"amount"`
	Currency         domain.Currency          `json:"currency"`
	Tax              decimal.Decimal          `json:"tax"`
	Method           domain.PaymentMethod     `json:"method"`
	Description      string                   `json:"description"`
	Source           string                   `json:"source"`
	Confidence       float64                  `json:"confidence"`
	Attachments      []string                 `json:"attachments,omitempty"`
	Status           domain.TransactionStatus `json:"status"`
	Approvals        []ApprovalResponse       `json:"approvals"`
	PolicyViolations []string                 `json:"policyViolations,omitempty"`
	InvoiceNumber    string                   `json:"invoiceNumber,omitempty"`
	IEEEChapter      string                   `json:"ieeeChapter,omitempty"`
	EventType        string                   `json:"eventType,omitempty"`
	PaymentDueDate   *time.Time               `json:"paymentDueDate,omitempty"`
	ReimbursementTo  string                   `json:"reimbursementTo,omitempty"`
	FundingSource    string                   `json:"fundingSource,omitempty"`
	AttendeeCount    int                      `json:"attendeeCount,omitempty"`
	RelatedTaskIDs   []string                 `json:"relatedTaskIds,omitempty"`
	Recurring        bool                     `json:"recurring,omitempty"`
	Department       string                   `json:"department,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
	CreatedBy        string                   `json:"createdBy"`
	LastUpdatedAt    time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy    string                   `json:"lastUpdatedBy"`
}

// DecisionResponse is returned by the decision endpoint: the updated
// transaction plus the budget the posting touched, when any.
type DecisionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Budget      *BudgetResponse     `json:"budget,omitempty"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListTransactionsResponse wraps the most-recent-first transaction list.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	approvals := make([]ApprovalResponse, len(txn.Approvals))
	for i, a := range txn.Approvals {
		approvals[i] = ApprovalResponse{By: a.By, At: a.At}
	}
	return TransactionResponse{
		TransactionID:    txn.TransactionID,
		OrgID:            txn.OrgID,
		GroupID:          txn.GroupID,
		ProjectID:        txn.ProjectID,
		Type:             txn.Type,
		Category:         txn.Category,
		Vendor:           txn.Vendor,
		Date:             txn.Date,
		Amount:           txn.Amount,
		Currency:         txn.Currency,
		Tax:              txn.Tax,
		Method:           txn.Method,
		Description:      txn.Description,
		Source:           txn.Source,
		Confidence:       txn.Confidence,
		Attachments:      txn.Attachments,
		Status:           txn.Status,
		Approvals:        approvals,
		PolicyViolations: txn.PolicyViolations,
		InvoiceNumber:    txn.InvoiceNumber,
		IEEEChapter:      txn.IEEEChapter,
		EventType:        txn.EventType,
		PaymentDueDate:   txn.PaymentDueDate,
		ReimbursementTo:  txn.ReimbursementTo,
		FundingSource:    txn.FundingSource,
		AttendeeCount:    txn.AttendeeCount,
		RelatedTaskIDs:   txn.RelatedTaskIDs,
		Recurring:        txn.Recurring,
		Department:       txn.Department,
		CreatedAt:        txn.CreatedAt,
		CreatedBy:        txn.CreatedBy,
		LastUpdatedAt:    txn.LastUpdatedAt,
		LastUpdatedBy:    txn.LastUpdatedBy,
	}
}

// ToListTransactionsResponse converts a slice of domain.Transaction to ListTransactionsResponse DTO
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return ListTransactionsResponse{Transactions: res}
}
