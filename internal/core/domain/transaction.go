package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/uneural/treasury_backend/internal/apperrors"
)

// TransactionType classifies the direction of money movement.
type TransactionType string

const (
	Expense  TransactionType = "expense"
	Income   TransactionType = "income"
	Transfer TransactionType = "transfer"
)

// TransactionStatus is the lifecycle state of a transaction.
// Pending is the only non-terminal status; transitions out of it happen
// exclusively through Transition.
type TransactionStatus string

const (
	Pending  TransactionStatus = "pending"
	Posted   TransactionStatus = "posted"
	Rejected TransactionStatus = "rejected"
)

// IsTerminal reports whether no further transitions are permitted.
func (s TransactionStatus) IsTerminal() bool {
	return s == Posted || s == Rejected
}

// Currency is the set of currencies the organization operates in.
type Currency string

const (
	COP Currency = "COP"
	USD Currency = "USD"
	EUR Currency = "EUR"
)

// PaymentMethod mirrors the payment methods captured at the source.
type PaymentMethod string

const (
	MethodCash       PaymentMethod = "efectivo"
	MethodTransfer   PaymentMethod = "transferencia"
	MethodCreditCard PaymentMethod = "tarjeta_credito"
	MethodDebitCard  PaymentMethod = "tarjeta_debito"
	MethodOther      PaymentMethod = "otro"
)

// Approval records a single decision made on a transaction.
// Approvals are append-only.
type Approval struct {
	By string    `json:"by"` // UserID of the decision actor
	At time.Time `json:"at"`
}

// Scope identifies the project or group a transaction or budget belongs
// to. On a budget exactly one field is set; a transaction may carry both.
type Scope struct {
	ProjectID string `json:"projectId,omitempty"`
	GroupID   string `json:"groupId,omitempty"`
}

// Empty reports whether neither field is set.
func (s Scope) Empty() bool {
	return s.ProjectID == "" && s.GroupID == ""
}

// Transaction is a single recorded financial event.
// Amount and Tax are always non-negative; the status only moves through
// Transition, and PolicyViolations is written once at creation time.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	OrgID         string          `json:"orgId"`
	GroupID       string          `json:"groupId,omitempty"`
	ProjectID     string          `json:"projectId,omitempty"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Vendor        string          `json:"vendor"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	Tax           decimal.Decimal `json:"tax"`
	Method        PaymentMethod   `json:"method"`
	Description   string          `json:"description"`

	// Provenance of the extracted payload.
	Source      string   `json:"source"`     // e.g. "image+text"
	Confidence  float64  `json:"confidence"` // [0,1]
	Attachments []string `json:"attachments,omitempty"`

	Status           TransactionStatus `json:"status"`
	Approvals        []Approval        `json:"approvals"`
	PolicyViolations []string          `json:"policyViolations,omitempty"`

	// Domain-extension fields. Opaque to the policy engine.
	InvoiceNumber   string     `json:"invoiceNumber,omitempty"`
	IEEEChapter     string     `json:"ieeeChapter,omitempty"`
	EventType       string     `json:"eventType,omitempty"` // workshop|meetup|talk|conference
	PaymentDueDate  *time.Time `json:"paymentDueDate,omitempty"`
	ReimbursementTo string     `json:"reimbursementTo,omitempty"`
	FundingSource   string     `json:"fundingSource,omitempty"`
	AttendeeCount   int        `json:"attendeeCount,omitempty"`
	RelatedTaskIDs  []string   `json:"relatedTaskIds,omitempty"`
	Recurring       bool       `json:"recurring,omitempty"`
	Department      string     `json:"department,omitempty"` // Ops|Comms|Programs|Partnerships

	AuditFields
}

// Scope returns the budget scope this transaction is associated with.
func (t Transaction) Scope() Scope {
	return Scope{ProjectID: t.ProjectID, GroupID: t.GroupID}
}

// LedgerInstruction is the side-effect request emitted by a successful
// pending->posted transition on a scoped expense. It is consumed by the
// budget ledger, never produced anywhere else.
type LedgerInstruction struct {
	TransactionID string
	Scope         Scope
	Amount        decimal.Decimal
}

// Transition applies a terminal decision to a pending transaction.
// It returns the updated transaction and, for a posted expense with a
// non-empty scope, the single ledger instruction that posting entails.
// The input transaction is not modified.
//
// A non-terminal target is a caller bug and fails with ErrValidation.
// A transaction already in a terminal status fails with
// ErrTransactionFinalized; callers treat that as a no-op.
func Transition(txn Transaction, target TransactionStatus, approval Approval) (Transaction, *LedgerInstruction, error) {
	if !target.IsTerminal() {
		return txn, nil, fmt.Errorf("%w: target status must be posted or rejected, got %q", apperrors.ErrValidation, target)
	}
	if txn.Status != Pending {
		return txn, nil, apperrors.ErrTransactionFinalized
	}

	updated := txn
	updated.Status = target
	// Copy before appending so the caller's approval history stays intact.
	updated.Approvals = append(append([]Approval{}, txn.Approvals...), approval)
	updated.LastUpdatedAt = approval.At
	updated.LastUpdatedBy = approval.By

	var instruction *LedgerInstruction
	if target == Posted && updated.Type == Expense && !updated.Scope().Empty() {
		instruction = &LedgerInstruction{
			TransactionID: updated.TransactionID,
			Scope:         updated.Scope(),
			Amount:        updated.Amount,
		}
	}
	return updated, instruction, nil
}
