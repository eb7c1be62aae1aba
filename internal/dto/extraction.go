package dto

import (
	"github.com/shopspring/decimal"

	"github.com/uneural/treasury_backend/internal/core/domain"
)

// ExtractionInput is the request sent to the external extraction
// service: an optional binary attachment plus the user's free text.
type ExtractionInput struct {
	Attachment []byte
	MIMEType   string
	Text       string
}

// ExtractedTransaction is the structured payload the extraction service
// returns. Required fields per the service contract: Category, Vendor,
// Date, Amount, Currency, Tax, Method, Description, Type. Optional
// fields are zero-valued when the service omitted them.
type ExtractedTransaction struct {
	Category    string          `json:"category"`
	Vendor      string          `json:"vendor"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Tax         decimal.Decimal `json:"tax"`
	Method      string          `json:"method"`
	Description string          `json:"description"`
	Type        string          `json:"type"`

	InvoiceNumber   string   `json:"invoiceNumber,omitempty"`
	IEEEChapter     string   `json:"ieeeChapter,omitempty"`
	EventType       string   `json:"eventType,omitempty"`
	PaymentDueDate  string   `json:"paymentDueDate,omitempty"` // YYYY-MM-DD
	ReimbursementTo string   `json:"reimbursementTo,omitempty"`
	FundingSource   string   `json:"fundingSource,omitempty"`
	AttendeeCount   int      `json:"attendeeCount,omitempty"`
	RelatedTaskIDs  []string `json:"relatedTaskIds,omitempty"`
	Recurring       bool     `json:"recurring,omitempty"`
	Department      string   `json:"department,omitempty"`
}

// knownCurrencies and knownTypes guard the enum fields of the payload;
// anything else is a malformed response from the service.
var knownCurrencies = map[string]bool{
	string(domain.COP): true,
	string(domain.USD): true,
	string(domain.EUR): true,
}

var knownTypes = map[string]bool{
	string(domain.Expense):  true,
	string(domain.Income):   true,
	string(domain.Transfer): true,
}

// Validate checks the required-field contract of the extraction
// boundary. It returns the name of the first offending field, or an
// empty string when the payload is acceptable.
func (e ExtractedTransaction) Validate() string {
	switch {
	case e.Category == "":
		return "category"
	case e.Vendor == "":
		return "vendor"
	case e.Date == "":
		return "date"
	case e.Amount.IsNegative():
		return "amount"
	case !knownCurrencies[e.Currency]:
		return "currency"
	case e.Tax.IsNegative():
		return "tax"
	case e.Method == "":
		return "method"
	case e.Description == "":
		return "description"
	case !knownTypes[e.Type]:
		return "type"
	}
	return ""
}
