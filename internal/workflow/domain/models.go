package domain

import (
	"time"

	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
)

// InvoiceStatus is the payment/delivery state of a posted invoice,
// distinct from its approval state.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "Draft"
	StatusPending InvoiceStatus = "Pending"
	StatusPaid    InvoiceStatus = "Paid"
	StatusOverdue InvoiceStatus = "Overdue"
)

// ApprovalStatus is the approval-workflow state of a posted invoice.
type ApprovalStatus string

const (
	ApprovalAwaiting   ApprovalStatus = "Awaiting Approval"
	ApprovalApproved   ApprovalStatus = "Approved"
	ApprovalRejected   ApprovalStatus = "Rejected"
	ApprovalNeedsEdits ApprovalStatus = "Needs Edits"
)

// ValidTransition reports whether a record may move to next. Only
// records still awaiting approval can transition; Approved and
// Rejected are terminal, and NeedsEdits routes back into editing via
// resubmission rather than a status change.
func ValidTransition(current, next ApprovalStatus) bool {
	if current != ApprovalAwaiting {
		return false
	}
	switch next {
	case ApprovalApproved, ApprovalRejected, ApprovalNeedsEdits:
		return true
	}
	return false
}

// InvoiceRecord is the posted (ledger) form of an invoice. Records are
// created by submission, mutated only by approval transitions, and
// never deleted.
type InvoiceRecord struct {
	ID             string                   `json:"id"`
	InvoiceNumber  string                   `json:"invoiceNumber"`
	ClientID       string                   `json:"clientId"`
	Engagement     string                   `json:"engagement"`
	Currency       string                   `json:"currency"`
	Amount         float64                  `json:"amount"`
	Status         InvoiceStatus            `json:"status"`
	IssueDate      string                   `json:"issueDate"`
	DueDate        string                   `json:"dueDate"`
	LastUpdated    time.Time                `json:"lastUpdated"`
	CreatedBy      catalogdomain.Role       `json:"createdBy"`
	ApprovalStatus ApprovalStatus           `json:"approvalStatus"`
	LineItems      []invoicedomain.LineItem `json:"lineItems"`
	Notes          string                   `json:"notes,omitempty"`

	// RevisedFromID points at the record this one supersedes when it
	// was created by resubmission after a Needs Edits verdict.
	RevisedFromID string `json:"revisedFromId,omitempty"`
}
