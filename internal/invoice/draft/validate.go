package draft

import (
	"strings"
	"time"

	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
)

// Validate collects human-readable issues with the current draft. It
// never fails; callers decide whether to block or warn and proceed.
func (f *Form) Validate() []string {
	f.mu.Lock()
	state := invoicedomain.CloneFormState(f.state)
	f.mu.Unlock()

	return ValidateState(state)
}

// ValidateState checks a form state without needing a live Form.
func ValidateState(state invoicedomain.FormState) []string {
	var issues []string

	if strings.TrimSpace(state.Meta.InvoiceNumber) == "" {
		issues = append(issues, "Invoice number is required.")
	}
	if strings.TrimSpace(state.Meta.IssueDate) == "" {
		issues = append(issues, "Issue date is required.")
	}
	if strings.TrimSpace(state.Meta.DueDate) == "" {
		issues = append(issues, "Due date is required.")
	}
	if issue, due, ok := parseDates(state.Meta.IssueDate, state.Meta.DueDate); ok && due.Before(issue) {
		issues = append(issues, "Due date must be on or after issue date.")
	}

	if strings.TrimSpace(state.Client.CompanyName) == "" {
		issues = append(issues, "Bill to company name is required.")
	}
	if strings.TrimSpace(state.Client.AddressLine1) == "" {
		issues = append(issues, "Bill to address line 1 is required.")
	}
	if strings.TrimSpace(state.Client.City) == "" {
		issues = append(issues, "Bill to city is required.")
	}
	if strings.TrimSpace(state.Client.State) == "" {
		issues = append(issues, "Bill to state is required.")
	}
	if strings.TrimSpace(state.Client.PostalCode) == "" {
		issues = append(issues, "Bill to postal code is required.")
	}
	if strings.TrimSpace(state.Client.Country) == "" {
		issues = append(issues, "Bill to country is required.")
	}

	if len(state.LineItems) == 0 {
		issues = append(issues, "At least one line item is required.")
	}
	for _, item := range state.LineItems {
		if strings.TrimSpace(item.Description) == "" || item.Quantity <= 0 || item.UnitPrice < 0 || item.Discount.Value < 0 {
			issues = append(issues, "Line items must include a description, quantity > 0, non-negative unit price, and non-negative discount.")
			break
		}
	}

	return issues
}

func parseDates(issueRaw, dueRaw string) (issue, due time.Time, ok bool) {
	issue, errIssue := time.Parse(dateLayout, strings.TrimSpace(issueRaw))
	due, errDue := time.Parse(dateLayout, strings.TrimSpace(dueRaw))
	if errIssue != nil || errDue != nil {
		return time.Time{}, time.Time{}, false
	}
	return issue, due, true
}
