package draft

import (
	"testing"

	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
)

func validState() invoicedomain.FormState {
	state := invoicedomain.FormState{}
	state.Meta.InvoiceNumber = "ADS-2026-0307-k3v9q2xa"
	state.Meta.IssueDate = "2026-03-07"
	state.Meta.DueDate = "2026-03-22"
	state.Client = invoicedomain.ClientDetails{
		CompanyName:  "Acme Traders",
		AddressLine1: "14 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		PostalCode:   "560001",
		Country:      "India",
	}
	state.LineItems = []invoicedomain.LineItem{
		{ID: "li-1", Description: "Monthly SEO retainer", Quantity: 1, UnitPrice: 25000},
	}
	return state
}

func TestValidateStateCleanDraft(t *testing.T) {
	assert.Empty(t, ValidateState(validState()))
}

func TestValidateStateMissingInvoiceNumber(t *testing.T) {
	state := validState()
	state.Meta.InvoiceNumber = "   "
	assert.Contains(t, ValidateState(state), "Invoice number is required.")
}

func TestValidateStateDueBeforeIssue(t *testing.T) {
	state := validState()
	state.Meta.DueDate = "2026-03-01"
	assert.Contains(t, ValidateState(state), "Due date must be on or after issue date.")
}

func TestValidateStateDueEqualsIssueIsAllowed(t *testing.T) {
	state := validState()
	state.Meta.DueDate = state.Meta.IssueDate
	assert.NotContains(t, ValidateState(state), "Due date must be on or after issue date.")
}

func TestValidateStateUnparsableDatesSkipOrderingCheck(t *testing.T) {
	state := validState()
	state.Meta.IssueDate = "07/03/2026"
	issues := ValidateState(state)
	assert.NotContains(t, issues, "Due date must be on or after issue date.")
}

func TestValidateStateBillToFields(t *testing.T) {
	state := validState()
	state.Client = invoicedomain.ClientDetails{}
	issues := ValidateState(state)
	assert.Contains(t, issues, "Bill to company name is required.")
	assert.Contains(t, issues, "Bill to address line 1 is required.")
	assert.Contains(t, issues, "Bill to city is required.")
	assert.Contains(t, issues, "Bill to state is required.")
	assert.Contains(t, issues, "Bill to postal code is required.")
	assert.Contains(t, issues, "Bill to country is required.")
}

func TestValidateStateLineItems(t *testing.T) {
	state := validState()
	state.LineItems = nil
	assert.Contains(t, ValidateState(state), "At least one line item is required.")

	state = validState()
	state.LineItems[0].Quantity = 0
	state.LineItems = append(state.LineItems, invoicedomain.LineItem{
		ID: "li-2", Description: "", Quantity: 1, UnitPrice: 100,
	})
	issues := ValidateState(state)

	// Broken line items collapse into a single combined message.
	count := 0
	for _, issue := range issues {
		if issue == "Line items must include a description, quantity > 0, non-negative unit price, and non-negative discount." {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestValidateStateNegativeDiscount(t *testing.T) {
	state := validState()
	state.LineItems[0].Discount = invoicedomain.Discount{Type: invoicedomain.DiscountFixed, Value: -5}
	assert.Contains(t, ValidateState(state), "Line items must include a description, quantity > 0, non-negative unit price, and non-negative discount.")
}
