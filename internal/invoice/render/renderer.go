// Package render turns an invoice into a client-shareable document.
package render

import (
	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	"github.com/auroradigital/billingdesk/internal/invoice/compute"
	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
)

// Document is the fully resolved input to a renderer: organization
// letterhead, bill-to details, line items, and computed totals.
type Document struct {
	Organization  catalogdomain.Organization
	InvoiceNumber string
	IssueDate     string
	DueDate       string
	ProjectName   string
	Client        invoicedomain.ClientDetails
	Currency      string
	TaxConfig     invoicedomain.TaxConfig
	LineItems     []invoicedomain.LineItem
	Totals        invoicedomain.Totals
	Terms         string
	Note          string
}

// Renderer produces an HTML document for an invoice.
type Renderer interface {
	RenderHTML(doc Document) (string, error)
}

// BuildDocument resolves a drafted or archived form state into a
// renderable document, computing totals from the line items.
func BuildDocument(org catalogdomain.Organization, state invoicedomain.FormState) Document {
	return Document{
		Organization:  org,
		InvoiceNumber: state.Meta.InvoiceNumber,
		IssueDate:     state.Meta.IssueDate,
		DueDate:       state.Meta.DueDate,
		ProjectName:   state.Meta.ProjectName,
		Client:        state.Client,
		Currency:      state.Currency,
		TaxConfig:     state.TaxConfig,
		LineItems:     state.LineItems,
		Totals:        compute.Calculate(state.LineItems, state.TaxConfig),
		Terms:         state.Terms,
		Note:          state.AdditionalNote,
	}
}
