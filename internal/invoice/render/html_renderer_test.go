package render

import (
	"testing"

	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() invoicedomain.FormState {
	state := invoicedomain.FormState{}
	state.Currency = "INR"
	state.TaxConfig = invoicedomain.TaxConfig{Type: "GST", Rate: 18}
	state.Meta.InvoiceNumber = "ADS-2026-0307-k3v9q2xa"
	state.Meta.IssueDate = "2026-03-07"
	state.Meta.DueDate = "2026-03-22"
	state.Meta.ProjectName = "Retainer Services"
	state.Client = invoicedomain.ClientDetails{
		CompanyName:  "Nimbus Finserve Ltd.",
		AddressLine1: "903, Sapphire Heights",
		City:         "Mumbai",
		PostalCode:   "400058",
		Country:      "India",
		GSTIN:        "27AACCN1234B1Z9",
	}
	state.LineItems = []invoicedomain.LineItem{
		{ID: "li-1", Description: "Monthly SEO retainer", Quantity: 2, UnitPrice: 65000,
			Discount: invoicedomain.Discount{Type: invoicedomain.DiscountPercentage, Value: 10}},
	}
	state.Terms = "Payment due within 15 days."
	return state
}

func sampleOrg() catalogdomain.Organization {
	return catalogdomain.Organization{
		ID:              "org-aurora",
		LegalName:       "Aurora Digital Solutions Pvt. Ltd.",
		DisplayName:     "Aurora Digital Solutions",
		TaxRegistration: "GSTIN: 27AABCU9603R1Z7",
		AddressLine1:    "7th Floor, Crest Tower",
		City:            "Mumbai",
		PostalCode:      "400051",
		Country:         "India",
		Email:           "billing@auroradigital.in",
		BankBeneficiary: "Aurora Digital Solutions Pvt. Ltd.",
		BankName:        "Horizon Bank of India",
		BankAccount:     "018901290384",
		BankIFSC:        "HRZN0001290",
	}
}

func TestBuildDocumentComputesTotals(t *testing.T) {
	doc := BuildDocument(sampleOrg(), sampleState())

	// 2*65000 = 130000 subtotal, 13000 discount, 18% GST on 117000.
	assert.Equal(t, float64(130000), doc.Totals.Subtotal)
	assert.Equal(t, float64(13000), doc.Totals.LineDiscounts)
	assert.InDelta(t, 21060, doc.Totals.TaxAmount, 1e-9)
	assert.InDelta(t, 138060, doc.Totals.Total, 1e-9)
}

func TestRenderHTMLContainsInvoiceParts(t *testing.T) {
	doc := BuildDocument(sampleOrg(), sampleState())

	html, err := NewRenderer().RenderHTML(doc)
	require.NoError(t, err)

	assert.Contains(t, html, "ADS-2026-0307-k3v9q2xa")
	assert.Contains(t, html, "Aurora Digital Solutions")
	assert.Contains(t, html, "Nimbus Finserve Ltd.")
	assert.Contains(t, html, "Monthly SEO retainer")
	assert.Contains(t, html, "10.0%")
	assert.Contains(t, html, "GST 18.0%")
	assert.Contains(t, html, "INR 138060.00")
	assert.Contains(t, html, "Horizon Bank of India")
	assert.Contains(t, html, "Payment due within 15 days.")
}

func TestRenderHTMLEscapesClientInput(t *testing.T) {
	state := sampleState()
	state.Client.CompanyName = `<script>alert("x")</script>`

	html, err := NewRenderer().RenderHTML(BuildDocument(sampleOrg(), state))
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
}
