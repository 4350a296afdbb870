// Package domain contains the invoice draft and snapshot models.
package domain

import (
	"encoding/json"
	"time"
)

// DiscountType selects how a discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "Percentage"
	DiscountFixed      DiscountType = "Fixed"
)

// Discount applies to a single line or the whole invoice.
type Discount struct {
	Type  DiscountType `json:"type"`
	Value float64      `json:"value"`
}

// TaxConfig describes how tax is applied to the taxable amount.
type TaxConfig struct {
	Type        string  `json:"type"`
	Rate        float64 `json:"rate"`
	IsInclusive bool    `json:"isInclusive"`
}

// LineItem is one billable row. A fixed discount larger than the line
// base is allowed to drive the line negative; only the aggregate
// taxable amount floors at zero.
type LineItem struct {
	ID          string   `json:"id"`
	ServiceID   string   `json:"serviceId"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   float64  `json:"unitPrice"`
	Discount    Discount `json:"discount"`
	Notes       string   `json:"notes,omitempty"`
}

// Meta holds invoice header fields. Dates are form inputs kept as
// YYYY-MM-DD strings until validation parses them.
type Meta struct {
	InvoiceNumber string `json:"invoiceNumber"`
	IssueDate     string `json:"issueDate"`
	DueDate       string `json:"dueDate"`
	ProjectName   string `json:"projectName"`
	PurchaseOrder string `json:"purchaseOrder,omitempty"`
	Reference     string `json:"reference,omitempty"`
}

// RecurringConfig schedules repeat issuance of a draft.
type RecurringConfig struct {
	IsEnabled bool   `json:"isEnabled"`
	Interval  string `json:"interval"`
}

// ClientDetails is a mutable snapshot of a directory profile.
type ClientDetails struct {
	CompanyName  string `json:"companyName"`
	ContactName  string `json:"contactName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	GSTIN        string `json:"gstin,omitempty"`
}

// FormState is one invoice-in-progress.
type FormState struct {
	ClientSelectionID string          `json:"clientSelectionId"`
	Client            ClientDetails   `json:"client"`
	Currency          string          `json:"currency"`
	TaxConfig         TaxConfig       `json:"taxConfig"`
	Discount          Discount        `json:"discount"`
	LineItems         []LineItem      `json:"lineItems"`
	Meta              Meta            `json:"meta"`
	Recurring         RecurringConfig `json:"recurring"`
	Terms             string          `json:"terms"`
	AdditionalNote    string          `json:"additionalNote"`
}

// Totals is the computation engine's result. Values stay unrounded;
// rounding happens at formatting time only.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	LineDiscounts float64 `json:"lineDiscounts"`
	TaxableAmount float64 `json:"taxableAmount"`
	TaxAmount     float64 `json:"taxAmount"`
	Total         float64 `json:"total"`
}

// StoredInvoice is a frozen archive snapshot. Its form state never
// aliases the live draft.
type StoredInvoice struct {
	ID            string    `json:"id"`
	InvoiceNumber string    `json:"invoiceNumber"`
	SavedAt       time.Time `json:"savedAt"`
	FormState     FormState `json:"formState"`
}

// CloneFormState deep-copies a form state through its JSON encoding so
// the copy shares nothing with the original.
func CloneFormState(state FormState) FormState {
	raw, err := json.Marshal(state)
	if err != nil {
		return state
	}
	var out FormState
	if err := json.Unmarshal(raw, &out); err != nil {
		return state
	}
	return out
}
