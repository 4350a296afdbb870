package draft

import (
	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
)

// Op is one draft mutation. Each variant carries its own typed payload
// and is dispatched through Form.Apply; sections are replaced whole,
// never deep-merged.
type Op interface {
	isOp()
}

// SelectClient replaces the client snapshot with a copy of the
// matching directory profile. Unknown ids are a silent no-op.
type SelectClient struct {
	ClientID string `json:"clientId"`
}

// SetClient replaces the client snapshot wholesale.
type SetClient struct {
	Client invoicedomain.ClientDetails `json:"client"`
}

// SetMeta replaces the invoice header section.
type SetMeta struct {
	Meta invoicedomain.Meta `json:"meta"`
}

// SetTaxConfig replaces the tax configuration.
type SetTaxConfig struct {
	Tax invoicedomain.TaxConfig `json:"tax"`
}

// SetDiscount replaces the invoice-level discount.
type SetDiscount struct {
	Discount invoicedomain.Discount `json:"discount"`
}

// SetCurrency replaces the invoice currency.
type SetCurrency struct {
	Currency string `json:"currency"`
}

// SetRecurring replaces the recurring schedule section.
type SetRecurring struct {
	Recurring invoicedomain.RecurringConfig `json:"recurring"`
}

// SetTerms replaces the terms text.
type SetTerms struct {
	Terms string `json:"terms"`
}

// SetAdditionalNote replaces the free-form note.
type SetAdditionalNote struct {
	Note string `json:"note"`
}

// AddLineItem appends a row, prefilled from the catalog when a service
// id is given.
type AddLineItem struct {
	ServiceID string `json:"serviceId"`
}

// RemoveLineItem deletes a row. The last remaining row never goes;
// removal is then a no-op.
type RemoveLineItem struct {
	ID string `json:"id"`
}

// SetLineService re-links a row to a catalog service, refreshing its
// description and unit price. Unknown ids leave the row untouched.
type SetLineService struct {
	ID        string `json:"id"`
	ServiceID string `json:"serviceId"`
}

// SetLineDescription updates one row's description.
type SetLineDescription struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// SetLineQuantity updates one row's quantity.
type SetLineQuantity struct {
	ID       string  `json:"id"`
	Quantity float64 `json:"quantity"`
}

// SetLineUnitPrice updates one row's unit price.
type SetLineUnitPrice struct {
	ID        string  `json:"id"`
	UnitPrice float64 `json:"unitPrice"`
}

// SetLineDiscount replaces one row's discount.
type SetLineDiscount struct {
	ID       string                 `json:"id"`
	Discount invoicedomain.Discount `json:"discount"`
}

// SetLineNotes updates one row's notes.
type SetLineNotes struct {
	ID    string `json:"id"`
	Notes string `json:"notes"`
}

func (SelectClient) isOp()       {}
func (SetClient) isOp()          {}
func (SetMeta) isOp()            {}
func (SetTaxConfig) isOp()       {}
func (SetDiscount) isOp()        {}
func (SetCurrency) isOp()        {}
func (SetRecurring) isOp()       {}
func (SetTerms) isOp()           {}
func (SetAdditionalNote) isOp()  {}
func (AddLineItem) isOp()        {}
func (RemoveLineItem) isOp()     {}
func (SetLineService) isOp()     {}
func (SetLineDescription) isOp() {}
func (SetLineQuantity) isOp()    {}
func (SetLineUnitPrice) isOp()   {}
func (SetLineDiscount) isOp()    {}
func (SetLineNotes) isOp()       {}
