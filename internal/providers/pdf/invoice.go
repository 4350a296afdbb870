package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/auroradigital/billingdesk/internal/invoice/compute"
	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
	"github.com/auroradigital/billingdesk/internal/invoice/render"
)

type MarotoProvider struct{}

func New() Provider {
	return &MarotoProvider{}
}

func (p *MarotoProvider) GenerateInvoice(_ context.Context, doc render.Document) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)
	currency := doc.Currency
	if currency == "" {
		currency = "INR"
	}

	m.AddRow(10,
		text.NewCol(12, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Invoice number: "+doc.InvoiceNumber, props.Text{Top: 0}),
			text.New("Date of issue: "+doc.IssueDate, props.Text{Top: 4}),
			text.New("Date due: "+doc.DueDate, props.Text{Top: 8}),
			text.New("Engagement: "+doc.ProjectName, props.Text{Top: 12}),
		),
		col.New(6),
	)

	m.AddRow(40,
		col.New(6).Add(
			text.New(doc.Organization.DisplayName, props.Text{Style: fontstyle.Bold}),
			text.New(orgAddress(doc), props.Text{Top: 5}),
			text.New(doc.Organization.TaxRegistration, props.Text{Top: 14}),
			text.New(doc.Organization.Email, props.Text{Top: 18}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(doc.Client.CompanyName, props.Text{Top: 5}),
			text.New(clientAddress(doc), props.Text{Top: 9}),
			text.New(clientTaxLine(doc), props.Text{Top: 18}),
		),
	)

	m.AddRow(15,
		text.NewCol(12, fmt.Sprintf("%s %.2f due %s", currency, doc.Totals.Total, doc.DueDate), props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   5,
		}),
	)

	if bank := bankDetails(doc); bank != "" {
		m.AddRow(15,
			text.NewCol(12, bank, props.Text{Size: 9}),
		)
	}

	m.AddRow(10,
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Disc", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range doc.LineItems {
		net := compute.LineBase(item) - compute.LineDiscount(item)
		m.AddRow(12,
			text.NewCol(5, item.Description, props.Text{Size: 9}),
			text.NewCol(2, formatQuantity(item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, formatDiscount(item.Discount), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f", net), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, fmt.Sprintf("%.2f", doc.Totals.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	if doc.Totals.LineDiscounts > 0 {
		m.AddRow(10,
			col.New(7),
			text.NewCol(3, "Discounts", props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("-%.2f", doc.Totals.LineDiscounts), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, taxLabel(doc.TaxConfig), props.Text{Size: 9}),
		text.NewCol(2, fmt.Sprintf("%.2f", doc.Totals.TaxAmount), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(3, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, fmt.Sprintf("%s %.2f", currency, doc.Totals.Total), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if doc.Terms != "" {
		m.AddRow(20,
			text.NewCol(12, doc.Terms, props.Text{Size: 8, Top: 6}),
		)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(out.GetBytes()), nil
}

func orgAddress(doc render.Document) string {
	org := doc.Organization
	return joinNonEmpty(", ", org.AddressLine1, org.AddressLine2, org.City, org.PostalCode, org.Country)
}

func clientAddress(doc render.Document) string {
	c := doc.Client
	return joinNonEmpty(", ", c.AddressLine1, c.AddressLine2, c.City, c.PostalCode, c.Country)
}

func clientTaxLine(doc render.Document) string {
	if doc.Client.GSTIN == "" {
		return ""
	}
	return "GSTIN: " + doc.Client.GSTIN
}

func bankDetails(doc render.Document) string {
	org := doc.Organization
	if org.BankAccount == "" {
		return ""
	}
	parts := []string{org.BankBeneficiary, org.BankName, "A/C " + org.BankAccount}
	if org.BankIFSC != "" {
		parts = append(parts, "IFSC "+org.BankIFSC)
	}
	return joinNonEmpty(" | ", parts...)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

func formatQuantity(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}

func formatDiscount(discount invoicedomain.Discount) string {
	if discount.Value <= 0 {
		return "-"
	}
	if discount.Type == invoicedomain.DiscountPercentage {
		return fmt.Sprintf("%.0f%%", discount.Value)
	}
	return fmt.Sprintf("%.2f", discount.Value)
}

func taxLabel(tax invoicedomain.TaxConfig) string {
	label := strings.TrimSpace(tax.Type)
	if label == "" {
		label = "Tax"
	}
	return fmt.Sprintf("%s %.1f%%", label, tax.Rate)
}
