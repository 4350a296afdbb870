package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/auroradigital/billingdesk/internal/invoice/compute"
	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.InvoiceNumber}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      background: #f7f9fc;
      -webkit-font-smoothing: antialiased;
    }
    .invoice-card {
      background: #ffffff;
      max-width: 760px;
      margin: 0 auto;
      padding: 60px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    .header {
      display: flex;
      justify-content: space-between;
      margin-bottom: 40px;
    }
    .header-left h1 {
      margin: 0;
      font-size: 24px;
      font-weight: 700;
    }
    .header-right {
      text-align: right;
      font-size: 13px;
      color: #697386;
      line-height: 1.5;
    }
    .header-right strong {
      display: block;
      font-size: 15px;
      color: #1a1f36;
    }
    .meta-grid {
      display: flex;
      justify-content: space-between;
      margin-bottom: 40px;
    }
    .col { flex: 1; }
    .label {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 6px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    .value {
      font-size: 14px;
      line-height: 1.5;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      margin-bottom: 30px;
    }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 10px 0;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    td {
      padding: 16px 0;
      border-bottom: 1px solid #e3e8ee;
      font-size: 14px;
      vertical-align: top;
    }
    .td-right { text-align: right; }
    .item-title { font-weight: 600; margin-bottom: 2px; }
    .item-sub { font-size: 12px; color: #697386; }
    .totals {
      display: flex;
      flex-direction: column;
      align-items: flex-end;
    }
    .total-row {
      display: flex;
      justify-content: space-between;
      width: 280px;
      padding: 6px 0;
      font-size: 14px;
    }
    .total-label { color: #697386; }
    .total-value { text-align: right; font-weight: 500; }
    .total-final {
      border-top: 1px solid #e3e8ee;
      margin-top: 10px;
      padding-top: 10px;
      font-weight: 700;
      font-size: 16px;
    }
    .footer {
      margin-top: 60px;
      font-size: 12px;
      color: #8792a2;
      border-top: 1px solid #e3e8ee;
      padding-top: 20px;
      line-height: 1.6;
    }
  </style>
</head>
<body>
  <div class="invoice-card">
    <div class="header">
      <div class="header-left">
        <h1>Invoice</h1>
        <div class="label" style="margin-top: 12px;">Invoice number</div>
        <div class="value">{{.InvoiceNumber}}</div>
        {{if .ProjectName}}
        <div class="label" style="margin-top: 16px;">Engagement</div>
        <div class="value">{{.ProjectName}}</div>
        {{end}}
      </div>
      <div class="header-right">
        <strong>{{.Organization.DisplayName}}</strong>
        {{.Organization.AddressLine1}}{{if .Organization.AddressLine2}}, {{.Organization.AddressLine2}}{{end}}<br>
        {{.Organization.City}} {{.Organization.PostalCode}}, {{.Organization.Country}}<br>
        {{.Organization.TaxRegistration}}<br>
        {{.Organization.Email}}
      </div>
    </div>

    <div class="meta-grid">
      <div class="col">
        <div class="label">Bill to</div>
        <div class="value">
          <strong>{{.Client.CompanyName}}</strong><br>
          {{if .Client.ContactName}}{{.Client.ContactName}}<br>{{end}}
          {{.Client.AddressLine1}}{{if .Client.AddressLine2}}, {{.Client.AddressLine2}}{{end}}<br>
          {{.Client.City}} {{.Client.PostalCode}}, {{.Client.Country}}<br>
          {{if .Client.GSTIN}}GSTIN: {{.Client.GSTIN}}{{end}}
        </div>
      </div>
      <div class="col" style="flex: 0 0 200px;">
        <div class="label">Date issued</div>
        <div class="value">{{.IssueDate}}</div>

        <div class="label" style="margin-top: 16px;">Date due</div>
        <div class="value">{{.DueDate}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th style="width: 50%;">Description</th>
          <th class="td-right">Qty</th>
          <th class="td-right">Unit Price</th>
          <th class="td-right">Discount</th>
          <th class="td-right">Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Lines}}
        <tr>
          <td>
            <div class="item-title">{{.Description}}</div>
            {{if .Notes}}<div class="item-sub">{{.Notes}}</div>{{end}}
          </td>
          <td class="td-right">{{.Quantity}}</td>
          <td class="td-right">{{.UnitPrice}}</td>
          <td class="td-right">{{.Discount}}</td>
          <td class="td-right" style="font-weight: 500;">{{.Amount}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="total-row">
        <span class="total-label">Subtotal</span>
        <span class="total-value">{{.Subtotal}}</span>
      </div>
      {{if .HasDiscounts}}
      <div class="total-row">
        <span class="total-label">Discounts</span>
        <span class="total-value">-{{.LineDiscounts}}</span>
      </div>
      {{end}}
      <div class="total-row">
        <span class="total-label">{{.TaxLabel}}</span>
        <span class="total-value">{{.TaxAmount}}</span>
      </div>
      <div class="total-row total-final">
        <span class="total-label" style="color: #1a1f36;">Total</span>
        <span class="total-value">{{.Total}}</span>
      </div>
    </div>

    <div class="footer">
      {{if .BankDetails}}
      <strong>Bank details</strong><br>
      {{.BankDetails}}<br><br>
      {{end}}
      {{if .Terms}}{{.Terms}}{{end}}
      {{if .Note}}<br><br>{{.Note}}{{end}}
    </div>
  </div>
</body>
</html>
`

type lineView struct {
	Description string
	Notes       string
	Quantity    string
	UnitPrice   string
	Discount    string
	Amount      string
}

type documentView struct {
	Document

	Lines         []lineView
	Subtotal      string
	LineDiscounts string
	HasDiscounts  bool
	TaxLabel      string
	TaxAmount     string
	Total         string
	BankDetails   string
}

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, buildView(doc)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildView(doc Document) documentView {
	currency := strings.ToUpper(strings.TrimSpace(doc.Currency))
	if currency == "" {
		currency = "INR"
	}

	view := documentView{
		Document:      doc,
		Subtotal:      formatMoney(doc.Totals.Subtotal, currency),
		LineDiscounts: formatMoney(doc.Totals.LineDiscounts, currency),
		HasDiscounts:  doc.Totals.LineDiscounts > 0,
		TaxLabel:      taxLabel(doc.TaxConfig),
		TaxAmount:     formatMoney(doc.Totals.TaxAmount, currency),
		Total:         formatMoney(doc.Totals.Total, currency),
		BankDetails:   bankDetails(doc),
	}

	for _, item := range doc.LineItems {
		view.Lines = append(view.Lines, lineView{
			Description: item.Description,
			Notes:       item.Notes,
			Quantity:    formatQuantity(item.Quantity),
			UnitPrice:   formatMoney(item.UnitPrice, currency),
			Discount:    formatDiscount(item.Discount),
			Amount:      formatMoney(compute.LineBase(item)-compute.LineDiscount(item), currency),
		})
	}
	return view
}

func formatMoney(amount float64, currency string) string {
	return fmt.Sprintf("%s %.2f", currency, amount)
}

func formatQuantity(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}

func formatDiscount(discount invoicedomain.Discount) string {
	if discount.Value <= 0 {
		return "-"
	}
	if discount.Type == invoicedomain.DiscountPercentage {
		return fmt.Sprintf("%.1f%%", discount.Value)
	}
	return fmt.Sprintf("%.2f", discount.Value)
}

func taxLabel(tax invoicedomain.TaxConfig) string {
	label := strings.TrimSpace(tax.Type)
	if label == "" {
		label = "Tax"
	}
	if tax.IsInclusive {
		return fmt.Sprintf("%s %.1f%% (incl.)", label, tax.Rate)
	}
	return fmt.Sprintf("%s %.1f%%", label, tax.Rate)
}

func bankDetails(doc Document) string {
	org := doc.Organization
	if org.BankAccount == "" {
		return ""
	}
	parts := []string{org.BankBeneficiary, org.BankName, "A/C " + org.BankAccount}
	if org.BankIFSC != "" {
		parts = append(parts, "IFSC "+org.BankIFSC)
	}
	if org.BankSWIFT != "" {
		parts = append(parts, "SWIFT "+org.BankSWIFT)
	}
	return strings.Join(parts, " | ")
}
