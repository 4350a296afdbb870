// Package compute holds the invoice totals engine.
package compute

import (
	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
)

// LineBase returns the undiscounted amount for one line.
func LineBase(item invoicedomain.LineItem) float64 {
	return item.Quantity * item.UnitPrice
}

// LineDiscount returns the discount amount for one line. Fixed
// discounts are not clamped to the line base.
func LineDiscount(item invoicedomain.LineItem) float64 {
	base := LineBase(item)
	if item.Discount.Type == invoicedomain.DiscountPercentage {
		return base * item.Discount.Value / 100
	}
	return item.Discount.Value
}

// Calculate maps line items and a tax configuration to invoice totals.
// It is pure: the same inputs always produce bitwise-identical results.
// An empty line set yields the zero value.
func Calculate(items []invoicedomain.LineItem, tax invoicedomain.TaxConfig) invoicedomain.Totals {
	var subtotal, lineDiscounts float64
	for _, item := range items {
		subtotal += LineBase(item)
		lineDiscounts += LineDiscount(item)
	}

	taxable := subtotal - lineDiscounts
	if taxable < 0 {
		taxable = 0
	}

	var taxAmount, total float64
	if tax.IsInclusive {
		taxAmount = taxable * tax.Rate / (100 + tax.Rate)
		total = taxable
	} else {
		taxAmount = taxable * tax.Rate / 100
		total = taxable + taxAmount
	}

	return invoicedomain.Totals{
		Subtotal:      subtotal,
		LineDiscounts: lineDiscounts,
		TaxableAmount: taxable,
		TaxAmount:     taxAmount,
		Total:         total,
	}
}
