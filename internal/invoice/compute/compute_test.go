package compute

import (
	"testing"

	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
)

func pct(value float64) invoicedomain.Discount {
	return invoicedomain.Discount{Type: invoicedomain.DiscountPercentage, Value: value}
}

func fixed(value float64) invoicedomain.Discount {
	return invoicedomain.Discount{Type: invoicedomain.DiscountFixed, Value: value}
}

func sampleItems() []invoicedomain.LineItem {
	return []invoicedomain.LineItem{
		{ID: "li-1", Quantity: 2, UnitPrice: 100, Discount: pct(0)},
		{ID: "li-2", Quantity: 1, UnitPrice: 50, Discount: pct(10)},
	}
}

func TestCalculate_ExclusiveTax(t *testing.T) {
	totals := Calculate(sampleItems(), invoicedomain.TaxConfig{Type: "GST", Rate: 18, IsInclusive: false})

	assert.Equal(t, 250.0, totals.Subtotal)
	assert.Equal(t, 5.0, totals.LineDiscounts)
	assert.Equal(t, 245.0, totals.TaxableAmount)
	assert.InDelta(t, 44.1, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 289.1, totals.Total, 1e-9)
	assert.Equal(t, totals.TaxableAmount+totals.TaxAmount, totals.Total)
}

func TestCalculate_InclusiveTax(t *testing.T) {
	totals := Calculate(sampleItems(), invoicedomain.TaxConfig{Type: "GST", Rate: 18, IsInclusive: true})

	assert.Equal(t, 245.0, totals.TaxableAmount)
	assert.Equal(t, totals.TaxableAmount, totals.Total)
	assert.InDelta(t, 245.0*18/118, totals.TaxAmount, 1e-9)
}

func TestCalculate_EmptyItems(t *testing.T) {
	totals := Calculate(nil, invoicedomain.TaxConfig{Type: "GST", Rate: 18})
	assert.Equal(t, invoicedomain.Totals{}, totals)
}

func TestCalculate_ZeroRate(t *testing.T) {
	totals := Calculate(sampleItems(), invoicedomain.TaxConfig{})
	assert.Equal(t, 0.0, totals.TaxAmount)
	assert.Equal(t, totals.TaxableAmount, totals.Total)
}

func TestCalculate_TaxableNeverNegative(t *testing.T) {
	items := []invoicedomain.LineItem{
		{ID: "li-1", Quantity: 1, UnitPrice: 100, Discount: fixed(500)},
	}
	totals := Calculate(items, invoicedomain.TaxConfig{Type: "GST", Rate: 18})

	assert.Equal(t, 100.0, totals.Subtotal)
	assert.Equal(t, 500.0, totals.LineDiscounts)
	assert.Equal(t, 0.0, totals.TaxableAmount)
	assert.Equal(t, 0.0, totals.TaxAmount)
	assert.Equal(t, 0.0, totals.Total)
}

func TestCalculate_FixedDiscountNotClamped(t *testing.T) {
	// One line over base keeps its full discount; the other line's
	// positive balance absorbs it in the aggregate.
	items := []invoicedomain.LineItem{
		{ID: "li-1", Quantity: 1, UnitPrice: 100, Discount: fixed(150)},
		{ID: "li-2", Quantity: 1, UnitPrice: 200, Discount: pct(0)},
	}
	totals := Calculate(items, invoicedomain.TaxConfig{})

	assert.Equal(t, -50.0, LineBase(items[0])-LineDiscount(items[0]))
	assert.Equal(t, 150.0, totals.TaxableAmount)
}

func TestCalculate_Idempotent(t *testing.T) {
	items := []invoicedomain.LineItem{
		{ID: "li-1", Quantity: 3, UnitPrice: 33.33, Discount: pct(7.5)},
		{ID: "li-2", Quantity: 1.5, UnitPrice: 19.99, Discount: fixed(2.5)},
	}
	tax := invoicedomain.TaxConfig{Type: "VAT", Rate: 12.5, IsInclusive: true}

	first := Calculate(items, tax)
	second := Calculate(items, tax)
	assert.Equal(t, first, second)
}
