// Package billing derives the display totals for an order from its
// line items. The calculator is pure: it performs no I/O and keeps all
// arithmetic in decimals, rounding only at the two-decimal display
// boundary.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/ClaudioCeppi83/gastro-app/internal/models"
)

// Calculator applies the configured tax and tip rates to a subtotal.
// Rates are multipliers on the subtotal; a caller-supplied flat tip
// takes precedence over the configured tip rate.
type Calculator struct {
	taxRate decimal.Decimal
	tipRate decimal.Decimal
}

// New creates a calculator with the given rates
func New(taxRate, tipRate decimal.Decimal) *Calculator {
	return &Calculator{
		taxRate: taxRate,
		tipRate: tipRate,
	}
}

// Totals computes subtotal, tax, tip and grand total for the given
// line items. flatTip, when positive, overrides the configured tip
// rate. Prices are the snapshot values recorded at add time.
func (c *Calculator) Totals(items []models.OrderLineItem, flatTip decimal.Decimal) models.OrderTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := item.OrderedUnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(c.taxRate).Round(2)

	var tip decimal.Decimal
	if flatTip.IsPositive() {
		tip = flatTip.Round(2)
	} else {
		tip = subtotal.Mul(c.tipRate).Round(2)
	}

	return models.OrderTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Tip:      tip,
		Total:    subtotal.Add(tax).Add(tip),
	}
}
