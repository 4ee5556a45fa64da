package billing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ClaudioCeppi83/gastro-app/internal/models"
)

func item(price string, qty int) models.OrderLineItem {
	return models.OrderLineItem{
		OrderedUnitPrice: decimal.RequireFromString(price),
		Quantity:         qty,
	}
}

func TestTotals(t *testing.T) {
	tests := []struct {
		name    string
		taxRate string
		tipRate string
		flatTip string
		items   []models.OrderLineItem
		want    models.OrderTotals
	}{
		{
			name:    "empty order",
			taxRate: "0.21",
			tipRate: "0",
			flatTip: "0",
			items:   nil,
			want: models.OrderTotals{
				Subtotal: decimal.Zero,
				Tax:      decimal.Zero,
				Tip:      decimal.Zero,
				Total:    decimal.Zero,
			},
		},
		{
			name:    "two lines at 21 percent tax",
			taxRate: "0.21",
			tipRate: "0",
			flatTip: "0",
			items: []models.OrderLineItem{
				item("12.50", 2),
				item("6.00", 1),
			},
			want: models.OrderTotals{
				Subtotal: decimal.RequireFromString("31.00"),
				Tax:      decimal.RequireFromString("6.51"),
				Tip:      decimal.Zero,
				Total:    decimal.RequireFromString("37.51"),
			},
		},
		{
			name:    "twelve percent tax variant",
			taxRate: "0.12",
			tipRate: "0",
			flatTip: "0",
			items: []models.OrderLineItem{
				item("10.00", 1),
			},
			want: models.OrderTotals{
				Subtotal: decimal.RequireFromString("10.00"),
				Tax:      decimal.RequireFromString("1.20"),
				Tip:      decimal.Zero,
				Total:    decimal.RequireFromString("11.20"),
			},
		},
		{
			name:    "tip rate applied to subtotal",
			taxRate: "0.21",
			tipRate: "0.10",
			flatTip: "0",
			items: []models.OrderLineItem{
				item("20.00", 1),
			},
			want: models.OrderTotals{
				Subtotal: decimal.RequireFromString("20.00"),
				Tax:      decimal.RequireFromString("4.20"),
				Tip:      decimal.RequireFromString("2.00"),
				Total:    decimal.RequireFromString("26.20"),
			},
		},
		{
			name:    "flat tip overrides tip rate",
			taxRate: "0.21",
			tipRate: "0.10",
			flatTip: "5.00",
			items: []models.OrderLineItem{
				item("20.00", 1),
			},
			want: models.OrderTotals{
				Subtotal: decimal.RequireFromString("20.00"),
				Tax:      decimal.RequireFromString("4.20"),
				Tip:      decimal.RequireFromString("5.00"),
				Total:    decimal.RequireFromString("29.20"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := New(decimal.RequireFromString(tt.taxRate), decimal.RequireFromString(tt.tipRate))
			got := calc.Totals(tt.items, decimal.RequireFromString(tt.flatTip))

			if !got.Subtotal.Equal(tt.want.Subtotal) {
				t.Errorf("subtotal = %s, want %s", got.Subtotal, tt.want.Subtotal)
			}
			if !got.Tax.Equal(tt.want.Tax) {
				t.Errorf("tax = %s, want %s", got.Tax, tt.want.Tax)
			}
			if !got.Tip.Equal(tt.want.Tip) {
				t.Errorf("tip = %s, want %s", got.Tip, tt.want.Tip)
			}
			if !got.Total.Equal(tt.want.Total) {
				t.Errorf("total = %s, want %s", got.Total, tt.want.Total)
			}
		})
	}
}

func TestTotals_NoFloatDrift(t *testing.T) {
	// 100 lines of 0.10 must sum to exactly 10.00
	var items []models.OrderLineItem
	for i := 0; i < 100; i++ {
		items = append(items, item("0.10", 1))
	}

	calc := New(decimal.Zero, decimal.Zero)
	got := calc.Totals(items, decimal.Zero)

	if want := decimal.RequireFromString("10.00"); !got.Subtotal.Equal(want) {
		t.Errorf("subtotal = %s, want %s", got.Subtotal, want)
	}
	if !got.Total.Equal(got.Subtotal) {
		t.Errorf("total = %s, want %s", got.Total, got.Subtotal)
	}
}
