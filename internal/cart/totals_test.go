package cart

import (
	"math/rand"
	"testing"

	"hridhayam-client/internal/product"

	"github.com/stretchr/testify/assert"
)

func line(price float64, qty int, preOrder bool, partial float64) LineItem {
	return LineItem{
		Product:        product.Product{ID: "p", Price: price},
		Quantity:       qty,
		IsPreOrder:     preOrder,
		PartialPayment: partial,
	}
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		want  Totals
	}{
		{
			name: "Empty cart",
			want: Totals{},
		},
		{
			name: "Regular and pre-order",
			items: []LineItem{
				line(1000, 2, false, 0),
				line(2000, 1, true, 1000),
			},
			want: Totals{Regular: 2000, PartialPayment: 1000, BalancePayment: 1000, Grand: 3000},
		},
		{
			name:  "Line totals are rounded",
			items: []LineItem{line(333.33, 3, false, 0), line(99.5, 1, true, 49.75)},
			want:  Totals{Regular: 1000, PartialPayment: 50, BalancePayment: 50, Grand: 1050},
		},
		{
			name:  "Partial above line total is clamped",
			items: []LineItem{line(500, 1, true, 800)},
			want:  Totals{PartialPayment: 500, BalancePayment: 0, Grand: 500},
		},
		{
			name:  "Negative partial is clamped",
			items: []LineItem{line(500, 2, true, -100)},
			want:  Totals{PartialPayment: 0, BalancePayment: 1000, Grand: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateTotals(tt.items))
		})
	}
}

func TestCalculateTotals_Invariants(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for n := 0; n < 500; n++ {
		items := make([]LineItem, r.Intn(6))
		for i := range items {
			items[i] = line(
				r.Float64()*5000-100,
				r.Intn(5)-1,
				r.Intn(2) == 0,
				r.Float64()*6000-500,
			)
		}

		got := CalculateTotals(items)

		assert.Equal(t, got.Grand, got.Regular+got.PartialPayment)
		assert.GreaterOrEqual(t, got.Regular, int64(0))
		assert.GreaterOrEqual(t, got.PartialPayment, int64(0))
		assert.GreaterOrEqual(t, got.BalancePayment, int64(0))
		assert.GreaterOrEqual(t, got.Grand, int64(0))
	}
}

func TestTotals_OrderValue(t *testing.T) {
	assert.Equal(t, int64(4000), Totals{Regular: 2000, PartialPayment: 1000, BalancePayment: 1000, Grand: 3000}.OrderValue())
}

func TestLineItem_Validate(t *testing.T) {
	assert.NoError(t, line(1000, 1, true, 500).Validate())
	assert.NoError(t, line(1000, 3, false, 0).Validate())
	assert.ErrorIs(t, line(1000, 0, false, 0).Validate(), ErrInvalidQuantity)
	assert.ErrorIs(t, line(1000, 1, true, 1500).Validate(), ErrPartialExceedsTotal)
}
