package cart

import "math"

// Totals splits a cart into what is due now and what is deferred. Grand excludes BalancePayment.
type Totals struct {
	Regular        int64 `json:"regularTotal"`
	PartialPayment int64 `json:"partialPaymentTotal"`
	BalancePayment int64 `json:"balancePaymentTotal"`
	Grand          int64 `json:"grandTotal"`
}

// OrderValue is the full value of the order including the deferred balance.
func (t Totals) OrderValue() int64 {
	return t.Grand + t.BalancePayment
}

// CalculateTotals partitions items into regular and pre-order totals. Line totals are rounded to
// whole rupees and a pre-order's partial payment is clamped to [0, line total], so every total
// is non-negative and Regular+PartialPayment == Grand.
func CalculateTotals(items []LineItem) Totals {
	var t Totals
	for _, item := range items {
		itemTotal := max(int64(math.Round(item.Total())), 0)
		if !item.IsPreOrder {
			t.Regular += itemTotal
			continue
		}

		partial := min(max(int64(math.Round(item.PartialPayment)), 0), itemTotal)
		t.PartialPayment += partial
		t.BalancePayment += itemTotal - partial
	}
	t.Grand = t.Regular + t.PartialPayment
	return t
}
