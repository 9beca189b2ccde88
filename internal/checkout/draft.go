package checkout

import (
	"hridhayam-client/internal/cart"
	"hridhayam-client/internal/order"
)

type PaymentMethod = order.PaymentMethod

const (
	MethodOnline = order.MethodOnline
	MethodCOD    = order.MethodCOD
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case MethodOnline, MethodCOD:
		return m, nil
	default:
		return "", ErrUnknownPaymentMode
	}
}

// OrderDraft is built fresh for every attempt and never retried on its own.
type OrderDraft = order.Draft

// BuildDraft splits the totals by payment method. Cash on delivery pays nothing now; online pays
// the grand total now and leaves only pre-order balances. TotalAmount is the full order value
// either way.
func BuildDraft(userID string, form Form, method PaymentMethod, totals cart.Totals) (OrderDraft, error) {
	d := OrderDraft{
		UserID:          userID,
		ShippingAddress: form.Address.Format(),
		ContactPhone:    form.Phone,
		PaymentMethod:   method,
		TotalAmount:     totals.OrderValue(),
	}

	switch method {
	case MethodCOD:
		d.PaidAmount = 0
		d.BalanceDue = totals.Grand
	case MethodOnline:
		d.PaidAmount = totals.Grand
		d.BalanceDue = totals.BalancePayment
	default:
		return OrderDraft{}, ErrUnknownPaymentMode
	}
	return d, nil
}
