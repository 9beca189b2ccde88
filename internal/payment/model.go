package payment

import (
	"time"
)

// Session is the provider order the backend creates for one checkout attempt. Amount is in the
// smallest currency unit as returned by the provider.
type Session struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Confirmation is the signed result the provider hands to the widget on success.
type Confirmation struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

func (c Confirmation) Complete() bool {
	return c.OrderID != "" && c.PaymentID != "" && c.Signature != ""
}

type Disposition int

const (
	Success Disposition = iota
	Dismissed
	TimedOut
	Failed
)

func (d Disposition) String() string {
	switch d {
	case Success:
		return "success"
	case Dismissed:
		return "dismissed"
	case TimedOut:
		return "timed_out"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is how a widget interaction ended. Confirmation is set only for Success.
type Result struct {
	Disposition   Disposition
	Confirmation  Confirmation
	FailureReason string
}

type Prefill struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact,omitempty"`
}

type Retry struct {
	Enabled bool `json:"enabled"`
}

type Theme struct {
	Color string `json:"color,omitempty"`
}

// WidgetOptions are handed to the provider's checkout script as-is.
type WidgetOptions struct {
	Key         string  `json:"key"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	OrderID     string  `json:"order_id"`
	Prefill     Prefill `json:"prefill"`
	Timeout     int     `json:"timeout"`
	Retry       Retry   `json:"retry"`
	Theme       Theme   `json:"theme"`
}

const (
	DefaultTimeout = 300 * time.Second
	themeColor     = "#C17112"
)

// NewWidgetOptions builds the widget options for a session with retries disabled.
func NewWidgetOptions(key, merchant string, sess Session, prefill Prefill, timeout time.Duration) WidgetOptions {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return WidgetOptions{
		Key:         key,
		Amount:      sess.Amount,
		Currency:    sess.Currency,
		Name:        merchant,
		Description: "Payment for your order",
		OrderID:     sess.ID,
		Prefill:     prefill,
		Timeout:     int(timeout / time.Second),
		Retry:       Retry{Enabled: false},
		Theme:       Theme{Color: themeColor},
	}
}

func (o WidgetOptions) TimeoutDuration() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return time.Duration(o.Timeout) * time.Second
}
