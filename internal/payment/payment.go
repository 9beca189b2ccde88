package payment

import "context"

// Gateway is the backend's side of an online payment: it opens a session with the provider and
// checks the signature the provider handed back to the browser.
type Gateway interface {
	CreateSession(ctx context.Context, amount int64) (*Session, error)
	Verify(ctx context.Context, conf Confirmation) (bool, error)
}

// Widget collects a payment from the customer and reports how the interaction ended.
type Widget interface {
	Open(ctx context.Context, opts WidgetOptions) (Result, error)
}
