package order

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderRejected  = errors.New("failed to create order")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrMissingOrderID = errors.New("order id is required")
)
