package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity     = errors.New("quantity cannot be less than 1")
	ErrPartialExceedsTotal = errors.New("partial payment exceeds line total")
	ErrMissingProduct      = errors.New("product id is required")
	ErrMissingCartItem     = errors.New("cart item id is required")

	// -- Resource State --
	ErrEmptyCart = errors.New("cart is empty")

	// -- Backend Failures --
	ErrFailedGetCart    = errors.New("failed to get cart")
	ErrFailedAddToCart  = errors.New("failed to add to cart")
	ErrFailedRemoveCart = errors.New("failed to remove cart item")
)
