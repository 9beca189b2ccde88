package checkout

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidForm        = errors.New("please fill in all required fields")
	ErrInvalidPhone       = errors.New("phone must be exactly 10 digits")
	ErrStreetRequired     = errors.New("street is required")
	ErrCityRequired       = errors.New("city is required")
	ErrStateRequired      = errors.New("state is required")
	ErrZipRequired        = errors.New("zip code is required")
	ErrUnknownPaymentMode = errors.New("unknown payment method")

	// -- Attempt State --
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNotLoaded            = errors.New("checkout has not been loaded")
	ErrSubmissionInProgress = errors.New("an order is already being placed")

	// -- Payment --
	ErrVerificationFailed = errors.New("payment verification failed")
)
