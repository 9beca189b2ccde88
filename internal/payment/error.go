package payment

import (
	"errors"
	"fmt"
)

var (
	ErrDismissed     = errors.New("payment cancelled")
	ErrTimedOut      = errors.New("payment timed out")
	ErrPaymentFailed = errors.New("payment failed")

	ErrSessionUnavailable = errors.New("failed to initiate payment")
	ErrInvalidCallback    = errors.New("invalid payment callback")
)

// Err maps a non-success disposition to its sentinel error.
func (r Result) Err() error {
	switch r.Disposition {
	case Success:
		return nil
	case Dismissed:
		return ErrDismissed
	case TimedOut:
		return ErrTimedOut
	default:
		if r.FailureReason != "" {
			return fmt.Errorf("%w: %s", ErrPaymentFailed, r.FailureReason)
		}
		return ErrPaymentFailed
	}
}
