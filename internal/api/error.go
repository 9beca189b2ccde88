package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers network failures, non-2xx replies without a message, an open
	// circuit breaker and the local rate limit.
	ErrTransport = errors.New("backend unreachable")

	ErrUnexpectedResponse = errors.New("unexpected backend response")
)

// BusinessError is a reply the backend produced on purpose: success:false or an error status
// carrying a message meant for the user.
type BusinessError struct {
	Status  int
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Message)
}

// Message returns the backend's own message when err carries one, otherwise fallback.
func Message(err error, fallback string) string {
	var be *BusinessError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}
