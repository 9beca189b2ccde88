package user

import "errors"

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrNameRequired     = errors.New("name is required")
	ErrSamePassword     = errors.New("new password must differ from the current one")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMalformedUser      = errors.New("backend returned no user")
)
