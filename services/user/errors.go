package user

import "errors"

var (
	// ErrEmailTaken means a profile already exists for the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials means the email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
