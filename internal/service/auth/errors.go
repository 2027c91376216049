package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed, signed with another key
	// or algorithm, or carries no identity claim.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token validity window has elapsed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrEmptyClaim indicates an attempt to encode a token without an identity claim.
	ErrEmptyClaim = errors.New("identity claim cannot be empty")

	// ErrInvalidCredentials indicates an unknown email or a password mismatch.
	// Both cases share one error so callers cannot probe for registered emails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrIdentityUnresolved indicates a valid claim that did not map to a user
	// within the lookup deadline.
	ErrIdentityUnresolved = errors.New("identity could not be resolved")
)
