package auth

import (
	"context"
	"time"
)

// TokenCodec turns an identity claim into a signed, time-bounded credential
// and back.
type TokenCodec interface {
	// Encode signs a credential for claim, valid for the configured lifetime.
	// Returns ErrEmptyClaim if claim is blank.
	Encode(ctx context.Context, claim string) (string, error)

	// Issue is Encode that also reports when the credential expires.
	Issue(ctx context.Context, claim string) (IssuedToken, error)

	// Decode verifies signature, algorithm and expiry and returns the claim.
	// Returns ErrInvalidToken or ErrExpiredToken when no identity can be derived.
	Decode(ctx context.Context, token string) (string, error)
}

// IssuedToken is a signed credential together with its expiry.
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
