package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/vsconnect-api/internal/service/auth"
)

// MockTokenCodec implements auth.TokenCodec for testing
type MockTokenCodec struct {
	IssueFn  func(ctx context.Context, claim string) (auth.IssuedToken, error)
	DecodeFn func(ctx context.Context, token string) (string, error)

	// Token and ExpiresAt are returned by Issue when IssueFn is nil
	Token     string
	ExpiresAt time.Time
	IssueErr  error

	// Claims maps tokens to the claim Decode returns; unknown tokens are invalid
	Claims    map[string]string
	DecodeErr error

	DecodeCalls int
}

// NewMockTokenCodec creates a mock codec returning "mock-token" on issue
func NewMockTokenCodec() *MockTokenCodec {
	return &MockTokenCodec{
		Token:     "mock-token",
		ExpiresAt: time.Now().Add(2 * time.Hour),
		Claims:    make(map[string]string),
	}
}

// Encode implements the auth.TokenCodec interface
func (m *MockTokenCodec) Encode(ctx context.Context, claim string) (string, error) {
	issued, err := m.Issue(ctx, claim)
	return issued.Token, err
}

// Issue implements the auth.TokenCodec interface
func (m *MockTokenCodec) Issue(ctx context.Context, claim string) (auth.IssuedToken, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, claim)
	}
	if m.IssueErr != nil {
		return auth.IssuedToken{}, m.IssueErr
	}
	return auth.IssuedToken{Token: m.Token, ExpiresAt: m.ExpiresAt}, nil
}

// Decode implements the auth.TokenCodec interface
func (m *MockTokenCodec) Decode(ctx context.Context, token string) (string, error) {
	m.DecodeCalls++
	if m.DecodeFn != nil {
		return m.DecodeFn(ctx, token)
	}
	if m.DecodeErr != nil {
		return "", m.DecodeErr
	}
	claim, ok := m.Claims[token]
	if !ok {
		return "", auth.ErrInvalidToken
	}
	return claim, nil
}
