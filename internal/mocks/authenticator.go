package mocks

import (
	"context"

	"github.com/phrazzld/vsconnect-api/internal/domain"
)

// MockAuthenticator implements auth.Authenticator for testing
type MockAuthenticator struct {
	VerifyFn func(ctx context.Context, email, password string) (*domain.User, error)

	User      *domain.User
	VerifyErr error
}

// Verify implements the auth.Authenticator interface
func (m *MockAuthenticator) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, email, password)
	}
	return m.User, m.VerifyErr
}
