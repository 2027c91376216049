package auth

import (
	"testing"
	"time"

	"github.com/phrazzld/vsconnect-api/internal/config"
	"github.com/stretchr/testify/require"
)

// TestJWTSecret is a signing secret long enough for NewTokenCodec.
const TestJWTSecret = "test-jwt-secret-that-is-32-chars-long"

// DefaultTestAuthConfig returns an auth configuration suitable for tests.
func DefaultTestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:               TestJWTSecret,
		TokenLifetimeMinutes:    config.DefaultTokenLifetimeMinutes,
		BCryptCost:              4,
		IdentityLookupTimeoutMS: config.DefaultIdentityLookupTimeoutMS,
		BypassRoutes:            config.DefaultBypassRoutes,
	}
}

// RequireTestTokenCodec creates a codec from DefaultTestAuthConfig, optionally
// pinned to now, and fails the test if construction fails.
func RequireTestTokenCodec(t *testing.T, now func() time.Time) TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(DefaultTestAuthConfig(), WithClock(now))
	require.NoError(t, err, "failed to create test token codec")
	return codec
}

// RequireTestHash returns a low-cost bcrypt hash of password.
func RequireTestHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := NewBcryptVerifier(4).Hash(password)
	require.NoError(t, err, "failed to hash test password")
	return hash
}
