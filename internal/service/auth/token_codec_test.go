package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/vsconnect-api/internal/config"
	"github.com/phrazzld/vsconnect-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTokenCodec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(cfg *config.AuthConfig)
		wantErr string
	}{
		{name: "valid config", modify: func(cfg *config.AuthConfig) {}},
		{
			name:    "short secret",
			modify:  func(cfg *config.AuthConfig) { cfg.JWTSecret = "too-short" },
			wantErr: "at least 32 characters",
		},
		{
			name:    "zero lifetime",
			modify:  func(cfg *config.AuthConfig) { cfg.TokenLifetimeMinutes = 0 },
			wantErr: "token lifetime must be positive",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := auth.DefaultTestAuthConfig()
			tt.modify(&cfg)

			codec, err := auth.NewTokenCodec(cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, codec)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, codec)
		})
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := auth.RequireTestTokenCodec(t, fixedClock(fixedTime))

	token, err := codec.Encode(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claim, err := codec.Decode(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claim)
}

func TestTokenCodec_Issue(t *testing.T) {
	t.Parallel()

	codec := auth.RequireTestTokenCodec(t, fixedClock(fixedTime))

	issued, err := codec.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.True(t, issued.ExpiresAt.Equal(fixedTime.Add(120*time.Minute)))

	// The payload carries sub, email, iat, exp and a unique jti.
	parsed := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(issued.Token, parsed)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", parsed["sub"])
	assert.Equal(t, "a@x.com", parsed["email"])
	assert.EqualValues(t, fixedTime.Unix(), parsed["iat"])
	assert.NotEmpty(t, parsed["jti"])

	second, err := codec.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, issued.Token, second.Token, "jti makes every token unique")
}

func TestTokenCodec_EmptyClaim(t *testing.T) {
	t.Parallel()

	codec := auth.RequireTestTokenCodec(t, nil)

	for _, claim := range []string{"", "   "} {
		_, err := codec.Encode(context.Background(), claim)
		assert.ErrorIs(t, err, auth.ErrEmptyClaim)
	}
}

func TestTokenCodec_Decode(t *testing.T) {
	t.Parallel()

	lifetime := time.Duration(config.DefaultTokenLifetimeMinutes) * time.Minute
	issuer := auth.RequireTestTokenCodec(t, fixedClock(fixedTime))
	token, err := issuer.Encode(context.Background(), "a@x.com")
	require.NoError(t, err)

	otherCfg := auth.DefaultTestAuthConfig()
	otherCfg.JWTSecret = "another-secret-that-is-at-least-32-chars"
	otherCodec, err := auth.NewTokenCodec(otherCfg, auth.WithClock(fixedClock(fixedTime)))
	require.NoError(t, err)

	tests := []struct {
		name    string
		codec   auth.TokenCodec
		token   string
		want    string
		wantErr error
	}{
		{
			name:  "inside window",
			codec: auth.RequireTestTokenCodec(t, fixedClock(fixedTime.Add(lifetime-time.Second))),
			token: token,
			want:  "a@x.com",
		},
		{
			name:  "issuer clock ahead of validator",
			codec: auth.RequireTestTokenCodec(t, fixedClock(fixedTime.Add(-30*time.Second))),
			token: token,
			want:  "a@x.com",
		},
		{
			name:    "exactly at expiry",
			codec:   auth.RequireTestTokenCodec(t, fixedClock(fixedTime.Add(lifetime))),
			token:   token,
			wantErr: auth.ErrExpiredToken,
		},
		{
			name:    "long after expiry",
			codec:   auth.RequireTestTokenCodec(t, fixedClock(fixedTime.Add(lifetime+time.Hour))),
			token:   token,
			wantErr: auth.ErrExpiredToken,
		},
		{
			name:    "different secret",
			codec:   otherCodec,
			token:   token,
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "tampered payload",
			codec:   issuer,
			token:   tamper(token),
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "malformed",
			codec:   issuer,
			token:   "this.is.not.a.valid.jwt.token",
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "empty",
			codec:   issuer,
			token:   "",
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "unsigned token",
			codec:   issuer,
			token:   signWith(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims()),
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "other hmac algorithm",
			codec:   issuer,
			token:   signWith(t, jwt.SigningMethodHS512, []byte(auth.TestJWTSecret), validClaims()),
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:  "missing identity claim",
			codec: issuer,
			token: signWith(t, jwt.SigningMethodHS256, []byte(auth.TestJWTSecret), jwt.MapClaims{
				"iat": fixedTime.Unix(),
				"exp": fixedTime.Add(time.Hour).Unix(),
			}),
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:  "missing expiry",
			codec: issuer,
			token: signWith(t, jwt.SigningMethodHS256, []byte(auth.TestJWTSecret), jwt.MapClaims{
				"sub": "a@x.com",
				"iat": fixedTime.Unix(),
			}),
			wantErr: auth.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claim, err := tt.codec.Decode(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, claim)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, claim)
		})
	}
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "a@x.com",
		"email": "a@x.com",
		"iat":   fixedTime.Unix(),
		"exp":   fixedTime.Add(time.Hour).Unix(),
	}
}

func signWith(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

// tamper flips one character of the payload segment.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'e' {
		payload[0] = 'f'
	} else {
		payload[0] = 'e'
	}
	parts[1] = string(payload)
	return strings.Join(parts, ".")
}
