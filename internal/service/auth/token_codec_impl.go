package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/vsconnect-api/internal/config"
	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
	"github.com/phrazzld/vsconnect-api/internal/redact"
)

// MinSecretLength is the shortest HMAC secret the codec accepts.
const MinSecretLength = 32

// tokenIssuer is written into the iss claim.
const tokenIssuer = "vsconnect-api"

// hmacTokenCodec is an implementation of TokenCodec using HMAC-SHA256 signing.
type hmacTokenCodec struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Ensure hmacTokenCodec implements TokenCodec interface
var _ TokenCodec = (*hmacTokenCodec)(nil)

// CodecOption customizes a codec built by NewTokenCodec.
type CodecOption func(*hmacTokenCodec)

// WithClock replaces the wall clock used for issuing and validating tokens.
func WithClock(now func() time.Time) CodecOption {
	return func(c *hmacTokenCodec) {
		if now != nil {
			c.timeFunc = now
		}
	}
}

// NewTokenCodec creates a HS256 token codec from the auth configuration.
// The secret is read once here; nothing else holds it.
func NewTokenCodec(cfg config.AuthConfig, opts ...CodecOption) (TokenCodec, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	if cfg.TokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %d minutes", cfg.TokenLifetimeMinutes)
	}

	c := &hmacTokenCodec{
		signingKey:    []byte(cfg.JWTSecret),
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		timeFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Encode implements TokenCodec.Encode.
func (c *hmacTokenCodec) Encode(ctx context.Context, claim string) (string, error) {
	issued, err := c.Issue(ctx, claim)
	if err != nil {
		return "", err
	}
	return issued.Token, nil
}

// Issue implements TokenCodec.Issue.
func (c *hmacTokenCodec) Issue(ctx context.Context, claim string) (IssuedToken, error) {
	log := logger.FromContext(ctx)

	claim = strings.TrimSpace(claim)
	if claim == "" {
		return IssuedToken{}, ErrEmptyClaim
	}

	now := c.timeFunc()
	expiresAt := now.Add(c.tokenLifetime)

	claims := jwtCustomClaims{
		Email: claim,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   claim,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		log.Error("failed to sign token",
			"error", err,
			"email", redact.Email(claim),
			"signing_method", jwt.SigningMethodHS256.Name)
		return IssuedToken{}, fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	// Report the expiry at the precision the token actually carries.
	return IssuedToken{Token: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Decode implements TokenCodec.Decode.
func (c *hmacTokenCodec) Decode(ctx context.Context, tokenString string) (string, error) {
	log := logger.FromContext(ctx)
	now := c.timeFunc()

	// iat is informational: a token minted by an instance whose clock runs
	// ahead must still decode here. Only exp is enforced, without leeway.
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired")
			return "", ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token validation failed: malformed token")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: invalid signature")
		default:
			log.Debug("token validation failed",
				"error", redact.Error(err),
				"error_type", fmt.Sprintf("%T", err))
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return "", ErrInvalidToken
	}

	claim := claims.Email
	if claim == "" {
		claim = claims.Subject
	}
	if strings.TrimSpace(claim) == "" {
		log.Debug("token validation failed: missing identity claim")
		return "", ErrInvalidToken
	}

	return claim, nil
}
