package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
)

// LoginService exchanges valid credentials for a signed token.
type LoginService struct {
	authenticator Authenticator
	codec         TokenCodec
	logger        *slog.Logger
}

// NewLoginService creates a LoginService. If logger is nil, the default logger is used.
func NewLoginService(authenticator Authenticator, codec TokenCodec, logger *slog.Logger) *LoginService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginService{
		authenticator: authenticator,
		codec:         codec,
		logger:        logger.With("component", "login_service"),
	}
}

// Login verifies email and password and issues a token for the user's email.
// Returns ErrInvalidCredentials on rejection; any other error is internal.
func (s *LoginService) Login(ctx context.Context, email, password string) (IssuedToken, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.authenticator.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return IssuedToken{}, ErrInvalidCredentials
		}
		return IssuedToken{}, fmt.Errorf("failed to authenticate: %w", err)
	}

	issued, err := s.codec.Issue(ctx, user.Email)
	if err != nil {
		log.Error("failed to issue token", "error", err, "user_id", user.ID)
		return IssuedToken{}, fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID, "expires_at", issued.ExpiresAt)
	return issued, nil
}
