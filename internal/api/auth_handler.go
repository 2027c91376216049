package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/vsconnect-api/internal/api/shared"
	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
	"github.com/phrazzld/vsconnect-api/internal/redact"
	"github.com/phrazzld/vsconnect-api/internal/service/auth"
)

// LoginFlow exchanges credentials for a token. *auth.LoginService implements it.
type LoginFlow interface {
	Login(ctx context.Context, email, password string) (auth.IssuedToken, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	login  LoginFlow
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. If logger is nil, the default logger is used.
func NewAuthHandler(login LoginFlow, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		login:  login,
		logger: logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	issued, err := h.login.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Debug("login failed", slog.String("email", redact.Email(req.Email)))
		HandleAPIError(w, r, err, "Failed to authenticate user", shared.WithElevatedLogLevel())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
