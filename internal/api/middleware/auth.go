package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
	"github.com/phrazzld/vsconnect-api/internal/redact"
	"github.com/phrazzld/vsconnect-api/internal/service/auth"
)

// bypassRoute is a method and path pair the gate forwards without inspecting credentials.
type bypassRoute struct {
	method string
	path   string
}

// parseBypassRoute parses a rule of the form "METHOD /path".
func parseBypassRoute(rule string) (bypassRoute, error) {
	fields := strings.Fields(rule)
	if len(fields) != 2 || !strings.HasPrefix(fields[1], "/") {
		return bypassRoute{}, fmt.Errorf("invalid bypass route %q: expected \"METHOD /path\"", rule)
	}
	return bypassRoute{
		method: strings.ToUpper(fields[0]),
		path:   normalizePath(fields[1]),
	}, nil
}

func (b bypassRoute) matches(r *http.Request) bool {
	return r.Method == b.method && normalizePath(r.URL.Path) == b.path
}

func normalizePath(p string) string {
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// Gate establishes the identity of every request from its bearer credential.
// It is fail-open: credential problems leave the request anonymous, and the
// gate never writes a response itself.
type Gate struct {
	codec    auth.TokenCodec
	resolver auth.IdentityResolver
	bypass   []bypassRoute
	logger   *slog.Logger
}

// NewGate creates a Gate. bypassRoutes holds "METHOD /path" rules; requests
// matching one are forwarded as anonymous without reading the credential.
// If logger is nil, the default logger is used.
func NewGate(
	codec auth.TokenCodec,
	resolver auth.IdentityResolver,
	bypassRoutes []string,
	logger *slog.Logger,
) (*Gate, error) {
	if codec == nil || resolver == nil {
		return nil, errors.New("gate requires a token codec and an identity resolver")
	}
	if logger == nil {
		logger = slog.Default()
	}

	routes := make([]bypassRoute, 0, len(bypassRoutes))
	for _, rule := range bypassRoutes {
		route, err := parseBypassRoute(rule)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}

	return &Gate{
		codec:    codec,
		resolver: resolver,
		bypass:   routes,
		logger:   logger.With(slog.String("component", "auth_gate")),
	}, nil
}

// Handler wraps next with identity establishment. next is invoked exactly once
// per request, with an auth.Identity attached to the request context.
func (g *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Already processed earlier in this request's chain.
		if _, ok := auth.FromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		identity := g.authenticate(r)
		next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), identity)))
	})
}

// authenticate derives the request identity. Every failure yields Anonymous.
func (g *Gate) authenticate(r *http.Request) auth.Identity {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, g.logger)

	for _, route := range g.bypass {
		if route.matches(r) {
			return auth.Anonymous()
		}
	}

	token, reason := extractBearerToken(r.Header.Get("Authorization"))
	if reason != "" {
		if reason != missingHeader {
			log.Debug("ignoring malformed authorization header", slog.String("reason", reason))
		}
		return auth.Anonymous()
	}

	claim, err := g.codec.Decode(ctx, token)
	if err != nil {
		log.Debug("request credential rejected",
			slog.String("reason", decodeFailureReason(err)),
			slog.String("token", redact.Token(token)))
		return auth.Anonymous()
	}

	user, err := g.resolver.Resolve(ctx, claim)
	if err != nil {
		// A validly signed token for an unknown user is suspicious enough to surface.
		log.Warn("valid credential did not resolve to a user",
			slog.String("email", redact.Email(claim)),
			slog.String("reason", resolveFailureReason(err)))
		return auth.Anonymous()
	}

	return auth.Authenticated(user)
}

const missingHeader = "missing authorization header"

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and a failure reason (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", missingHeader
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

func decodeFailureReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "expired"
	case errors.Is(err, auth.ErrInvalidToken):
		return "invalid"
	default:
		return "decode error"
	}
}

func resolveFailureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "lookup timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	default:
		return redact.Error(err)
	}
}

