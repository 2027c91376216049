package middleware

import (
	"net/http"

	"github.com/phrazzld/vsconnect-api/internal/service/auth"
)

// IdentityHandlerFunc is an HTTP handler that receives the request identity
// as an explicit argument.
type IdentityHandlerFunc func(w http.ResponseWriter, r *http.Request, identity auth.Identity)

// WithIdentity adapts h to http.HandlerFunc. Requests that bypassed the gate
// entirely are handed an anonymous identity.
func WithIdentity(h IdentityHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.FromContext(r.Context())
		if !ok {
			identity = auth.Anonymous()
		}
		h(w, r, identity)
	}
}
