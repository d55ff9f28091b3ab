package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/fernwell/linklet/pkg/jwtx"
	"github.com/fernwell/linklet/pkg/slogx"
)

// Verifier validates a raw bearer token and returns its claims.
type Verifier interface {
	Verify(raw string) (jwtx.Claims, error)
}

// AuthnMiddleware verifies the Authorization bearer token and injects the
// caller's user ID into the request context. It does NOT resolve the user
// row; handlers do that so role checks always see fresh state.
func AuthnMiddleware(v Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				writeBearerError(w, "token verification failed")
				log.Warn("jwt verify failed", "err", err)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
