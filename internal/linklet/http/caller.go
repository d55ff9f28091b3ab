package http

import (
	"errors"
	"net/http"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/internal/linklet/service"
	"github.com/fernwell/linklet/pkg/httpx"
	"github.com/fernwell/linklet/pkg/slogx"
)

// resolveCaller turns the verified user ID from the request context into the
// caller's current user record. Writes the error response itself and returns
// ok=false when the caller cannot be resolved.
func resolveCaller(w http.ResponseWriter, r *http.Request, users *service.UserService) (domain.User, bool) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return domain.User{}, false
	}

	caller, err := users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Token refers to a user that no longer exists.
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return domain.User{}, false
		}
		slogx.FromContext(ctx).Error("failed to resolve caller", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to resolve caller")
		return domain.User{}, false
	}

	return caller, true
}
