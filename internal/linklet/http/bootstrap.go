package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/fernwell/linklet/internal/linklet/service"
	"github.com/fernwell/linklet/pkg/httpx"
	"github.com/fernwell/linklet/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP godoc
//
//	@Summary		Bootstrap Endpoint
//	@Description	Create the initial SuperAdmin account. Works once, on an empty system, guarded by the configured bootstrap token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BootstrapRequest	true	"Bootstrap request"
//	@Success		201		{object}	UserResponse		"id, name, email, role, created_at"
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "A valid email is required")
		return
	}
	if len(req.Password) < minPasswordLength {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "password must be at least 6 characters")
		return
	}

	admin, err := h.BootstrapService.Bootstrap(ctx, req.Token, req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapAlready):
			httpx.WriteError(w, http.StatusConflict, "conflict", "System is already bootstrapped")
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid bootstrap token")
		default:
			log.Error("bootstrap failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to bootstrap")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(admin))
}
