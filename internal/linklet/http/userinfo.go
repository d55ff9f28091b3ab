package http

import (
	"net/http"

	"github.com/fernwell/linklet/internal/linklet/service"
	"github.com/fernwell/linklet/pkg/httpx"
)

type UserInfoHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		User Info Endpoint
//	@Description	Return the authenticated caller's own user record
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	UserResponse		"id, name, email, role, company_id, created_at"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, h.UserService)
	if !ok {
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(caller))
}
