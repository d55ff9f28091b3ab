package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/fernwell/linklet/internal/linklet/domain"
	"github.com/fernwell/linklet/internal/linklet/service"
	"github.com/fernwell/linklet/pkg/httpx"
	"github.com/fernwell/linklet/pkg/slogx"
)

type InviteHandler struct {
	InvitationService *service.InvitationService
	UserService       *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Send Invitation Endpoint
//	@Description	Invite a new user by email. SuperAdmins invite company admins (a fresh company is created per invite); Admins invite admins or members into their own company.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		InviteRequest		true	"Invite request"
//	@Success		200		{object}	InviteResponse		"message, token"
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites [post].
func (h *InviteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "A valid email is required")
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil || role == domain.RoleSuperAdmin {
		// SuperAdmins are never created by invitation.
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "role must be Admin or Member")
		return
	}

	caller, ok := resolveCaller(w, r, h.UserService)
	if !ok {
		return
	}

	invitation, err := h.InvitationService.Invite(ctx, caller, req.Email, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSuperAdminInviteRole):
			httpx.WriteError(w, http.StatusForbidden, "forbidden", "SuperAdmin can only invite Admin")
		case errors.Is(err, service.ErrAdminInviteRole):
			httpx.WriteError(w, http.StatusForbidden, "forbidden", "Admin can invite only Admin or Member")
		case errors.Is(err, service.ErrCannotInvite):
			httpx.WriteError(w, http.StatusForbidden, "forbidden", "You cannot send invitations")
		default:
			log.Error("failed to create invitation", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create invitation")
		}
		return
	}

	// The token goes back to the caller for out-of-band delivery to the
	// invitee; email sending is not this service's concern.
	httpx.WriteJSON(w, http.StatusOK, InviteResponse{
		Message: "Invitation sent",
		Token:   invitation.Token,
	})
}
