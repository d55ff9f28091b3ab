package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fernwell/linklet/internal/linklet/service"
	"github.com/fernwell/linklet/pkg/httpx"
	"github.com/fernwell/linklet/pkg/slogx"
)

const minPasswordLength = 6

type AcceptInviteHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Accept Invitation Endpoint
//	@Description	Redeem an invitation token to create the invited user account bound to the invitation's company and role
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AcceptInviteRequest		true	"Acceptance request"
//	@Success		200		{object}	AcceptInviteResponse	"message, user"
//	@Failure		400		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	httpx.ErrorResponse		"error, error_description"
//	@Router			/v1/invites/accept [post].
func (h *AcceptInviteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.Token == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "token is required")
		return
	}
	if req.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if len(req.Password) < minPasswordLength {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "password must be at least 6 characters")
		return
	}

	user, err := h.InvitationService.Accept(ctx, req.Token, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Invitation not found")
		case errors.Is(err, service.ErrInvitationAlreadyAccepted):
			httpx.WriteError(w, http.StatusConflict, "conflict", "Invitation has already been accepted")
		case errors.Is(err, service.ErrEmailAlreadyTaken):
			httpx.WriteError(w, http.StatusConflict, "conflict", "Email is already registered")
		case errors.Is(err, service.ErrInvalidInviteRequest):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid acceptance parameters")
		default:
			log.Error("failed to accept invitation", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to accept invitation")
		}
		return
	}

	// Session establishment is the caller's next step (login with the new
	// credentials); we only confirm the account here.
	httpx.WriteJSON(w, http.StatusOK, AcceptInviteResponse{
		Message: "Account created",
		User:    toUserResponse(user),
	})
}
