package http

import (
	"errors"
	"net/http"

	"github.com/fernwell/linklet/internal/linklet/service"
	"github.com/fernwell/linklet/pkg/httpx"
	"github.com/fernwell/linklet/pkg/slogx"
)

type ListTeamHandler struct {
	DirectoryService *service.DirectoryService
	UserService      *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		List Team Members Endpoint
//	@Description	List the caller's company members with their short URL counts, newest first. Admin only.
//	@Tags			Directory
//	@Produce		json
//	@Success		200	{object}	TeamResponse		"data"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/team-members [get].
func (h *ListTeamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	caller, ok := resolveCaller(w, r, h.UserService)
	if !ok {
		return
	}

	members, err := h.DirectoryService.ListTeam(ctx, caller)
	if err != nil {
		if errors.Is(err, service.ErrTeamForbidden) {
			httpx.WriteError(w, http.StatusForbidden, "forbidden", "Only admins can list team members")
			return
		}
		log.Error("failed to list team members", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list team members")
		return
	}

	resp := TeamResponse{Data: make([]TeamMemberResponse, 0, len(members))}
	for _, m := range members {
		resp.Data = append(resp.Data, TeamMemberResponse{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Role:      m.Role,
			URLCount:  m.URLCount,
			CreatedAt: m.CreatedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
