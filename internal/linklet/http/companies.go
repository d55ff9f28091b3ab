package http

import (
	"errors"
	"net/http"

	"github.com/fernwell/linklet/internal/linklet/service"
	"github.com/fernwell/linklet/pkg/httpx"
	"github.com/fernwell/linklet/pkg/slogx"
)

type ListCompaniesHandler struct {
	DirectoryService *service.DirectoryService
	UserService      *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		List Companies Endpoint
//	@Description	List every company with user and short URL counts, newest first. SuperAdmin only.
//	@Tags			Directory
//	@Produce		json
//	@Success		200	{array}		CompanyResponse		"company records"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/companies [get].
func (h *ListCompaniesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	caller, ok := resolveCaller(w, r, h.UserService)
	if !ok {
		return
	}

	overviews, err := h.DirectoryService.ListCompanies(ctx, caller)
	if err != nil {
		if errors.Is(err, service.ErrCompaniesForbidden) {
			httpx.WriteError(w, http.StatusForbidden, "forbidden", "Only super admins can list companies")
			return
		}
		log.Error("failed to list companies", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list companies")
		return
	}

	resp := make([]CompanyResponse, 0, len(overviews))
	for _, o := range overviews {
		resp = append(resp, CompanyResponse{
			ID:            o.ID,
			Name:          o.Name,
			UsersCount:    o.UserCount,
			ShortURLCount: o.ShortURLCount,
			CreatedAt:     o.CreatedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
