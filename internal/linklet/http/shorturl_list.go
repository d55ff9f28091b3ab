package http

import (
	"net/http"

	"github.com/fernwell/linklet/internal/linklet/service"
	"github.com/fernwell/linklet/pkg/httpx"
	"github.com/fernwell/linklet/pkg/slogx"
)

type ListShortURLsHandler struct {
	ShortURLService *service.ShortURLService
	UserService     *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		List Short URLs Endpoint
//	@Description	List short URLs visible to the caller: all of them for SuperAdmins, the company's for Admins, the caller's own for Members
//	@Tags			ShortURLs
//	@Produce		json
//	@Success		200	{array}		ShortURLResponse	"short URL records"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/short-urls [get].
func (h *ListShortURLsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	caller, ok := resolveCaller(w, r, h.UserService)
	if !ok {
		return
	}

	views, err := h.ShortURLService.List(ctx, caller)
	if err != nil {
		log.Error("failed to list short urls", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list short URLs")
		return
	}

	resp := make([]ShortURLResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toShortURLViewResponse(v))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
