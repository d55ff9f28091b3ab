package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fernwell/linklet/internal/linklet/service"
	"github.com/fernwell/linklet/pkg/httpx"
	"github.com/fernwell/linklet/pkg/slogx"
)

type CreateShortURLHandler struct {
	ShortURLService *service.ShortURLService
	UserService     *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Create Short URL Endpoint
//	@Description	Shorten an absolute http(s) URL. Admins and Members only; the mapping is scoped to the caller's company.
//	@Tags			ShortURLs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateShortURLRequest	true	"Creation request"
//	@Success		201		{object}	ShortURLResponse		"id, short_code, original_url, company_id, created_by, created_at"
//	@Failure		400		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	httpx.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/short-urls [post].
func (h *CreateShortURLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req CreateShortURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.OriginalURL == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "original_url is required")
		return
	}

	caller, ok := resolveCaller(w, r, h.UserService)
	if !ok {
		return
	}

	shortURL, err := h.ShortURLService.Create(ctx, caller, req.OriginalURL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShortURLForbidden):
			httpx.WriteError(w, http.StatusForbidden, "forbidden", "You cannot create short URLs")
		case errors.Is(err, service.ErrInvalidOriginalURL):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "original_url must be an absolute http or https URL")
		default:
			log.Error("failed to create short url", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create short URL")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toShortURLResponse(shortURL))
}
