package http

import (
	"errors"
	"net/http"

	"github.com/fernwell/linklet/internal/linklet/service"
	"github.com/fernwell/linklet/pkg/httpx"
	"github.com/fernwell/linklet/pkg/slogx"
)

type RedirectHandler struct {
	ShortURLService *service.ShortURLService
}

// ServeHTTP godoc
//
//	@Summary		Redirect Endpoint
//	@Description	Resolve a short code and redirect to the original URL
//	@Tags			ShortURLs
//	@Param			code	path	string	true	"Short code"
//	@Success		302		"Location header set to the original URL"
//	@Failure		404		{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/s/{code} [get].
func (h *RedirectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := r.PathValue("code")
	if code == "" {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Short URL not found")
		return
	}

	shortURL, err := h.ShortURLService.Resolve(ctx, code)
	if err != nil {
		if errors.Is(err, service.ErrShortURLNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Short URL not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to resolve short code", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to resolve short URL")
		return
	}

	// 302 so clients keep re-resolving; the mapping owner may repoint it.
	http.Redirect(w, r, shortURL.OriginalURL, http.StatusFound)
}
