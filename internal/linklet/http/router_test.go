package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fernwell/linklet/internal/linklet/service"
	"github.com/fernwell/linklet/internal/linklet/store/drivers/sqlite"
	"github.com/fernwell/linklet/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer := jwtx.NewSigner("test-secret", "test-issuer", time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(signer, "test", st, logger)
	router.TokenService = &service.TokenService{Store: st, Signer: signer}
	router.UserService = &service.UserService{Store: st}
	router.BootstrapService = &service.BootstrapService{Store: st, Token: "seed-token"}
	router.InvitationService = &service.InvitationService{Store: st}
	router.ShortURLService = &service.ShortURLService{Store: st}
	router.DirectoryService = &service.DirectoryService{Store: st}
	router.ApplyRoutes()

	return router
}

func doJSON(t *testing.T, router *Router, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOnboardingAndShorteningFlow(t *testing.T) {
	router := newTestRouter(t)

	// Bootstrap the first super admin.
	rec := doJSON(t, router, http.MethodPost, "/v1/bootstrap", "", BootstrapRequest{
		Token:    "seed-token",
		Name:     "Root",
		Email:    "root@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Log in as the super admin.
	rec = doJSON(t, router, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Email:    "root@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var login LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.Equal(t, "Bearer", login.TokenType)
	rootToken := login.AccessToken

	// Invite a company admin; a fresh company is created around the invite.
	rec = doJSON(t, router, http.MethodPost, "/v1/invites", rootToken, InviteRequest{
		Email: "boss@acme.com",
		Role:  "Admin",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var invite InviteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invite))
	require.NotEmpty(t, invite.Token)

	// Accept the invitation without authentication.
	rec = doJSON(t, router, http.MethodPost, "/v1/invites/accept", "", AcceptInviteRequest{
		Token:    invite.Token,
		Name:     "Boss",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var accepted AcceptInviteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accepted))
	require.Equal(t, "Admin", accepted.User.Role)
	require.NotNil(t, accepted.User.CompanyID)

	// Accepting twice fails.
	rec = doJSON(t, router, http.MethodPost, "/v1/invites/accept", "", AcceptInviteRequest{
		Token:    invite.Token,
		Name:     "Impostor",
		Password: "hunter23",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	// The new admin logs in and shortens a URL.
	rec = doJSON(t, router, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Email:    "boss@acme.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	adminToken := login.AccessToken

	rec = doJSON(t, router, http.MethodPost, "/v1/short-urls", adminToken, CreateShortURLRequest{
		OriginalURL: "https://example.com/some/long/path",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created ShortURLResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(t, created.ShortCode, 6)

	// Public redirect, no auth.
	req := httptest.NewRequest(http.MethodGet, "/s/"+created.ShortCode, nil)
	redirect := httptest.NewRecorder()
	router.ServeHTTP(redirect, req)
	require.Equal(t, http.StatusFound, redirect.Code)
	require.Equal(t, "https://example.com/some/long/path", redirect.Header().Get("Location"))

	// The admin sees its company's URLs; the super admin sees them too.
	rec = doJSON(t, router, http.MethodGet, "/v1/short-urls", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []ShortURLResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.Equal(t, "Boss", listed[0].CreatorName)

	// Super admins cannot shorten URLs.
	rec = doJSON(t, router, http.MethodPost, "/v1/short-urls", rootToken, CreateShortURLRequest{
		OriginalURL: "https://example.com",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Directory endpoints respect roles.
	rec = doJSON(t, router, http.MethodGet, "/v1/companies", rootToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var companies []CompanyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &companies))
	require.Len(t, companies, 1)
	require.Equal(t, "boss@acme.com's Company", companies[0].Name)
	require.EqualValues(t, 1, companies[0].UsersCount)
	require.EqualValues(t, 1, companies[0].ShortURLCount)

	rec = doJSON(t, router, http.MethodGet, "/v1/companies", adminToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/team-members", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var team TeamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &team))
	require.Len(t, team.Data, 1)
	require.Equal(t, "boss@acme.com", team.Data[0].Email)

	rec = doJSON(t, router, http.MethodGet, "/v1/team-members", rootToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Userinfo reflects the caller.
	rec = doJSON(t, router, http.MethodGet, "/v1/userinfo", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.Equal(t, "boss@acme.com", me.Email)
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/v1/invites"},
		{http.MethodPost, "/v1/short-urls"},
		{http.MethodGet, "/v1/short-urls"},
		{http.MethodGet, "/v1/companies"},
		{http.MethodGet, "/v1/team-members"},
		{http.MethodGet, "/v1/userinfo"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	}
}

func TestRedirectUnknownCode(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/s/zzzzzz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLivezAndReadyz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
