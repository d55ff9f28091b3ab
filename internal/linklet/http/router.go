package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fernwell/linklet/internal/linklet/service"
	"github.com/fernwell/linklet/internal/linklet/store"
	"github.com/fernwell/linklet/pkg/httpx"
	"github.com/fernwell/linklet/pkg/slogx"

	_ "github.com/fernwell/linklet/api/linklet" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     httpx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	TokenService      *service.TokenService
	UserService       *service.UserService
	BootstrapService  *service.BootstrapService
	InvitationService *service.InvitationService
	ShortURLService   *service.ShortURLService
	DirectoryService  *service.DirectoryService
}

func NewRouter(
	verifier httpx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerBootstrap()
	r.registerInvitations()
	r.registerShortURLs()
	r.registerDirectory()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Linklet URL Shortening Service API
//	@version		0.1.0
//	@description	Multi-tenant URL shortening service with company-scoped access control and invitation-based onboarding.
//	@description
//	@description				SuperAdmins invite company admins, Admins invite their team, and Admins/Members shorten URLs scoped to their company.
//
//	@contact.name				Fernwell Team
//	@contact.url				https://github.com/fernwell/linklet
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /v1/auth/login - strict rate limit (credential guessing target)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{TokenService: r.TokenService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /v1/userinfo - authenticated, per-user moderate limit
	r.Mux.Handle("GET /v1/userinfo",
		httpx.Chain(&UserInfoHandler{UserService: r.UserService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /v1/bootstrap - strict rate limit, token-guarded single use
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(&BootstrapHandler{BootstrapService: r.BootstrapService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvitations() {
	// POST /v1/invites - authenticated, moderate limit
	r.Mux.Handle("POST /v1/invites",
		httpx.Chain(&InviteHandler{
			InvitationService: r.InvitationService,
			UserService:       r.UserService,
		},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /v1/invites/accept - no auth, the token is the credential; strict limit
	r.Mux.Handle("POST /v1/invites/accept",
		httpx.Chain(&AcceptInviteHandler{InvitationService: r.InvitationService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerShortURLs() {
	// POST /v1/short-urls - authenticated, moderate limit
	r.Mux.Handle("POST /v1/short-urls",
		httpx.Chain(&CreateShortURLHandler{
			ShortURLService: r.ShortURLService,
			UserService:     r.UserService,
		},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /v1/short-urls - authenticated, lenient limit
	r.Mux.Handle("GET /v1/short-urls",
		httpx.Chain(&ListShortURLsHandler{
			ShortURLService: r.ShortURLService,
			UserService:     r.UserService,
		},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /s/{code} - public redirect, high-volume limit
	r.Mux.Handle("GET /s/{code}",
		httpx.Chain(&RedirectHandler{ShortURLService: r.ShortURLService},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerDirectory() {
	// GET /v1/companies - authenticated, lenient limit
	r.Mux.Handle("GET /v1/companies",
		httpx.Chain(&ListCompaniesHandler{
			DirectoryService: r.DirectoryService,
			UserService:      r.UserService,
		},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /v1/team-members - authenticated, lenient limit
	r.Mux.Handle("GET /v1/team-members",
		httpx.Chain(&ListTeamHandler{
			DirectoryService: r.DirectoryService,
			UserService:      r.UserService,
		},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
