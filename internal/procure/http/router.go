package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/upvn/procure/internal/procure/service"
	"github.com/upvn/procure/internal/procure/store"
	"github.com/upvn/procure/pkg/httpx"
	"github.com/upvn/procure/pkg/jwtx"
	"github.com/upvn/procure/pkg/slogx"

	_ "github.com/upvn/procure/api/procure" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	IdentityService  *service.IdentityService
	BootstrapService *service.BootstrapService
	UserService      *service.UserService
	CategoryService  *service.CategoryService
	ProjectService   *service.ProjectService
	BidService       *service.BidService
	OpeningService   *service.OpeningService
}

func NewRouter(
	verifier jwtx.Verifier,
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
	r.registerUsers()
	r.registerCategories()
	r.registerProjects()
	r.registerBids()
	r.registerOpening()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Procurement Service API
//	@version		0.1.0
//	@description	Sealed-bid procurement platform: invited suppliers bid on
//	@description	projects while the ledger stays sealed, and bids are opened
//	@description	exactly once after the closing time in an auditable ceremony.
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
	loginHandler := &LoginHandler{IdentityService: r.IdentityService}
	registerHandler := &RegisterHandler{IdentityService: r.IdentityService}
	verifyHandler := &VerifyHandler{IdentityService: r.IdentityService}

	// POST /auth/login - strict rate limit (authentication attempts)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/register - strict rate limit (public signup endpoint)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /auth/verify - moderate rate limit (token redemption via mail link)
	r.Mux.Handle("GET /v1/auth/verify",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - strict rate limit by IP (one-time setup endpoint)
	bootstrapHandler := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(bootstrapHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		UserService: r.UserService,
	}

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:read"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// GET /users/{id} - self or admin, checked in the handler
	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("profile:read"),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// PATCH /users/{id} - self or admin, checked in the handler
	securedUpdate := httpx.Chain(http.HandlerFunc(h.HandleUpdate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("profile:read"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	securedApprove := httpx.Chain(http.HandlerFunc(h.HandleApprove),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	securedCategories := httpx.Chain(http.HandlerFunc(h.HandleSetCategories),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/users", securedList)
	r.Mux.Handle("GET /v1/users/{id}", securedGet)
	r.Mux.Handle("PATCH /v1/users/{id}", securedUpdate)
	r.Mux.Handle("POST /v1/users/{id}/approve", securedApprove)
	r.Mux.Handle("DELETE /v1/users/{id}", securedDelete)
	r.Mux.Handle("PUT /v1/users/{id}/categories", securedCategories)
}

func (r *Router) registerCategories() {
	h := &CategoriesHandler{CategoryService: r.CategoryService}

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("projects:read"),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	securedUpdate := httpx.Chain(http.HandlerFunc(h.HandleUpdate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/categories", securedList)
	r.Mux.Handle("POST /v1/categories", securedCreate)
	r.Mux.Handle("PUT /v1/categories/{id}", securedUpdate)
	r.Mux.Handle("DELETE /v1/categories/{id}", securedDelete)
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: r.ProjectService}

	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("projects:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("projects:read"),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("projects:read"),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	securedInvite := httpx.Chain(http.HandlerFunc(h.HandleInvite),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("projects:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	securedInvitations := httpx.Chain(http.HandlerFunc(h.HandleListInvitations),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("projects:write", "projects:open"),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	securedCancel := httpx.Chain(http.HandlerFunc(h.HandleCancel),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("projects:cancel"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/projects", securedCreate)
	r.Mux.Handle("GET /v1/projects", securedList)
	r.Mux.Handle("GET /v1/projects/{id}", securedGet)
	r.Mux.Handle("POST /v1/projects/{id}/invitations", securedInvite)
	r.Mux.Handle("GET /v1/projects/{id}/invitations", securedInvitations)
	r.Mux.Handle("POST /v1/projects/{id}/cancel", securedCancel)
}

func (r *Router) registerBids() {
	h := &BidsHandler{BidService: r.BidService}

	securedSubmit := httpx.Chain(http.HandlerFunc(h.HandleSubmit),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("bids:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("projects:read"),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("POST /v1/projects/{id}/bids", securedSubmit)
	r.Mux.Handle("GET /v1/projects/{id}/bids", securedList)
}

func (r *Router) registerOpening() {
	h := &OpeningHandler{OpeningService: r.OpeningService}

	securedOpen := httpx.Chain(http.HandlerFunc(h.HandleOpen),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("projects:open"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	securedRecord := httpx.Chain(http.HandlerFunc(h.HandleRecord),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("projects:read"),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("POST /v1/projects/{id}/open", securedOpen)
	r.Mux.Handle("GET /v1/projects/{id}/record", securedRecord)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
