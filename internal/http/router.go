// Package http wires the application services to their REST endpoints.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Chris-Devine/codecamp/internal/service"
	"github.com/Chris-Devine/codecamp/internal/store"
	"github.com/Chris-Devine/codecamp/pkg/httpx"
	"github.com/Chris-Devine/codecamp/pkg/jwtx"
	"github.com/Chris-Devine/codecamp/pkg/slogx"

	_ "github.com/Chris-Devine/codecamp/api" // Swagger docs
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
	store        store.Store

	// CookieName is the session cookie written by the login endpoint.
	CookieName    string
	SecureCookies bool

	// LockoutOnFailure makes failed cookie sign-ins count against the user.
	LockoutOnFailure bool

	AuthService    *service.AuthService
	SessionService *service.SessionService
	CampService    *service.CampService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsAllowedOrigin string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		CookieName:   DefaultCookieName,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsAllowedOrigin),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCamps()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CodeCamp API
//	@version		0.1.0
//	@description	Conference-management backend: camp catalogue plus credential
//	@description	verification with JWT bearer tokens and a session-cookie fallback.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT bearer token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{
		SessionService:   r.SessionService,
		CookieName:       r.CookieName,
		SecureCookies:    r.SecureCookies,
		LockoutOnFailure: r.LockoutOnFailure,
	}
	logout := &LogoutHandler{
		SessionService: r.SessionService,
		CookieName:     r.CookieName,
		SecureCookies:  r.SecureCookies,
	}
	token := &TokenHandler{AuthService: r.AuthService}

	// Credential endpoints are the brute-force surface; both get the strict
	// IP-keyed limit.
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(login, httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /api/auth/token",
		httpx.Chain(token, httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(logout, httpx.RateLimitByIP(httpx.LenientLimit)))
}

func (r *Router) registerCamps() {
	h := &CampsHandler{CampService: r.CampService}

	// Reads are public; mutations need a bearer token or a session cookie.
	r.Mux.Handle("GET /api/camps",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("GET /api/camps/{moniker}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit)))

	r.Mux.Handle("POST /api/camps",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.requireAuth,
			httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("PUT /api/camps/{moniker}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			r.requireAuth,
			httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("DELETE /api/camps/{moniker}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.requireAuth,
			httpx.RateLimitByIP(httpx.LenientLimit)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit)))
}
