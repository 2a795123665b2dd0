// Package http exposes the admin API over HTTP: authentication, the admin
// CRUD resource, health and metrics endpoints. Handlers return errors; a
// single boundary converts them into response envelopes.
package http

import (
	"log/slog"
	"net/http"

	"github.com/Abdallah-SE/ecommerce-api/auth"
	"github.com/Abdallah-SE/ecommerce-api/health"
	"github.com/Abdallah-SE/ecommerce-api/metric"
	"github.com/Abdallah-SE/ecommerce-api/respond"
	"github.com/Abdallah-SE/ecommerce-api/service"
)

// basePath prefixes every admin route.
const basePath = "/api/v1/admin"

// Server wires the admin API handlers to their dependencies.
type Server struct {
	admins   *service.AdminService
	accounts auth.AdminFinder
	tokens   *auth.TokenManager
	renderer *respond.Renderer
	metrics  *metric.Registry
	health   *health.Checker
	logger   *slog.Logger
}

// NewServer creates a Server. A nil logger falls back to slog.Default.
func NewServer(
	admins *service.AdminService,
	accounts auth.AdminFinder,
	tokens *auth.TokenManager,
	renderer *respond.Renderer,
	metrics *metric.Registry,
	healthChecker *health.Checker,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		admins:   admins,
		accounts: accounts,
		tokens:   tokens,
		renderer: renderer,
		metrics:  metrics,
		health:   healthChecker,
		logger:   logger,
	}
}

// Routes builds the full route table wrapped in the middleware chain.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST "+basePath+"/login", s.handle(s.login))
	mux.Handle("GET "+basePath+"/dashboard", s.handle(s.authenticated(s.dashboard)))

	mux.Handle("GET "+basePath+"/admins", s.handle(s.authenticated(s.indexAdmins)))
	mux.Handle("POST "+basePath+"/admins", s.handle(s.authenticated(s.storeAdmin)))
	// Logout lives under the admins resource; the literal segment wins over
	// the {id} wildcard for POST.
	mux.Handle("POST "+basePath+"/admins/logout", s.handle(s.authenticated(s.logout)))
	mux.Handle("GET "+basePath+"/admins/{id}", s.handle(s.authenticated(s.showAdmin)))
	mux.Handle("PUT "+basePath+"/admins/{id}", s.handle(s.authenticated(s.updateAdmin)))
	mux.Handle("DELETE "+basePath+"/admins/{id}", s.handle(s.authenticated(s.destroyAdmin)))

	mux.HandleFunc("GET /healthz", s.healthz)

	// Registered-path patterns without a method catch wrong-method requests;
	// the catch-all handles unknown routes. Both feed the renderer so the
	// client sees an envelope instead of the mux's plain-text errors.
	// No methodless pattern for admins/logout: it would conflict with the
	// method-bound {id} patterns, which already cover other verbs there.
	fallbacks := []string{
		basePath + "/login",
		basePath + "/dashboard",
		basePath + "/admins",
		basePath + "/admins/{id}",
		"/healthz",
	}
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
		fallbacks = append(fallbacks, "/metrics")
	}
	for _, path := range fallbacks {
		mux.Handle(path, s.handle(methodNotAllowed))
	}
	mux.Handle("/", s.handle(routeNotFound))

	return s.withMiddleware(mux)
}

// handlerFunc is an HTTP handler that reports failures instead of writing
// them itself.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts a handlerFunc into an http.Handler. Any returned error is
// classified and written exactly once.
func (s *Server) handle(fn handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			env, status := s.renderer.Render(err)
			respond.Write(w, env, status)
		}
	})
}

func routeNotFound(_ http.ResponseWriter, _ *http.Request) error {
	return respond.ErrRouteNotFound
}

func methodNotAllowed(_ http.ResponseWriter, _ *http.Request) error {
	return respond.ErrMethodNotAllowed
}
