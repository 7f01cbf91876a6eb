package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/halvard/biopage/internal/api/handler"
	mw "github.com/halvard/biopage/internal/api/middleware"
	"github.com/halvard/biopage/internal/config"
	"github.com/halvard/biopage/internal/core"
	"github.com/halvard/biopage/internal/hostname"
	"github.com/halvard/biopage/internal/routing"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	pool     *pgxpool.Pool
	cfg      *config.Config
	parser   *hostname.Parser
	engine   *routing.Engine
	proxies  *routing.TrustedProxies
	site     http.Handler
}

// NewServer wires the management API, the webhook receiver, and the public
// edge into one router. The site handler receives rewritten profile requests;
// nil disables the edge routes.
func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, services *core.Services, cfg *config.Config,
	parser *hostname.Parser, engine *routing.Engine, proxies *routing.TrustedProxies, site http.Handler) *Server {

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		pool:     pool,
		cfg:      cfg,
		parser:   parser,
		engine:   engine,
		proxies:  proxies,
		site:     site,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	// RemoteAddr stays the socket peer for the whole chain: the trusted-proxy
	// check and the webhook rate limiter both key on it, and X-Forwarded-* is
	// only honored past that check inside the routing middleware.
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// Provisioning callbacks. Signature-verified, rate-limited per source IP.
	webhook := handler.NewWebhook(s.services.Domain, s.cfg.ProvisionerSecret)
	s.router.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(60, time.Minute))
		r.Post("/webhooks/domain", webhook.ReceiveDomain)
	})

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.pool))

		// Tenants
		tenant := handler.NewTenant(s.services.Tenant, s.cfg.ApexDomain)
		r.Get("/tenants", tenant.List)
		r.Post("/tenants", tenant.Create)
		r.Get("/tenants/{id}", tenant.Get)

		// Custom domains
		domain := handler.NewDomain(s.services.Domain)
		r.Post("/tenants/{id}/domain", domain.Submit)
		r.Delete("/tenants/{id}/domain", domain.Remove)
		r.Get("/tenants/{id}/domain", domain.Status)

		// API keys
		apiKey := handler.NewAPIKey(s.services.APIKey)
		r.Get("/api-keys", apiKey.List)
		r.Post("/api-keys", apiKey.Create)
		r.Get("/api-keys/{id}", apiKey.Get)
		r.Delete("/api-keys/{id}", apiKey.Revoke)
	})

	// Public edge: everything else is host-routed to the site origin.
	if s.site != nil {
		s.router.Group(func(r chi.Router) {
			r.Use(routing.Middleware(s.parser, s.engine, s.proxies, s.logger))
			r.Handle("/*", s.site)
		})
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	// Provisioner reachability is reported but not gating: routing and the
	// management API work without it.
	if err := s.services.Domain.Health(ctx); err != nil {
		checks["provisioner"] = err.Error()
	} else {
		checks["provisioner"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
