// Package server assembles the live portfolio page, its client script and
// the operational endpoints into one HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/gabrielmiguelok/livefolio/client"
	"github.com/gabrielmiguelok/livefolio/internal/config"
	"github.com/gabrielmiguelok/livefolio/internal/portfolio"
	"github.com/gabrielmiguelok/livefolio/internal/projects"
	"github.com/gabrielmiguelok/livefolio/internal/site"
	"github.com/gabrielmiguelok/livefolio/pkg/health"
	"github.com/gabrielmiguelok/livefolio/pkg/limits"
	"github.com/gabrielmiguelok/livefolio/pkg/logging"
	"github.com/gabrielmiguelok/livefolio/pkg/metrics"
	"github.com/gabrielmiguelok/livefolio/pkg/router"
	"github.com/gabrielmiguelok/livefolio/pkg/state"
	"github.com/gabrielmiguelok/livefolio/pkg/transport"
)

// Paths served besides the page itself.
const (
	AssetPrefix  = "/_live"
	SocketPath   = AssetPrefix + "/websocket"
	HealthPath   = "/health"
	LivenessPath = "/health/live"
	MetricsPath  = "/metrics"
)

// VisitorCookie names the cookie carrying the visitor id the theme flag is
// keyed by.
const VisitorCookie = "folio_visitor"

const visitorMaxAge = 365 * 24 * 60 * 60

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "folio"

// Server serves the live portfolio.
type Server struct {
	cfg     *config.Config
	logger  logging.Logger
	store   state.Store
	catalog *projects.Catalog
	live    *router.Router
	metrics *metrics.Metrics
	health  *health.Checker
	conns   *limits.ConnectionLimiter
	handler http.Handler

	httpServer *http.Server
}

// New opens the flag store, loads the project catalog, verifies the page
// renders every element the client script needs and builds the routes.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger, version string) (*Server, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	catalog, err := loadCatalog(cfg.Content.ProjectsDir)
	if err != nil {
		return nil, err
	}

	store, err := state.Open(ctx, cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening flag store: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		catalog: catalog,
	}

	opts := s.pageOptions()
	if err := portfolio.Verify(ctx, opts); err != nil {
		store.Close()
		return nil, fmt.Errorf("verifying page: %w", err)
	}

	s.metrics = metrics.NewMetrics(MetricsNamespace,
		metrics.WithEvents(portfolio.Events...),
		metrics.WithProcessCollectors(),
	)

	s.live = router.New(
		router.WithLogger(logger),
		router.WithObserver(s.metrics),
		router.WithMaxSessions(cfg.Server.MaxSessions),
		router.WithEventRate(cfg.Server.EventsPerSecond, cfg.Server.EventBurst),
		router.WithWebSocketConfig(&transport.WebSocketConfig{
			AllowedOrigins:  cfg.Server.AllowedOrigins,
			InsecureDevMode: cfg.Server.Debug,
		}),
	)
	s.live.Use(router.SecureHeaders())
	s.live.Live("/", portfolio.Factory(opts))

	s.health = health.NewChecker(version)
	s.health.AddCriticalCheck("store", health.StoreCheck(store.Ping), 2*time.Second)
	s.health.AddCheck("sessions", health.SessionCapacityCheck(s.live.Sessions().Count, cfg.Server.MaxSessions), time.Second)

	s.conns = limits.NewConnectionLimiter(cfg.Server.MaxConnectionsPerIP)
	s.handler = s.routes()

	logger.Info("server ready",
		logging.Int("projects", catalog.Len()),
		logging.String("store", cfg.Store.Driver),
	)
	return s, nil
}

func loadCatalog(dir string) (*projects.Catalog, error) {
	if dir == "" {
		return projects.Embedded()
	}
	catalog, err := projects.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("loading projects from %s: %w", dir, err)
	}
	return catalog, nil
}

func (s *Server) pageOptions() portfolio.Options {
	sc := s.cfg.Site
	return portfolio.Options{
		Page:            pageConfig(s.cfg),
		Owner:           sc.Owner,
		Recipient:       sc.Recipient,
		DefaultTab:      sc.DefaultTab,
		LeadIn:          sc.LeadIn,
		RevealThreshold: sc.RevealThreshold,
		Catalog:         s.catalog,
		Flags:           state.NewFlags(s.store),
	}
}

func pageConfig(cfg *config.Config) site.PageConfig {
	return site.PageConfig{
		Title:       cfg.Site.Title,
		Description: cfg.Site.Description,
		Author:      cfg.Site.Owner,
		Email:       cfg.Site.Recipient,
		Language:    "en",
		Keywords:    []string{"portfolio", "data analytics", "development"},
		ScriptSrc:   AssetPrefix + "/" + client.ScriptName + "?v=" + client.Version(),
		SocketPath:  SocketPath,
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		if origins := s.cfg.Server.AllowedOrigins; len(origins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: origins,
				AllowedMethods: []string{http.MethodGet, http.MethodOptions},
				AllowedHeaders: []string{"Accept"},
				MaxAge:         300,
			}))
		}
		r.Method(http.MethodGet, HealthPath, s.health.ReadinessHandler())
		r.Method(http.MethodGet, LivenessPath, s.health.LivenessHandler())
		r.Method(http.MethodGet, MetricsPath, s.metrics.Handler())
	})

	r.Handle(AssetPrefix+"/*", http.StripPrefix(AssetPrefix, client.Handler()))

	r.Group(func(r chi.Router) {
		r.Use(visitor)
		r.With(s.conns.Middleware()).Handle(SocketPath, s.live.SocketHandler())
		r.Handle("/", s.live)
	})

	return r
}

// visitor makes sure every page and socket request carries a visitor id.
// The id is minted once and kept in a long-lived cookie.
func visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(VisitorCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     VisitorCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   visitorMaxAge,
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(router.WithVisitor(r.Context(), id)))
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Live returns the live router.
func (s *Server) Live() *router.Router {
	return s.live
}

// Metrics returns the exported metrics.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Catalog returns the loaded projects.
func (s *Server) Catalog() *projects.Catalog {
	return s.catalog
}

// Run listens on server.address until ctx is cancelled, then closes live
// connections and drains HTTP requests within server.shutdown_timeout.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", logging.String("address", s.cfg.Server.Address))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listening on %s: %w", s.cfg.Server.Address, err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout()
	s.logger.Info("shutting down", logging.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by http.Server.
	liveErr := s.live.Shutdown(shutdownCtx)
	httpErr := s.httpServer.Shutdown(shutdownCtx)
	return errors.Join(liveErr, httpErr)
}

// Close releases the flag store.
func (s *Server) Close() error {
	return s.store.Close()
}
