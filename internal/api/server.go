package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/adfinis/poweradmin-api/internal/api/handler"
	mw "github.com/adfinis/poweradmin-api/internal/api/middleware"
	"github.com/adfinis/poweradmin-api/internal/config"
	"github.com/adfinis/poweradmin-api/internal/core"
)

// Pool is the database handle the server runs on. *pgxpool.Pool satisfies it.
type Pool interface {
	core.DB
	Ping(ctx context.Context) error
}

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	pool     Pool
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, pool Pool, cfg *config.Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: core.NewServices(pool, cfg.JWTSecret, cfg.JWTIssuer),
		pool:     pool,
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.services.Auth))

		domain := handler.NewDomain(s.services)
		r.Get("/domains", domain.List)
		r.Post("/domains", domain.Create)
		r.Get("/domains/{name}", domain.Get)

		record := handler.NewRecord(s.services)
		r.Get("/records", record.List)
		r.Post("/records", record.Create)
		r.Get("/records/{id}", record.Get)
		r.Put("/records/{id}", record.Update)

		// Zones are read only; rows are created together with their domain.
		zone := handler.NewZone(s.services)
		r.Get("/zones", zone.List)
		r.Get("/zones/{domain}", zone.Get)
	})
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
	status := http.StatusOK

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(checks)
}

// Router returns the underlying chi router.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
