// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: the one place where the dependency chain
//
//	sqlite.DB → StatsService/SignupService → handlers → routes
//
// gets assembled. Handlers never touch the database; services never touch
// HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/learning-waitlist/internal/config"
	"github.com/sakif/learning-waitlist/internal/handler"
	"github.com/sakif/learning-waitlist/internal/middleware"
	"github.com/sakif/learning-waitlist/internal/repository"
	sqliteRepo "github.com/sakif/learning-waitlist/internal/repository/sqlite"
	"github.com/sakif/learning-waitlist/internal/service"
)

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB // nil when the store is not configured
}

// New creates a Server and wires the whole dependency chain.
//
// An empty DBPath starts the server without a store: the signup endpoint
// returns a store error and the analytics endpoints return their
// unavailable/empty state. The store's availability is decided once, here,
// and flows through the services as typed errors — no nil-checks scattered
// through handlers.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	var db *sqliteRepo.DB
	if cfg.DBPath == "" {
		logger.Warn("DB_PATH not set — starting without a store; signups will fail and stats will be unavailable")
	} else {
		var err error
		db, err = sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and routes.
//
// GET  /                         → landing page
// GET  /sign-up                  → sign-up form
// GET  /analytics                → public analytics page
// GET  /admin/dashboard          → admin dashboard page
// GET  /static/*                 → stylesheet etc.
// POST /api/signups              → submit the form
// GET  /api/challenge-stats      → dashboard numbers
// GET  /api/challenges-analytics → chart payload
// GET  /healthz                  → liveness + store state
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// === Services ===
	// The branch matters: assigning a nil *sqliteRepo.DB straight into the
	// interface would make it non-nil, defeating the services' "store not
	// configured" checks.
	var repo repository.SignupRepository
	if s.db != nil {
		repo = s.db
	}
	statsService := service.NewStatsService(repo, s.logger)
	signupService := service.NewSignupService(repo, statsService, s.logger)

	// === Static files ===
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// === Pages ===
	pages, err := handler.NewPageHandler(s.config.TemplateDir, statsService, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	s.router.Get("/", pages.HandleLanding)
	s.router.Get("/sign-up", pages.HandleSignupPage)
	s.router.Get("/analytics", pages.HandleAnalyticsPage)
	s.router.Get("/admin/dashboard", pages.HandleDashboardPage)

	// === API ===
	signupHandler := handler.NewSignupHandler(signupService, s.logger)
	statsHandler := handler.NewStatsHandler(statsService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/signups", signupHandler.HandleSubmit)
		r.Get("/challenge-stats", statsHandler.HandleChallengeStats)
		r.Get("/challenges-analytics", statsHandler.HandleChallengesAnalytics)
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","storeConfigured":%t}`, s.db != nil)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests (30s),
// close the database.
func (s *Server) Start() error {
	defer func() {
		if s.db != nil {
			s.db.Close()
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.Bool("storeConfigured", s.db != nil),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
