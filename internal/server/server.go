// AngelaMos | 2026
// server.go

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/carterperez-dev/invoicing-backend/internal/config"
	"github.com/carterperez-dev/invoicing-backend/internal/core"
	"github.com/carterperez-dev/invoicing-backend/internal/health"
	"github.com/carterperez-dev/invoicing-backend/internal/middleware"
)

type Config struct {
	ServerConfig  config.ServerConfig
	HealthHandler *health.Handler
	Logger        *slog.Logger
	Tracer        trace.Tracer
}

type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	config     Config
}

// New builds the router with the request pipeline every route shares:
// request id, tracing, access log and body capture, in that order.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	if cfg.Tracer != nil {
		router.Use(middleware.Tracing(cfg.Tracer))
	}
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.ServerConfig.MaxBodyBytes > 0 {
		router.Use(middleware.CaptureBody(cfg.ServerConfig.MaxBodyBytes))
	}

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		core.NotFound(w, "Not Found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		core.JSON(w, http.StatusMethodNotAllowed, core.ErrorResponse{
			Status:  "error",
			Message: "Method Not Allowed",
		})
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.SetReady(false)
	}

	return &Server{
		router: router,
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.ServerConfig.Address(),
			Handler:           router,
			ReadTimeout:       cfg.ServerConfig.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.ServerConfig.WriteTimeout,
			IdleTimeout:       cfg.ServerConfig.IdleTimeout,
		},
	}
}

func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start binds the listener, reports ready, then serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	s.config.Logger.Info("http server listening", "addr", ln.Addr().String())
	if s.config.HealthHandler != nil {
		s.config.HealthHandler.SetReady(true)
	}

	if err := s.httpServer.Serve(ln); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown fails readiness first, waits drainDelay for load balancers to
// notice, then stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context, drainDelay time.Duration) error {
	if s.config.HealthHandler != nil {
		s.config.HealthHandler.SetReady(false)
		s.config.HealthHandler.SetShutdown(true)
	}

	if drainDelay > 0 {
		s.config.Logger.Info("draining before shutdown", "delay", drainDelay)
		select {
		case <-time.After(drainDelay):
		case <-ctx.Done():
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ServerConfig.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	s.config.Logger.Info("http server stopped")
	return nil
}
