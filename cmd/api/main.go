// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/carterperez-dev/invoicing-backend/internal/auth"
	"github.com/carterperez-dev/invoicing-backend/internal/config"
	"github.com/carterperez-dev/invoicing-backend/internal/core"
	"github.com/carterperez-dev/invoicing-backend/internal/filter"
	"github.com/carterperez-dev/invoicing-backend/internal/health"
	"github.com/carterperez-dev/invoicing-backend/internal/invoice"
	"github.com/carterperez-dev/invoicing-backend/internal/middleware"
	"github.com/carterperez-dev/invoicing-backend/internal/server"
	"github.com/carterperez-dev/invoicing-backend/internal/taxprofile"
	"github.com/carterperez-dev/invoicing-backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		return err
	}
	if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized", "endpoint", cfg.Otel.Endpoint)
	}

	if cfg.Database.AutoMigrate {
		if err := core.MigrateUp(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			return err
		}
		logger.Info("migrations applied", "path", cfg.Database.MigrationsPath)
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)

	if err := ensureSigningKeys(cfg); err != nil {
		return err
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.KeyID(),
	)

	limits := filter.Limits{
		DefaultTake: cfg.Pagination.DefaultTake,
		MaxTake:     cfg.Pagination.MaxTake,
	}

	userSvc := user.NewService(user.NewRepository(db.DB), core.NewArgon2Hasher(), jwtManager)
	taxProfileSvc := taxprofile.NewService(taxprofile.NewRepository(db.DB), limits)
	invoiceSvc := invoice.NewService(invoice.NewRepository(db.DB), taxProfileSvc, limits)

	globalLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitOptions{
		Name:  "global",
		Limit: middleware.LimitFromConfig(cfg.RateLimit),
	})
	defer globalLimiter.Close()

	authLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitOptions{
		Name:    "auth",
		Limit:   middleware.LimitFromConfig(cfg.AuthRateLimit),
		KeyFunc: middleware.KeyByIPAndPath,
	})
	defer authLimiter.Close()

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
		Tracer:        telemetry.Tracer,
	})

	srv.Mount(server.API{
		Authenticator: middleware.Authenticator(jwtManager),
		GlobalLimiter: globalLimiter.Handler,
		AuthLimiter:   authLimiter.Handler,
		JWKS:          jwtManager.JWKSHandler(),
		Users:         user.NewHandler(userSvc),
		TaxProfiles:   taxprofile.NewHandler(taxProfileSvc),
		Invoices:      invoice.NewHandler(invoiceSvc),
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown error", "error", err)
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// ensureSigningKeys creates a throwaway key pair outside production when
// none is configured on disk.
func ensureSigningKeys(cfg *config.Config) error {
	_, err := os.Stat(cfg.JWT.PrivateKeyPath)
	if err == nil || !errors.Is(err, fs.ErrNotExist) || cfg.IsProduction() {
		return nil
	}

	for _, path := range []string{cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath} {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o700); mkErr != nil {
			return mkErr
		}
	}

	slog.Warn("generating development signing keys",
		"private_key", cfg.JWT.PrivateKeyPath,
	)
	return auth.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath)
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
