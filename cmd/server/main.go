package main

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/qaeditor/internal/ai"
	"github.com/JonMunkholm/qaeditor/internal/config"
	"github.com/JonMunkholm/qaeditor/internal/core"
	"github.com/JonMunkholm/qaeditor/internal/events"
	"github.com/JonMunkholm/qaeditor/internal/logging"
	"github.com/JonMunkholm/qaeditor/internal/store"
	"github.com/JonMunkholm/qaeditor/internal/store/postgres"
	"github.com/JonMunkholm/qaeditor/internal/telemetry"
	"github.com/JonMunkholm/qaeditor/internal/web"
)

// modelCacheEntries bounds the number of API keys whose model list is cached.
const modelCacheEntries = 256

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"database", cfg.Database.Enabled(),
		"ai_provider", cfg.AI.Provider,
		"ai_max_concurrent", cfg.AI.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	st, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeStore()

	provider, err := ai.New(cfg.AI.Provider, ai.Options{BaseURL: cfg.AI.BaseURL, Timeout: cfg.AI.Timeout})
	if err != nil {
		return err
	}
	generator, err := ai.WithModelCache(provider, modelCacheEntries, cfg.AI.ModelCacheTTL)
	if err != nil {
		return err
	}
	defer generator.Close()
	slog.Info("ai provider ready", "provider", provider.Name(), "available", ai.Names())

	hub := events.NewHub(cfg.Security.AllowedOrigins...)
	sinks := events.Fanout{hub}
	if cfg.Events.NATSURL != "" {
		pub, err := events.ConnectNATS(cfg.Events.NATSURL, cfg.Events.Subject)
		if err != nil {
			return err
		}
		defer func() { _ = pub.Close() }()
		sinks = append(sinks, pub)
	}

	service, err := core.NewService(ctx, core.Options{
		Store:     st,
		Generator: generator,
		Events:    sinks,
		Limiter:   core.NewGenerationLimiter(cfg.AI.MaxConcurrent, cfg.AI.MaxWaitTime),
	})
	if err != nil {
		return err
	}

	server := web.NewServer(service, cfg, hub)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		service.StartAuditPruner(gctx, core.PruneConfig{
			RetentionDays: cfg.Audit.RetentionDays,
			CheckInterval: cfg.Audit.PruneInterval,
		})
		return nil
	})

	g.Go(func() error {
		return server.Start()
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Let in-flight generations land before the listener closes
		status := service.GenerationStatus()
		if status.Active > 0 {
			slog.Info("waiting for generations to complete", "active", status.Active)
			if err := service.WaitForGenerations(shutdownCtx); err != nil {
				slog.Warn("generations did not complete in time", "error", err)
			} else {
				slog.Info("all generations completed")
			}
		}

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// openStore returns the PostgreSQL store when a database URL is configured
// and the in-memory store otherwise.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (core.Store, func(), error) {
	if !cfg.Enabled() {
		slog.Warn("DATABASE_URL not set, data is kept in memory only")
		return store.NewMemory(), func() {}, nil
	}

	if err := postgres.RunMigrations(ctx, cfg.URL); err != nil {
		return nil, nil, err
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logConnected(pool, cfg.URL)

	return postgres.New(pool), pool.Close, nil
}

// logConnected logs the database name without credentials.
func logConnected(pool *pgxpool.Pool, dsn string) {
	if u, err := url.Parse(dsn); err == nil {
		slog.Info("connected to database",
			"name", strings.TrimPrefix(u.Path, "/"),
			"max_conns", pool.Config().MaxConns,
		)
		return
	}
	slog.Info("connected to database")
}
