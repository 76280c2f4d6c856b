package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/vetrecords/internal/config"
	"github.com/JonMunkholm/vetrecords/internal/core"
	_ "github.com/JonMunkholm/vetrecords/internal/core/kinds" // Register all record kinds
	"github.com/JonMunkholm/vetrecords/internal/logging"
	"github.com/JonMunkholm/vetrecords/internal/store"
	"github.com/JonMunkholm/vetrecords/internal/store/memory"
	"github.com/JonMunkholm/vetrecords/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store", cfg.Store.Driver,
		"import_max_concurrent", cfg.Import.MaxConcurrent,
		"import_chunk_size", cfg.Import.ChunkSize,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"require_api_key", cfg.Security.RequireAPIKey,
	)

	ctx := context.Background()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	service := core.NewService(st, core.ServiceOptions{
		ChunkSize:      cfg.Import.ChunkSize,
		MaxConcurrent:  cfg.Import.MaxConcurrent,
		MaxWait:        cfg.Import.MaxWaitTime,
		ImportTimeout:  cfg.Import.Timeout,
		ExportLimit:    cfg.Import.ExportLimit,
		MaxExportLimit: cfg.Import.MaxExportLimit,
	})

	kinds := service.ListKinds()
	keys := make([]string, len(kinds))
	for i, k := range kinds {
		keys[i] = string(k.Key)
	}
	slog.Info("record kinds registered", "count", len(kinds), "kinds", strings.Join(keys, ","))

	server, err := web.NewServer(service, cfg)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go service.StartAuditRetention(jobCtx, core.RetentionConfig{
		RetentionDays: cfg.Audit.RetentionDays,
		CheckInterval: cfg.Audit.CheckInterval,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for running imports to finish (with timeout)
		limiter := service.Limiter()
		if active := limiter.ActiveCount(); active > 0 {
			slog.Info("waiting for imports to complete", "active", active)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("imports did not complete in time", "error", err)
			} else {
				slog.Info("all imports completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore connects the configured persistence backend and returns a
// function that releases it.
func openStore(ctx context.Context, cfg *config.Config) (core.Store, func(), error) {
	if strings.EqualFold(cfg.Store.Driver, config.DriverMemory) {
		slog.Warn("using in-memory store; data is lost on restart")
		return memory.New(), func() {}, nil
	}

	// Parse and configure connection pool
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, err
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	return store.New(pool), pool.Close, nil
}
