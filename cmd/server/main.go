package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"datasentinel/internal/platform/config"
	"datasentinel/internal/platform/health"
	"datasentinel/internal/platform/logger"
	"datasentinel/internal/seeder"
	httptransport "datasentinel/internal/transport/http"
	"datasentinel/pkg/platform/middleware/request"
)

const (
	shutdownTimeout   = 10 * time.Second
	poolStatsInterval = 15 * time.Second
)

// main wires infrastructure, services and the router, then runs the server
// until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	log.Info("initializing datasentinel",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	infra, err := buildInfra(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize infrastructure", "error", err)
		os.Exit(1)
	}
	defer infra.Close(log)

	mods, err := buildModules(cfg, infra, log)
	if err != nil {
		log.Error("failed to initialize modules", "error", err)
		os.Exit(1)
	}

	if err := seed(ctx, cfg, mods, log); err != nil {
		log.Error("failed to seed bootstrap data", "error", err)
		os.Exit(1)
	}

	healthHandler := health.New(cfg.Environment)
	infra.RegisterChecks(healthHandler)
	if infra.redis != nil {
		go recordPoolStats(ctx, infra)
	}

	if cfg.AdminKey == "" {
		log.Warn("SENTINEL_ADMIN_KEY is not set; admin routes are disabled")
	}
	router := httptransport.NewRouter(httptransport.Config{
		APIKey:         cfg.APIKey,
		AdminKey:       cfg.AdminKey,
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        request.NewMetrics(),
	}, mods.routes(healthHandler), log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

func seed(ctx context.Context, cfg config.Server, mods *modules, log *slog.Logger) error {
	data, err := config.LoadSeed(cfg.SeedFile)
	if err != nil {
		return err
	}
	return seeder.New(mods.consent, mods.access, log).SeedAll(ctx, data)
}

func recordPoolStats(ctx context.Context, infra *infrastructure) {
	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			infra.redis.RecordPoolStats()
		}
	}
}
