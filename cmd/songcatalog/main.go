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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"songcatalog/internal/cache"
	"songcatalog/internal/config"
	"songcatalog/internal/handlers"
	"songcatalog/internal/metrics"
	"songcatalog/internal/models"
	"songcatalog/internal/repositories"
)

func main() {
	// Load .env file for local development
	_ = godotenv.Load()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	connectCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	db, err := models.ConnectWithRetry(connectCtx, cfg.MongodbURL, cfg.MongodbDatabase, cfg.ConnectAttempts)
	cancel()
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	if err := db.CreateIndexes(ctx); err != nil {
		slog.Warn("Failed to create indexes", "error", err)
	}

	// Initialize cache
	songCache, err := newCache(cfg)
	if err != nil {
		return err
	}
	defer songCache.Close()

	songRepo := repositories.NewCachedSongRepository(
		repositories.NewMongoSongRepository(db), songCache, cfg.CacheTTL)

	var m *metrics.Manager
	if cfg.MetricsEnabled {
		m = metrics.NewManager()
	}

	statsHandler := handlers.NewStatsHandler(songRepo, cfg.StatsDefaultTopN, cfg.StatsMaxTopN, m)
	router := handlers.NewRouter(handlers.RouterConfig{
		Songs: handlers.NewSongHandler(songRepo, m),
		Stats: statsHandler,
		Health: handlers.NewHealthHandler(map[string]handlers.HealthChecker{
			"mongodb": db,
			"cache":   songCache,
		}),
		Dashboard:       handlers.NewDashboardHandler(statsHandler),
		Metrics:         m,
		MutationLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", server.Addr, "valkey", cfg.UseValkey())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newCache(cfg *config.Config) (cache.Cache, error) {
	if cfg.UseValkey() {
		return cache.NewValkeyCache(cfg.ValkeyURL, "songcatalog:")
	}
	slog.Info("VALKEY_URL not set, using in-memory cache", "maxItems", cfg.CacheMaxItems)
	return cache.NewMemoryCache(cfg.CacheMaxItems), nil
}
