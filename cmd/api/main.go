package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"comlab/internal/config"
	"comlab/internal/database"
	"comlab/internal/logger"
	"comlab/internal/ratelimit"
	"comlab/internal/server"
)

// @title           Computer Lab Kiosk API
// @version         1.0
// @description     Workstation, user and activity log management for a computer lab, plus the public sign-in/sign-out kiosk.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	limiter, stopLimiter, err := newKioskLimiter(appConfig)
	if err != nil {
		return err
	}
	defer stopLimiter()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := server.NewRouter(server.Dependencies{
		Config:   appConfig,
		DB:       dbManager.DB(),
		Limiter:  limiter,
		Registry: registry,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting lab kiosk server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newKioskLimiter picks the shared Redis limiter when REDIS_ADDR is set and
// the in-memory one otherwise. A zero rate disables limiting.
func newKioskLimiter(cfg *config.Config) (ratelimit.Limiter, func(), error) {
	if cfg.KioskRateLimit == 0 {
		logger.Get().Info("Kiosk rate limiting disabled")
		return nil, func() {}, nil
	}

	if cfg.RedisAddr != "" {
		rdb, err := ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Get().Infof("Kiosk rate limit %d/min per client, shared via redis at %s", cfg.KioskRateLimit, cfg.RedisAddr)
		return ratelimit.NewRedisLimiter(rdb, cfg.KioskRateLimit), func() { _ = rdb.Close() }, nil
	}

	limiter := ratelimit.NewMemoryLimiter(cfg.KioskRateLimit, cfg.KioskRateBurst, 5*time.Minute)
	logger.Get().Infof("Kiosk rate limit %d/min per client, burst %d, in memory", cfg.KioskRateLimit, cfg.KioskRateBurst)
	return limiter, limiter.Stop, nil
}
