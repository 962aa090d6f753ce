package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"booking-backend/config"
	"booking-backend/controllers"
	"booking-backend/logging"
	"booking-backend/metrics"
	"booking-backend/ratelimit"
	"booking-backend/routes"
	"booking-backend/services"
)

func main() {
	cfg, envLoaded := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.Environment)
	if !envLoaded {
		log.Info().Msg(".env not found; using process environment")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.AdminKey == "" {
		log.Warn().Msg("ADMIN_KEY is not set; GET /api/bookings will reject every request")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDatabase(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	log.Info().Msg("database connected and schema ensured")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter, closeLimiter := newLimiter(ctx, cfg, log)
	defer closeLimiter()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(registry)

	bookingService := services.NewBookingService(
		services.NewGormBookingStore(db),
		services.NewBookingValidator(cfg.StrictFormat),
	)
	bookingController := controllers.NewBookingController(bookingService, log, !cfg.IsProduction())

	router := routes.SetupRouter(bookingController, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AdminKey:       cfg.AdminKey,
		Limiter:        limiter,
		Logger:         log,
		TrustedProxies: cfg.TrustedProxies,
		Ping: func(ctx context.Context) error {
			return config.Ping(ctx, db)
		},
		Gatherer: registry,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}

// newLimiter uses Redis when REDIS_URL is set and reachable, otherwise an
// in-process window swept in the background.
func newLimiter(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ratelimit.Limiter, func()) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		rdb := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, config.ConnectTimeout)
		defer cancel()
		err = rdb.Ping(pingCtx).Err()
		if err == nil {
			log.Info().Msg("rate limiter using redis")
			return ratelimit.NewRedisLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow, ""), func() { _ = rdb.Close() }
		}
		log.Warn().Err(err).Msg("redis unreachable; rate limiter falling back to memory")
		_ = rdb.Close()
	}

	limiter := ratelimit.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	go limiter.Run(ctx, time.Minute)
	return limiter, func() {}
}
