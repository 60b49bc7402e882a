package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/staybook/backend/internal/adapters/cache"
	"github.com/staybook/backend/internal/adapters/database"
	"github.com/staybook/backend/internal/adapters/events"
	"github.com/staybook/backend/internal/api/handlers"
	"github.com/staybook/backend/internal/api/routes"
	"github.com/staybook/backend/internal/application/services"
	"github.com/staybook/backend/internal/domain/providers"
	"github.com/staybook/backend/internal/domain/repositories"
	"github.com/staybook/backend/internal/infrastructure/clients/postgres"
	"github.com/staybook/backend/internal/infrastructure/clients/redis"
	"github.com/staybook/backend/internal/infrastructure/observability"
	"github.com/staybook/backend/migrations"
	"github.com/staybook/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env, cfg.App.LogLevel)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if cfg.Database.AutoMigrate {
		if err := migrations.Apply(ctx, pgClient.DB()); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply database migrations")
		}
	}

	healthChecks := map[string]handlers.Pinger{"postgres": pgClient}

	var propertyRepo repositories.PropertyRepository = database.NewPropertyAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)
	bookingRepo := database.NewBookingAdapter(pgClient)

	// Redis is optional: without it properties are read straight from PostgreSQL
	// and booking events are not published.
	var eventBus providers.EventBus
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, continuing without cache and events")
		} else {
			defer redisClient.Close()
			healthChecks["redis"] = redisClient

			propertyCache := cache.NewRedisAdapter(redisClient, cfg.Cache.KeyPrefix)
			propertyRepo = database.NewCachedPropertyAdapter(propertyRepo, propertyCache, metrics, cfg.Cache.PropertyTTLSeconds)

			eventBus = events.NewRedisEventBus(redisClient, *logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.Error().Err(err).Msg("error closing event bus")
				}
			}()

			listener := services.NewBookingEventListener(eventBus, *logger)
			go func() {
				if err := listener.Run(ctx); err != nil {
					logger.Error().Err(err).Msg("booking event listener stopped")
				}
			}()
		}
	}

	propertyService := services.NewPropertyService(propertyRepo, *logger)
	userService := services.NewUserService(userRepo, *logger)
	bookingService := services.NewBookingService(bookingRepo, propertyRepo, userRepo, eventBus, metrics, *logger)

	router := routes.NewRouter(
		handlers.NewPropertyHandler(propertyService),
		handlers.NewUserHandler(userService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewHealthHandler(healthChecks),
		cfg.Server.AllowedOrigins,
		metrics,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}
	cancel()

	logger.Info().Msg("server stopped")
}
