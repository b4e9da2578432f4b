package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tixmarket/api/routes"
	"tixmarket/internal/cart"
	"tixmarket/internal/catalog"
	"tixmarket/internal/events"
	"tixmarket/internal/listings"
	"tixmarket/internal/requestlog"
	"tixmarket/internal/settings"
	"tixmarket/internal/shared/config"
	"tixmarket/internal/shared/constants"
	"tixmarket/internal/shared/database"
	"tixmarket/internal/shared/middleware"
	"tixmarket/pkg/cache"
	"tixmarket/pkg/clock"
	"tixmarket/pkg/logger"
	"tixmarket/pkg/metrics"
	"tixmarket/pkg/randsrc"
	"tixmarket/pkg/ratelimit"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)
	// rebuild so the handler matches the gin mode
	appLogger = logger.New()
	logger.SetDefault(appLogger)

	// Redis and Postgres are optional; a failed connection degrades to memory.
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("Backing store unavailable, continuing in memory", slog.Any("error", err))
	}
	defer db.Close()

	var registry *metrics.Registry
	if cfg.MetricsEnabled {
		registry = metrics.New()
	}

	settingsService := settings.NewService(newSettingsStore(cfg, db, appLogger), newScenarioCatalog(cfg, db))
	settingsService.SetMetrics(registry)

	seed := cfg.Catalog.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	generator := listings.NewGenerator(randsrc.New(seed), clock.NewSystem())
	listingService := listings.NewService(listings.NewRepository(), generator)
	eventService := events.NewService(events.NewRepository())
	catalogService := catalog.NewService(eventService, listingService, settingsService, registry)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := catalogService.Bootstrap(bootCtx, events.DefaultSeeds()); err != nil {
		bootCancel()
		appLogger.Error("Failed to build catalog", slog.Any("error", err))
		os.Exit(1)
	}
	appLogger.Info("Catalog generated", slog.Int64("seed", seed))

	cartService := cart.NewService(newCartStore(bootCtx, db, appLogger), listingService, catalogService)
	bootCancel()

	logService := newRequestLog(cfg, db, registry, appLogger)
	defer func() {
		if err := logService.Close(); err != nil {
			appLogger.Error("Error closing request log sinks", slog.Any("error", err))
		}
	}()

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedis(), &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			CartRequests:    cfg.RateLimit.CartRequests,
			ConfigRequests:  cfg.RateLimit.ConfigRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			LogsRequests:    cfg.RateLimit.LogsRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Bool("redis", db.GetRedis() != nil),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	router := setupRouter(cfg, db, rateLimiter, routes.Services{
		Settings: settingsService,
		Catalog:  catalogService,
		Cart:     cartService,
		Logs:     logService,
		Metrics:  registry,
	})

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("logs", fmt.Sprintf("http://localhost:%s%s/logs", cfg.Port, cfg.GetAPIBasePath())),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("built", BuildTime),
			slog.Bool("redis", db.GetRedis() != nil),
			slog.Bool("postgres", db.GetPostgreSQL() != nil),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func newSettingsStore(cfg *config.Config, db *database.DB, l *logger.Logger) settings.Store {
	switch cfg.Settings.Backend {
	case "file":
		return settings.NewFileStore(cfg.Settings.Path)
	case "redis":
		if db.GetRedis() != nil {
			key := cfg.Redis.SettingsKey
			if key == "" {
				key = constants.SettingsActiveKey
			}
			return settings.NewRedisStore(db.GetRedis(), key)
		}
		l.Warn("SETTINGS_BACKEND=redis but Redis is not connected, using memory store")
	}
	return settings.NewMemoryStore()
}

func newScenarioCatalog(cfg *config.Config, db *database.DB) *settings.ScenarioCatalog {
	scenarios := settings.NewScenarioCatalog(cfg.Settings.ScenariosDir)
	if db.GetRedis() != nil {
		scenarios.SetCacheService(cache.NewService(db.GetRedis()))
	}
	return scenarios
}

func newCartStore(ctx context.Context, db *database.DB, l *logger.Logger) cart.Store {
	if db.GetRedis() == nil {
		return cart.NewMemoryStore()
	}
	if err := cart.PreloadScript(ctx, db.GetRedis()); err != nil {
		// Run falls back to EVAL, so the store still works
		l.Error("Failed to preload cart script", slog.Any("error", err))
	}
	return cart.NewRedisStore(db.GetRedis(), constants.CartKey)
}

func newRequestLog(cfg *config.Config, db *database.DB, registry *metrics.Registry, l *logger.Logger) requestlog.Service {
	var sinks []requestlog.Sink
	if db.GetPostgreSQL() != nil {
		sinks = append(sinks, requestlog.NewGormSink(db.GetPostgreSQL()))
	}
	if cfg.Kafka.Enabled {
		kafkaConfig := requestlog.DefaultKafkaSinkConfig()
		kafkaConfig.Brokers = cfg.Kafka.Brokers
		kafkaConfig.Topic = cfg.Kafka.Topic
		sink, err := requestlog.NewKafkaSink(kafkaConfig)
		if err != nil {
			l.Error("Kafka sink disabled", slog.Any("error", err))
		} else {
			sinks = append(sinks, sink)
		}
	}

	svc := requestlog.NewService(requestlog.NewRing(cfg.RequestLog.MaxEntries), sinks, registry)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.Restore(ctx); err != nil {
		l.Error("Failed to restore request logs", slog.Any("error", err))
	}
	return svc
}

func setupRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter, services routes.Services) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(middleware.RequestID(), middleware.RequestLogger(appLogger), gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	engine.Use(cors.New(corsConfig))

	engine.Use(services.Metrics.Middleware())
	engine.Use(requestlog.Middleware(services.Logs, "/health", "/metrics"))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	routes.NewRouter(cfg, db, services).SetupRoutes(engine)

	return engine
}
