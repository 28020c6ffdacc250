package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"crms/internal/config"
	"crms/internal/handlers"
	"crms/internal/middleware"
	"crms/internal/repositories/interfaces"
	memoryrepo "crms/internal/repositories/memory"
	mongorepo "crms/internal/repositories/mongodb"
	"crms/internal/services"
	"crms/pkg/cache"
	"crms/pkg/database"
	"crms/pkg/logger"
	"crms/routes"

	"github.com/gin-gonic/gin"
)

type repositorySet struct {
	reservations interfaces.ReservationRepository
	cars         interfaces.CarRepository
	locations    interfaces.LocationRepository
	addOns       interfaces.AddOnRepository
	members      interfaces.MemberRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Redis is optional; without it events are skipped and locking falls
	// back to the in-process implementation.
	var cacheService services.CacheService
	var lockManager services.LockManager
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisCache.Close()

		cacheService = services.NewCacheService(redisCache)
		lockManager = services.NewRedisLockManager(cacheService)
		appLogger.Info("Redis connected")
	} else {
		lockManager = services.NewMemoryLockManager()
		appLogger.Warn("Redis disabled, using in-process car locks")
	}

	repos, mongoDB := buildRepositories(cfg, cacheService, appLogger)
	if mongoDB != nil {
		defer mongoDB.Close()
	}

	reservationService := services.NewReservationService(
		repos.reservations,
		repos.cars,
		repos.locations,
		repos.addOns,
		repos.members,
		lockManager,
		cacheService,
		appLogger,
	)
	carService := services.NewCarService(repos.cars, repos.locations, repos.reservations, appLogger)
	locationService := services.NewLocationService(repos.locations, repos.cars, appLogger)
	addOnService := services.NewAddOnService(repos.addOns)
	memberService := services.NewMemberService(repos.members)
	reportingService := services.NewReportingService(repos.reservations)

	reservationHandler := handlers.NewReservationHandler(reservationService)
	carHandler := handlers.NewCarHandler(carService)
	locationHandler := handlers.NewLocationHandler(locationService)
	addOnHandler := handlers.NewAddOnHandler(addOnService)
	memberHandler := handlers.NewMemberHandler(memberService)
	reportHandler := handlers.NewReportHandler(reportingService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			appLogger.WithError(err).Fatal("Invalid trusted proxy configuration")
		}
	}
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(appLogger))

	jwtSecret := cfg.Security.JWTSecret
	v1 := router.Group("/api/v1")
	{
		routes.SetupReservationRoutes(v1, jwtSecret, reservationHandler)
		routes.SetupCatalogRoutes(v1, jwtSecret, carHandler, locationHandler, addOnHandler, reservationHandler)
		routes.SetupMemberRoutes(v1, jwtSecret, memberHandler, reportHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
			"store":   cfg.Store.Backend,
		}
		if mongoDB != nil {
			if err := mongoDB.Ping(); err != nil {
				status["status"] = "degraded"
				status["database"] = err.Error()
				c.JSON(http.StatusServiceUnavailable, status)
				return
			}
		}
		c.JSON(http.StatusOK, status)
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
}

// buildRepositories wires exactly one persistence backend per the
// STORE_BACKEND setting.
func buildRepositories(cfg *config.Config, cacheService services.CacheService, appLogger *logger.Logger) (*repositorySet, *database.MongoDB) {
	switch cfg.Store.Backend {
	case "memory":
		appLogger.Warn("Using in-memory store, data will not survive restarts")
		return &repositorySet{
			reservations: memoryrepo.NewReservationRepository(),
			cars:         memoryrepo.NewCarRepository(),
			locations:    memoryrepo.NewLocationRepository(),
			addOns:       memoryrepo.NewAddOnRepository(),
			members:      memoryrepo.NewMemberRepository(),
		}, nil
	case "mongodb":
		mongoDB, err := database.NewMongoDB(&database.DatabaseConfig{
			URI:            cfg.Database.URI,
			Database:       cfg.Database.Database,
			MaxPoolSize:    cfg.Database.MaxPoolSize,
			MinPoolSize:    cfg.Database.MinPoolSize,
			ConnectTimeout: cfg.Database.ConnectTimeout,
			SocketTimeout:  cfg.Database.SocketTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := mongorepo.EnsureIndexes(ctx, mongoDB.Database); err != nil {
			appLogger.WithError(err).Fatal("Failed to create indexes")
		}

		appLogger.Info("MongoDB connected")
		return &repositorySet{
			reservations: mongorepo.NewReservationRepository(mongoDB.Database, cacheService),
			cars:         mongorepo.NewCarRepository(mongoDB.Database, cacheService),
			locations:    mongorepo.NewLocationRepository(mongoDB.Database),
			addOns:       mongorepo.NewAddOnRepository(mongoDB.Database),
			members:      mongorepo.NewMemberRepository(mongoDB.Database),
		}, mongoDB
	default:
		appLogger.WithField("backend", cfg.Store.Backend).Fatal("Unknown store backend")
		return nil, nil
	}
}
