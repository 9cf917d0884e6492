package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rideshare/internal/app"
	"rideshare/internal/config"
	"rideshare/internal/domain"
	"rideshare/internal/handler"
	"rideshare/internal/middleware"
	"rideshare/internal/provider"
	"rideshare/internal/queue"
	internalRedis "rideshare/internal/redis"
	"rideshare/internal/repository"
	"rideshare/internal/repository/postgres"
	"rideshare/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	policy, err := bookingPolicy(cfg.Booking)
	if err != nil {
		log.Fatalf("invalid booking policy: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize the store.
	var store repository.Store
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		var db *sql.DB
		db, err = app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()
		store = postgres.NewStore(db)
		log.Println("Connected to PostgreSQL")
	case config.StoreDriverMemory:
		store = app.NewMemoryStore()
		log.Println("Using in-memory store")
	default:
		log.Fatalf("unknown store driver %q", cfg.Store.Driver)
	}

	// Initialize Redis with New Relic instrumentation.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Connected to Redis")
	}

	// Notifications go to RabbitMQ when enabled. Publishing is best effort,
	// so an unreachable broker only disables it.
	var publisher queue.Publisher = queue.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		rp, err := queue.NewRabbitPublisher(cfg.RabbitMQ.URL)
		if err != nil {
			log.Printf("failed to connect to RabbitMQ, events disabled: %v", err)
		} else {
			publisher = rp
			log.Println("Connected to RabbitMQ")
		}
	}
	defer publisher.Close()

	// Wire dependencies.
	server := wireServer(store, redisClient, publisher, nrApp, policy, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	store repository.Store,
	redisClient *redis.Client,
	publisher queue.Publisher,
	nrApp *newrelic.Application,
	policy service.BookingPolicy,
	cfg *config.Config,
) *http.Server {
	// Redis backed caches stay nil interfaces when Redis is disabled.
	var (
		providerCache internalRedis.ProviderCacheInterface
		responseCache internalRedis.ResponseCacheInterface
	)
	if redisClient != nil {
		providerCache = internalRedis.NewCacheStore(redisClient)
		responseCache = internalRedis.NewIdempotencyStore(redisClient)
	}

	// Initialize providers.
	p := cfg.Providers
	weather := provider.NewWeatherClient(p.WeatherURL, p.WeatherAPIKey, p.WeatherLang, p.WeatherTimeout, providerCache)
	routes := provider.NewRouteClient(p.RoutingURL, p.RoutingAPIKey, p.RoutingTimeout, providerCache)

	// Initialize services.
	notificationService := service.NewNotificationService(store, publisher)
	bookingService := service.NewBookingService(store, notificationService, policy)
	tripService := service.NewTripService(store, notificationService, policy, weather, routes)
	driverService := service.NewDriverService(store)
	userService := service.NewUserService(store)
	messageService := service.NewMessageService(store, notificationService)

	tokens := middleware.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		UserHandler:         handler.NewUserHandler(userService, driverService, tokens),
		DriverHandler:       handler.NewDriverHandler(driverService, tripService, tokens),
		CatalogHandler:      handler.NewCatalogHandler(store.Cities(), tripService),
		TripHandler:         handler.NewTripHandler(tripService),
		BookingHandler:      handler.NewBookingHandler(bookingService),
		MessageHandler:      handler.NewMessageHandler(messageService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		Tokens:              tokens,
		AdminToken:          cfg.Auth.AdminToken,
		ResponseCache:       responseCache,
		AllowedOrigins:      cfg.Server.AllowedOrigins,
		NewRelicApp:         nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

func bookingPolicy(cfg config.BookingConfig) (service.BookingPolicy, error) {
	status := domain.BookingStatus(cfg.InitialStatus)
	if status != domain.BookingStatusConfirmed && status != domain.BookingStatusPending {
		return service.BookingPolicy{}, errors.New("initial status must be confirmed or pending")
	}
	if cfg.MaxSeatsPerTrip < 0 {
		return service.BookingPolicy{}, errors.New("max seats per trip must not be negative")
	}

	return service.BookingPolicy{
		RequireVerifiedDriver: cfg.RequireVerifiedDriver,
		MaxSeatsPerTrip:       cfg.MaxSeatsPerTrip,
		InitialStatus:         status,
	}, nil
}
