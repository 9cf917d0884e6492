package app

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"rideshare/internal/handler"
	"rideshare/internal/middleware"
	internalRedis "rideshare/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler         *handler.UserHandler
	DriverHandler       *handler.DriverHandler
	CatalogHandler      *handler.CatalogHandler
	TripHandler         *handler.TripHandler
	BookingHandler      *handler.BookingHandler
	MessageHandler      *handler.MessageHandler
	NotificationHandler *handler.NotificationHandler
	Tokens              *middleware.TokenIssuer
	AdminToken          string // Optional, admin routes are off without it
	ResponseCache       internalRedis.ResponseCacheInterface // Optional
	AllowedOrigins      []string
	NewRelicApp         *newrelic.Application // Optional
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(gin.Logger())
	router.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	idempotent := middleware.IdempotencyMiddleware(deps.ResponseCache)

	// API v1 routes.
	v1 := router.Group("/v1")

	// Public routes.
	public := v1.Group("", idempotent)
	{
		public.POST("/users/register", deps.UserHandler.Register)
		public.GET("/plates/normalize", deps.CatalogHandler.NormalizePlate)
		public.GET("/cities", deps.CatalogHandler.Cities)
		public.GET("/routes", deps.CatalogHandler.Route)
		public.GET("/trips", deps.TripHandler.Search)
	}

	// Authenticated routes. Idempotency runs after auth so keys are per user.
	authed := v1.Group("", middleware.RequireAuth(deps.Tokens), idempotent)
	{
		authed.GET("/users/me", deps.UserHandler.Me)

		drivers := authed.Group("/drivers")
		{
			drivers.POST("", deps.DriverHandler.BecomeDriver)
			drivers.GET("/me/stats", deps.DriverHandler.Stats)
			drivers.GET("/me/trips", deps.DriverHandler.Trips)
		}

		trips := authed.Group("/trips")
		{
			trips.POST("", deps.TripHandler.Create)
			trips.GET("/:id", deps.TripHandler.Get)
			trips.PUT("/:id", deps.TripHandler.Edit)
			trips.POST("/:id/cancel", deps.TripHandler.Cancel)
			trips.GET("/:id/free-seats", deps.TripHandler.FreeSeats)
			trips.GET("/:id/passengers", deps.TripHandler.Passengers)
			trips.GET("/:id/manifest.pdf", deps.TripHandler.Manifest)
			trips.POST("/:id/bookings", deps.BookingHandler.Create)
			trips.GET("/:id/messages", deps.MessageHandler.List)
			trips.POST("/:id/messages", deps.MessageHandler.Send)
		}

		bookings := authed.Group("/bookings")
		{
			bookings.GET("", deps.BookingHandler.List)
			bookings.POST("/:id/cancel", deps.BookingHandler.Cancel)
			bookings.POST("/:id/confirm", deps.BookingHandler.Confirm)
			bookings.POST("/:id/reject", deps.BookingHandler.Reject)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", deps.NotificationHandler.List)
			notifications.POST("/read-all", deps.NotificationHandler.MarkAllRead)
			notifications.POST("/:id/read", deps.NotificationHandler.MarkRead)
		}
	}

	if deps.AdminToken != "" {
		admin := v1.Group("/admin", middleware.RequireAdminToken(deps.AdminToken))
		{
			admin.POST("/drivers/:id/verify", deps.DriverHandler.Verify)
		}
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
