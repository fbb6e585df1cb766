// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"aerobook/internal/bookings"
	"aerobook/internal/flights"
	"aerobook/internal/notifications"
	"aerobook/internal/payments"
	"aerobook/internal/seats"
	"aerobook/internal/shared/config"
	"aerobook/internal/shared/database"
	"aerobook/internal/shared/middleware"
	"aerobook/internal/tickets"
	"aerobook/pkg/cache"
	"aerobook/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	cache     cache.Service
	publisher notifications.Publisher
	gateway   payments.Gateway
	encoder   tickets.Encoder
	limiter   *ratelimit.RateLimiter
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, publisher notifications.Publisher, gateway payments.Gateway, encoder tickets.Encoder, limiter *ratelimit.RateLimiter) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		cache:     cacheService,
		publisher: publisher,
		gateway:   gateway,
		encoder:   encoder,
		limiter:   limiter,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	api.Use(middleware.RequestLogger())
	if r.limiter != nil {
		api.Use(ratelimit.Middleware(r.limiter))
	}

	// Public routes: seat maps and the payment gateway webhook
	public := api.Group("")

	// Authenticated routes: identity extracted from the caller's token
	authenticated := api.Group("")
	authenticated.Use(middleware.JWTAuth(r.config))

	// Shared repositories
	pg := r.db.GetPostgreSQL()
	flightRepo := flights.NewRepository(pg)
	seatRepo := seats.NewRepository(pg)
	bookingRepo := bookings.NewRepository(pg)
	paymentRepo := payments.NewRepository(pg)
	ticketRepo := tickets.NewRepository(pg)

	// Seat inventory
	seatService := seats.NewService(seatRepo, r.cache)
	seats.RegisterRoutes(public, seats.NewController(seatService))

	// Bookings
	bookingService := bookings.NewService(bookingRepo, flightRepo, seatService, r.publisher, r.config.Kafka.BookingTopic)
	bookings.RegisterRoutes(authenticated, bookings.NewController(bookingService))

	// Payments
	paymentService := payments.NewService(paymentRepo, bookingRepo, r.gateway, seatService, r.publisher, r.config.Kafka.PaymentTopic)
	payments.RegisterRoutes(public, authenticated, payments.NewController(paymentService))

	// Tickets
	ticketService := tickets.NewService(ticketRepo, bookingRepo, paymentRepo, r.encoder, r.publisher, r.config.Kafka.TicketTopic)
	tickets.RegisterRoutes(authenticated, tickets.NewController(ticketService))
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "aerobook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "aerobook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}
