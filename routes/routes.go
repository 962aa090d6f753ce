package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"booking-backend/controllers"
	"booking-backend/middleware"
	"booking-backend/ratelimit"
)

// LivenessMessage is the body of GET /.
const LivenessMessage = "Booking API is running"

// Options carries what SetupRouter needs beyond the controllers.
type Options struct {
	AllowedOrigins []string
	AdminKey       string
	Limiter        ratelimit.Limiter
	Logger         zerolog.Logger
	// TrustedProxies lists the peers allowed to set the client IP through
	// forwarding headers. Nil trusts none, so the socket peer is the client.
	TrustedProxies []string
	// Ping reports database health for /health. Nil means always healthy.
	Ping     func(context.Context) error
	Gatherer prometheus.Gatherer
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.Config{
		AllowOrigins:              origins,
		AllowMethods:              []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Content-Type", "Accept", middleware.AdminKeyHeader},
		ExposeHeaders:             []string{"Content-Length", "RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset"},
		AllowCredentials:          allowCredentials,
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}
}

// SetupRouter wires middleware and routes around the booking controller.
func SetupRouter(bc *controllers.BookingController, opts Options) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		opts.Logger.Warn().Err(err).Msg("invalid trusted proxies; trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), middleware.Logger(opts.Logger))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, LivenessMessage)
	})

	r.GET("/health", func(c *gin.Context) {
		if opts.Ping != nil {
			if err := opts.Ping(c.Request.Context()); err != nil {
				opts.Logger.Warn().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	if opts.Limiter != nil {
		api.Use(middleware.RateLimit(opts.Limiter, opts.Logger))
	}
	{
		api.POST("/book-appointment", bc.BookAppointment)
		api.OPTIONS("/book-appointment", bc.Preflight)
		api.GET("/bookings", middleware.AdminKey(opts.AdminKey), bc.ListBookings)
	}

	return r
}
