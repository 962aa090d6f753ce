package middleware

import (
	"math"
	"net/http"
	"strconv"

	"booking-backend/metrics"
	"booking-backend/ratelimit"
	"booking-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitMessage is returned with every 429.
const RateLimitMessage = "Too many requests from this IP, please try again after 15 minutes"

// RateLimit admits requests through limiter keyed by client IP. Limiter
// errors let the request through.
func RateLimit(limiter ratelimit.Limiter, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		res, err := limiter.Allow(c.Request.Context(), ip)
		if err != nil {
			log.Warn().Err(err).Str("client_ip", ip).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(int(math.Ceil(res.ResetAfter.Seconds()))))

		if !res.Allowed {
			metrics.IncRateLimited()
			log.Warn().Str("client_ip", ip).Str("path", c.Request.URL.Path).Msg("rate limit exceeded")
			utils.JSONError(c, http.StatusTooManyRequests, RateLimitMessage)
			return
		}
		c.Next()
	}
}
