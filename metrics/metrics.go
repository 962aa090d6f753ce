package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "booking",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	bookingsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "booking",
		Name:      "created_total",
		Help:      "Bookings stored.",
	})

	validationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "booking",
		Name:      "validation_failures_total",
		Help:      "Booking submissions rejected by validation.",
	})

	rateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "booking",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter.",
	})
)

// Register adds the collectors to reg. Registering twice with the same
// registry is a no-op; any other registration error panics.
func Register(reg prometheus.Registerer) {
	for _, c := range []prometheus.Collector{httpRequests, bookingsCreated, validationFailures, rateLimited} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			panic(err)
		}
	}
}

func IncHTTP(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncValidationFailure() {
	validationFailures.Inc()
}

func IncRateLimited() {
	rateLimited.Inc()
}
