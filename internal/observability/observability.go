package observability

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "closet_requests_total",
			Help: "Total requests by route pattern and method.",
		},
		[]string{"endpoint", "method"},
	)

	WeatherFetchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "closet_weather_fetches_total",
			Help: "Weather provider fetches by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(RequestCounter, WeatherFetchCounter)
}

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// CountRequests is chi middleware incrementing the per-endpoint counter using
// the matched route pattern, so path parameters don't explode cardinality.
func CountRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = r.URL.Path
		}
		RequestCounter.WithLabelValues(pattern, r.Method).Inc()
	})
}
