// Package metrics owns the prometheus registry and the collectors the
// service exports on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "movie_review"

// NewRegistry creates a registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler serves the registry in the prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Metrics groups every collector the service records into.
type Metrics struct {
	HTTP    *HTTPMetrics
	Reviews *ReviewMetrics
	Cache   *CacheMetrics
	Breaker *BreakerMetrics
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTP:    NewHTTPMetrics(reg),
		Reviews: NewReviewMetrics(reg),
		Cache:   NewCacheMetrics(reg),
		Breaker: NewBreakerMetrics(reg),
	}
}
