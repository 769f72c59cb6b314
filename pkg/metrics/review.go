package metrics

import "github.com/prometheus/client_golang/prometheus"

// ReviewMetrics counts committed review mutations.
type ReviewMetrics struct {
	Mutations *prometheus.CounterVec
}

func NewReviewMetrics(reg prometheus.Registerer) *ReviewMetrics {
	m := &ReviewMetrics{
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reviews",
			Name:      "mutations_total",
			Help:      "Total committed review mutations, by operation and resulting sentiment.",
		}, []string{"operation", "sentiment"}),
	}

	reg.MustRegister(m.Mutations)
	return m
}

// Observe is safe on a nil receiver so services can run without metrics.
func (m *ReviewMetrics) Observe(operation, sentiment string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(operation, sentiment).Inc()
}
