package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersWithoutConflicts(t *testing.T) {
	reg := NewRegistry()
	assert.NotPanics(t, func() { New(reg) })
}

func TestReviewMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReviewMetrics(reg)

	m.Observe("create", "positive")
	m.Observe("create", "positive")
	m.Observe("delete", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Mutations.WithLabelValues("create", "positive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Mutations.WithLabelValues("delete", "")))
}

func TestReviewMetrics_NilReceiver(t *testing.T) {
	var m *ReviewMetrics
	assert.NotPanics(t, func() { m.Observe("create", "neutral") })
}

func TestHandler_ServesRegistry(t *testing.T) {
	reg := NewRegistry()
	m := New(reg)
	m.Reviews.Observe("update", "negative")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "movie_review_reviews_mutations_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
