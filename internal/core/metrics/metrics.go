package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_http_requests_total",
		Help: "Count of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orders_http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	entityWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_entity_writes_total",
		Help: "Persisted writes by entity and operation",
	}, []string{"entity", "op"})

	seededRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_seeded_rows_total",
		Help: "Rows inserted by the demo-data seeder",
	}, []string{"entity"})
)

func ObserveHTTPRequest(method, path, status string, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordWrite counts one create / update / delete of an entity.
func RecordWrite(entity, op string) { entityWrites.WithLabelValues(entity, op).Inc() }

func RecordSeeded(entity string, n int) { seededRows.WithLabelValues(entity).Add(float64(n)) }
