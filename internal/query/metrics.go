package query

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation names used as metric labels and PersistError.Op.
const (
	opFetch  = "fetch"
	opGet    = "get"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Metrics holds the facade's prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	cache      *prometheus.CounterVec
}

// NewMetrics registers the facade collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "achievements_operations_total",
			Help: "Query facade operations by result.",
		}, []string{"op", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "achievements_operation_duration_seconds",
			Help:    "Query facade operation latency, including simulated latency.",
			Buckets: []float64{.001, .01, .05, .1, .25, .5, .75, 1, 2.5},
		}, []string{"op"}),
		cache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "achievements_cache_lookups_total",
			Help: "Cache lookups by view and outcome.",
		}, []string{"view", "outcome"}),
	}
}

func (m *Metrics) observe(op string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Metrics) lookup(view string, hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.cache.WithLabelValues(view, outcome).Inc()
}
