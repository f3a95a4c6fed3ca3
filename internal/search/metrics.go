package search

import (
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK               = "ok"
	outcomeStoreUnavailable = "store_unavailable"
	outcomeInternal         = "internal_error"
)

// Metrics holds the search Prometheus collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	SearchDuration *prometheus.HistogramVec
	SourceFailures *prometheus.CounterVec
	SourceRows     *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in the server and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SearchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_search_duration_seconds",
			Help:    "Time to answer one aggregated search",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"outcome"}),
		SourceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_source_failures_total",
			Help: "Per-source queries that failed and were degraded to empty",
		}, []string{"source"}),
		SourceRows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_source_rows_total",
			Help: "Rows fetched per source before merging",
		}, []string{"source"}),
	}
}

func (m *Metrics) observeSearch(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.SearchDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func (m *Metrics) sourceFailed(src domain.ContentType) {
	if m == nil {
		return
	}
	m.SourceFailures.WithLabelValues(string(src)).Inc()
}

func (m *Metrics) sourceRows(src domain.ContentType, n int) {
	if m == nil {
		return
	}
	m.SourceRows.WithLabelValues(string(src)).Add(float64(n))
}
