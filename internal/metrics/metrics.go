package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/localnerve/franchisedb/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Entity operation metrics
	EntityOperationsCounter *prometheus.CounterVec

	// Stock report metrics
	StockReportDuration prometheus.Histogram
	StockReportRows     prometheus.Histogram

	initOnce sync.Once
)

// InitMetrics registers the domain metrics on the default registry.
// Safe to call more than once; only the first prefix is used.
func InitMetrics(prefix string) {
	initOnce.Do(func() {
		EntityOperationsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_entity_operations_total",
				Help: "Total number of franchise, branch and product operations",
			},
			[]string{"entity", "operation", "result"},
		)

		StockReportDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    prefix + "_stock_report_duration_seconds",
				Help:    "Duration of max-stock-per-branch report queries in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)

		StockReportRows = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    prefix + "_stock_report_rows",
				Help:    "Number of rows returned by max-stock-per-branch reports",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		)
	})
}

// Result classifies an operation outcome for the result label
func Result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, types.ErrValidation):
		return "validation"
	case errors.Is(err, types.ErrConflict):
		return "conflict"
	case errors.Is(err, types.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// RecordOperation increments the counter for an entity operation.
// No-op until InitMetrics is called.
func RecordOperation(entity, operation string, err error) {
	if EntityOperationsCounter == nil {
		return
	}
	EntityOperationsCounter.WithLabelValues(entity, operation, Result(err)).Inc()
}

// TrackStockReport returns a function that records the duration and size of a report query
func TrackStockReport() func(startTime time.Time, rows int) {
	return func(startTime time.Time, rows int) {
		if StockReportDuration == nil {
			return
		}
		StockReportDuration.Observe(time.Since(startTime).Seconds())
		StockReportRows.Observe(float64(rows))
	}
}
