package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/localnerve/franchisedb/internal/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "success", Result(nil))
	assert.Equal(t, "validation", Result(types.NewValidationError("x", "bad")))
	assert.Equal(t, "conflict", Result(types.NewConflictError("x", "dup")))
	assert.Equal(t, "not_found", Result(types.NewNotFoundError("x", "gone")))
	assert.Equal(t, "error", Result(errors.New("boom")))
}

func TestRecordOperation(t *testing.T) {
	InitMetrics("franchisedb_test")
	InitMetrics("ignored")

	RecordOperation("franchise", "create", nil)
	RecordOperation("franchise", "create", nil)
	RecordOperation("franchise", "create", types.NewConflictError("x", "dup"))

	assert.Equal(t, 2.0, testutil.ToFloat64(EntityOperationsCounter.WithLabelValues("franchise", "create", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(EntityOperationsCounter.WithLabelValues("franchise", "create", "conflict")))

	TrackStockReport()(time.Now(), 3)
	assert.Equal(t, 1, testutil.CollectAndCount(StockReportRows))
}
