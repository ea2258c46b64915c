package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordCacheHit("market_data")
	r.RecordCacheHit("market_data")
	r.RecordCacheMiss("prediction")
	r.RecordError("provider")
	r.RecordLastPrice("RELIANCE", 2890.5)
	r.RecordLatency("predict", 0.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheHits.WithLabelValues("market_data")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheMisses.WithLabelValues("prediction")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("provider")))
	assert.Equal(t, 2890.5, testutil.ToFloat64(r.lastPrice.WithLabelValues("RELIANCE")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
}

func TestRecordersOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
