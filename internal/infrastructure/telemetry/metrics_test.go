package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/assetops/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), config.TelemetryConfig{}, nil, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestCounter(t *testing.T) {
	provider, reader := newTestMeterProvider(t)
	ctx := context.Background()

	c, err := NewCounter(provider.Meter("test"), "test.requests", "Requests", "{request}")
	require.NoError(t, err)

	c.Inc(ctx, attribute.String("route", "/a"))
	c.Add(ctx, 4, attribute.String("route", "/a"))
	c.Inc(ctx, attribute.String("route", "/b"))

	rm := collect(t, reader)
	assert.Equal(t, int64(5), sumValue(t, rm, "test.requests", attribute.String("route", "/a")))
	assert.Equal(t, int64(1), sumValue(t, rm, "test.requests", attribute.String("route", "/b")))
}

func TestHistogram(t *testing.T) {
	provider, reader := newTestMeterProvider(t)
	ctx := context.Background()

	h, err := NewHistogram(provider.Meter("test"), "test.latency", "Latency", "s", 0.1, 1)
	require.NoError(t, err)

	h.RecordDuration(ctx, 50*time.Millisecond)
	h.RecordDuration(ctx, 2*time.Second)
	h.Record(ctx, 0.5)

	m, ok := findMetric(collect(t, reader), "test.latency")
	require.True(t, ok)
	hist, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)

	dp := hist.DataPoints[0]
	assert.Equal(t, uint64(3), dp.Count)
	assert.InDelta(t, 2.55, dp.Sum, 1e-9)
	assert.Equal(t, []float64{0.1, 1}, dp.Bounds)
	assert.Equal(t, []uint64{1, 1, 1}, dp.BucketCounts)
}
