package middleware

import (
	"strconv"
	"time"

	"github.com/assetops/backend/internal/infrastructure/metrics"
	"github.com/assetops/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPDurationBuckets are the latency boundaries of the OTel histogram, in seconds
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// unmatchedRoute labels requests that matched no route
const unmatchedRoute = "unmatched"

// HTTPMetricsConfig holds configuration for HTTP metrics middleware
type HTTPMetricsConfig struct {
	// Meter is optional. When set, requests are also exported over OTLP.
	Meter metric.Meter
}

type otelHTTPMetrics struct {
	requests *telemetry.Counter
	duration *telemetry.Histogram
}

func newOtelHTTPMetrics(meter metric.Meter) (*otelHTTPMetrics, error) {
	requests, err := telemetry.NewCounter(meter, "http.server.request.count", "Total HTTP requests", "{request}")
	if err != nil {
		return nil, err
	}
	duration, err := telemetry.NewHistogram(meter, "http.server.request.duration", "HTTP request latency", "s", HTTPDurationBuckets...)
	if err != nil {
		return nil, err
	}
	return &otelHTTPMetrics{requests: requests, duration: duration}, nil
}

// HTTPMetrics records request counts and latency by method, route template
// and status into the Prometheus registry, and into OTel when a meter is set
func HTTPMetrics(cfg HTTPMetricsConfig) (gin.HandlerFunc, error) {
	var otelMetrics *otelHTTPMetrics
	if cfg.Meter != nil {
		m, err := newOtelHTTPMetrics(cfg.Meter)
		if err != nil {
			return nil, err
		}
		otelMetrics = m
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())

		if otelMetrics != nil {
			ctx := c.Request.Context()
			otelMetrics.requests.Inc(ctx,
				attribute.String("http.request.method", method),
				attribute.String("http.route", route),
				attribute.String("http.response.status_code", status),
			)
			otelMetrics.duration.RecordDuration(ctx, elapsed,
				attribute.String("http.request.method", method),
				attribute.String("http.route", route),
			)
		}
	}, nil
}
