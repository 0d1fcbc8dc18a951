// Package metricsはPrometheusメトリクスを提供します。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_http_requests_total",
			Help: "Total number of HTTP requests by endpoint, method and status code.",
		},
		[]string{"endpoint", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "todo_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds by endpoint, method and status code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Middleware はリクエストごとにカウンターとヒストグラムを記録するGinミドルウェアです。
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			// 未登録のルート（静的ファイルなど）は生のパスで記録します。
			endpoint = c.Request.URL.Path
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(endpoint, c.Request.Method, status).Inc()
		httpRequestDuration.WithLabelValues(endpoint, c.Request.Method, status).Observe(time.Since(start).Seconds())
	}
}

// Handler は/metricsエンドポイント用のハンドラーを返します。
func Handler() http.Handler {
	return promhttp.Handler()
}
