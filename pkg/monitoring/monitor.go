package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// RecentActivityItems counts summaries appended to recent activity reports.
	RecentActivityItems = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "adaptivequiz_recent_activity_items_total",
			Help: "Recent activity entries produced for viewers",
		},
	)

	// RecentActivitySkipped counts attempts hidden from a viewer, by reason.
	RecentActivitySkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adaptivequiz_recent_activity_skipped_total",
			Help: "Attempts withheld from recent activity reports",
		},
		[]string{"reason"},
	)

	InstanceOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adaptivequiz_instance_operations_total",
			Help: "Instance add, update and delete operations",
		},
		[]string{"operation", "result"},
	)

	CronRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "adaptivequiz_cron_runs_total",
			Help: "Cron hook invocations",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(RecentActivityItems)
		prometheus.MustRegister(RecentActivitySkipped)
		prometheus.MustRegister(InstanceOperations)
		prometheus.MustRegister(CronRuns)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
