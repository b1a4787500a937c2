package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Количество HTTP запросов по методу, маршруту и статусу.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Длительность обработки HTTP запросов.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	votesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_votes_total",
			Help: "Количество голосов по предложениям с итоговым статусом.",
		},
		[]string{"status"},
	)
)

// Metrics снимает счётчики и гистограммы по каждому запросу.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveVote учитывает поданный голос и итоговый статус предложения.
func ObserveVote(status string) {
	votesTotal.WithLabelValues(status).Inc()
}
