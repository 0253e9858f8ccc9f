package monitoring

import (
	"strconv"
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

	// AnswerCounter 按正确性维度统计已记录的答题数
	AnswerCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_answers_recorded_total",
			Help: "Total number of quiz answers recorded",
		},
		[]string{"correct"},
	)

	// AnswerPersistFailures 答案后台落库失败数（提交进度不受其影响）
	AnswerPersistFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_answer_persist_failures_total",
			Help: "Total number of failed answer writes to the store",
		},
	)

	// ExplanationCounter 按提供商与结果统计 AI 解析请求
	ExplanationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_explanations_total",
			Help: "Total number of AI explanation requests",
		},
		[]string{"provider", "outcome"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(AnswerCounter)
	prometheus.MustRegister(AnswerPersistFailures)
	prometheus.MustRegister(ExplanationCounter)
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
