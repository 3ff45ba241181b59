package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector 数据客户端指标收集器
type MetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transportErrors *prometheus.CounterVec
}

// NewMetricsCollector 创建指标收集器并注册到 reg
// reg 为 nil 时使用独立注册表，避免重复注册到默认注册表
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &MetricsCollector{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "photofeed_client_requests_total",
				Help: "Total number of API requests issued by the data client",
			},
			[]string{"operation", "method", "status"},
		),

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "photofeed_client_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		transportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "photofeed_client_transport_errors_total",
				Help: "Requests that failed before a response status was available",
			},
			[]string{"operation"},
		),
	}
}

// RecordRequest 记录一次完成的请求
func (m *MetricsCollector) RecordRequest(operation, method string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(operation, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordTransportError 记录网络/解析失败
func (m *MetricsCollector) RecordTransportError(operation string, duration time.Duration) {
	m.transportErrors.WithLabelValues(operation).Inc()
	m.requestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// GetStatusCategory 将状态码归类为 2xx/4xx/5xx
func GetStatusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
