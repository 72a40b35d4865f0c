// Package metrics 基于Prometheus的指标收集
//
// 指标分三组:
//   - HTTP:请求总数、耗时、正在处理的请求数(中间件记录)
//   - 命令:创建/更新/删除的次数和耗时,按结果区分
//   - 查询与缓存:各类查询耗时、详情缓存命中情况
//
// 命名规范:
//  1. Counter以_total结尾
//  2. Histogram以单位结尾(_seconds)
//  3. 标签只用有限取值(method、command、result),不要用图书ID这类高基数值
//
// 使用示例:
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	start := time.Now()
//	id, err := svc.CreateBook(ctx, cmd)
//	metrics.ObserveCommand("create_book", start, err)
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 结果标签
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultFailure  = "failure"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签:method、path(路由模板,不是原始URL)、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// CommandsTotal 写命令执行次数
	// 标签:command(create_book/delete_author...)、result(success/not_found/failure)
	CommandsTotal *prometheus.CounterVec

	// CommandDuration 写命令耗时(包含事务)
	CommandDuration *prometheus.HistogramVec

	// QueryDuration 查询耗时
	// 标签:query(list_books/search_books/book_detail...)
	QueryDuration *prometheus.HistogramVec

	// CacheRequestsTotal 图书详情缓存访问
	// 标签:result(hit/miss/error)
	CacheRequestsTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry,重复调用只生效一次
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		CommandsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_commands_total",
				Help: "目录写命令执行总数",
			},
			[]string{"command", "result"},
		)

		CommandDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "catalog_command_duration_seconds",
				Help: "目录写命令耗时（秒）",
				// 写命令包含引用校验和事务,比单条查询慢
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"command"},
		)

		QueryDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_query_duration_seconds",
				Help:    "目录查询耗时（秒）",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"query"},
		)

		CacheRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_cache_requests_total",
				Help: "图书详情缓存访问总数",
			},
			[]string{"result"},
		)
	})
}

// ObserveCommand 记录一次写命令
// found为false表示目标不存在(更新/删除不存在的实体)
func ObserveCommand(command string, start time.Time, found bool, err error) {
	InitMetrics()

	result := ResultSuccess
	switch {
	case err != nil:
		result = ResultFailure
	case !found:
		result = ResultNotFound
	}
	CommandsTotal.WithLabelValues(command, result).Inc()
	CommandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
}

// ObserveQuery 记录一次查询耗时
func ObserveQuery(query string, start time.Time) {
	InitMetrics()
	QueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}

// ObserveCache 记录一次缓存访问
func ObserveCache(result string) {
	InitMetrics()
	CacheRequestsTotal.WithLabelValues(result).Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
