package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterLogsWritten        prometheus.Counter
	CounterLogsDeleted        prometheus.Counter
	CounterAutoProgressions   prometheus.Counter
	CounterProgressCacheHits  prometheus.Counter
	CounterProgressCacheMiss  prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("gymlog", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("gymlog", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}
	}

	return &Manager{
		CounterRequests: factory.NewCounterVec(
			counterOpts("request", "The total number of incoming requests"),
			[]string{"method", "status"},
		),
		CounterHandleRequestPanic: factory.NewCounter(counterOpts("handle_request_panic", "The total number of serve request panics")),
		CounterLogsWritten:        factory.NewCounter(counterOpts("logs_written", "The total number of set logs written")),
		CounterLogsDeleted:        factory.NewCounter(counterOpts("logs_deleted", "The total number of set logs deleted")),
		CounterAutoProgressions:   factory.NewCounter(counterOpts("auto_progressions", "The total number of automatic weight increases")),
		CounterProgressCacheHits:  factory.NewCounter(counterOpts("progress_cache_hits", "Progress requests served from cache")),
		CounterProgressCacheMiss:  factory.NewCounter(counterOpts("progress_cache_misses", "Progress requests computed from the store")),

		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of open connections",
		}),
		GaugeLifeSignal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "life_signal",
			Help:      "Shows whether the service is alive",
		}),

		HistogramRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Histogram of response time for requests in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method", "status_code"}),
	}
}
