package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// MetricsService encapsulates Prometheus instrumentation for batch stages, submissions and the ranking cache.
type MetricsService struct {
	registry       *prometheus.Registry
	stageDuration  *prometheus.HistogramVec
	stageRuns      *prometheus.CounterVec
	stageEntities  *prometheus.CounterVec
	submissions    *prometheus.CounterVec
	lastSuccess    *prometheus.GaugeVec
	cacheLatency   prometheus.Observer
	cacheWrite     prometheus.Observer
	cacheHitRatio  prometheus.Gauge
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewMetricsService registers the rating collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	stageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rating_stage_duration_seconds",
		Help:    "Duration of ranking pipeline stages in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	stageRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rating_stage_runs_total",
		Help: "Total ranking pipeline stage runs by outcome",
	}, []string{"stage", "outcome"})

	stageEntities := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rating_stage_entities_total",
		Help: "Entities handled by ranking pipeline stages",
	}, []string{"stage", "status"})

	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rating_submissions_total",
		Help: "Interactive report submissions by kind and outcome",
	}, []string{"kind", "outcome"})

	lastSuccess := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rating_stage_last_success_timestamp_seconds",
		Help: "Unix time of the last successful stage run",
	}, []string{"stage"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rating_cache_latency_seconds",
		Help:    "Latency for ranking cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rating_cache_write_seconds",
		Help:    "Latency for ranking cache writes",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rating_cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rating_cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rating_cache_misses_total",
		Help: "Total cache misses",
	})

	registry.MustRegister(stageDuration, stageRuns, stageEntities, submissions, lastSuccess, cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses)

	return &MetricsService{
		registry:      registry,
		stageDuration: stageDuration,
		stageRuns:     stageRuns,
		stageEntities: stageEntities,
		submissions:   submissions,
		lastSuccess:   lastSuccess,
		cacheLatency:  cacheLatency,
		cacheWrite:    cacheWrite,
		cacheHitRatio: cacheHitRatio,
		cacheHits:     cacheHits,
		cacheMisses:   cacheMisses,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveStage records the outcome and entity counts of one stage run.
func (m *MetricsService) ObserveStage(report StageReport, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.stageDuration.WithLabelValues(report.Stage).Observe(report.Duration.Seconds())
	m.stageRuns.WithLabelValues(report.Stage, outcome).Inc()
	m.stageEntities.WithLabelValues(report.Stage, "processed").Add(float64(report.Processed))
	m.stageEntities.WithLabelValues(report.Stage, "skipped").Add(float64(report.Skipped))
	m.stageEntities.WithLabelValues(report.Stage, "failed").Add(float64(report.Failed))
	if err == nil {
		m.lastSuccess.WithLabelValues(report.Stage).SetToCurrentTime()
	}
}

// RecordSubmission counts an interactive submission.
func (m *MetricsService) RecordSubmission(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "accepted"
	if err != nil {
		outcome = "rejected"
	}
	m.submissions.WithLabelValues(kind, outcome).Inc()
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	if total := hits + misses; total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// Push sends every collected metric to a Pushgateway. An empty URL disables pushing.
func (m *MetricsService) Push(ctx context.Context, url, job string) error {
	if m == nil || url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
