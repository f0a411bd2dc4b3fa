package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the calculation engine. A nil *Metrics is valid
// and records nothing, so tests and embedded uses can skip it.
type Metrics struct {
	calculations *prometheus.CounterVec
	duration     prometheus.Histogram
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
}

// NewMetrics creates and registers the engine metrics on the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pathwise",
			Subsystem: "engine",
			Name:      "calculations_total",
			Help:      "Scenario calculations by outcome.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pathwise",
			Subsystem: "engine",
			Name:      "calculation_duration_seconds",
			Help:      "Wall-clock duration of scenario calculations.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pathwise",
			Subsystem: "engine",
			Name:      "result_cache_hits_total",
			Help:      "Result cache lookups that found a live entry.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pathwise",
			Subsystem: "engine",
			Name:      "result_cache_misses_total",
			Help:      "Result cache lookups that missed or found an expired entry.",
		}),
	}
	reg.MustRegister(m.calculations, m.duration, m.cacheHits, m.cacheMisses)
	return m
}

func (m *Metrics) observeCalculation(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(status).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// ObserveCacheHit records a successful result-cache lookup.
func (m *Metrics) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// ObserveCacheMiss records a failed result-cache lookup.
func (m *Metrics) ObserveCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}
