package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adboard",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Commission cache hits by cache name.",
	}, []string{"cache"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adboard",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Commission cache misses by cache name.",
	}, []string{"cache"})

	fetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "adboard",
		Subsystem: "commission",
		Name:      "fetch_failures_total",
		Help:      "Raw performance fetches that failed and degraded to error results.",
	})

	recomputeSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "adboard",
		Subsystem: "commission",
		Name:      "recompute_duration_seconds",
		Help:      "Wall time spent recomputing commission aggregates on cache miss.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})
)

func IncCacheHit(name string)  { cacheHits.WithLabelValues(name).Inc() }
func IncCacheMiss(name string) { cacheMisses.WithLabelValues(name).Inc() }
func IncFetchFailure()         { fetchFailures.Inc() }

func ObserveRecompute(kind string, d time.Duration) {
	recomputeSeconds.WithLabelValues(kind).Observe(d.Seconds())
}
