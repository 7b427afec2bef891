package fluid

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	queries       *prometheus.CounterVec
	values        *prometheus.CounterVec
	cacheHits     prometheus.Counter
	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
}

// NewMetrics creates the engine collectors and registers them with reg.
// A nil reg yields unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fluidprops_queries_total",
			Help: "Total property queries by result",
		}, []string{"result"}), // "ok", "unknown_fluid", "out_of_range"
		values: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fluidprops_property_values_total",
			Help: "Total per-property results by outcome",
		}, []string{"outcome"}), // "value" or "n/a"
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "fluidprops_interpolator_cache_hits_total",
			Help: "Interpolator lookups served from the cache",
		}),
		builds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fluidprops_grid_builds_total",
			Help: "Grid constructions by result",
		}, []string{"result"}), // "ok" or "insufficient"
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "fluidprops_grid_build_duration_seconds",
			Help:    "Grid construction duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~160ms
		}),
	}
}
