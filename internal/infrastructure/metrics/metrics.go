// Package metrics exposes Prometheus counters for the engagement subsystem.
// Helpers are plain package functions so callers never hold registry state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	viewsCountedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boardpulse_views_counted_total",
		Help: "Views that passed dedup and incremented a pending counter",
	}, []string{"content_type"})

	viewsDuplicateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boardpulse_views_duplicate_total",
		Help: "Views suppressed by an existing viewed marker",
	}, []string{"content_type"})

	viewsThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boardpulse_views_throttled_total",
		Help: "Views dropped by the in-process velocity limiter or bot filter",
	})

	counterSoftFailTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boardpulse_counter_soft_failures_total",
		Help: "Counter-store operations that degraded to not-counted",
	})

	corruptionEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boardpulse_corruption_events_total",
		Help: "Counter values found unparsable and repaired",
	})

	drainedViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boardpulse_drained_views_total",
		Help: "View increments applied to the durable store by the drain cycle",
	})

	drainFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boardpulse_drain_failures_total",
		Help: "Per-key drain attempts that failed and were left for retry",
	})

	markersSweptTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boardpulse_markers_swept_total",
		Help: "Expired viewed markers physically removed by the sweep cycle",
	})
)

func IncViewCounted(contentType string)   { viewsCountedTotal.WithLabelValues(contentType).Inc() }
func IncViewDuplicate(contentType string) { viewsDuplicateTotal.WithLabelValues(contentType).Inc() }
func IncViewThrottled()                   { viewsThrottledTotal.Inc() }
func IncCounterSoftFail()                 { counterSoftFailTotal.Inc() }
func IncCorruptionEvent()                 { corruptionEventsTotal.Inc() }
func AddDrainedViews(n float64)           { drainedViewsTotal.Add(n) }
func IncDrainFailure()                    { drainFailuresTotal.Inc() }
func AddMarkersSwept(n float64)           { markersSweptTotal.Add(n) }
