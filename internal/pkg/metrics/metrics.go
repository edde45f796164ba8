// Package metrics defines and registers the custom Prometheus metrics of the
// coffee catalog. Metrics are registered with the default registry on import,
// so /metrics served by echoprometheus exposes them next to the HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Lot metrics ──────────────────────────────────────────────────────────────

// LotsCreatedTotal counts inserted lots.
// Label:
//   - source: "manual" or "import"
var LotsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lots_created_total",
		Help:      "Total number of lots inserted, by source.",
	},
	[]string{"source"},
)

// ImportRecordsTotal counts processed import records.
// Label:
//   - outcome: "imported" or "failed"
var ImportRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_records_total",
		Help:      "Total number of bulk import records, by outcome.",
	},
	[]string{"outcome"},
)

var ImportDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "import_duration_seconds",
		Help:      "Duration of one bulk import from parse to fold.",
		Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
	},
)

// ImageFetchTotal counts remote image fetches.
// Label:
//   - result: "ok", "error", "rejected" (bad status, type or size) or "open" (breaker open)
var ImageFetchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_fetch_total",
		Help:      "Total number of remote image fetches, by result.",
	},
	[]string{"result"},
)

// ── Review metrics ───────────────────────────────────────────────────────────

// ReviewsSubmittedTotal counts accepted review writes.
// Label:
//   - kind: "create" or "update"
var ReviewsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_submitted_total",
		Help:      "Total number of reviews created or updated.",
	},
	[]string{"kind"},
)

var ReviewConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_conflicts_total",
		Help:      "Total number of review inserts rejected as duplicates.",
	},
)

// ── View cache metrics ───────────────────────────────────────────────────────

// ViewInvalidationsTotal counts route invalidations.
// Label:
//   - route: "/", "/profile" or "/lots" for any lot page
var ViewInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_invalidations_total",
		Help:      "Total number of view invalidations, by route.",
	},
	[]string{"route"},
)

// ViewCacheTotal counts cache lookups.
// Label:
//   - result: "hit" or "miss"
var ViewCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_cache_total",
		Help:      "Total number of view cache lookups, by result.",
	},
	[]string{"result"},
)
