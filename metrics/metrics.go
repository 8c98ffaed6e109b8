// Package metrics provides Prometheus metrics for search pipelines.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/pipeline"
	"github.com/poiesic/omnisearch/search"
)

const namespace = "omnisearch"

// Collector records pipeline and search activity. It implements both
// pipeline.Monitor and search.SearchMonitor.
type Collector struct {
	// Cycle metrics
	CyclesStarted   prometheus.Counter
	CyclesPublished prometheus.Counter
	CyclesStale     prometheus.Counter
	CycleDuration   *prometheus.HistogramVec

	// Search metrics
	Queries        prometheus.Counter
	TierResults    *prometheus.CounterVec
	SourceFailures *prometheus.CounterVec

	// Index metrics
	IndexRebuilds    prometheus.Counter
	IndexedDocuments prometheus.Gauge
	TreeVersion      prometheus.Gauge
}

var (
	_ pipeline.Monitor     = (*Collector)(nil)
	_ search.SearchMonitor = (*Collector)(nil)
)

// NewCollector creates and registers all metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	c := &Collector{}

	c.CyclesStarted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cycles_started_total",
		Help:      "Total number of search cycles launched",
	})

	c.CyclesPublished = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cycles_published_total",
		Help:      "Total number of search cycles whose results were published",
	})

	c.CyclesStale = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cycles_stale_total",
		Help:      "Total number of search cycles dropped because a newer cycle started",
	})

	c.CycleDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cycle_duration_seconds",
		Help:      "Duration of search cycles in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"outcome"})

	c.Queries = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_total",
		Help:      "Total number of queries run through the cascade",
	})

	c.TierResults = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tier_results_total",
		Help:      "Total number of results produced per cascade tier",
	}, []string{"tier"})

	c.SourceFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_failures_total",
		Help:      "Total number of failed remote calls per tier",
	}, []string{"tier"})

	c.IndexRebuilds = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "index_rebuilds_total",
		Help:      "Total number of index rebuilds after tree replacement",
	})

	c.IndexedDocuments = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "indexed_documents",
		Help:      "Number of documents in the current index",
	})

	c.TreeVersion = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tree_version",
		Help:      "Version of the navigation tree currently indexed",
	})

	// Pre-create label values so they export zeros.
	for _, tier := range []search.Tier{search.TierRecent, search.TierIdentifier, search.TierFuzzy, search.TierFAQ} {
		c.TierResults.WithLabelValues(string(tier))
	}
	c.SourceFailures.WithLabelValues(string(search.TierIdentifier))
	c.SourceFailures.WithLabelValues(string(search.TierFAQ))

	return c
}

// CycleStarted implements pipeline.Monitor.
func (c *Collector) CycleStarted(_ uint64, _ string) {
	c.CyclesStarted.Inc()
}

// CyclePublished implements pipeline.Monitor.
func (c *Collector) CyclePublished(_ uint64, elapsed time.Duration, _ int) {
	c.CyclesPublished.Inc()
	c.CycleDuration.WithLabelValues("published").Observe(elapsed.Seconds())
}

// CycleStale implements pipeline.Monitor.
func (c *Collector) CycleStale(_ uint64, elapsed time.Duration) {
	c.CyclesStale.Inc()
	c.CycleDuration.WithLabelValues("stale").Observe(elapsed.Seconds())
}

// IndexRebuilt implements pipeline.Monitor.
func (c *Collector) IndexRebuilt(version uint64, documents int) {
	c.IndexRebuilds.Inc()
	c.IndexedDocuments.Set(float64(documents))
	c.TreeVersion.Set(float64(version))
}

// Start implements search.SearchMonitor.
func (c *Collector) Start(_ string) {
	c.Queries.Inc()
}

// TierHit implements search.SearchMonitor.
func (c *Collector) TierHit(tier search.Tier, count int) {
	c.TierResults.WithLabelValues(string(tier)).Add(float64(count))
}

// SourceFailed implements search.SearchMonitor.
func (c *Collector) SourceFailed(tier search.Tier, _ error) {
	c.SourceFailures.WithLabelValues(string(tier)).Inc()
}

// Finish implements search.SearchMonitor.
func (c *Collector) Finish(_ []core.SearchResult) {}
