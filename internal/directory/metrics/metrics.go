// Package metrics provides Prometheus metrics for the site cache, discovery
// and endpoint resolution.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all directory metrics.
type Metrics struct {
	// Site cache
	SiteCacheEntries    prometheus.Gauge
	SiteCacheRefreshes  *prometheus.CounterVec // by trigger (startup, expired, evicted, manual)
	DiscoveredSites     *prometheus.CounterVec // by validity (valid, invalid)
	DiscoveryDuration   prometheus.Histogram
	DiscoverySourceErrs *prometheus.CounterVec // by source

	// Resolution
	ResolutionsTotal      *prometheus.CounterVec // by outcome (found, not_found, invalid_input, abandoned)
	ResolutionDuration    prometheus.Histogram
	SiteFailuresTotal     *prometheus.CounterVec // by category
	SiteSkippedTotal      prometheus.Counter
	ResolutionCacheHits   prometheus.Counter
	ResolutionCacheMisses prometheus.Counter
	ResolutionCacheClears prometheus.Counter
}

// New registers all directory metrics with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		SiteCacheEntries: f.NewGauge(prometheus.GaugeOpts{
			Name: "esb_directory_site_cache_entries",
			Help: "Current number of entries in the directory site cache",
		}),
		SiteCacheRefreshes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "esb_directory_site_cache_refreshes_total",
			Help: "Total number of site cache refresh cycles by trigger",
		}, []string{"trigger"}),
		DiscoveredSites: f.NewCounterVec(prometheus.CounterOpts{
			Name: "esb_directory_discovered_sites_total",
			Help: "Total number of sites returned by discovery by validity",
		}, []string{"validity"}),
		DiscoveryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "esb_directory_discovery_duration_seconds",
			Help:    "Duration of directory discovery passes",
			Buckets: prometheus.DefBuckets,
		}),
		DiscoverySourceErrs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "esb_directory_discovery_source_errors_total",
			Help: "Total number of discovery source failures by source",
		}, []string{"source"}),
		ResolutionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "esb_directory_resolutions_total",
			Help: "Total number of access point resolutions by outcome",
		}, []string{"outcome"}),
		ResolutionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "esb_directory_resolution_duration_seconds",
			Help:    "Duration of access point resolutions",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		SiteFailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "esb_directory_site_failures_total",
			Help: "Total number of per-site directory query failures by category",
		}, []string{"category"}),
		SiteSkippedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "esb_directory_site_skipped_total",
			Help: "Total number of sites skipped because their circuit was open",
		}),
		ResolutionCacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "esb_directory_resolution_cache_hits_total",
			Help: "Total number of resolution cache hits",
		}),
		ResolutionCacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "esb_directory_resolution_cache_misses_total",
			Help: "Total number of resolution cache misses",
		}),
		ResolutionCacheClears: f.NewCounter(prometheus.CounterOpts{
			Name: "esb_directory_resolution_cache_clears_total",
			Help: "Total number of resolution cache clear operations",
		}),
	}
}

func (m *Metrics) SetSiteCacheEntries(n int) {
	m.SiteCacheEntries.Set(float64(n))
}

func (m *Metrics) IncrementRefresh(trigger string) {
	m.SiteCacheRefreshes.WithLabelValues(trigger).Inc()
}

func (m *Metrics) RecordDiscovered(valid, invalid int) {
	m.DiscoveredSites.WithLabelValues("valid").Add(float64(valid))
	m.DiscoveredSites.WithLabelValues("invalid").Add(float64(invalid))
}

func (m *Metrics) ObserveDiscovery(seconds float64) {
	m.DiscoveryDuration.Observe(seconds)
}

func (m *Metrics) IncrementSourceError(source string) {
	m.DiscoverySourceErrs.WithLabelValues(source).Inc()
}

func (m *Metrics) RecordResolution(outcome string, seconds float64) {
	m.ResolutionsTotal.WithLabelValues(outcome).Inc()
	m.ResolutionDuration.Observe(seconds)
}

func (m *Metrics) IncrementSiteFailure(category string) {
	m.SiteFailuresTotal.WithLabelValues(category).Inc()
}

func (m *Metrics) IncrementSiteSkipped() {
	m.SiteSkippedTotal.Inc()
}

func (m *Metrics) RecordCacheHit() {
	m.ResolutionCacheHits.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	m.ResolutionCacheMisses.Inc()
}

func (m *Metrics) IncrementCacheClears() {
	m.ResolutionCacheClears.Inc()
}

// HitRate is a helper for tests; production uses Prometheus queries.
func HitRate(hits, misses float64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return hits / total
}
