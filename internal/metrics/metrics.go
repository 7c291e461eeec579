package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "redirector"

var (
	// ClicksRecorded counts click recordings by uniqueness
	ClicksRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clicks_recorded_total",
		Help:      "Clicks recorded, labelled unique or repeat.",
	}, []string{"visitor"})

	// RecordFailures counts absorbed click recording failures by step
	RecordFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_failures_total",
		Help:      "Click recording steps that failed and were absorbed.",
	}, []string{"step"})

	// LinkLookups counts link resolutions by source of the answer
	LinkLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "link_lookups_total",
		Help:      "Link resolutions by result: cache_hit, store_hit or not_found.",
	}, []string{"result"})

	// GeoLookups counts geolocation resolutions by tier
	GeoLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geo_lookups_total",
		Help:      "Geolocation resolutions by tier: skipped, edge, cache, external, budget_exhausted or failed.",
	}, []string{"tier"})

	// RateLimitDecisions counts rate limit checks by outcome
	RateLimitDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_decisions_total",
		Help:      "Rate limit checks by outcome: allowed, denied or fail_open.",
	}, []string{"outcome"})

	// ReconciledLinks counts links whose durable counter was raised
	ReconciledLinks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconciled_links_total",
		Help:      "Links whose durable click count was raised to the fast count.",
	})
)

// Handler exposes the default registry for scraping
func Handler() http.Handler {
	return promhttp.Handler()
}
