// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes Prometheus collectors for the search and compute
// stages. Collectors register with the default registry on first use.
package metrics

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var (
	once sync.Once

	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skyquery_compute_cache_lookups_total",
		Help: "Compute cache lookups by operation and outcome (hit, miss, bypass)",
	}, []string{"op", "outcome"})

	cacheEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skyquery_compute_cache_evictions_total",
		Help: "Entries evicted from the compute cache for capacity",
	})

	backendServed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skyquery_compute_backend_total",
		Help: "Computations served per operation and backend",
	}, []string{"op", "backend"})

	providerLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skyquery_provider_latency_ms",
		Help:    "Latency of online provider calls in milliseconds",
		Buckets: []float64{25, 50, 100, 200, 400, 800, 1600, 3200, 6400},
	}, []string{"provider"})

	providerResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skyquery_provider_results",
		Help:    "Records returned by an online provider call",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	}, []string{"provider"})

	providerErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skyquery_provider_errors_total",
		Help: "Failed online provider calls",
	}, []string{"provider"})

	batchItems = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skyquery_batch_items_total",
		Help: "Batch search items by outcome (ok, error)",
	}, []string{"outcome"})
)

func ensureRegistered() {
	once.Do(func() {
		prometheus.MustRegister(Collectors()...)
	})
}

// Collectors returns every collector, for registration with a custom registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		cacheLookups, cacheEvictions, backendServed,
		providerLatency, providerResults, providerErrors, batchItems,
	}
}

// IncCacheLookup counts a cache lookup; outcome is hit, miss or bypass.
func IncCacheLookup(op, outcome string) {
	ensureRegistered()
	cacheLookups.WithLabelValues(op, outcome).Inc()
}

// IncCacheEviction counts one capacity eviction.
func IncCacheEviction() {
	ensureRegistered()
	cacheEvictions.Inc()
}

// IncBackend counts a computation served by backend.
func IncBackend(op, backend string) {
	ensureRegistered()
	backendServed.WithLabelValues(op, backend).Inc()
}

// ObserveProvider records latency and result size for one provider call.
func ObserveProvider(provider string, start time.Time, results int, err error) {
	ensureRegistered()
	providerLatency.WithLabelValues(provider).Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		providerErrors.WithLabelValues(provider).Inc()
		return
	}
	providerResults.WithLabelValues(provider).Observe(float64(results))
}

// IncBatchItem counts a finished batch item.
func IncBatchItem(ok bool) {
	ensureRegistered()
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	batchItems.WithLabelValues(outcome).Inc()
}

// WriteText writes the skyquery metrics gathered from g in the Prometheus
// text exposition format. A nil g means the default gatherer.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "skyquery_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
