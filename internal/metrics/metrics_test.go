// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLookupCounter(t *testing.T) {
	before := testutil.ToFloat64(cacheLookups.WithLabelValues("almanac", "hit"))
	IncCacheLookup("almanac", "hit")
	IncCacheLookup("almanac", "hit")
	assert.Equal(t, before+2, testutil.ToFloat64(cacheLookups.WithLabelValues("almanac", "hit")))
}

func TestBackendCounter(t *testing.T) {
	before := testutil.ToFloat64(backendServed.WithLabelValues("coordinates", "fallback"))
	IncBackend("coordinates", "fallback")
	assert.Equal(t, before+1, testutil.ToFloat64(backendServed.WithLabelValues("coordinates", "fallback")))
}

func TestObserveProviderCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(providerErrors.WithLabelValues("sesame"))
	ObserveProvider("sesame", time.Now(), 0, errors.New("boom"))
	ObserveProvider("sesame", time.Now(), 3, nil)
	assert.Equal(t, before+1, testutil.ToFloat64(providerErrors.WithLabelValues("sesame")))
}

func TestBatchItemOutcomes(t *testing.T) {
	okBefore := testutil.ToFloat64(batchItems.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(batchItems.WithLabelValues("error"))
	IncBatchItem(true)
	IncBatchItem(false)
	IncBatchItem(false)
	assert.Equal(t, okBefore+1, testutil.ToFloat64(batchItems.WithLabelValues("ok")))
	assert.Equal(t, errBefore+2, testutil.ToFloat64(batchItems.WithLabelValues("error")))
}

func TestCollectorsRegisterCleanly(t *testing.T) {
	assert.Len(t, Collectors(), 7)
	assert.NotPanics(t, ensureRegistered)
}

func TestWriteTextOnlySkyqueryFamilies(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(Collectors()...)
	other := prometheus.NewCounter(prometheus.CounterOpts{Name: "unrelated_total", Help: "x"})
	reg.MustRegister(other)
	other.Inc()
	IncBackend("almanac", "native")

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))
	out := buf.String()
	assert.Contains(t, out, `skyquery_compute_backend_total{backend="native",op="almanac"}`)
	assert.NotContains(t, out, "unrelated_total")
}
