// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"slices"

	"github.com/pdiddy/skyquery/internal/catalogdb"
	"github.com/pdiddy/skyquery/internal/compute"
	"github.com/pdiddy/skyquery/internal/logger"
	"github.com/pdiddy/skyquery/internal/search"
	"github.com/pdiddy/skyquery/pkg/types"
)

// providers builds the online providers enabled in sc, in merge priority
// order.
func providers(sc types.SearchConfig) []search.Provider {
	cc := search.ClientConfig{
		UserAgent:         sc.UserAgent,
		MaxRetries:        sc.MaxRetries,
		RequestsPerSecond: sc.RequestsPerSecond,
	}
	if sc.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: sc.Timeout}
	}
	all := []search.Provider{
		search.NewMPC(cc),
		search.NewSesame(cc),
		search.NewSimbad(cc),
		search.NewVizier(cc, search.DefaultVizierTable),
	}
	if len(sc.Sources) == 0 {
		return all
	}
	var enabled []search.Provider
	for _, p := range all {
		if slices.Contains(sc.Sources, p.Name()) {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

// openSearcher opens the local catalog and returns a Searcher over it and
// the enabled providers. A catalog that cannot be opened is logged and the
// search runs online only. The returned func releases the catalog.
func openSearcher(c types.Config) (*search.Searcher, func()) {
	log := logger.Base()

	var local search.Local
	closeFn := func() {}
	store, err := catalogdb.Open(c.Catalog, log.Named("catalog"))
	if err != nil {
		logger.Logger.Warnw("local catalog unavailable", "path", c.Catalog.Path, "error", err)
	} else {
		local = store
		closeFn = func() { store.Close() }
	}

	online := search.NewOnline(log.Named("online"), providers(c.Search)...)
	return search.NewSearcher(local, online, c.Search, log.Named("search")), closeFn
}

// newFacade returns the computation facade: the native backend when an
// endpoint is configured, the built-in fallback otherwise, behind the
// response cache.
func newFacade(c types.Config) *compute.Facade {
	native := compute.NewNative(compute.NativeConfig{
		Endpoint:   c.Compute.NativeEndpoint,
		Token:      c.Compute.NativeToken,
		Timeout:    c.Compute.Timeout,
		MaxRetries: c.Compute.MaxRetries,
		UserAgent:  c.Compute.UserAgent,
	})
	return compute.New(
		compute.WithNative(native, native.Available),
		compute.WithFallback(compute.NewFallback()),
		compute.WithCache(compute.NewCache(c.Compute.CacheCapacity)),
		compute.WithLogger(logger.Base().Named("compute")),
	)
}
