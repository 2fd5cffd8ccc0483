// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/httputil"
	"github.com/pdiddy/skyquery/internal/metrics"
	"github.com/pdiddy/skyquery/pkg/types"
)

// Provider searches one online service. Implementations are opaque to the
// orchestrator: it only sees records or an error. A provider that has no
// notion of one search kind returns (nil, nil) for it.
type Provider interface {
	Name() string
	Source() types.Source
	SearchByName(ctx context.Context, query string, opts ProviderOptions) ([]types.ProviderRecord, error)
	SearchByCoordinates(ctx context.Context, cone ConeQuery, opts ProviderOptions) ([]types.ProviderRecord, error)
}

// ProviderOptions are per-call settings passed to a provider.
type ProviderOptions struct {
	Limit int
}

// ConeQuery is a cone search around a position. All values in degrees.
type ConeQuery struct {
	RA, Dec   float64
	RadiusDeg float64
}

// OnlineOptions selects providers and bounds one fan-out.
type OnlineOptions struct {
	// Sources names the providers to ask. Empty means all.
	Sources []string
	Limit   int
	// Timeout bounds each provider call. Zero means no per-call bound.
	Timeout time.Duration
}

// OnlineResponse collects the fan-out result. Errors holds "<provider>: <err>"
// strings; a failing provider never fails the search.
type OnlineResponse struct {
	Results    []types.ProviderRecord
	Sources    []string
	TotalCount int
	Errors     []string
}

// Online fans a query out to a set of providers concurrently.
type Online struct {
	providers []Provider
	log       *zap.Logger
}

// NewOnline returns an aggregator over providers. log may be nil.
func NewOnline(log *zap.Logger, providers ...Provider) *Online {
	if log == nil {
		log = zap.NewNop()
	}
	return &Online{providers: providers, log: log}
}

// Available reports whether any provider is configured.
func (o *Online) Available() bool {
	return o != nil && len(o.providers) > 0
}

// Providers returns the configured provider names in order.
func (o *Online) Providers() []string {
	names := make([]string, 0, len(o.providers))
	for _, p := range o.providers {
		names = append(names, p.Name())
	}
	return names
}

// SearchByName asks every selected provider for query.
func (o *Online) SearchByName(ctx context.Context, query string, opts OnlineOptions) OnlineResponse {
	return o.fanOut(ctx, opts, func(ctx context.Context, p Provider, po ProviderOptions) ([]types.ProviderRecord, error) {
		return p.SearchByName(ctx, query, po)
	})
}

// SearchByCoordinates asks every selected provider for a cone search.
func (o *Online) SearchByCoordinates(ctx context.Context, cone ConeQuery, opts OnlineOptions) OnlineResponse {
	return o.fanOut(ctx, opts, func(ctx context.Context, p Provider, po ProviderOptions) ([]types.ProviderRecord, error) {
		return p.SearchByCoordinates(ctx, cone, po)
	})
}

type providerCall func(context.Context, Provider, ProviderOptions) ([]types.ProviderRecord, error)

// fanOut runs call on each selected provider concurrently. Results are
// concatenated in provider order so the response does not depend on which
// provider answers first.
func (o *Online) fanOut(ctx context.Context, opts OnlineOptions, call providerCall) OnlineResponse {
	var selected []Provider
	for _, p := range o.providers {
		if len(opts.Sources) == 0 || slices.Contains(opts.Sources, p.Name()) {
			selected = append(selected, p)
		}
	}

	type providerResult struct {
		records []types.ProviderRecord
		err     error
	}
	results := make([]providerResult, len(selected))

	var wg sync.WaitGroup
	for i, p := range selected {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pctx := ctx
			if opts.Timeout > 0 {
				var cancel context.CancelFunc
				pctx, cancel = context.WithTimeout(ctx, opts.Timeout)
				defer cancel()
			}
			start := time.Now()
			records, err := call(pctx, p, ProviderOptions{Limit: opts.Limit})
			metrics.ObserveProvider(p.Name(), start, len(records), err)
			results[i] = providerResult{records: records, err: err}
		}()
	}
	wg.Wait()

	var resp OnlineResponse
	for i, r := range results {
		name := selected[i].Name()
		if r.err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", name, r.err))
			o.log.Warn("provider failed", zap.String("provider", name), zap.Error(r.err))
			continue
		}
		resp.Sources = append(resp.Sources, name)
		for _, rec := range r.records {
			if rec.Source == "" {
				rec.Source = selected[i].Source()
			}
			resp.Results = append(resp.Results, rec)
		}
	}
	resp.TotalCount = len(resp.Results)
	return resp
}

// client is the HTTP plumbing shared by the concrete providers.
type client struct {
	http       *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxRetries int
}

// ClientConfig configures the HTTP client of a concrete provider.
type ClientConfig struct {
	HTTPClient *http.Client
	UserAgent  string
	MaxRetries int
	// RequestsPerSecond limits calls to the provider. Zero means unlimited.
	RequestsPerSecond float64
}

func newClient(cfg ClientConfig) client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return client{
		http:       hc,
		limiter:    rate.NewLimiter(limit, 1),
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}
}

// maxResponseBytes bounds how much of a provider response is read.
const maxResponseBytes = 8 << 20

// fetch waits for the rate limiter, sends req with retries and returns the
// body of a 200 response.
func (c client) fetch(ctx context.Context, req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}
	return body, nil
}
