// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search resolves a free-form sky query against a local catalog and
// online providers and returns one merged, deduplicated result list.
//
// A Searcher classifies the query, runs the local and provider searches the
// mode allows, drops minor bodies unless asked for, and merges everything
// with Merge. Multi-line input runs as a batch on a small worker pool.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/skyquery/internal/coords"
	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/normalize"
	"github.com/pdiddy/skyquery/internal/query"
	"github.com/pdiddy/skyquery/pkg/types"
)

// Local searches an offline catalog. Implementations should honour ctx.
type Local interface {
	LocalSearch(ctx context.Context, q types.ParsedQuery, opts LocalOptions) ([]types.SearchResultItem, error)
}

// LocalOptions bounds a local search.
type LocalOptions struct {
	Limit int
	// RadiusDeg is the match radius around a query coordinate.
	RadiusDeg float64
}

// LocalFunc adapts a function to Local.
type LocalFunc func(ctx context.Context, q types.ParsedQuery, opts LocalOptions) ([]types.SearchResultItem, error)

// LocalSearch implements Local.
func (f LocalFunc) LocalSearch(ctx context.Context, q types.ParsedQuery, opts LocalOptions) ([]types.SearchResultItem, error) {
	return f(ctx, q, opts)
}

// Options are the parameters of one search. Zero values take the
// Searcher's configured defaults. IncludeMinorObjects is a pointer so an
// explicit false can override a configured true.
type Options struct {
	Query               string
	Mode                types.SearchMode
	Sources             []string
	MaxResults          int
	RadiusDeg           float64
	DedupRadiusArcsec   float64
	IncludeMinorObjects *bool
	BatchConcurrency    int
}

// Output is the result of a search. Errors lists non-fatal diagnostics:
// provider failures as "<provider>: <err>", a cancellation, or failed batch
// lines as "line N: <err>".
type Output struct {
	RequestID  string                   `json:"request_id" yaml:"request_id"`
	Query      types.ParsedQuery        `json:"query" yaml:"query"`
	Intent     types.Intent             `json:"intent" yaml:"intent"`
	Results    []types.SearchResultItem `json:"results" yaml:"results"`
	Errors     []string                 `json:"errors,omitempty" yaml:"errors,omitempty"`
	BatchItems []BatchItem              `json:"batch_items,omitempty" yaml:"batch_items,omitempty"`
}

// Searcher orchestrates local and online search.
type Searcher struct {
	local  Local
	online *Online
	cfg    types.SearchConfig
	log    *zap.Logger
}

// NewSearcher returns a Searcher. local and online may each be nil; cfg
// supplies defaults for Options fields left at zero.
func NewSearcher(local Local, online *Online, cfg types.SearchConfig, log *zap.Logger) *Searcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{local: local, online: online, cfg: cfg, log: log}
}

// Search runs opts.Query. Only an empty query or an unknown mode return an
// error; every other failure, including cancellation, is reported in
// Output.Errors alongside whatever results were gathered.
func (s *Searcher) Search(ctx context.Context, opts Options) (Output, error) {
	if normalize.Whitespace(opts.Query) == "" {
		return Output{}, errors.WithHint(
			errors.Mark(errors.New("query is empty"), errors.ErrInvalidInput),
			"enter a name, catalog number, designation or coordinates")
	}
	opts = s.withDefaults(opts)
	switch opts.Mode {
	case types.ModeLocal, types.ModeOnline, types.ModeHybrid:
	default:
		return Output{}, errors.WithHint(
			errors.Mark(errors.Newf("unknown search mode %q", opts.Mode), errors.ErrInvalidInput),
			"use one of local, online, hybrid")
	}

	id := uuid.NewString()
	log := s.log.With(zap.String("request_id", id), zap.String("mode", string(opts.Mode)))
	q := query.Parse(opts.Query)
	out := Output{RequestID: id, Query: q, Intent: q.Intent}
	log.Debug("query classified", zap.String("intent", string(q.Intent)), zap.String("canonical_id", q.CanonicalID))

	if q.Intent == types.IntentBatch {
		out.Results, out.BatchItems, out.Errors = s.batch(ctx, q.BatchSubqueries, opts, log)
	} else {
		out.Results, out.Errors = s.single(ctx, q, opts, log)
	}
	if out.Results == nil {
		out.Results = []types.SearchResultItem{}
	}
	log.Info("search finished", zap.Int("results", len(out.Results)), zap.Int("errors", len(out.Errors)))
	return out, nil
}

func (s *Searcher) withDefaults(opts Options) Options {
	if opts.Mode == "" {
		opts.Mode = s.cfg.Mode
	}
	if opts.Mode == "" {
		opts.Mode = types.ModeHybrid
	}
	if len(opts.Sources) == 0 {
		opts.Sources = s.cfg.Sources
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = s.cfg.MaxResults
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 50
	}
	if opts.RadiusDeg <= 0 {
		opts.RadiusDeg = s.cfg.RadiusDeg
	}
	if opts.RadiusDeg <= 0 {
		opts.RadiusDeg = 0.1
	}
	if opts.DedupRadiusArcsec <= 0 {
		opts.DedupRadiusArcsec = s.cfg.DedupRadiusArcsec
	}
	if opts.IncludeMinorObjects == nil {
		include := s.cfg.IncludeMinorObjects
		opts.IncludeMinorObjects = &include
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = s.cfg.BatchConcurrency
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = DefaultBatchConcurrency
	}
	return opts
}

// single runs one classified query. A cancelled ctx returns the local
// results gathered so far with the cancellation in errs.
func (s *Searcher) single(ctx context.Context, q types.ParsedQuery, opts Options, log *zap.Logger) (results []types.SearchResultItem, errs []string) {
	runOnline := opts.Mode != types.ModeLocal && s.online.Available()
	runLocal := s.local != nil && (opts.Mode != types.ModeOnline || !runOnline)
	mopts := MergeOptions{
		MaxResults:        opts.MaxResults,
		DedupRadiusArcsec: opts.DedupRadiusArcsec,
		Context:           q.ContextCoordinate(),
	}

	var local []types.SearchResultItem
	if runLocal && ctx.Err() == nil {
		items, err := s.local.LocalSearch(ctx, q, LocalOptions{Limit: opts.MaxResults, RadiusDeg: opts.RadiusDeg})
		if err != nil && ctx.Err() == nil {
			errs = append(errs, "local: "+err.Error())
			log.Warn("local search failed", zap.Error(err))
		}
		local = items
	}
	if err := ctx.Err(); err != nil {
		return Merge(local, nil, mopts), append(errs, err.Error())
	}
	if !runOnline {
		return Merge(local, nil, mopts), errs
	}

	oo := OnlineOptions{Sources: opts.Sources, Limit: opts.MaxResults, Timeout: s.cfg.ProviderTimeout}
	var resp OnlineResponse
	if q.Intent == types.IntentCoordinate {
		cone := ConeQuery{RA: q.Coordinate.RA, Dec: q.Coordinate.Dec, RadiusDeg: opts.RadiusDeg}
		resp = s.online.SearchByCoordinates(ctx, cone, oo)
	} else {
		resp = s.online.SearchByName(ctx, providerQuery(q), oo)
	}
	if err := ctx.Err(); err != nil {
		log.Info("search cancelled, returning local results", zap.Int("local", len(local)))
		return Merge(local, nil, mopts), append(errs, err.Error())
	}
	errs = append(errs, resp.Errors...)

	records := FilterMinor(resp.Results, *opts.IncludeMinorObjects || q.ExplicitMinorObject)
	return Merge(local, ToResultItems(records), mopts), errs
}

// providerQuery is the text sent to name-based providers.
func providerQuery(q types.ParsedQuery) string {
	switch {
	case q.Intent == types.IntentCatalog:
		return q.CatalogID
	case q.Intent == types.IntentMinor && q.Minor != nil:
		return q.Minor.NormalizedForm
	}
	return q.NormalizedInput
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	for _, e := range out.Errors {
		fmt.Fprintf(w, "warning: %s\n", e)
	}
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-28s  %-20s  %-14s  %-15s  %5s  %8s  %s\n",
		"#", "Name", "Type", "RA", "Dec", "Mag", "Sep(\")", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range out.Results {
		ra, dec, mag, sep := "", "", "", ""
		if r.HasCoordinates() {
			ra, dec = coords.FormatRA(*r.RA), coords.FormatDec(*r.Dec)
		}
		if r.Magnitude != nil {
			mag = fmt.Sprintf("%.2f", *r.Magnitude)
		}
		if r.AngularSeparation != nil {
			sep = fmt.Sprintf("%.1f", *r.AngularSeparation)
		}
		fmt.Fprintf(w, "%-4d  %-28s  %-20s  %-14s  %-15s  %5s  %8s  %s\n",
			i+1, truncate(r.Name, 28), truncate(r.Type, 20), ra, dec, mag, sep, r.Source)
	}

	fmt.Fprintf(w, "\n%d results", len(out.Results))
	if n := len(out.BatchItems); n > 0 {
		fmt.Fprintf(w, " from %d queries", n)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes the output as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
