// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compute

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/skyquery/internal/metrics"
	"github.com/pdiddy/skyquery/pkg/types"
)

// Facade dispatches computations to the native backend when it is available
// and to the in-process fallback otherwise, caching every response.
type Facade struct {
	native    Backend
	available func() bool
	fallback  Backend
	cache     *Cache
	log       *zap.Logger
}

// Option configures a Facade.
type Option func(*Facade)

// WithNative sets the preferred backend and the predicate that reports
// whether it can be called.
func WithNative(b Backend, available func() bool) Option {
	return func(f *Facade) {
		f.native, f.available = b, available
	}
}

// WithFallback replaces the in-process backend.
func WithFallback(b Backend) Option {
	return func(f *Facade) { f.fallback = b }
}

// WithCache replaces the default cache.
func WithCache(c *Cache) Option {
	return func(f *Facade) { f.cache = c }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(f *Facade) { f.log = l }
}

// New returns a facade. Without WithNative every call is served by the
// fallback.
func New(opts ...Option) *Facade {
	f := &Facade{
		fallback: NewFallback(),
		cache:    NewCache(DefaultCacheCapacity),
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(f)
	}
	if f.available == nil {
		f.available = func() bool { return false }
	}
	return f
}

// Coordinates transforms an equatorial position to horizontal, galactic and
// ecliptic frames for an observer and time.
func (f *Facade) Coordinates(ctx context.Context, req types.CoordinatesRequest) (types.CoordinatesResponse, error) {
	if err := validateCoordinates(req); err != nil {
		return types.CoordinatesResponse{}, err
	}
	return call(ctx, f, OpCoordinates, TTLCoordinates, req, Backend.Coordinates)
}

// Ephemeris computes a fixed-step series of positions for a body.
func (f *Facade) Ephemeris(ctx context.Context, req types.EphemerisRequest) (types.EphemerisResponse, error) {
	req, err := normalizeEphemeris(req)
	if err != nil {
		return types.EphemerisResponse{}, err
	}
	return call(ctx, f, OpEphemeris, TTLEphemeris, req, Backend.Ephemeris)
}

// RiseTransitSet computes rise, transit, set and dark-sky visibility for a
// fixed position.
func (f *Facade) RiseTransitSet(ctx context.Context, req types.RiseTransitSetRequest) (types.RiseTransitSetResponse, error) {
	if err := validateRiseTransitSet(req); err != nil {
		return types.RiseTransitSetResponse{}, err
	}
	return call(ctx, f, OpRiseTransitSet, TTLRiseTransitSet, req, Backend.RiseTransitSet)
}

// Phenomena searches for sky events in a date range, sorted by date.
func (f *Facade) Phenomena(ctx context.Context, req types.PhenomenaRequest) (types.PhenomenaResponse, error) {
	req, err := normalizePhenomena(req)
	if err != nil {
		return types.PhenomenaResponse{}, err
	}
	return call(ctx, f, OpPhenomena, TTLPhenomena, req, Backend.Phenomena)
}

// Almanac returns sun, moon and twilight data for a date.
func (f *Facade) Almanac(ctx context.Context, req types.AlmanacRequest) (types.AlmanacResponse, error) {
	if err := validateAlmanac(req); err != nil {
		return types.AlmanacResponse{}, err
	}
	return call(ctx, f, OpAlmanac, TTLAlmanac, req, Backend.Almanac)
}

// Cache exposes the facade's cache.
func (f *Facade) Cache() *Cache { return f.cache }

// call serves op from the cache or from dispatch. A request that cannot be
// serialized to a key skips the cache. Responses are copied into and out of
// the cache.
func call[Req, Resp any](
	ctx context.Context,
	f *Facade,
	op string,
	ttl time.Duration,
	req Req,
	run func(Backend, context.Context, Req) (Resp, error),
) (Resp, error) {
	key, keyErr := serializeCacheKey(op, req)
	if keyErr != nil {
		metrics.IncCacheLookup(op, "bypass")
		f.log.Debug("cache key unavailable", zap.String("op", op), zap.Error(keyErr))
	} else if v, ok := f.cache.Get(key); ok {
		if resp, ok := v.(Resp); ok {
			metrics.IncCacheLookup(op, "hit")
			return cloneResponse(resp), nil
		}
	} else {
		metrics.IncCacheLookup(op, "miss")
	}

	resp, err := dispatch(ctx, f, op, req, run)
	if err != nil {
		return resp, err
	}
	if keyErr == nil {
		f.cache.Set(key, cloneResponse(resp), ttl)
	}
	return resp, nil
}

// cloneResponse deep-copies responses that know how to clone themselves.
func cloneResponse[Resp any](v Resp) Resp {
	if c, ok := any(v).(interface{ Clone() Resp }); ok {
		return c.Clone()
	}
	return v
}

// dispatch tries the native backend when it is available and falls back on
// any error. Fallback errors, including UnsupportedBodyError, are returned.
func dispatch[Req, Resp any](
	ctx context.Context,
	f *Facade,
	op string,
	req Req,
	run func(Backend, context.Context, Req) (Resp, error),
) (Resp, error) {
	if f.native != nil && f.available() {
		resp, err := run(f.native, ctx, req)
		if err == nil {
			metrics.IncBackend(op, string(types.BackendNative))
			return resp, nil
		}
		f.log.Warn("native backend failed, using fallback",
			zap.String("op", op),
			zap.Bool("unsupported_body", IsUnsupportedBody(err)),
			zap.Error(err),
		)
	}
	resp, err := run(f.fallback, ctx, req)
	if err != nil {
		return resp, err
	}
	metrics.IncBackend(op, string(types.BackendFallback))
	return resp, nil
}
