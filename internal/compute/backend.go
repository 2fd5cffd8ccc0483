// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compute is the astronomy computation facade. It serves five
// operations through a pluggable Backend, preferring a native high-precision
// service when one is reachable and falling back to the in-process
// implementation otherwise. Responses are cached with per-operation TTLs.
package compute

import (
	"context"

	"github.com/pdiddy/skyquery/pkg/types"
)

// Backend computes astronomical quantities. Implementations tag every
// response with their Kind in Meta.Backend.
type Backend interface {
	Kind() types.BackendKind
	Coordinates(ctx context.Context, req types.CoordinatesRequest) (types.CoordinatesResponse, error)
	Ephemeris(ctx context.Context, req types.EphemerisRequest) (types.EphemerisResponse, error)
	RiseTransitSet(ctx context.Context, req types.RiseTransitSetRequest) (types.RiseTransitSetResponse, error)
	Phenomena(ctx context.Context, req types.PhenomenaRequest) (types.PhenomenaResponse, error)
	Almanac(ctx context.Context, req types.AlmanacRequest) (types.AlmanacResponse, error)
}

// Operation names, used in cache keys, metrics and logs.
const (
	OpCoordinates    = "coordinates"
	OpEphemeris      = "ephemeris"
	OpRiseTransitSet = "rise_transit_set"
	OpPhenomena      = "phenomena"
	OpAlmanac        = "almanac"
)
