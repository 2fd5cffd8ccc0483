// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compute

import (
	"context"
	"slices"
	"time"

	"github.com/pdiddy/skyquery/internal/astro"
	"github.com/pdiddy/skyquery/pkg/types"
)

// Fallback computes every operation in process with the astro package. It
// serves the Sun, the Moon and Mercury through Neptune.
type Fallback struct {
	now func() time.Time
}

// NewFallback returns the in-process backend.
func NewFallback() *Fallback {
	return &Fallback{now: time.Now}
}

// Kind implements Backend.
func (f *Fallback) Kind() types.BackendKind { return types.BackendFallback }

func (f *Fallback) meta() types.Meta {
	return types.Meta{Backend: types.BackendFallback, ComputedAt: f.now().UTC()}
}

// Coordinates implements Backend.
func (f *Fallback) Coordinates(_ context.Context, req types.CoordinatesRequest) (types.CoordinatesResponse, error) {
	if err := validateCoordinates(req); err != nil {
		return types.CoordinatesResponse{}, err
	}
	jd := astro.JulianDate(req.Time)
	lst := astro.LST(jd, req.Observer.Longitude)
	refraction := req.ApplyRefraction == nil || *req.ApplyRefraction

	hz := astro.EquatorialToHorizontal(req.RA, req.Dec, req.Observer.Latitude, lst, refraction)
	resp := types.CoordinatesResponse{
		Equatorial: types.EquatorialCoords{RA: req.RA, Dec: req.Dec},
		Horizontal: hz,
		Galactic:   astro.EquatorialToGalactic(req.RA, req.Dec),
		Ecliptic:   astro.EquatorialToEcliptic(req.RA, req.Dec, astro.Obliquity(jd)),
		LSTDegrees: lst,
		LSTHours:   lst / 15,
		HourAngle:  astro.HourAngle(lst, req.RA),
		Meta:       f.meta(),
	}
	if x, ok := astro.Airmass(hz.Altitude); ok {
		resp.Airmass = &x
	}
	return resp, nil
}

// Ephemeris implements Backend.
func (f *Fallback) Ephemeris(ctx context.Context, req types.EphemerisRequest) (types.EphemerisResponse, error) {
	req, err := normalizeEphemeris(req)
	if err != nil {
		return types.EphemerisResponse{}, err
	}
	if req.Body != types.BodyCustom {
		if err := checkBody(req.Body, types.BackendFallback); err != nil {
			return types.EphemerisResponse{}, err
		}
	}
	lat, lon := req.Observer.Latitude, req.Observer.Longitude
	points := make([]types.EphemerisPoint, 0, req.Steps)
	for i := range req.Steps {
		if err := ctx.Err(); err != nil {
			return types.EphemerisResponse{}, err
		}
		jd := astro.JulianDate(req.Start.Add(time.Duration(i) * req.Step))
		if req.Body == types.BodyCustom {
			points = append(points, astro.FixedPoint(*req.RA, *req.Dec, jd, lat, lon))
			continue
		}
		pt, ok := astro.BodyPoint(req.Body, jd, lat, lon)
		if !ok {
			return types.EphemerisResponse{}, &UnsupportedBodyError{Body: req.Body, Backend: types.BackendFallback}
		}
		points = append(points, pt)
	}
	return types.EphemerisResponse{Body: req.Body, Points: points, Meta: f.meta()}, nil
}

// RiseTransitSet implements Backend.
func (f *Fallback) RiseTransitSet(_ context.Context, req types.RiseTransitSetRequest) (types.RiseTransitSetResponse, error) {
	if err := validateRiseTransitSet(req); err != nil {
		return types.RiseTransitSetResponse{}, err
	}
	o := req.Observer
	resp := astro.Visibility(req.RA, req.Dec, o.Latitude, o.Longitude, req.Time, req.MinAltitude)
	resp.Meta = f.meta()
	return resp, nil
}

// Phenomena implements Backend.
func (f *Fallback) Phenomena(ctx context.Context, req types.PhenomenaRequest) (types.PhenomenaResponse, error) {
	req, err := normalizePhenomena(req)
	if err != nil {
		return types.PhenomenaResponse{}, err
	}
	for _, b := range req.Bodies {
		if err := checkBody(b, types.BackendFallback); err != nil {
			return types.PhenomenaResponse{}, err
		}
	}
	planets := slices.DeleteFunc(slices.Clone(req.Bodies), func(b types.Body) bool {
		return !astro.HasPlanet(b)
	})

	searches := []func() []types.Phenomenon{
		func() []types.Phenomenon { return astro.MoonPhaseEvents(req.Start, req.End) },
		func() []types.Phenomenon { return astro.Conjunctions(planets, req.Start, req.End, req.MaxSeparation) },
		func() []types.Phenomenon { return astro.Oppositions(planets, req.Start, req.End) },
		func() []types.Phenomenon { return astro.GreatestElongations(planets, req.Start, req.End) },
	}
	if req.IncludeCloseApproaches {
		searches = append(searches, func() []types.Phenomenon { return astro.CloseApproaches(planets, req.Start, req.End) })
	}
	if req.IncludeMeteorShowers {
		searches = append(searches, func() []types.Phenomenon { return astro.MeteorShowerEvents(req.Start, req.End) })
	}
	if req.IncludeSeasonal {
		searches = append(searches, func() []types.Phenomenon { return astro.SeasonalEvents(req.Start, req.End) })
	}

	events := []types.Phenomenon{}
	for _, search := range searches {
		if err := ctx.Err(); err != nil {
			return types.PhenomenaResponse{}, err
		}
		events = append(events, search()...)
	}
	astro.SortEvents(events)
	return types.PhenomenaResponse{Events: events, Meta: f.meta()}, nil
}

// Almanac implements Backend.
func (f *Fallback) Almanac(_ context.Context, req types.AlmanacRequest) (types.AlmanacResponse, error) {
	if err := validateAlmanac(req); err != nil {
		return types.AlmanacResponse{}, err
	}
	lat, lon := req.Observer.Latitude, req.Observer.Longitude
	jd := astro.JulianDate(req.Date)
	lst := astro.LST(jd, lon)

	sun := astro.Sun(jd)
	sunHz := astro.EquatorialToHorizontal(sun.RA, sun.Dec, lat, lst, true)
	moon := astro.Moon(jd)
	moonHz := astro.EquatorialToHorizontal(moon.RA, moon.Dec, lat, lst, true)

	tw := astro.Twilight(req.Date, lat, lon)
	return types.AlmanacResponse{
		Date: tw.Date,
		Sun: types.SunPosition{
			RA: sun.RA, Dec: sun.Dec, Altitude: sunHz.Altitude, Azimuth: sunHz.Azimuth,
		},
		Moon: types.MoonPosition{
			RA: moon.RA, Dec: moon.Dec, Altitude: moonHz.Altitude, Azimuth: moonHz.Azimuth,
			Distance: moon.Distance,
		},
		MoonPhase:  astro.Phase(jd),
		Twilight:   tw,
		Highlights: astro.Highlights(req.Date, lat, lon),
		Meta:       f.meta(),
	}, nil
}
