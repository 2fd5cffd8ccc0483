// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"slices"
	"time"
)

// Clone methods return deep copies of computation responses. Cached
// responses are cloned on the way in and on the way out, so no caller can
// reach the cache's copy.

// Clone returns a deep copy of r.
func (r CoordinatesResponse) Clone() CoordinatesResponse {
	r.Airmass = clonePtr(r.Airmass)
	return r
}

// Clone returns a deep copy of r.
func (r EphemerisResponse) Clone() EphemerisResponse {
	if r.Points != nil {
		points := make([]EphemerisPoint, len(r.Points))
		for i, p := range r.Points {
			p.Magnitude = clonePtr(p.Magnitude)
			p.PhaseFraction = clonePtr(p.PhaseFraction)
			points[i] = p
		}
		r.Points = points
	}
	return r
}

// Clone returns a deep copy of r.
func (r RiseTransitSetResponse) Clone() RiseTransitSetResponse {
	r.RiseTime = clonePtr(r.RiseTime)
	r.TransitTime = clonePtr(r.TransitTime)
	r.SetTime = clonePtr(r.SetTime)
	r.DarkStart = clonePtr(r.DarkStart)
	r.DarkEnd = clonePtr(r.DarkEnd)
	return r
}

// Clone returns a deep copy of r.
func (r PhenomenaResponse) Clone() PhenomenaResponse {
	if r.Events != nil {
		events := make([]Phenomenon, len(r.Events))
		for i, e := range r.Events {
			e.Bodies = slices.Clone(e.Bodies)
			e.Separation = clonePtr(e.Separation)
			e.Elongation = clonePtr(e.Elongation)
			events[i] = e
		}
		r.Events = events
	}
	return r
}

// Clone returns a deep copy of r.
func (r AlmanacResponse) Clone() AlmanacResponse {
	r.Twilight = r.Twilight.Clone()
	r.Highlights = slices.Clone(r.Highlights)
	return r
}

// Clone returns a deep copy of t.
func (t TwilightTimes) Clone() TwilightTimes {
	for _, p := range []**time.Time{
		&t.Sunrise, &t.Sunset,
		&t.CivilDawn, &t.CivilDusk,
		&t.NauticalDawn, &t.NauticalDusk,
		&t.AstronomicalDawn, &t.AstronomicalDusk,
		&t.SolarNoon,
	} {
		*p = clonePtr(*p)
	}
	return t
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
