// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import (
	"math"

	"github.com/pdiddy/skyquery/pkg/types"
)

const sunMagnitude = -26.74

// Position returns the geocentric RA/Dec of a solar-system body. ok is false
// for bodies this package cannot compute.
func Position(b types.Body, jd float64) (ra, dec float64, ok bool) {
	switch b {
	case types.BodySun:
		s := Sun(jd)
		return s.RA, s.Dec, true
	case types.BodyMoon:
		m := Moon(jd)
		return m.RA, m.Dec, true
	}
	p, ok := Planet(b, jd)
	return p.RA, p.Dec, ok
}

// BodyPoint is one ephemeris sample for a named body, seen from lat/lon.
func BodyPoint(b types.Body, jd, lat, lon float64) (types.EphemerisPoint, bool) {
	lst := LST(jd, lon)
	sun := Sun(jd)
	var pt types.EphemerisPoint

	switch b {
	case types.BodySun:
		pt.RA, pt.Dec, pt.Distance = sun.RA, sun.Dec, sun.Distance
		mag, phase := sunMagnitude, 1.0
		pt.Magnitude, pt.PhaseFraction = &mag, &phase
	case types.BodyMoon:
		m := Moon(jd)
		pt.RA, pt.Dec, pt.Distance = m.RA, m.Dec, m.Distance
		pt.Elongation = Separation(m.RA, m.Dec, sun.RA, sun.Dec)
		phase := Phase(jd).Illumination / 100
		// Phase angle is close to the supplement of elongation.
		i := 180 - pt.Elongation
		mag := -12.73 + 0.026*math.Abs(i) + 4e-9*math.Pow(i, 4)
		pt.Magnitude, pt.PhaseFraction = &mag, &phase
	default:
		p, ok := Planet(b, jd)
		if !ok {
			return types.EphemerisPoint{}, false
		}
		pt.RA, pt.Dec, pt.Distance = p.RA, p.Dec, p.Distance
		pt.Elongation = p.Elongation
		mag, phase := p.Magnitude, p.Phase
		pt.Magnitude, pt.PhaseFraction = &mag, &phase
	}

	hz := EquatorialToHorizontal(pt.RA, pt.Dec, lat, lst, true)
	pt.Time = TimeFromJD(jd)
	pt.Altitude, pt.Azimuth = hz.Altitude, hz.Azimuth
	return pt, true
}

// FixedPoint is one ephemeris sample for a fixed RA/Dec.
func FixedPoint(ra, dec, jd, lat, lon float64) types.EphemerisPoint {
	sun := Sun(jd)
	hz := EquatorialToHorizontal(ra, dec, lat, LST(jd, lon), true)
	return types.EphemerisPoint{
		Time:       TimeFromJD(jd),
		RA:         ra,
		Dec:        dec,
		Altitude:   hz.Altitude,
		Azimuth:    hz.Azimuth,
		Elongation: Separation(ra, dec, sun.RA, sun.Dec),
	}
}
