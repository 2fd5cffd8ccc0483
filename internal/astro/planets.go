// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import (
	"math"

	"github.com/pdiddy/skyquery/pkg/types"
)

// J2000 mean obliquity, the frame of the orbital elements.
const eclipticJ2000 = 23.43928

// elements are Keplerian elements at J2000 and their rates per Julian century
// (Standish, "Keplerian Elements for Approximate Positions of the Major
// Planets", table 1, valid 1800-2050).
type elements struct {
	a, e, i, l, peri, node                   float64
	aDot, eDot, iDot, lDot, periDot, nodeDot float64
}

var (
	earthElements = elements{
		1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
		0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0,
	}

	planetElements = map[types.Body]elements{
		types.BodyMercury: {
			0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
			0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081,
		},
		types.BodyVenus: {
			0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
			0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418,
		},
		types.BodyMars: {
			1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
			0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343,
		},
		types.BodyJupiter: {
			5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
			-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106,
		},
		types.BodySaturn: {
			9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
			-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794,
		},
		types.BodyUranus: {
			19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
			-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589,
		},
		types.BodyNeptune: {
			30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
			0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664,
		},
	}
)

// PlanetCoords is the geometric geocentric position of a planet.
type PlanetCoords struct {
	RA         float64
	Dec        float64
	Distance   float64 // AU from Earth
	SunDist    float64 // AU from the Sun
	Elongation float64 // Sun-Earth-planet angle
	PhaseAngle float64 // Sun-planet-Earth angle
	Phase      float64 // illuminated fraction
	Magnitude  float64
}

// HasPlanet reports whether Planet can compute b.
func HasPlanet(b types.Body) bool {
	_, ok := planetElements[b]
	return ok
}

// Planet computes the position of a major planet. ok is false for bodies
// without orbital elements (the Sun, the Moon, Pluto).
func Planet(b types.Body, jd float64) (PlanetCoords, bool) {
	el, ok := planetElements[b]
	if !ok {
		return PlanetCoords{}, false
	}
	t := Centuries(jd)
	p := heliocentric(el, t)
	e := heliocentric(earthElements, t)
	g := [3]float64{p[0] - e[0], p[1] - e[1], p[2] - e[2]}

	sinE, cosE := math.Sincos(eclipticJ2000 * rad)
	x := g[0]
	y := g[1]*cosE - g[2]*sinE
	z := g[1]*sinE + g[2]*cosE

	delta := norm(g)
	r := norm(p)
	rEarth := norm(e)

	phaseAngle := math.Acos(clamp((r*r+delta*delta-rEarth*rEarth)/(2*r*delta), -1, 1)) / rad
	elong := math.Acos(clamp((rEarth*rEarth+delta*delta-r*r)/(2*rEarth*delta), -1, 1)) / rad

	return PlanetCoords{
		RA:         Normalize(math.Atan2(y, x) / rad),
		Dec:        math.Atan2(z, math.Hypot(x, y)) / rad,
		Distance:   delta,
		SunDist:    r,
		Elongation: elong,
		PhaseAngle: phaseAngle,
		Phase:      (1 + math.Cos(phaseAngle*rad)) / 2,
		Magnitude:  magnitude(b, r, delta, phaseAngle),
	}, true
}

// heliocentric returns J2000 ecliptic rectangular coordinates in AU.
func heliocentric(el elements, t float64) [3]float64 {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	i := (el.i + el.iDot*t) * rad
	l := el.l + el.lDot*t
	peri := el.peri + el.periDot*t
	node := el.node + el.nodeDot*t

	w := (peri - node) * rad
	m := Normalize(l-peri) * rad
	ea := solveKepler(m, e)

	xp := a * (math.Cos(ea) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ea)

	sinW, cosW := math.Sincos(w)
	sinN, cosN := math.Sincos(node * rad)
	sinI, cosI := math.Sincos(i)
	return [3]float64{
		(cosW*cosN-sinW*sinN*cosI)*xp + (-sinW*cosN-cosW*sinN*cosI)*yp,
		(cosW*sinN+sinW*cosN*cosI)*xp + (-sinW*sinN+cosW*cosN*cosI)*yp,
		sinW*sinI*xp + cosW*sinI*yp,
	}
}

// solveKepler solves E - e sin E = M by Newton iteration.
func solveKepler(m, e float64) float64 {
	ea := m + e*math.Sin(m)
	for range 20 {
		d := (ea - e*math.Sin(ea) - m) / (1 - e*math.Cos(ea))
		ea -= d
		if math.Abs(d) < 1e-12 {
			break
		}
	}
	return ea
}

func norm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// magnitude uses the Astronomical Almanac phase laws (Meeus 41.4). Saturn's
// rings are ignored.
func magnitude(b types.Body, r, delta, i float64) float64 {
	base := 5 * math.Log10(r*delta)
	switch b {
	case types.BodyMercury:
		return -0.42 + base + 0.0380*i - 0.000273*i*i + 0.000002*i*i*i
	case types.BodyVenus:
		return -4.40 + base + 0.0009*i + 0.000239*i*i - 0.00000065*i*i*i
	case types.BodyMars:
		return -1.52 + base + 0.016*i
	case types.BodyJupiter:
		return -9.40 + base + 0.005*i
	case types.BodySaturn:
		return -8.88 + base
	case types.BodyUranus:
		return -7.19 + base
	case types.BodyNeptune:
		return -6.87 + base
	}
	return 0
}
