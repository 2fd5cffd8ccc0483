// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import "math"

// SunCoords is the apparent geocentric position of the Sun.
type SunCoords struct {
	RA        float64
	Dec       float64
	Longitude float64 // apparent ecliptic longitude
	Distance  float64 // AU
}

// Sun computes the apparent position of the Sun (Meeus chapter 25, low
// accuracy, about 0.01°).
func Sun(jd float64) SunCoords {
	t := Centuries(jd)
	l0 := Normalize(280.46646 + 36000.76983*t + 0.0003032*t*t)
	m := Normalize(357.52911 + 35999.05029*t - 0.0001537*t*t)
	mr := m * rad
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(mr) +
		(0.019993-0.000101*t)*math.Sin(2*mr) +
		0.000289*math.Sin(3*mr)

	omega := (125.04 - 1934.136*t) * rad
	lambda := l0 + c - 0.00569 - 0.00478*math.Sin(omega)
	eps := (Obliquity(jd) + 0.00256*math.Cos(omega)) * rad

	sinL, cosL := math.Sincos(lambda * rad)
	ra := math.Atan2(math.Cos(eps)*sinL, cosL)
	dec := math.Asin(math.Sin(eps) * sinL)

	e := 0.016708634 - 0.000042037*t - 0.0000001267*t*t
	v := (m + c) * rad
	r := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(v))

	return SunCoords{
		RA:        Normalize(ra / rad),
		Dec:       dec / rad,
		Longitude: Normalize(lambda),
		Distance:  r,
	}
}

// SunAltitude is the refracted altitude of the Sun for an observer.
func SunAltitude(jd, lat, lon float64) float64 {
	s := Sun(jd)
	return EquatorialToHorizontal(s.RA, s.Dec, lat, LST(jd, lon), true).Altitude
}
