// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package astro implements the low-precision positional astronomy used by
// the in-process computation backend: time scales, frame transforms, the
// Sun, the Moon, the major planets, twilight and object visibility.
//
// Angles are degrees unless a name says otherwise. Longitudes are positive
// east.
package astro

import (
	"math"
	"time"
)

const (
	// J2000 is the Julian date of 2000-01-01 12:00 TT.
	J2000 = 2451545.0

	unixEpochJD    = 2440587.5
	daysPerCentury = 36525.0

	rad = math.Pi / 180
)

// JulianDate returns the Julian date of t (Meeus, Astronomical Algorithms 7.1).
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	y, m := float64(t.Year()), float64(t.Month())
	if m <= 2 {
		y--
		m += 12
	}
	day := float64(t.Day()) +
		(float64(t.Hour())+float64(t.Minute())/60+
			(float64(t.Second())+float64(t.Nanosecond())/1e9)/3600)/24
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + day + b - 1524.5
}

// TimeFromJD converts a Julian date back to UTC, rounded to the millisecond.
func TimeFromJD(jd float64) time.Time {
	ms := math.Round((jd - unixEpochJD) * 86400 * 1000)
	return time.UnixMilli(int64(ms)).UTC()
}

// Centuries returns Julian centuries since J2000.
func Centuries(jd float64) float64 {
	return (jd - J2000) / daysPerCentury
}

// Midnight returns 00:00 UTC on the calendar day of t.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GMST returns Greenwich mean sidereal time in degrees.
func GMST(jd float64) float64 {
	t := Centuries(jd)
	return Normalize(280.46061837 + 360.98564736629*(jd-J2000) +
		0.000387933*t*t - t*t*t/38710000)
}

// LST returns local sidereal time in degrees for an east longitude.
func LST(jd, longitude float64) float64 {
	return Normalize(GMST(jd) + longitude)
}

// HourAngle returns lst - ra in [0, 360).
func HourAngle(lst, ra float64) float64 {
	return Normalize(lst - ra)
}

// Obliquity returns the mean obliquity of the ecliptic.
func Obliquity(jd float64) float64 {
	t := Centuries(jd)
	return 23.439291 - 0.0130042*t - 1.6e-7*t*t + 5.04e-7*t*t*t
}

// Normalize wraps an angle into [0, 360).
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
