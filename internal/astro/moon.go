// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import (
	"math"

	"github.com/pdiddy/skyquery/pkg/types"
)

const (
	// SynodicMonth is the mean length of a lunation in days.
	SynodicMonth = 29.530588853

	referenceNewMoon = 2451550.1

	// SupermoonDistance is the geocentric distance in km below which a full
	// moon counts as a supermoon.
	SupermoonDistance = 360000.0
)

// MoonCoords is the geocentric position of the Moon.
type MoonCoords struct {
	RA        float64
	Dec       float64
	Longitude float64 // ecliptic
	Latitude  float64 // ecliptic
	Distance  float64 // km
}

type lunarTerm struct {
	d, m, mp, f float64
	coeff       float64
}

// Largest periodic terms of Meeus tables 47.A and 47.B. Coefficients are in
// 1e-6 degrees for longitude and latitude, and metres for distance.
var (
	lonTerms = []lunarTerm{
		{0, 0, 1, 0, 6288774},
		{2, 0, -1, 0, 1274027},
		{2, 0, 0, 0, 658314},
		{0, 0, 2, 0, 213618},
		{0, 1, 0, 0, -185116},
		{0, 0, 0, 2, -114332},
		{2, 0, -2, 0, 58793},
		{2, -1, -1, 0, 57066},
		{2, 0, 1, 0, 53322},
		{2, -1, 0, 0, 45758},
		{0, 1, -1, 0, -40923},
		{1, 0, 0, 0, -34720},
		{0, 1, 1, 0, -30383},
		{2, 0, 0, -2, 15327},
	}
	latTerms = []lunarTerm{
		{0, 0, 0, 1, 5128122},
		{0, 0, 1, 1, 280602},
		{0, 0, 1, -1, 277693},
		{2, 0, 0, -1, 173237},
		{2, 0, -1, 1, 55413},
		{2, 0, -1, -1, 46271},
		{2, 0, 0, 1, 32573},
		{0, 0, 2, 1, 17198},
	}
	distTerms = []lunarTerm{
		{0, 0, 1, 0, -20905355},
		{2, 0, -1, 0, -3699111},
		{2, 0, 0, 0, -2955968},
		{0, 0, 2, 0, -569925},
		{0, 1, 0, 0, 48888},
		{0, 0, 0, 2, -3149},
		{2, 0, -2, 0, 246158},
		{2, -1, -1, 0, -152138},
	}
)

// Moon computes the geocentric position of the Moon from the leading terms
// of the ELP-2000/82 series (a few arcminutes).
func Moon(jd float64) MoonCoords {
	t := Centuries(jd)
	t2, t3 := t*t, t*t*t
	lp := Normalize(218.3164477 + 481267.88123421*t - 0.0015786*t2 + t3/538841)
	mp := Normalize(134.9633964+477198.8675055*t+0.0087414*t2+t3/69699) * rad
	m := Normalize(357.5291092+35999.0502909*t-0.0001536*t2) * rad
	d := Normalize(297.8501921+445267.1114034*t-0.0018819*t2+t3/545868) * rad
	f := Normalize(93.2720950+483202.0175233*t-0.0036539*t2) * rad

	arg := func(k lunarTerm) float64 { return k.d*d + k.m*m + k.mp*mp + k.f*f }
	var sl, sb, sr float64
	for _, k := range lonTerms {
		sl += k.coeff * math.Sin(arg(k))
	}
	for _, k := range latTerms {
		sb += k.coeff * math.Sin(arg(k))
	}
	for _, k := range distTerms {
		sr += k.coeff * math.Cos(arg(k))
	}

	lon := Normalize(lp + sl/1e6)
	lat := sb / 1e6
	eq := EclipticToEquatorial(lon, lat, Obliquity(jd))
	return MoonCoords{
		RA:        eq.RA,
		Dec:       eq.Dec,
		Longitude: lon,
		Latitude:  lat,
		Distance:  385000.56 + sr/1000,
	}
}

// Phase returns the lunar phase for jd from the mean synodic month.
func Phase(jd float64) types.MoonPhase {
	lunations := (jd - referenceNewMoon) / SynodicMonth
	p := lunations - math.Floor(lunations)
	return types.MoonPhase{
		Phase:        p,
		Illumination: (1 - math.Cos(2*math.Pi*p)) / 2 * 100,
		Age:          p * SynodicMonth,
		Name:         PhaseName(p),
		Waxing:       p < 0.5,
	}
}

// PhaseName names a phase fraction in eight equal bins centred on the
// principal phases.
func PhaseName(p float64) string {
	switch {
	case p < 0.0625:
		return "New Moon"
	case p < 0.1875:
		return "Waxing Crescent"
	case p < 0.3125:
		return "First Quarter"
	case p < 0.4375:
		return "Waxing Gibbous"
	case p < 0.5625:
		return "Full Moon"
	case p < 0.6875:
		return "Waning Gibbous"
	case p < 0.8125:
		return "Last Quarter"
	case p < 0.9375:
		return "Waning Crescent"
	default:
		return "New Moon"
	}
}
