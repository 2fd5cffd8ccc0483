// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import (
	"math"
	"time"

	"github.com/pdiddy/skyquery/pkg/types"
)

const (
	// horizonDip is the standard refraction at the horizon for a point source.
	horizonDip = -0.5667

	siderealDay = 86164.0905

	darkSampleStep = 5 * time.Minute
)

// Visibility computes rise, transit and set for a fixed RA/Dec on the UTC
// date of t, the object's position at t, and how long it stays above
// minAlt during that night's astronomical darkness. Meta is left zero.
func Visibility(ra, dec, lat, lon float64, t time.Time, minAlt float64) types.RiseTransitSetResponse {
	jd := JulianDate(t)
	cur := EquatorialToHorizontal(ra, dec, lat, LST(jd, lon), true)

	out := types.RiseTransitSetResponse{
		CurrentAltitude: cur.Altitude,
		CurrentAzimuth:  cur.Azimuth,
		TransitAltitude: 90 - math.Abs(lat-dec),
		IsVisible:       cur.Altitude >= minAlt,
	}

	cosH0 := clamp(cosHourAngle(lat, dec, horizonDip), -1, 1)
	switch {
	case cosH0 <= -1:
		out.IsCircumpolar = true
		out.HoursVisible = 24
		transit := transitTime(ra, lon, t)
		out.TransitTime = &transit
	case cosH0 >= 1:
		out.NeverRises = true
	default:
		h0 := math.Acos(cosH0) / rad
		out.HoursVisible = 2 * h0 / 15
		transit := transitTime(ra, lon, t)
		rise := transit.Add(-hourAngleDuration(h0))
		set := transit.Add(hourAngleDuration(h0))
		out.TransitTime, out.RiseTime, out.SetTime = &transit, &rise, &set
	}

	start, end, ok := DarkWindow(t, lat, lon)
	if ok {
		out.DarkStart, out.DarkEnd = &start, &end
		if !out.NeverRises {
			out.DarkImagingHours = hoursAbove(ra, dec, lat, lon, minAlt, start, end)
		}
	}
	return out
}

// transitTime returns the meridian transit nearest to 00:00 UTC of t's date,
// converting hour angle to time at the sidereal rate.
func transitTime(ra, lon float64, t time.Time) time.Time {
	mid := Midnight(t)
	ha := Normalize(GMST(JulianDate(mid)) + lon - ra)
	toTransit := -ha
	if ha > 180 {
		toTransit = 360 - ha
	}
	seconds := toTransit / 15 * 3600 * (siderealDay / 86400)
	return mid.Add(time.Duration(seconds) * time.Second)
}

// DarkWindow returns the span of astronomical darkness beginning on the
// evening of t's UTC date. ok is false when the Sun never gets 18° below the
// horizon that night.
func DarkWindow(t time.Time, lat, lon float64) (start, end time.Time, ok bool) {
	tonight := Twilight(t, lat, lon)
	tomorrow := Twilight(t.AddDate(0, 0, 1), lat, lon)
	if tonight.IsPolarNight {
		mid := Midnight(t)
		noonDec := Sun(JulianDate(mid) + 0.5).Dec
		if 90-math.Abs(lat-noonDec) < AltitudeAstronomical {
			return mid.Add(12 * time.Hour), mid.Add(36 * time.Hour), true
		}
	}
	if tonight.AstronomicalDusk == nil || tomorrow.AstronomicalDawn == nil {
		return time.Time{}, time.Time{}, false
	}
	if !tomorrow.AstronomicalDawn.After(*tonight.AstronomicalDusk) {
		return time.Time{}, time.Time{}, false
	}
	return *tonight.AstronomicalDusk, *tomorrow.AstronomicalDawn, true
}

// hoursAbove samples the object's altitude across [start, end) and returns
// the time spent at or above minAlt.
func hoursAbove(ra, dec, lat, lon, minAlt float64, start, end time.Time) float64 {
	var above time.Duration
	for s := start; s.Before(end); s = s.Add(darkSampleStep) {
		step := darkSampleStep
		if rem := end.Sub(s); rem < step {
			step = rem
		}
		jd := JulianDate(s.Add(step / 2))
		if EquatorialToHorizontal(ra, dec, lat, LST(jd, lon), true).Altitude >= minAlt {
			above += step
		}
	}
	return above.Hours()
}
