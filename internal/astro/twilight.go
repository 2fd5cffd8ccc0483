// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import (
	"math"
	"time"

	"github.com/pdiddy/skyquery/pkg/types"
)

// Solar altitudes bounding each twilight phase. Sunrise and sunset include
// refraction and the solar semidiameter.
const (
	AltitudeSunrise      = -0.8333
	AltitudeCivil        = -6.0
	AltitudeNautical     = -12.0
	AltitudeAstronomical = -18.0
)

const riseSetIterations = 5

// Twilight computes sunrise, sunset, solar noon and the civil, nautical and
// astronomical twilight boundaries for the UTC calendar date of date.
func Twilight(date time.Time, lat, lon float64) types.TwilightTimes {
	mid := Midnight(date)
	jdNoon := JulianDate(mid) + 0.5
	out := types.TwilightTimes{Date: mid.Format(time.DateOnly)}

	noon := solarNoon(jdNoon, lon)
	out.SolarNoon = &noon

	cosH := cosHourAngle(lat, Sun(jdNoon).Dec, AltitudeSunrise)
	out.IsPolarDay = cosH < -1
	out.IsPolarNight = cosH > 1
	if out.IsPolarDay {
		return out
	}
	// In polar night the Sun may still reach the twilight depressions.
	if !out.IsPolarNight {
		out.Sunrise, out.Sunset = sunCrossings(jdNoon, lat, noon, AltitudeSunrise)
	}
	out.CivilDawn, out.CivilDusk = sunCrossings(jdNoon, lat, noon, AltitudeCivil)
	out.NauticalDawn, out.NauticalDusk = sunCrossings(jdNoon, lat, noon, AltitudeNautical)
	out.AstronomicalDawn, out.AstronomicalDusk = sunCrossings(jdNoon, lat, noon, AltitudeAstronomical)
	return out
}

// solarNoon applies a two-term equation of time to 12:00 local mean time.
func solarNoon(jdNoon, lon float64) time.Time {
	n := jdNoon - J2000
	g := Normalize(357.528+0.9856003*n) * rad
	eot := -7.655*math.Sin(g) + 9.873*math.Sin(2*g+3.588)
	hours := 12 - eot/60 - lon/15
	return TimeFromJD(jdNoon - 0.5 + hours/24).Truncate(time.Second)
}

func cosHourAngle(lat, dec, alt float64) float64 {
	return (math.Sin(alt*rad) - math.Sin(lat*rad)*math.Sin(dec*rad)) /
		(math.Cos(lat*rad) * math.Cos(dec*rad))
}

// sunCrossings finds when the Sun passes alt before and after noon,
// refining the declination at each estimate. Both are nil when the Sun
// never reaches alt that day.
func sunCrossings(jdNoon, lat float64, noon time.Time, alt float64) (*time.Time, *time.Time) {
	jdRise, jdSet := jdNoon-0.25, jdNoon+0.25
	var rise, set time.Time
	for range riseSetIterations {
		cosRise := cosHourAngle(lat, Sun(jdRise).Dec, alt)
		cosSet := cosHourAngle(lat, Sun(jdSet).Dec, alt)
		if math.Abs(cosRise) > 1 || math.Abs(cosSet) > 1 {
			return nil, nil
		}
		rise = noon.Add(-hourAngleDuration(math.Acos(cosRise) / rad))
		set = noon.Add(hourAngleDuration(math.Acos(cosSet) / rad))
		jdRise, jdSet = JulianDate(rise), JulianDate(set)
	}
	return &rise, &set
}

// hourAngleDuration converts an hour angle in degrees to whole seconds of
// time.
func hourAngleDuration(h float64) time.Duration {
	return time.Duration(h/15*3600) * time.Second
}
