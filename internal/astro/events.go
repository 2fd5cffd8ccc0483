// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/pdiddy/skyquery/pkg/types"
)

// MeteorShower is an annual shower and its peak.
type MeteorShower struct {
	Name       string
	Month      time.Month
	Day        int
	ZHR        int
	RadiantRA  float64
	RadiantDec float64
	Parent     string
}

// MeteorShowers lists the major annual showers by peak date.
var MeteorShowers = []MeteorShower{
	{"Quadrantids", time.January, 3, 120, 230, 49, "2003 EH1"},
	{"Lyrids", time.April, 22, 18, 271, 34, "C/1861 G1 Thatcher"},
	{"Eta Aquariids", time.May, 6, 50, 338, -1, "1P/Halley"},
	{"Delta Aquariids", time.July, 30, 20, 340, -16, "96P/Machholz"},
	{"Perseids", time.August, 12, 100, 48, 58, "109P/Swift-Tuttle"},
	{"Orionids", time.October, 21, 20, 95, 16, "1P/Halley"},
	{"Leonids", time.November, 17, 15, 152, 22, "55P/Tempel-Tuttle"},
	{"Geminids", time.December, 14, 150, 112, 33, "3200 Phaethon"},
	{"Ursids", time.December, 22, 10, 217, 76, "8P/Tuttle"},
}

type season struct {
	name  string
	kind  types.PhenomenonKind
	month time.Month
	day   int
}

// Mean dates; the true instant drifts by about a day.
var seasons = []season{
	{"Vernal Equinox", types.PhenomenonEquinox, time.March, 20},
	{"Summer Solstice", types.PhenomenonSolstice, time.June, 21},
	{"Autumnal Equinox", types.PhenomenonEquinox, time.September, 22},
	{"Winter Solstice", types.PhenomenonSolstice, time.December, 21},
}

// CloseApproachLimit is the Moon-planet separation, in degrees, reported as a
// close approach.
const CloseApproachLimit = 2.0

const (
	planetStep = 24 * time.Hour
	moonStep   = time.Hour

	// Planets whose elongation peaks above this are at opposition.
	oppositionElongation = 170.0
)

type sample struct {
	t time.Time
	v float64
}

// MeteorShowerEvents returns shower peaks (00:00 UTC) within [start, end].
func MeteorShowerEvents(start, end time.Time) []types.Phenomenon {
	var out []types.Phenomenon
	for y := start.UTC().Year(); y <= end.UTC().Year(); y++ {
		for _, s := range MeteorShowers {
			peak := time.Date(y, s.Month, s.Day, 0, 0, 0, 0, time.UTC)
			if !within(peak, start, end) {
				continue
			}
			out = append(out, types.Phenomenon{
				Kind: types.PhenomenonMeteorShower,
				Date: peak,
				Name: s.Name,
				Details: fmt.Sprintf("ZHR %d, radiant RA %.0f° Dec %+.0f°, parent %s",
					s.ZHR, s.RadiantRA, s.RadiantDec, s.Parent),
			})
		}
	}
	return out
}

// SeasonalEvents returns equinoxes and solstices (12:00 UTC) within
// [start, end].
func SeasonalEvents(start, end time.Time) []types.Phenomenon {
	var out []types.Phenomenon
	for y := start.UTC().Year(); y <= end.UTC().Year(); y++ {
		for _, s := range seasons {
			at := time.Date(y, s.month, s.day, 12, 0, 0, 0, time.UTC)
			if within(at, start, end) {
				out = append(out, types.Phenomenon{Kind: s.kind, Date: at, Name: s.name})
			}
		}
	}
	return out
}

// MoonPhaseEvents samples the phase at 12:00 UTC each day and reports the day
// on which it first passes each principal phase. Full moons closer than
// SupermoonDistance are marked as supermoons.
func MoonPhaseEvents(start, end time.Time) []types.Phenomenon {
	var out []types.Phenomenon
	day := Midnight(start).Add(12 * time.Hour)
	prev := Phase(JulianDate(day.AddDate(0, 0, -1))).Phase
	for ; !day.After(end); day = day.AddDate(0, 0, 1) {
		jd := JulianDate(day)
		ph := Phase(jd)
		kind, name := phaseCrossing(prev, ph.Phase)
		prev = ph.Phase
		if kind == "" || day.Before(start) {
			continue
		}
		ev := types.Phenomenon{
			Kind:    kind,
			Date:    day,
			Name:    name,
			Bodies:  []types.Body{types.BodyMoon},
			Details: fmt.Sprintf("illumination %.1f%%", ph.Illumination),
		}
		if kind == types.PhenomenonFullMoon {
			if d := Moon(jd).Distance; d < SupermoonDistance {
				ev.Name = "Full Moon (Supermoon)"
				ev.Details += fmt.Sprintf(", distance %.0f km", d)
			}
		}
		out = append(out, ev)
	}
	return out
}

func phaseCrossing(prev, cur float64) (types.PhenomenonKind, string) {
	switch {
	case prev > 0.9 && cur < 0.1:
		return types.PhenomenonNewMoon, "New Moon"
	case prev < 0.25 && cur >= 0.25:
		return types.PhenomenonFirstQuarter, "First Quarter"
	case prev < 0.5 && cur >= 0.5:
		return types.PhenomenonFullMoon, "Full Moon"
	case prev < 0.75 && cur >= 0.75:
		return types.PhenomenonLastQuarter, "Last Quarter"
	}
	return "", ""
}

// Conjunctions reports the closest approach of every pair of bodies whose
// separation has a local minimum no greater than maxSep degrees.
func Conjunctions(bodies []types.Body, start, end time.Time, maxSep float64) []types.Phenomenon {
	var out []types.Phenomenon
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			series := sampleSeparation(a, b, start, end, planetStep)
			for _, m := range extrema(series, true) {
				if m.v > maxSep || !within(m.t, start, end) {
					continue
				}
				sep := m.v
				out = append(out, types.Phenomenon{
					Kind:       types.PhenomenonConjunction,
					Date:       m.t,
					Name:       fmt.Sprintf("%s-%s conjunction", a, b),
					Bodies:     []types.Body{a, b},
					Separation: &sep,
				})
			}
		}
	}
	return out
}

// CloseApproaches reports Moon-planet minima under CloseApproachLimit,
// sampled hourly.
func CloseApproaches(bodies []types.Body, start, end time.Time) []types.Phenomenon {
	var out []types.Phenomenon
	for _, b := range bodies {
		if b == types.BodyMoon || b == types.BodySun {
			continue
		}
		series := sampleSeparation(types.BodyMoon, b, start, end, moonStep)
		for _, m := range extrema(series, true) {
			if m.v >= CloseApproachLimit || !within(m.t, start, end) {
				continue
			}
			sep := m.v
			out = append(out, types.Phenomenon{
				Kind:       types.PhenomenonCloseApproach,
				Date:       m.t,
				Name:       fmt.Sprintf("Moon near %s", b),
				Bodies:     []types.Body{types.BodyMoon, b},
				Separation: &sep,
			})
		}
	}
	return out
}

// Oppositions reports superior planets whose elongation peaks near 180°.
func Oppositions(bodies []types.Body, start, end time.Time) []types.Phenomenon {
	var out []types.Phenomenon
	for _, b := range bodies {
		if b == types.BodyMercury || b == types.BodyVenus || !HasPlanet(b) {
			continue
		}
		for _, m := range extrema(sampleElongation(b, start, end), false) {
			if m.v < oppositionElongation || !within(m.t, start, end) {
				continue
			}
			el := m.v
			out = append(out, types.Phenomenon{
				Kind:       types.PhenomenonOpposition,
				Date:       m.t,
				Name:       fmt.Sprintf("%s at opposition", b),
				Bodies:     []types.Body{b},
				Elongation: &el,
			})
		}
	}
	return out
}

// GreatestElongations reports elongation maxima of Mercury and Venus.
func GreatestElongations(bodies []types.Body, start, end time.Time) []types.Phenomenon {
	var out []types.Phenomenon
	for _, b := range bodies {
		if b != types.BodyMercury && b != types.BodyVenus {
			continue
		}
		for _, m := range extrema(sampleElongation(b, start, end), false) {
			if !within(m.t, start, end) {
				continue
			}
			el := m.v
			out = append(out, types.Phenomenon{
				Kind:       types.PhenomenonElongation,
				Date:       m.t,
				Name:       fmt.Sprintf("%s at greatest %s elongation", b, elongationSide(b, m.t)),
				Bodies:     []types.Body{b},
				Elongation: &el,
			})
		}
	}
	return out
}

// elongationSide is "eastern" when the planet trails the Sun in ecliptic
// longitude (an evening apparition).
func elongationSide(b types.Body, t time.Time) string {
	jd := JulianDate(t)
	p, _ := Planet(b, jd)
	lon := EquatorialToEcliptic(p.RA, p.Dec, Obliquity(jd)).Lon
	if Normalize(lon-Sun(jd).Longitude) < 180 {
		return "eastern"
	}
	return "western"
}

// SortEvents orders events by date, keeping the input order for ties.
func SortEvents(events []types.Phenomenon) {
	slices.SortStableFunc(events, func(a, b types.Phenomenon) int {
		return a.Date.Compare(b.Date)
	})
}

// Highlights summarizes the sky at t for an observer.
func Highlights(t time.Time, lat, lon float64) []string {
	jd := JulianDate(t)
	lst := LST(jd, lon)
	ph := Phase(jd)
	out := []string{fmt.Sprintf("Moon: %s (%.0f%% illuminated)", ph.Name, ph.Illumination)}

	m := Moon(jd)
	if hz := EquatorialToHorizontal(m.RA, m.Dec, lat, lst, true); hz.Altitude > 0 {
		out = append(out, fmt.Sprintf("Moon altitude: %.1f° (azimuth %.1f°)", hz.Altitude, hz.Azimuth))
	} else {
		out = append(out, "Moon is below the horizon")
	}

	switch alt := SunAltitude(jd, lat, lon); {
	case alt < AltitudeAstronomical:
		out = append(out, "Astronomical darkness - ideal for deep sky observation")
	case alt < AltitudeNautical:
		out = append(out, "Nautical twilight - good for bright objects")
	case alt < AltitudeCivil:
		out = append(out, "Civil twilight - planets and bright stars visible")
	case alt < 0:
		out = append(out, "Sun just below horizon")
	default:
		out = append(out, "Daytime - wait for sunset")
	}
	return out
}

// sampleSeparation samples the separation of a and b from one step before
// start to one step after end so that extrema at the edges are found.
func sampleSeparation(a, b types.Body, start, end time.Time, step time.Duration) []sample {
	var out []sample
	for t := start.Add(-step); !t.After(end.Add(step)); t = t.Add(step) {
		jd := JulianDate(t)
		ra1, dec1, ok1 := Position(a, jd)
		ra2, dec2, ok2 := Position(b, jd)
		if !ok1 || !ok2 {
			return nil
		}
		out = append(out, sample{t, Separation(ra1, dec1, ra2, dec2)})
	}
	return out
}

func sampleElongation(b types.Body, start, end time.Time) []sample {
	var out []sample
	for t := start.Add(-planetStep); !t.After(end.Add(planetStep)); t = t.Add(planetStep) {
		p, ok := Planet(b, JulianDate(t))
		if !ok {
			return nil
		}
		out = append(out, sample{t, p.Elongation})
	}
	return out
}

// extrema returns interior local minima (or maxima) of s, refined by fitting
// a parabola through each extremum and its neighbours.
func extrema(s []sample, minima bool) []sample {
	var out []sample
	for i := 1; i+1 < len(s); i++ {
		y0, y1, y2 := s[i-1].v, s[i].v, s[i+1].v
		isExt := y1 <= y0 && y1 < y2
		if !minima {
			isExt = y1 >= y0 && y1 > y2
		}
		if !isExt {
			continue
		}
		x, y := 0.0, y1
		if den := y0 - 2*y1 + y2; den != 0 {
			x = clamp((y0-y2)/(2*den), -1, 1)
			y = y1 - (y0-y2)*x/4
		}
		step := s[i+1].t.Sub(s[i].t)
		at := s[i].t.Add(time.Duration(x * float64(step))).Truncate(time.Second)
		out = append(out, sample{at, math.Max(y, 0)})
	}
	return out
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
