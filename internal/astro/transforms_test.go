// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquatorialToGalactic(t *testing.T) {
	// M31
	g := EquatorialToGalactic(10.68470833, 41.26875)
	assert.InDelta(t, 121.1743221, g.L, 1e-4)
	assert.InDelta(t, -21.5733112, g.B, 1e-4)

	pole := EquatorialToGalactic(192.85948, 27.12825)
	assert.InDelta(t, 90.0, pole.B, 1e-3)

	eq := GalacticToEquatorial(g.L, g.B)
	assert.InDelta(t, 10.68470833, eq.RA, 1e-8)
	assert.InDelta(t, 41.26875, eq.Dec, 1e-8)
}

func TestEclipticRoundTrip(t *testing.T) {
	eps := Obliquity(J2000)
	ec := EquatorialToEcliptic(0, 0, eps)
	assert.InDelta(t, 0.0, ec.Lon, 1e-9)
	assert.InDelta(t, 0.0, ec.Lat, 1e-9)

	// The summer solstice point lies on the ecliptic at longitude 90.
	ec = EquatorialToEcliptic(90, eps, eps)
	assert.InDelta(t, 90.0, ec.Lon, 1e-9)
	assert.InDelta(t, 0.0, ec.Lat, 1e-9)

	for _, p := range [][2]float64{{10.68, 41.27}, {83.82, -5.39}, {279.23, 38.78}, {350, -80}} {
		ec := EquatorialToEcliptic(p[0], p[1], eps)
		eq := EclipticToEquatorial(ec.Lon, ec.Lat, eps)
		assert.InDelta(t, p[0], eq.RA, 1e-8)
		assert.InDelta(t, p[1], eq.Dec, 1e-8)
	}
}

func TestEquatorialToHorizontal(t *testing.T) {
	// On the meridian at the observer's latitude: zenith.
	hz := EquatorialToHorizontal(100, 40, 40, 100, false)
	assert.InDelta(t, 90.0, hz.Altitude, 1e-5)

	// The celestial pole sits at altitude = latitude, due north.
	hz = EquatorialToHorizontal(0, 90, 52, 123, false)
	assert.InDelta(t, 52.0, hz.Altitude, 1e-9)

	// West of the meridian (positive hour angle) means azimuth > 180.
	hz = EquatorialToHorizontal(70, 10, 40, 100, false)
	assert.Greater(t, hz.Azimuth, 180.0)

	// East of the meridian means azimuth < 180.
	hz = EquatorialToHorizontal(130, 10, 40, 100, false)
	assert.Less(t, hz.Azimuth, 180.0)
}

func TestRefractionRaisesAltitude(t *testing.T) {
	geo := EquatorialToHorizontal(70, 10, 40, 100, false)
	app := EquatorialToHorizontal(70, 10, 40, 100, true)
	assert.Greater(t, app.Altitude, geo.Altitude)
	assert.InDelta(t, geo.Azimuth, app.Azimuth, 1e-12)
}

func TestHorizontalRoundTrip(t *testing.T) {
	for _, p := range [][2]float64{{70, 10}, {130, 10}, {250, -20}, {5, 60}} {
		hz := EquatorialToHorizontal(p[0], p[1], 40, 100, false)
		eq := HorizontalToEquatorial(hz.Altitude, hz.Azimuth, 40, 100)
		assert.InDelta(t, p[0], eq.RA, 1e-6, "ra %v", p)
		assert.InDelta(t, p[1], eq.Dec, 1e-6, "dec %v", p)
	}
}

func TestRefraction(t *testing.T) {
	assert.InDelta(t, 0.5747, Refraction(0), 1e-3)
	assert.Equal(t, 0.0, Refraction(-2))
	assert.InDelta(t, Refraction(0), Refraction(-0.5), 1e-12)
	assert.InDelta(t, 0.0, Refraction(90), 1e-3)
	assert.Greater(t, Refraction(5), Refraction(45))
}

func TestAirmass(t *testing.T) {
	x, ok := Airmass(90)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, x, 1e-3)

	x, ok = Airmass(30)
	assert.True(t, ok)
	assert.InDelta(t, 2.0, x, 0.01)

	_, ok = Airmass(0)
	assert.False(t, ok)
	_, ok = Airmass(-5)
	assert.False(t, ok)
}

func TestSeparation(t *testing.T) {
	assert.InDelta(t, 90.0, Separation(0, 0, 90, 0), 1e-9)
	assert.InDelta(t, 90.0, Haversine(0, 0, 90, 0), 1e-9)
	assert.InDelta(t, 180.0, Haversine(0, 90, 0, -90), 1e-9)
	assert.InDelta(t, 5.0, HaversineArcsec(10, 41, 10, 41+5.0/3600), 1e-6)
	assert.InDelta(t, HaversineArcsec(359.999, 0, 0.001, 0), 7.2, 1e-6)
}
