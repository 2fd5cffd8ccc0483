// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/skyquery/pkg/types"
)

func TestSun(t *testing.T) {
	// 1992-10-13 0h.
	s := Sun(2448908.5)
	assert.InDelta(t, 198.38083, s.RA, 1e-3)
	assert.InDelta(t, -7.78507, s.Dec, 1e-3)
	assert.InDelta(t, 0.99766, s.Distance, 1e-4)
}

func TestMoon(t *testing.T) {
	// 1992-04-12 0h.
	m := Moon(2448724.5)
	assert.InDelta(t, 133.162655, m.Longitude, 0.5)
	assert.InDelta(t, -3.229126, m.Latitude, 0.3)
	assert.InDelta(t, 368409.7, m.Distance, 1500)
	assert.InDelta(t, 134.688470, m.RA, 0.5)
	assert.InDelta(t, 13.768368, m.Dec, 0.5)

	for d := 0.0; d < 30; d++ {
		dist := Moon(J2000 + d).Distance
		assert.Greater(t, dist, 354000.0)
		assert.Less(t, dist, 408000.0)
	}
}

func TestPhase(t *testing.T) {
	p := Phase(referenceNewMoon)
	assert.InDelta(t, 0.0, p.Phase, 1e-9)
	assert.Equal(t, "New Moon", p.Name)
	assert.InDelta(t, 0.0, p.Illumination, 1e-6)

	p = Phase(referenceNewMoon + SynodicMonth/2)
	assert.InDelta(t, 0.5, p.Phase, 1e-9)
	assert.Equal(t, "Full Moon", p.Name)
	assert.InDelta(t, 100.0, p.Illumination, 1e-6)
	assert.InDelta(t, SynodicMonth/2, p.Age, 1e-6)
	assert.False(t, p.Waxing)

	p = Phase(referenceNewMoon - SynodicMonth/4)
	assert.InDelta(t, 0.75, p.Phase, 1e-9)
	assert.Equal(t, "Last Quarter", p.Name)
}

func TestPhaseName(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0, "New Moon"},
		{0.1, "Waxing Crescent"},
		{0.25, "First Quarter"},
		{0.4, "Waxing Gibbous"},
		{0.5, "Full Moon"},
		{0.6, "Waning Gibbous"},
		{0.75, "Last Quarter"},
		{0.9, "Waning Crescent"},
		{0.97, "New Moon"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PhaseName(tt.p), "phase %v", tt.p)
	}
}

func TestPlanetElongationBounds(t *testing.T) {
	for d := 0.0; d < 800; d += 2 {
		jd := J2000 + d
		me, ok := Planet(types.BodyMercury, jd)
		require.True(t, ok)
		assert.LessOrEqual(t, me.Elongation, 28.5)

		ve, ok := Planet(types.BodyVenus, jd)
		require.True(t, ok)
		assert.LessOrEqual(t, ve.Elongation, 47.5)

		ju, ok := Planet(types.BodyJupiter, jd)
		require.True(t, ok)
		assert.Greater(t, ju.Distance, 3.9)
		assert.Less(t, ju.Distance, 6.5)
		assert.GreaterOrEqual(t, ju.Phase, 0.98)
	}
}

func TestPlanetUnknownBody(t *testing.T) {
	_, ok := Planet(types.BodyPluto, J2000)
	assert.False(t, ok)
	_, ok = Planet(types.BodySun, J2000)
	assert.False(t, ok)
	assert.False(t, HasPlanet(types.BodyMoon))
	assert.True(t, HasPlanet(types.BodyNeptune))
}

func TestBodyPoint(t *testing.T) {
	jd := JulianDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	for _, b := range []types.Body{types.BodySun, types.BodyMoon, types.BodyMars, types.BodyNeptune} {
		pt, ok := BodyPoint(b, jd, 40, -75)
		require.True(t, ok, b)
		assert.NotNil(t, pt.Magnitude, b)
		assert.NotNil(t, pt.PhaseFraction, b)
		assert.GreaterOrEqual(t, pt.Azimuth, 0.0)
		assert.Less(t, pt.Azimuth, 360.0)
	}
	_, ok := BodyPoint(types.BodyPluto, jd, 40, -75)
	assert.False(t, ok)

	moon, _ := BodyPoint(types.BodyMoon, jd, 40, -75)
	assert.Greater(t, moon.Distance, 350000.0)
}

func TestFixedPoint(t *testing.T) {
	jd := JulianDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	pt := FixedPoint(10.68, 41.27, jd, 40, -75)
	assert.Equal(t, 10.68, pt.RA)
	assert.Equal(t, 0.0, pt.Distance)
	assert.Nil(t, pt.Magnitude)
}
