// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/skyquery/pkg/types"
)

func TestFallbackCoordinates(t *testing.T) {
	fb := NewFallback()
	req := types.CoordinatesRequest{
		Observer: testObserver, Time: testTime,
		RA: 10.68470833, Dec: 41.26875,
	}
	resp, err := fb.Coordinates(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, types.BackendFallback, resp.Meta.Backend)
	assert.InDelta(t, 121.174, resp.Galactic.L, 1e-3)
	assert.InDelta(t, -21.573, resp.Galactic.B, 1e-3)
	assert.InDelta(t, resp.LSTDegrees/15, resp.LSTHours, 1e-12)
	assert.GreaterOrEqual(t, resp.Horizontal.Azimuth, 0.0)
	assert.Less(t, resp.Horizontal.Azimuth, 360.0)
	if resp.Horizontal.Altitude > 0 {
		require.NotNil(t, resp.Airmass)
		assert.GreaterOrEqual(t, *resp.Airmass, 1.0)
	}

	off := false
	req.ApplyRefraction = &off
	raw, err := fb.Coordinates(context.Background(), req)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, resp.Horizontal.Altitude, raw.Horizontal.Altitude)
	assert.InDelta(t, resp.Horizontal.Azimuth, raw.Horizontal.Azimuth, 1e-9)
}

func TestFallbackCoordinatesBelowHorizon(t *testing.T) {
	// M31 never rises at 60S.
	resp, err := NewFallback().Coordinates(context.Background(), types.CoordinatesRequest{
		Observer: types.Observer{Latitude: -60, Longitude: 20}, Time: testTime,
		RA: 10.68470833, Dec: 41.26875,
	})
	require.NoError(t, err)
	assert.Less(t, resp.Horizontal.Altitude, 0.0)
	assert.Nil(t, resp.Airmass)
}

func TestFallbackEphemerisBodies(t *testing.T) {
	fb := NewFallback()
	for _, b := range []types.Body{types.BodySun, types.BodyMoon, types.BodyMercury, types.BodyNeptune} {
		resp, err := fb.Ephemeris(context.Background(), types.EphemerisRequest{
			Observer: testObserver, Body: b, Start: testTime, Step: 24 * time.Hour, Steps: 4,
		})
		require.NoError(t, err, b)
		require.Len(t, resp.Points, 4, b)
		assert.Equal(t, b, resp.Body)
		for i, p := range resp.Points {
			assert.WithinDuration(t, testTime.Add(time.Duration(i)*24*time.Hour), p.Time, time.Millisecond)
			assert.GreaterOrEqual(t, p.RA, 0.0)
			assert.Less(t, p.RA, 360.0)
		}
	}

	_, err := fb.Ephemeris(context.Background(), types.EphemerisRequest{
		Observer: testObserver, Body: types.BodyPluto, Start: testTime, Steps: 1,
	})
	assert.True(t, IsUnsupportedBody(err))
}

func TestFallbackEphemerisCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFallback().Ephemeris(ctx, types.EphemerisRequest{
		Observer: testObserver, Body: types.BodyMars, Start: testTime, Step: time.Hour, Steps: 10,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFallbackRiseTransitSet(t *testing.T) {
	resp, err := NewFallback().RiseTransitSet(context.Background(), types.RiseTransitSetRequest{
		Observer: types.Observer{Latitude: 40, Longitude: 0}, Time: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		RA: 10.68470833, Dec: 41.26875, MinAltitude: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, types.BackendFallback, resp.Meta.Backend)
	assert.InDelta(t, 88.73, resp.TransitAltitude, 0.01)
}

func TestFallbackPhenomenaSorted(t *testing.T) {
	resp, err := NewFallback().Phenomena(context.Background(), types.PhenomenaRequest{
		Observer: testObserver,
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),

		IncludeMeteorShowers: true,
		IncludeSeasonal:      true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Events)

	kinds := map[types.PhenomenonKind]int{}
	for i, e := range resp.Events {
		kinds[e.Kind]++
		if i > 0 {
			assert.False(t, e.Date.Before(resp.Events[i-1].Date), "event %d out of order", i)
		}
	}
	assert.GreaterOrEqual(t, kinds[types.PhenomenonFullMoon], 12)
	assert.Equal(t, 2, kinds[types.PhenomenonEquinox])
	assert.Equal(t, 2, kinds[types.PhenomenonSolstice])
	assert.NotZero(t, kinds[types.PhenomenonMeteorShower])
	assert.Zero(t, kinds[types.PhenomenonCloseApproach])
}

func TestFallbackPhenomenaEmptyWindow(t *testing.T) {
	resp, err := NewFallback().Phenomena(context.Background(), types.PhenomenaRequest{
		Observer: testObserver, Start: testTime, End: testTime,
		Bodies: []types.Body{types.BodyMars},
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Events)
	assert.Empty(t, resp.Events)
}

func TestFallbackPhenomenaUnsupportedBody(t *testing.T) {
	_, err := NewFallback().Phenomena(context.Background(), types.PhenomenaRequest{
		Observer: testObserver, Start: testTime, End: testTime.AddDate(0, 1, 0),
		Bodies: []types.Body{types.BodyMars, types.BodyPluto},
	})
	require.Error(t, err)
	assert.EqualError(t, err, "unsupported body: Pluto")
}

func TestFallbackAlmanac(t *testing.T) {
	resp, err := NewFallback().Almanac(context.Background(), types.AlmanacRequest{
		Observer: types.Observer{Latitude: 51.5074, Longitude: -0.1278},
		Date:     time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-06-21", resp.Date)
	assert.Equal(t, resp.Date, resp.Twilight.Date)
	assert.InDelta(t, 23.43, resp.Sun.Dec, 0.05)
	assert.Greater(t, resp.Sun.Altitude, 55.0)
	assert.Greater(t, resp.Moon.Distance, 350000.0)
	assert.Less(t, resp.Moon.Distance, 410000.0)
	assert.NotEmpty(t, resp.MoonPhase.Name)
	require.NotNil(t, resp.Twilight.Sunrise)
	require.NotNil(t, resp.Twilight.Sunset)
	assert.Nil(t, resp.Twilight.AstronomicalDawn)
	assert.Len(t, resp.Highlights, 3)
}
