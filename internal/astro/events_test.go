// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/skyquery/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMoonPhaseEvents(t *testing.T) {
	events := MoonPhaseEvents(date(2024, 1, 1), date(2024, 1, 31))
	kinds := map[types.PhenomenonKind]time.Time{}
	for _, ev := range events {
		_, dup := kinds[ev.Kind]
		assert.False(t, dup, "duplicate %s", ev.Kind)
		kinds[ev.Kind] = ev.Date
	}
	require.Len(t, kinds, 4)
	assert.WithinDuration(t, date(2024, 1, 11), kinds[types.PhenomenonNewMoon], 36*time.Hour)
	assert.WithinDuration(t, date(2024, 1, 18), kinds[types.PhenomenonFirstQuarter], 48*time.Hour)
	assert.WithinDuration(t, date(2024, 1, 25), kinds[types.PhenomenonFullMoon], 48*time.Hour)
	assert.WithinDuration(t, date(2024, 1, 4), kinds[types.PhenomenonLastQuarter], 36*time.Hour)
}

func TestPhaseCrossing(t *testing.T) {
	kind, _ := phaseCrossing(0.97, 0.01)
	assert.Equal(t, types.PhenomenonNewMoon, kind)
	kind, _ = phaseCrossing(0.47, 0.51)
	assert.Equal(t, types.PhenomenonFullMoon, kind)
	kind, _ = phaseCrossing(0.3, 0.33)
	assert.Empty(t, kind)
}

func TestMeteorShowerEvents(t *testing.T) {
	events := MeteorShowerEvents(date(2024, 8, 1), date(2024, 12, 31))
	var names []string
	for _, ev := range events {
		assert.Equal(t, types.PhenomenonMeteorShower, ev.Kind)
		names = append(names, ev.Name)
	}
	assert.Equal(t, []string{"Perseids", "Orionids", "Leonids", "Geminids", "Ursids"}, names)
	assert.Contains(t, events[0].Details, "ZHR 100")

	events = MeteorShowerEvents(date(2024, 12, 30), date(2025, 1, 5))
	require.Len(t, events, 1)
	assert.Equal(t, "Quadrantids", events[0].Name)
	assert.Equal(t, date(2025, 1, 3), events[0].Date)
}

func TestSeasonalEvents(t *testing.T) {
	events := SeasonalEvents(date(2024, 1, 1), date(2024, 12, 31))
	require.Len(t, events, 4)
	assert.Equal(t, types.PhenomenonEquinox, events[0].Kind)
	assert.Equal(t, time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC), events[0].Date)
	assert.Equal(t, types.PhenomenonSolstice, events[3].Kind)

	assert.Empty(t, SeasonalEvents(date(2024, 4, 1), date(2024, 5, 1)))
}

func TestGreatConjunction2020(t *testing.T) {
	events := Conjunctions([]types.Body{types.BodyJupiter, types.BodySaturn}, date(2020, 12, 1), date(2021, 1, 10), 5)
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, types.PhenomenonConjunction, ev.Kind)
	assert.WithinDuration(t, date(2020, 12, 21), ev.Date, 48*time.Hour)
	require.NotNil(t, ev.Separation)
	assert.Less(t, *ev.Separation, 0.3)
	assert.Equal(t, []types.Body{types.BodyJupiter, types.BodySaturn}, ev.Bodies)

	assert.Empty(t, Conjunctions([]types.Body{types.BodyJupiter, types.BodySaturn}, date(2020, 12, 1), date(2021, 1, 10), 0.05))
}

func TestMarsOpposition2020(t *testing.T) {
	events := Oppositions([]types.Body{types.BodyMars, types.BodyVenus}, date(2020, 9, 15), date(2020, 11, 15))
	require.Len(t, events, 1)
	assert.Equal(t, types.PhenomenonOpposition, events[0].Kind)
	assert.WithinDuration(t, date(2020, 10, 13), events[0].Date, 4*24*time.Hour)
	require.NotNil(t, events[0].Elongation)
	assert.Greater(t, *events[0].Elongation, 170.0)
}

func TestVenusGreatestElongation2020(t *testing.T) {
	events := GreatestElongations([]types.Body{types.BodyVenus, types.BodyMars}, date(2020, 3, 1), date(2020, 4, 15))
	require.Len(t, events, 1)
	ev := events[0]
	assert.Contains(t, ev.Name, "eastern")
	assert.WithinDuration(t, date(2020, 3, 24), ev.Date, 4*24*time.Hour)
	require.NotNil(t, ev.Elongation)
	assert.InDelta(t, 46.1, *ev.Elongation, 1)
}

func TestCloseApproachesAreUnderLimit(t *testing.T) {
	events := CloseApproaches(types.Planets, date(2024, 1, 1), date(2024, 3, 1))
	for _, ev := range events {
		require.NotNil(t, ev.Separation)
		assert.Less(t, *ev.Separation, CloseApproachLimit)
		assert.Equal(t, types.BodyMoon, ev.Bodies[0])
	}
}

func TestSortEventsIsStable(t *testing.T) {
	a := types.Phenomenon{Name: "a", Date: date(2024, 1, 2)}
	b := types.Phenomenon{Name: "b", Date: date(2024, 1, 1)}
	c := types.Phenomenon{Name: "c", Date: date(2024, 1, 2)}
	events := []types.Phenomenon{a, b, c}
	SortEvents(events)
	assert.Equal(t, []string{"b", "a", "c"}, []string{events[0].Name, events[1].Name, events[2].Name})
}

func TestHighlights(t *testing.T) {
	h := Highlights(time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC), londonLat, londonLon)
	require.Len(t, h, 3)
	assert.Contains(t, h[0], "Moon: ")
	assert.Equal(t, "Astronomical darkness - ideal for deep sky observation", h[2])

	h = Highlights(time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC), londonLat, londonLon)
	assert.Equal(t, "Daytime - wait for sunset", h[2])
}
