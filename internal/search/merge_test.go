// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/skyquery/pkg/types"
)

func item(name string, src types.Source, pos ...float64) types.SearchResultItem {
	r := types.SearchResultItem{ID: string(src) + ":" + name, Name: name, Source: src}
	if len(pos) == 2 {
		r.RA, r.Dec = types.Float(pos[0]), types.Float(pos[1])
	}
	return r
}

func TestMergeByPosition(t *testing.T) {
	local := item("M31", types.SourceLocal, 10.6847, 41.2689)
	local.Magnitude = types.Float(3.44)
	online := item("Andromeda Galaxy", types.SourceObjectDatabase, 10.6848, 41.2690)
	online.AlternateNames = "NGC 224, M 31"
	online.Type = "Galaxy"

	got := Merge([]types.SearchResultItem{local}, []types.SearchResultItem{online}, MergeOptions{})
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, "Andromeda Galaxy", r.Name, "object database outranks local")
	assert.Equal(t, types.SourceObjectDatabase, r.Source)
	assert.Equal(t, 2, r.SourcePriority)
	assert.Equal(t, "NGC 224, M 31", r.AlternateNames, "M31 is already an alias")
	assert.Equal(t, "Galaxy", r.Type)
	require.NotNil(t, r.Magnitude)
	assert.Equal(t, 3.44, *r.Magnitude, "magnitude backfilled from local")
}

func TestMergeAliasUnion(t *testing.T) {
	local := item("M31", types.SourceLocal, 10.6847, 41.2689)
	online := item("Andromeda Galaxy", types.SourceNameResolver, 10.6848, 41.2690)

	got := Merge([]types.SearchResultItem{local}, []types.SearchResultItem{online}, MergeOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, "Andromeda Galaxy", got[0].Name)
	assert.Contains(t, SplitAliases(got[0].AlternateNames), "M31")

	// Reverse roles: the local record wins against an unknown source.
	online.Source = types.SourceUnknown
	got = Merge([]types.SearchResultItem{local}, []types.SearchResultItem{online}, MergeOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, "M31", got[0].Name)
	assert.Equal(t, "Andromeda Galaxy", got[0].AlternateNames)
}

func TestMergeByName(t *testing.T) {
	a := item("NGC 224", types.SourceLocal)
	b := item("ngc224", types.SourceNameService)
	got := Merge([]types.SearchResultItem{a}, []types.SearchResultItem{b}, MergeOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, types.SourceNameService, got[0].Source)

	c := item("Andromeda Galaxy", types.SourceLocal)
	c.AlternateNames = "M31, NGC 224"
	d := item("M 31", types.SourceObjectDatabase, 10.68, 41.27)
	got = Merge([]types.SearchResultItem{c}, []types.SearchResultItem{d}, MergeOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, "M 31", got[0].Name)
	require.True(t, got[0].HasCoordinates())
	assert.Contains(t, got[0].AlternateNames, "Andromeda Galaxy")
}

func TestMergeKeepsDistinctObjects(t *testing.T) {
	m31 := item("M31", types.SourceLocal, 10.6847, 41.2689)
	m32 := item("M32", types.SourceObjectDatabase, 10.6743, 40.8652)
	got := Merge([]types.SearchResultItem{m31}, []types.SearchResultItem{m32}, MergeOptions{})
	require.Len(t, got, 2)
	assert.Equal(t, "M32", got[0].Name, "higher priority first")
	assert.Equal(t, "M31", got[1].Name)
}

func TestMergeRadius(t *testing.T) {
	a := item("A", types.SourceLocal, 100, 20)
	b := item("B", types.SourceObjectDatabase, 100, 20+6.0/3600)

	assert.Len(t, Merge([]types.SearchResultItem{a}, []types.SearchResultItem{b}, MergeOptions{}), 2)
	assert.Len(t, Merge([]types.SearchResultItem{a}, []types.SearchResultItem{b}, MergeOptions{DedupRadiusArcsec: 10}), 1)
}

func TestMergeOrderIndependent(t *testing.T) {
	a := item("M31", types.SourceLocal, 10.6847, 41.2689)
	b := item("Andromeda Galaxy", types.SourceObjectDatabase, 10.6848, 41.2690)

	ab := Merge([]types.SearchResultItem{a}, []types.SearchResultItem{b}, MergeOptions{})
	ba := Merge([]types.SearchResultItem{b}, []types.SearchResultItem{a}, MergeOptions{})
	require.Len(t, ab, 1)
	require.Len(t, ba, 1)
	assert.Equal(t, ab[0].Name, ba[0].Name)
	assert.Equal(t, ab[0].AlternateNames, ba[0].AlternateNames)
}

func TestMergeChainedMatchesCollapse(t *testing.T) {
	// a~b and b~c are 4" apart; a and c are 8" apart.
	a := item("A", types.SourceLocal, 100, 20)
	b := item("B", types.SourceLocal, 100, 20+4.0/3600)
	c := item("C", types.SourceLocal, 100, 20+8.0/3600)

	for _, order := range [][]types.SearchResultItem{
		{a, b, c}, {b, a, c}, {c, a, b}, {a, c, b},
	} {
		got := Merge(order, nil, MergeOptions{})
		require.Len(t, got, 1)
		assert.Equal(t, order[0].Name, got[0].Name, "first local record is the base")
		assert.Len(t, SplitAliases(got[0].AlternateNames), 2)
	}
}

func TestMergeStableTiesAndCap(t *testing.T) {
	var local []types.SearchResultItem
	for _, n := range []string{"NGC 1", "NGC 2", "NGC 3"} {
		local = append(local, item(n, types.SourceLocal))
	}
	online := []types.SearchResultItem{item("Ceres", types.SourceMinorPlanetCenter)}

	got := Merge(local, online, MergeOptions{})
	names := make([]string, 0, len(got))
	for _, r := range got {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Ceres", "NGC 1", "NGC 2", "NGC 3"}, names)

	got = Merge(local, online, MergeOptions{MaxResults: 2})
	require.Len(t, got, 2)
	assert.Equal(t, "NGC 1", got[1].Name)
}

func TestMergeAngularSeparation(t *testing.T) {
	positioned := item("M31", types.SourceLocal, 10.6847, 41.2689)
	bare := item("Andromeda", types.SourceNameService)
	bare.AlternateNames = "nothing"

	ctx := &types.Coordinate{RA: 10.6847, Dec: 41.2689 + 1.0/60}
	got := Merge([]types.SearchResultItem{positioned, bare}, nil, MergeOptions{Context: ctx})
	require.Len(t, got, 2)
	for _, r := range got {
		if r.Name == "M31" {
			require.NotNil(t, r.AngularSeparation)
			assert.InDelta(t, 60.0, *r.AngularSeparation, 0.01)
		} else {
			assert.Nil(t, r.AngularSeparation)
		}
	}

	plain := Merge([]types.SearchResultItem{positioned}, nil, MergeOptions{})
	assert.Nil(t, plain[0].AngularSeparation)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	local := []types.SearchResultItem{item("M31", types.SourceLocal, 10.6847, 41.2689)}
	online := []types.SearchResultItem{item("Andromeda Galaxy", types.SourceObjectDatabase, 10.6848, 41.2690)}
	Merge(local, online, MergeOptions{Context: &types.Coordinate{RA: 10, Dec: 41}})
	assert.Empty(t, online[0].AlternateNames)
	assert.Nil(t, local[0].AngularSeparation)
	assert.Zero(t, local[0].SourcePriority)
}

func TestAngularSeparation(t *testing.T) {
	a := item("a", types.SourceLocal, 0, 0)
	b := item("b", types.SourceLocal, 0, 1)
	sep, ok := AngularSeparation(a, b)
	require.True(t, ok)
	assert.InDelta(t, 3600.0, sep, 1e-6)

	_, ok = AngularSeparation(a, item("c", types.SourceLocal))
	assert.False(t, ok)
}
