// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/skyquery/pkg/types"
)

func TestParse_Intents(t *testing.T) {
	tests := []struct {
		in     string
		intent types.Intent
		id     string
	}{
		{"10.6847 41.2689", types.IntentCoordinate, "10.684700 41.268900"},
		{"00:42:44.3 +41:16:09", types.IntentCoordinate, "10.684583 41.269167"},
		{"2007 TA418", types.IntentMinor, "2007 TA418"},
		{"1", types.IntentMinor, "(1)"},
		{"1P/Halley", types.IntentMinor, "1P"},
		{"1920 Z", types.IntentMinor, "1920 Z"},
		{"M31", types.IntentCatalog, "M31"},
		{"ngc 224", types.IntentCatalog, "NGC 224"},
		{"Andromeda Galaxy", types.IntentName, "ANDROMEDA GALAXY"},
		{"  betelgeuse ", types.IntentName, "BETELGEUSE"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q := Parse(tt.in)
			assert.Equal(t, tt.intent, q.Intent)
			assert.Equal(t, tt.id, q.CanonicalID)
			assert.Equal(t, tt.in, q.RawInput)
		})
	}
}

func TestParse_ExactlyOnePayload(t *testing.T) {
	inputs := []string{"10.68 41.26", "2007 TA418", "M31", "Vega", "M31\nM42"}
	for _, in := range inputs {
		q := Parse(in)
		n := 0
		if q.Coordinate != nil {
			n++
		}
		if q.Minor != nil {
			n++
		}
		if q.CatalogID != "" {
			n++
		}
		if len(q.BatchSubqueries) > 0 {
			n++
		}
		if q.Intent == types.IntentName {
			assert.Equal(t, 0, n, in)
		} else {
			assert.Equal(t, 1, n, in)
		}
	}
}

func TestParse_MinorOverridesFilter(t *testing.T) {
	q := Parse("2007 TA418")
	require.NotNil(t, q.Minor)
	assert.True(t, q.ExplicitMinorObject)
	assert.Equal(t, types.MinorProvisional, q.Minor.Kind)

	assert.False(t, Parse("M31").ExplicitMinorObject)
	assert.False(t, Parse("Ceres").ExplicitMinorObject)
}

func TestParse_Batch(t *testing.T) {
	q := Parse("M31\n\n  2007 TA418  \r\n10.68 41.26\n")
	assert.Equal(t, types.IntentBatch, q.Intent)
	assert.Equal(t, []string{"M31", "2007 TA418", "10.68 41.26"}, q.BatchSubqueries)
	assert.Nil(t, q.Coordinate)
}

func TestParse_SingleLineWithBlankLinesIsNotBatch(t *testing.T) {
	q := Parse("\n  M31 \n\n")
	assert.Equal(t, types.IntentCatalog, q.Intent)
	assert.Equal(t, "M31", q.CatalogID)
}

func TestParse_CatalogCoordinateContext(t *testing.T) {
	q := Parse("2mass j00424433+4116074")
	assert.Equal(t, types.IntentCatalog, q.Intent)
	assert.Equal(t, "2MASS J00424433+4116074", q.CatalogID)
	require.NotNil(t, q.CatalogCoordinate)
	assert.Nil(t, q.Coordinate)
	assert.InDelta(t, 10.684708, q.CatalogCoordinate.RA, 1e-5)
	assert.Equal(t, q.CatalogCoordinate, q.ContextCoordinate())
}

func TestParse_EmbeddedJNameIsCoordinate(t *testing.T) {
	q := Parse("2MASS J00424433+4116074")
	assert.Equal(t, types.IntentCoordinate, q.Intent)
	require.NotNil(t, q.Coordinate)
	assert.Equal(t, types.FormatEmbeddedName, q.Coordinate.Format)
}

func TestParse_Empty(t *testing.T) {
	q := Parse("")
	assert.Equal(t, types.IntentName, q.Intent)
	assert.Equal(t, "", q.CanonicalID)
}
