// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package coords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/skyquery/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		ra     float64
		dec    float64
		format types.CoordinateFormat
	}{
		{"decimal pair", "10.6847 41.2689", 10.6847, 41.2689, types.FormatDecimal},
		{"comma pair", "10.6847, 41.2689", 10.6847, 41.2689, types.FormatDecimal},
		{"comma no space", "83.82,-5.39", 83.82, -5.39, types.FormatDecimal},
		{"negative dec with unicode minus", "83.82 −5.39", 83.82, -5.39, types.FormatDecimal},
		{"colon sexagesimal", "00:42:44.3 +41:16:09", 10.684583, 41.269167, types.FormatSexagesimal},
		{"unit markers", "00h42m44.3s +41°16′09″", 10.684583, 41.269167, types.FormatSexagesimal},
		{"space separated fields", "00 42 44.3 +41 16 09", 10.684583, 41.269167, types.FormatSexagesimal},
		{"unsigned dec fields", "00 42 44.3 41 16 09", 10.684583, 41.269167, types.FormatSexagesimal},
		{"mixed", "10.6847 +41:16:08", 10.6847, 41.268889, types.FormatSexagesimal},
		{"negative zero degrees", "05:35:17 -00:30:00", 83.820833, -0.5, types.FormatSexagesimal},
		{"ra 360 wraps", "360 0", 0, 0, types.FormatDecimal},
		{"2mass j-name", "2MASS J00424433+4116074", 10.684708, 41.268722, types.FormatEmbeddedName},
		{"sdss j-name with dot", "SDSS J123456.78-012345.6", 188.73658, -1.395999, types.FormatEmbeddedName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Parse(tt.in)
			require.True(t, ok, "expected %q to parse", tt.in)
			assert.InDelta(t, tt.ra, c.RA, 1e-5)
			assert.InDelta(t, tt.dec, c.Dec, 1e-5)
			assert.Equal(t, tt.format, c.Format)
		})
	}
}

func TestParse_NoMatch(t *testing.T) {
	inputs := []string{
		"",
		"M31",
		"Andromeda Galaxy",
		"2007 TA418",
		"1920 Z",
		"433",
		"400 10",
		"10 95",
		"24:00:00 +10:00:00",
		"10:60:00 +10:00:00",
		"10:00:00 +10:60:00",
		"10:00:00 +91:00:00",
		"NaN 10",
		"1P/Halley",
		"2MASS J24424433+4116074",
	}
	for _, in := range inputs {
		_, ok := Parse(in)
		assert.False(t, ok, "expected %q not to parse", in)
	}
}

func TestParseRA(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"0", 0, true},
		{"359.999", 359.999, true},
		{"360", 0, true},
		{"360.1", 0, false},
		{"-1", 0, false},
		{"12:00:00", 180, true},
		{"12h", 180, true},
		{"12h30m", 187.5, true},
		{"23:59:59.99", 359.99995833, true},
		{"24:00:00", 0, false},
		{"12:30.5:00", 0, false},
		{"12x30", 0, false},
		{"10.5°", 10.5, true},
	}
	for _, tt := range tests {
		got, _, ok := ParseRA(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-6, "input %q", tt.in)
		}
	}
}

func TestParseDec(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"90", 90, true},
		{"-90", -90, true},
		{"90.0001", 0, false},
		{"+45:30:00", 45.5, true},
		{"-00:30:00", -0.5, true},
		{"-0 30 0", -0.5, true},
		{"41d16m09s", 41.269167, true},
		{"89:59:60", 0, false},
		{"90:00:01", 0, false},
		{"+-10:00", 0, false},
	}
	for _, tt := range tests {
		got, _, ok := ParseDec(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-6, "input %q", tt.in)
		}
	}
}

func TestFormatRA(t *testing.T) {
	assert.Equal(t, "00h 00m 00.00s", FormatRA(0))
	assert.Equal(t, "12h 00m 00.00s", FormatRA(180))
	assert.Equal(t, "00h 42m 44.33s", FormatRA(10.684708))
	assert.Equal(t, "00h 00m 00.00s", FormatRA(359.9999999))
	assert.Equal(t, "23h 00m 00.00s", FormatRA(-15))
}

func TestFormatDec(t *testing.T) {
	assert.Equal(t, "+41° 16' 07.40\"", FormatDec(41.268722))
	assert.Equal(t, "-00° 30' 00.00\"", FormatDec(-0.5))
	assert.Equal(t, "+90° 00' 00.00\"", FormatDec(90))
}

func TestFormatParseRoundTrip(t *testing.T) {
	for ra := 0.0; ra < 360; ra += 7.3217 {
		got, format, ok := ParseRA(FormatRA(ra))
		require.True(t, ok, "FormatRA(%v) = %q did not parse", ra, FormatRA(ra))
		assert.Equal(t, types.FormatSexagesimal, format)
		assert.InDelta(t, ra, got, 1e-4)
	}
	for dec := -90.0; dec <= 90; dec += 3.917 {
		got, _, ok := ParseDec(FormatDec(dec))
		require.True(t, ok, "FormatDec(%v) = %q did not parse", dec, FormatDec(dec))
		assert.InDelta(t, dec, got, 1e-4)
	}
}

func TestSplitOrderPrefersBalanced(t *testing.T) {
	assert.Equal(t, []int{1}, splitOrder(2))
	assert.Equal(t, []int{3, 2, 4, 1, 5}, splitOrder(6))
	assert.Equal(t, []int{2, 1, 3, 4}, splitOrder(5))
}

func TestString(t *testing.T) {
	assert.Equal(t, "10.684700 41.268900", String(types.Coordinate{RA: 10.6847, Dec: 41.2689}))
}
