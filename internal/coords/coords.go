// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package coords recognizes equatorial coordinates written as decimal
// degrees, sexagesimal hours/degrees, or embedded in catalog names
// ("2MASS J00424433+4116074"), and formats them back to sexagesimal.
//
// Parsers report a miss with ok == false, never with an error, so the query
// classifier can fall through to the next grammar.
package coords

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/skyquery/internal/normalize"
	"github.com/pdiddy/skyquery/pkg/types"
)

// jName matches an HHMMSS[.f]±DDMMSS[.f] run. The fraction may omit the
// decimal point, as in 2MASS names.
var jName = regexp.MustCompile(`(?:^|[^0-9A-Za-z])J?(\d{2})(\d{2})(\d{2})(\.?\d*)([+-])(\d{2})(\d{2})(\d{2})(\.?\d*)(?:$|[^0-9])`)

var decimalNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)

// Parse tries, in order, an embedded J-name, a comma-delimited pair, and
// every whitespace split point of the input.
func Parse(s string) (types.Coordinate, bool) {
	s = normalize.Fold(s)
	if s == "" {
		return types.Coordinate{}, false
	}
	if c, ok := parseJName(s); ok {
		return c, true
	}
	if c, ok := parseComma(s); ok {
		return c, true
	}
	return parseSplit(s)
}

func parseJName(s string) (types.Coordinate, bool) {
	m := jName.FindStringSubmatch(s)
	if m == nil {
		return types.Coordinate{}, false
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	sec, ok := joinFraction(m[3], m[4])
	if !ok || h >= 24 || mi >= 60 || sec >= 60 {
		return types.Coordinate{}, false
	}
	d, _ := strconv.Atoi(m[6])
	dm, _ := strconv.Atoi(m[7])
	ds, ok := joinFraction(m[8], m[9])
	if !ok || dm >= 60 || ds >= 60 {
		return types.Coordinate{}, false
	}
	dec := float64(d) + float64(dm)/60 + ds/3600
	if dec > 90 {
		return types.Coordinate{}, false
	}
	if m[5] == "-" {
		dec = -dec
	}
	ra := (float64(h) + float64(mi)/60 + sec/3600) * 15
	return types.Coordinate{RA: ra, Dec: dec, Format: types.FormatEmbeddedName}, true
}

// joinFraction reads "43" + "46" or "43" + ".46" as 43.46.
func joinFraction(whole, frac string) (float64, bool) {
	frac = strings.TrimPrefix(frac, ".")
	if frac == "" {
		v, err := strconv.ParseFloat(whole, 64)
		return v, err == nil
	}
	v, err := strconv.ParseFloat(whole+"."+frac, 64)
	return v, err == nil
}

func parseComma(s string) (types.Coordinate, bool) {
	if strings.Count(s, ",") != 1 {
		return types.Coordinate{}, false
	}
	left, right, _ := strings.Cut(s, ",")
	return pair(strings.TrimSpace(left), strings.TrimSpace(right))
}

// parseSplit tries the balanced split first, then the remaining split
// points by distance from the middle. "10 42 44 41 16 09" therefore reads
// as 10h42m44s +41°16′09″ rather than 10° and a malformed declination.
func parseSplit(s string) (types.Coordinate, bool) {
	tokens := strings.Fields(s)
	n := len(tokens)
	if n < 2 {
		return types.Coordinate{}, false
	}
	for _, i := range splitOrder(n) {
		left := strings.Join(tokens[:i], " ")
		right := strings.Join(tokens[i:], " ")
		if c, ok := pair(left, right); ok {
			return c, true
		}
	}
	return types.Coordinate{}, false
}

func splitOrder(n int) []int {
	mid := n / 2
	order := []int{mid}
	for d := 1; d < n; d++ {
		if i := mid - d; i >= 1 {
			order = append(order, i)
		}
		if i := mid + d; i <= n-1 {
			order = append(order, i)
		}
	}
	return order
}

func pair(left, right string) (types.Coordinate, bool) {
	ra, raFmt, ok := ParseRA(left)
	if !ok {
		return types.Coordinate{}, false
	}
	dec, decFmt, ok := ParseDec(right)
	if !ok {
		return types.Coordinate{}, false
	}
	format := types.FormatDecimal
	if raFmt == types.FormatSexagesimal || decFmt == types.FormatSexagesimal {
		format = types.FormatSexagesimal
	}
	return types.Coordinate{RA: ra, Dec: dec, Format: format}, true
}

// ParseRA reads a right ascension as decimal degrees in [0, 360] or as
// sexagesimal hours ("10:42:44", "10h 42m 44.3s", "10 42 44"). 360 maps to 0.
func ParseRA(s string) (float64, types.CoordinateFormat, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", false
	}
	if v, ok := decimalDegrees(s); ok {
		if v < 0 || v > 360 {
			return 0, "", false
		}
		if v == 360 {
			v = 0
		}
		return v, types.FormatDecimal, true
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, "", false
	}
	fields, hasHourMark, ok := sexagesimalFields(s, "hms")
	if !ok || (len(fields) < 2 && !hasHourMark) {
		return 0, "", false
	}
	h, m, sec := fields[0], 0.0, 0.0
	if len(fields) > 1 {
		m = fields[1]
	}
	if len(fields) > 2 {
		sec = fields[2]
	}
	if h >= 24 || m >= 60 || sec >= 60 {
		return 0, "", false
	}
	return (h + m/60 + sec/3600) * 15, types.FormatSexagesimal, true
}

// ParseDec reads a declination as decimal degrees in [-90, 90] or as signed
// sexagesimal degrees ("+41:16:09", "-00 30 00", "41d16m09s"). The sign is
// taken from the text so "-00:30:00" is negative.
func ParseDec(s string) (float64, types.CoordinateFormat, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", false
	}
	if v, ok := decimalDegrees(s); ok {
		if v < -90 || v > 90 {
			return 0, "", false
		}
		return v, types.FormatDecimal, true
	}
	sign := 1.0
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}
	fields, _, ok := sexagesimalFields(strings.TrimSpace(s), "dms")
	if !ok || len(fields) < 2 {
		return 0, "", false
	}
	d, m, sec := fields[0], fields[1], 0.0
	if len(fields) > 2 {
		sec = fields[2]
	}
	if m >= 60 || sec >= 60 {
		return 0, "", false
	}
	v := d + m/60 + sec/3600
	if v > 90 {
		return 0, "", false
	}
	return sign * v, types.FormatSexagesimal, true
}

// decimalDegrees accepts a plain number, optionally suffixed with "°".
func decimalDegrees(s string) (float64, bool) {
	s = strings.TrimSuffix(s, "°")
	if !decimalNumber.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// sexagesimalFields normalizes unit markers and whitespace to colons and
// returns between one and three non-negative fields. Only the last field
// may carry a fraction. letters lists the accepted unit letters, the first
// of which reports hasLead (e.g. "h" for hours).
func sexagesimalFields(s, letters string) ([]float64, bool, bool) {
	hasLead := false
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == ':', r == ' ', r == '°', r == '′', r == '″', r == '\'', r == '"':
			b.WriteByte(':')
		case strings.ContainsRune(letters, r), strings.ContainsRune(strings.ToUpper(letters), r):
			if r == rune(letters[0]) || r == rune(strings.ToUpper(letters)[0]) {
				hasLead = true
			}
			b.WriteByte(':')
		default:
			return nil, false, false
		}
	}
	var fields []float64
	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == ':' })
	if len(parts) == 0 || len(parts) > 3 {
		return nil, false, false
	}
	for i, p := range parts {
		if i < len(parts)-1 && strings.Contains(p, ".") {
			return nil, false, false
		}
		if !decimalNumber.MatchString(p) {
			return nil, false, false
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, false, false
		}
		fields = append(fields, v)
	}
	return fields, hasLead, true
}

// FormatRA renders degrees as "HHh MMm SS.SSs".
func FormatRA(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	cs := int64(math.Round(deg / 15 * 3600 * 100))
	cs %= 24 * 3600 * 100
	h := cs / 360000
	m := (cs / 6000) % 60
	s := float64(cs%6000) / 100
	return fmt.Sprintf("%02dh %02dm %05.2fs", h, m, s)
}

// FormatDec renders degrees as "±DD° MM' SS.SS\"".
func FormatDec(deg float64) string {
	sign := "+"
	if deg < 0 {
		sign = "-"
	}
	cs := int64(math.Round(math.Abs(deg) * 3600 * 100))
	d := cs / 360000
	m := (cs / 6000) % 60
	s := float64(cs%6000) / 100
	return fmt.Sprintf("%s%02d° %02d' %05.2f\"", sign, d, m, s)
}

// String renders c as "<ra> <dec>" in decimal degrees, the canonical form of
// a coordinate query.
func String(c types.Coordinate) string {
	return strconv.FormatFloat(c.RA, 'f', 6, 64) + " " + strconv.FormatFloat(c.Dec, 'f', 6, 64)
}
