// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package minor recognizes minor-planet and comet designations and reduces
// each to a canonical identifier. Rules are tried in a fixed order and the
// first match wins; the ordering is what disambiguates overlapping grammars
// (a bare "1920 Z" is not provisional because Z is not a half-month letter).
package minor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/skyquery/internal/normalize"
	"github.com/pdiddy/skyquery/pkg/types"
)

// Rule names, reported in MinorDesignator.Rule.
const (
	RuleNumbered          = "numbered"
	RuleNumberedComet     = "numbered_comet"
	RuleProvisionalComet  = "provisional_comet"
	RulePackedComet       = "packed_comet"
	RuleSurvey            = "survey"
	RulePackedSurvey      = "packed_survey"
	RuleProvisional       = "provisional"
	RulePackedProvisional = "packed_provisional"
	RuleOldStyleLetter    = "old_style_letter"
	RuleOldStyleGreek     = "old_style_greek"
	RuleOldStyleSigma     = "old_style_sigma"
)

// Greek lists the 24 letter names accepted by the Greek-suffix rule.
var Greek = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta",
	"iota", "kappa", "lambda", "mu", "nu", "xi", "omicron", "pi",
	"rho", "sigma", "tau", "upsilon", "phi", "chi", "psi", "omega",
}

var (
	reNumberedParen = regexp.MustCompile(`^\((\d{1,7})\)(?: \S.*)?$`)
	reNumberedBare  = regexp.MustCompile(`^(\d{1,7})$`)
	reNumberedComet = regexp.MustCompile(`(?i)^(\d{1,4})([PCDXIA])(?:-([A-Z]{1,2}))?(?:/\S.*)?$`)
	reProvComet     = regexp.MustCompile(`(?i)^([PCDXIA])/(\d{4}) ([A-HJ-Y](?:[A-HJ-Z]\d*|\d{1,3}))(?:-([A-Z]{1,2}))?(?: \(.*\))?$`)
	rePackedComet   = regexp.MustCompile(`^([PCDXIA])([IJK])(\d{2})([A-HJ-Y])([0-9A-Za-z])(\d)([0-9a-z])$`)
	reSurvey        = regexp.MustCompile(`(?i)^(\d{4}) (P-L|T-1|T-2|T-3)$`)
	rePackedSurvey  = regexp.MustCompile(`^(PL|T1|T2|T3)S(\d{4})$`)
	reProvisional   = regexp.MustCompile(`(?i)^(\d{4}) ?([A-HJ-NP-Y])([A-HJ-Z])(\d{0,3})$`)
	rePackedProv    = regexp.MustCompile(`^([IJK])(\d{2})([A-HJ-NP-Y])([0-9A-Za-z])(\d)([A-HJ-Z])$`)
	reOldStyle      = regexp.MustCompile(`^(\d{4}) ?([a-z]{1,2}|[A-Z]{1,2})$`)
	reGreek         = regexp.MustCompile(`(?i)^(\d{4}) ([a-z]+)$`)
	reSigma         = regexp.MustCompile(`(?i)^(?:(\d{4}) )?(?:([a-z]{1,2}) )?sigma$`)
)

// First year of the modern provisional system. Earlier letter designations
// are old-style.
const provisionalFirstYear = 1925

type rule struct {
	name  string
	match func(s string) (types.MinorDesignator, bool)
}

// rules is the precedence chain. Order is significant.
var rules = []rule{
	{RuleNumbered, matchNumbered},
	{RuleNumberedComet, matchNumberedComet},
	{RuleProvisionalComet, matchProvisionalComet},
	{RulePackedComet, matchPackedComet},
	{RuleSurvey, matchSurvey},
	{RulePackedSurvey, matchPackedSurvey},
	{RuleProvisional, matchProvisional},
	{RulePackedProvisional, matchPackedProvisional},
	{RuleOldStyleLetter, matchOldStyleLetter},
	{RuleOldStyleGreek, matchOldStyleGreek},
	{RuleOldStyleSigma, matchSigma},
}

// Parse returns the designator for s, or false when no rule matches.
func Parse(s string) (types.MinorDesignator, bool) {
	norm := normalize.IdentifierToken(s)
	if norm == "" {
		return types.MinorDesignator{}, false
	}
	for _, r := range rules {
		if d, ok := r.match(norm); ok {
			d.Rule = r.name
			d.NormalizedForm = norm
			return d, true
		}
	}
	return types.MinorDesignator{}, false
}

// CanonicalID returns the canonical identifier for s, or "" when s is not a
// designation. CanonicalID("1") == CanonicalID("(1)") == "(1)".
func CanonicalID(s string) string {
	d, ok := Parse(s)
	if !ok {
		return ""
	}
	return d.CanonicalID
}

func asteroid(kind types.MinorKind, id string) types.MinorDesignator {
	return types.MinorDesignator{Kind: kind, Category: types.MinorAsteroid, CanonicalID: id}
}

func comet(id string) types.MinorDesignator {
	return types.MinorDesignator{Kind: types.MinorComet, Category: types.MinorCometary, CanonicalID: id}
}

func matchNumbered(s string) (types.MinorDesignator, bool) {
	m := reNumberedParen.FindStringSubmatch(s)
	if m == nil {
		m = reNumberedBare.FindStringSubmatch(s)
	}
	if m == nil {
		return types.MinorDesignator{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return types.MinorDesignator{}, false
	}
	d := asteroid(types.MinorNumbered, "("+strconv.Itoa(n)+")")
	d.SequenceNumber = &n
	return d, true
}

func matchNumberedComet(s string) (types.MinorDesignator, bool) {
	m := reNumberedComet.FindStringSubmatch(s)
	if m == nil {
		return types.MinorDesignator{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return types.MinorDesignator{}, false
	}
	id := strconv.Itoa(n) + strings.ToUpper(m[2])
	if m[3] != "" {
		id += "-" + strings.ToUpper(m[3])
	}
	d := comet(id)
	d.SequenceNumber = &n
	return d, true
}

func matchProvisionalComet(s string) (types.MinorDesignator, bool) {
	m := reProvComet.FindStringSubmatch(s)
	if m == nil {
		return types.MinorDesignator{}, false
	}
	id := strings.ToUpper(m[1]) + "/" + m[2] + " " + strings.ToUpper(m[3])
	if m[4] != "" {
		id += "-" + strings.ToUpper(m[4])
	}
	return comet(id), true
}

// matchPackedComet reads the eight-character MPC form: orbit type, packed
// provisional designation, and a fragment character ("0" for none).
func matchPackedComet(s string) (types.MinorDesignator, bool) {
	m := rePackedComet.FindStringSubmatch(s)
	if m == nil {
		return types.MinorDesignator{}, false
	}
	year, ok := unpackYear(m[2], m[3])
	if !ok {
		return types.MinorDesignator{}, false
	}
	order, ok := unpackCycle(m[5], m[6])
	if !ok || order == 0 {
		return types.MinorDesignator{}, false
	}
	id := m[1] + "/" + strconv.Itoa(year) + " " + m[4] + strconv.Itoa(order)
	if m[7] != "0" {
		if m[7][0] < 'a' {
			return types.MinorDesignator{}, false
		}
		id += "-" + strings.ToUpper(m[7])
	}
	return comet(id), true
}

func matchSurvey(s string) (types.MinorDesignator, bool) {
	m := reSurvey.FindStringSubmatch(s)
	if m == nil {
		return types.MinorDesignator{}, false
	}
	return asteroid(types.MinorSurvey, m[1]+" "+strings.ToUpper(m[2])), true
}

var surveyNames = map[string]string{"PL": "P-L", "T1": "T-1", "T2": "T-2", "T3": "T-3"}

func matchPackedSurvey(s string) (types.MinorDesignator, bool) {
	m := rePackedSurvey.FindStringSubmatch(s)
	if m == nil {
		return types.MinorDesignator{}, false
	}
	return asteroid(types.MinorPackedSurvey, m[2]+" "+surveyNames[m[1]]), true
}

func matchProvisional(s string) (types.MinorDesignator, bool) {
	m := reProvisional.FindStringSubmatch(s)
	if m == nil {
		return types.MinorDesignator{}, false
	}
	year, _ := strconv.Atoi(m[1])
	if year < provisionalFirstYear || year > 2099 {
		return types.MinorDesignator{}, false
	}
	cycle := m[4]
	if cycle != "" {
		n, _ := strconv.Atoi(cycle)
		if n == 0 {
			return types.MinorDesignator{}, false
		}
		cycle = strconv.Itoa(n)
	}
	id := m[1] + " " + strings.ToUpper(m[2]+m[3]) + cycle
	return asteroid(types.MinorProvisional, id), true
}

func matchPackedProvisional(s string) (types.MinorDesignator, bool) {
	m := rePackedProv.FindStringSubmatch(s)
	if m == nil {
		return types.MinorDesignator{}, false
	}
	year, ok := unpackYear(m[1], m[2])
	if !ok {
		return types.MinorDesignator{}, false
	}
	cycle, ok := unpackCycle(m[4], m[5])
	if !ok {
		return types.MinorDesignator{}, false
	}
	id := strconv.Itoa(year) + " " + m[3] + m[6]
	if cycle > 0 {
		id += strconv.Itoa(cycle)
	}
	return asteroid(types.MinorPackedProvisional, id), true
}

func matchOldStyleLetter(s string) (types.MinorDesignator, bool) {
	m := reOldStyle.FindStringSubmatch(s)
	if m == nil || !plausibleYear(m[1]) {
		return types.MinorDesignator{}, false
	}
	return asteroid(types.MinorOldStyle, m[1]+" "+m[2]), true
}

func matchOldStyleGreek(s string) (types.MinorDesignator, bool) {
	m := reGreek.FindStringSubmatch(s)
	if m == nil || !plausibleYear(m[1]) {
		return types.MinorDesignator{}, false
	}
	name := strings.ToLower(m[2])
	for _, g := range Greek {
		if g == name {
			return asteroid(types.MinorOldStyle, m[1]+" "+name), true
		}
	}
	return types.MinorDesignator{}, false
}

func matchSigma(s string) (types.MinorDesignator, bool) {
	m := reSigma.FindStringSubmatch(s)
	if m == nil {
		return types.MinorDesignator{}, false
	}
	if m[1] != "" && !plausibleYear(m[1]) {
		return types.MinorDesignator{}, false
	}
	var parts []string
	if m[1] != "" {
		parts = append(parts, m[1])
	}
	if m[2] != "" {
		parts = append(parts, m[2])
	}
	parts = append(parts, "sigma")
	return asteroid(types.MinorOldStyle, strings.Join(parts, " ")), true
}

func plausibleYear(s string) bool {
	y, err := strconv.Atoi(s)
	return err == nil && y >= 1800 && y <= 2099
}

// unpackYear decodes a century letter (I=18, J=19, K=20) and two digits.
func unpackYear(century, yy string) (int, bool) {
	c := map[string]int{"I": 1800, "J": 1900, "K": 2000}[century]
	if c == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(yy)
	if err != nil {
		return 0, false
	}
	return c + n, true
}

// unpackCycle decodes the two-character packed cycle count. The first
// character is a digit, A-Z for 10-35 or a-z for 36-61.
func unpackCycle(hi, lo string) (int, bool) {
	var tens int
	switch c := hi[0]; {
	case c >= '0' && c <= '9':
		tens = int(c - '0')
	case c >= 'A' && c <= 'Z':
		tens = int(c-'A') + 10
	case c >= 'a' && c <= 'z':
		tens = int(c-'a') + 36
	default:
		return 0, false
	}
	return tens*10 + int(lo[0]-'0'), true
}

// Pack returns the MPC packed form of a provisional designation such as
// "2007 TA418" ("K07Tf8A"), or false when id is not provisional.
func Pack(id string) (string, bool) {
	d, ok := Parse(id)
	if !ok || (d.Kind != types.MinorProvisional && d.Kind != types.MinorPackedProvisional) {
		return "", false
	}
	m := reProvisional.FindStringSubmatch(d.CanonicalID)
	if m == nil {
		return "", false
	}
	year, _ := strconv.Atoi(m[1])
	century := map[int]string{18: "I", 19: "J", 20: "K"}[year/100]
	cycle := 0
	if m[4] != "" {
		cycle, _ = strconv.Atoi(m[4])
	}
	if cycle > 619 {
		return "", false
	}
	const digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	packed := century + m[1][2:] + m[2] + string(digits[cycle/10]) + strconv.Itoa(cycle%10) + m[3]
	return packed, true
}
