// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog recognizes fixed-prefix catalog identifiers (deep-sky and
// stellar surveys) and rewrites them to their conventional written form.
package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/skyquery/internal/normalize"
)

type pattern struct {
	re     *regexp.Regexp
	format func(m []string) (string, bool)
}

// numbered returns a formatter for PREFIX + integer (+ optional suffix),
// rejecting numbers outside [1, max]. max 0 means unbounded.
func numbered(prefix, sep string, max int) func([]string) (string, bool) {
	return func(m []string) (string, bool) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || (max > 0 && n > max) {
			return "", false
		}
		id := prefix + sep + strconv.Itoa(n)
		if len(m) > 2 {
			id += strings.ToUpper(m[2])
		}
		return id, true
	}
}

func verbatim(prefix string) func([]string) (string, bool) {
	return func(m []string) (string, bool) {
		return prefix + strings.ToUpper(m[1]), true
	}
}

var patterns = []pattern{
	{regexp.MustCompile(`(?i)^(?:M|Messier) ?(\d{1,3})$`), numbered("M", "", 110)},
	{regexp.MustCompile(`(?i)^(?:C|Caldwell) ?(\d{1,3})$`), numbered("C", "", 109)},
	{regexp.MustCompile(`(?i)^NGC ?(\d{1,4})([A-F]?)$`), numbered("NGC", " ", 7840)},
	{regexp.MustCompile(`(?i)^IC ?(\d{1,4})([A-F]?)$`), numbered("IC", " ", 5386)},
	{regexp.MustCompile(`(?i)^Sh ?2 ?-? ?(\d{1,3})$`), numbered("Sh2", "-", 313)},
	{regexp.MustCompile(`(?i)^(?:B|Barnard) ?(\d{1,3})$`), numbered("B", " ", 370)},
	{regexp.MustCompile(`(?i)^LDN ?(\d{1,4})$`), numbered("LDN", " ", 0)},
	{regexp.MustCompile(`(?i)^LBN ?(\d{1,4})$`), numbered("LBN", " ", 0)},
	{regexp.MustCompile(`(?i)^vdB ?(\d{1,3})$`), numbered("vdB", " ", 0)},
	{regexp.MustCompile(`(?i)^(?:Abell|ACO) ?(\d{1,4})$`), numbered("Abell", " ", 0)},
	{regexp.MustCompile(`(?i)^PGC ?(\d{1,7})$`), numbered("PGC", " ", 0)},
	{regexp.MustCompile(`(?i)^UGC ?(\d{1,5})$`), numbered("UGC", " ", 0)},
	{regexp.MustCompile(`(?i)^MCG ?([+-]\d{2}-\d{2}-\d{3})$`), verbatim("MCG ")},
	{regexp.MustCompile(`(?i)^Arp ?(\d{1,3})$`), numbered("Arp", " ", 338)},
	{regexp.MustCompile(`(?i)^(?:Mel|Melotte) ?(\d{1,3})$`), numbered("Mel", " ", 0)},
	{regexp.MustCompile(`(?i)^(?:Cr|Collinder) ?(\d{1,3})$`), numbered("Cr", " ", 0)},
	{regexp.MustCompile(`(?i)^(?:Tr|Trumpler) ?(\d{1,3})$`), numbered("Tr", " ", 0)},
	{regexp.MustCompile(`(?i)^Stock ?(\d{1,2})$`), numbered("Stock", " ", 0)},
	{regexp.MustCompile(`(?i)^HD ?(\d{1,6})$`), numbered("HD", " ", 0)},
	{regexp.MustCompile(`(?i)^HIP ?(\d{1,6})$`), numbered("HIP", " ", 0)},
	{regexp.MustCompile(`(?i)^HR ?(\d{1,4})$`), numbered("HR", " ", 0)},
	{regexp.MustCompile(`(?i)^SAO ?(\d{1,6})$`), numbered("SAO", " ", 0)},
	{regexp.MustCompile(`(?i)^TYC ?(\d{1,4}-\d{1,5}-\d)$`), verbatim("TYC ")},
	{regexp.MustCompile(`(?i)^Gaia ?DR3 ?(\d{6,20})$`), verbatim("Gaia DR3 ")},
	{regexp.MustCompile(`(?i)^2MASS ?J? ?(\d{8}[+-]\d{7})$`), verbatim("2MASS J")},
	{regexp.MustCompile(`(?i)^(?:GJ|Gliese) ?(\d{1,4}(?:\.\d)?[A-C]?)$`), verbatim("GJ ")},
}

// Parse returns the canonical catalog identifier for s: "m 31" -> "M31",
// "ngc224" -> "NGC 224", "2mass j00424433+4116074" ->
// "2MASS J00424433+4116074". ok is false when s is not a catalog identifier.
func Parse(s string) (string, bool) {
	s = normalize.IdentifierToken(s)
	if s == "" {
		return "", false
	}
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(s); m != nil {
			return p.format(m)
		}
	}
	return "", false
}
