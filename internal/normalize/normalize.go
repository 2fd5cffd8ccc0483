// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize folds free-form identifier text into comparable forms.
// All functions are pure and total.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// dashes maps every Unicode dash variant to ASCII hyphen-minus.
var dashes = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"―", "-", // horizontal bar
	"⁃", "-", // hyphen bullet
	"−", "-", // minus sign
	"﹘", "-", // small em dash
	"﹣", "-", // small hyphen-minus
	"－", "-", // fullwidth hyphen-minus
)

// Whitespace trims s and collapses every internal whitespace run to a
// single ASCII space.
func Whitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// Fold maps compatibility characters (fullwidth digits and letters) to
// ASCII and every dash variant to "-", then collapses whitespace.
func Fold(s string) string {
	return Whitespace(dashes.Replace(norm.NFKC.String(s)))
}

// IdentifierToken is Fold followed by dropping spaces around dashes, so
// "C/2019 Q4 – A" becomes "C/2019 Q4-A".
func IdentifierToken(s string) string {
	s = Fold(s)
	if !strings.Contains(s, "-") {
		return s
	}
	s = strings.ReplaceAll(s, " -", "-")
	s = strings.ReplaceAll(s, "- ", "-")
	return s
}

// CanonicalID returns the upper-cased identifier token of s, the form used
// for identity comparison across sources.
func CanonicalID(s string) string {
	return strings.ToUpper(IdentifierToken(s))
}

// NameKey is the comparison key for display names: the canonical ID with
// every space removed, so "M 31", "m31" and "M31" compare equal.
func NameKey(s string) string {
	return strings.ReplaceAll(CanonicalID(s), " ", "")
}
