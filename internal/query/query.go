// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query classifies free-form search text into an intent. Precedence:
// several non-empty lines form a batch; otherwise a coordinate, then a
// minor-object designation, then a catalog identifier, and finally a plain
// name. Designations and coordinates win over catalog-looking text so that a
// catalog prefix never shadows a minor-object query.
package query

import (
	"strings"

	"github.com/pdiddy/skyquery/internal/catalog"
	"github.com/pdiddy/skyquery/internal/coords"
	"github.com/pdiddy/skyquery/internal/minor"
	"github.com/pdiddy/skyquery/internal/normalize"
	"github.com/pdiddy/skyquery/pkg/types"
)

// Parse classifies input. It never fails; unrecognized text is a name query.
func Parse(input string) types.ParsedQuery {
	q := types.ParsedQuery{
		RawInput:        input,
		NormalizedInput: normalize.IdentifierToken(input),
	}

	if lines := SplitLines(input); len(lines) >= 2 {
		q.Intent = types.IntentBatch
		q.BatchSubqueries = lines
		return q
	}

	if c, ok := coords.Parse(input); ok {
		q.Intent = types.IntentCoordinate
		q.Coordinate = &c
		q.CanonicalID = coords.String(c)
		return q
	}

	if d, ok := minor.Parse(input); ok {
		q.Intent = types.IntentMinor
		q.Minor = &d
		q.CanonicalID = d.CanonicalID
		q.ExplicitMinorObject = true
		return q
	}

	if id, ok := catalog.Parse(input); ok {
		q.Intent = types.IntentCatalog
		q.CatalogID = id
		q.CanonicalID = id
		if c, ok := coords.Parse(id); ok {
			q.CatalogCoordinate = &c
		}
		return q
	}

	q.Intent = types.IntentName
	q.CanonicalID = normalize.CanonicalID(input)
	return q
}

// SplitLines returns the trimmed non-empty lines of s.
func SplitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
