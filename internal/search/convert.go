// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/skyquery/internal/normalize"
	"github.com/pdiddy/skyquery/pkg/types"
)

// ToResultItem converts a provider record to the result schema. The record's
// identifiers other than its name become the alias list.
func ToResultItem(rec types.ProviderRecord) types.SearchResultItem {
	canonical := rec.CanonicalID
	if canonical == "" {
		canonical = normalize.CanonicalID(rec.Name)
	}
	source := rec.Source
	if source == "" {
		source = types.SourceUnknown
	}
	category := rec.Category
	if category == "" {
		category = Categorize(rec.Type)
	}

	nameKey := normalize.NameKey(rec.Name)
	seen := map[string]bool{nameKey: true}
	var aliases []string
	for _, id := range rec.Identifiers {
		k := normalize.NameKey(id)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		aliases = append(aliases, normalize.Whitespace(id))
	}

	return types.SearchResultItem{
		ID:             string(source) + ":" + canonical,
		Name:           rec.Name,
		Type:           rec.Type,
		Category:       category,
		RA:             rec.RA,
		Dec:            rec.Dec,
		Magnitude:      rec.Magnitude,
		Size:           rec.Size,
		AlternateNames: strings.Join(aliases, ", "),
		CanonicalID:    canonical,
		Source:         source,
	}
}

// ToResultItems converts every record.
func ToResultItems(records []types.ProviderRecord) []types.SearchResultItem {
	out := make([]types.SearchResultItem, 0, len(records))
	for _, r := range records {
		out = append(out, ToResultItem(r))
	}
	return out
}
