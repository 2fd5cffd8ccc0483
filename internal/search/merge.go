// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"slices"
	"strings"

	"github.com/pdiddy/skyquery/internal/astro"
	"github.com/pdiddy/skyquery/internal/normalize"
	"github.com/pdiddy/skyquery/pkg/types"
)

// DefaultDedupRadiusArcsec is the separation under which two positioned
// records are the same object.
const DefaultDedupRadiusArcsec = 5.0

// MergeOptions controls Merge.
type MergeOptions struct {
	// MaxResults caps the output. Zero means no cap.
	MaxResults int

	// DedupRadiusArcsec is the identity threshold for positioned records.
	// Zero means DefaultDedupRadiusArcsec.
	DedupRadiusArcsec float64

	// Context, when set, is the coordinate every positioned output record
	// measures its AngularSeparation from.
	Context *types.Coordinate
}

// Merge combines local and online records into one deduplicated list sorted
// by ascending source priority. Records are the same object when their
// positions agree within the dedup radius, or when one's name equals the
// other's name or one of its aliases. The higher-priority record of a match
// keeps its fields, absorbs the other's name and aliases, and backfills
// anything it lacks.
//
// Matching is transitive: records chained through pairwise matches form one
// group, so which records collapse does not depend on argument order. Each
// group's base is its highest-priority record; ties in priority keep
// insertion order, local first.
func Merge(local, online []types.SearchResultItem, opts MergeOptions) []types.SearchResultItem {
	radius := opts.DedupRadiusArcsec
	if radius <= 0 {
		radius = DefaultDedupRadiusArcsec
	}

	all := make([]types.SearchResultItem, 0, len(local)+len(online))
	all = append(all, local...)
	all = append(all, online...)
	for i := range all {
		all[i].SourcePriority = all[i].Source.Priority()
	}
	slices.SortStableFunc(all, func(a, b types.SearchResultItem) int {
		return a.SourcePriority - b.SourcePriority
	})

	g := newGroups(len(all))
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if sameObject(all[i], all[j], radius) {
				g.union(i, j)
			}
		}
	}

	var merged []types.SearchResultItem
	slot := make(map[int]int, len(all))
	for i, r := range all {
		root := g.find(i)
		if idx, ok := slot[root]; ok {
			mergeInto(&merged[idx], r)
			continue
		}
		slot[root] = len(merged)
		merged = append(merged, r)
	}

	if opts.MaxResults > 0 && len(merged) > opts.MaxResults {
		merged = merged[:opts.MaxResults]
	}
	if c := opts.Context; c != nil {
		for i := range merged {
			if merged[i].HasCoordinates() {
				sep := astro.HaversineArcsec(c.RA, c.Dec, *merged[i].RA, *merged[i].Dec)
				merged[i].AngularSeparation = &sep
			}
		}
	}
	return merged
}

// groups is a union-find over record indexes. The root of a group is its
// lowest index, which after the priority sort is the group's base.
type groups []int

func newGroups(n int) groups {
	g := make(groups, n)
	for i := range g {
		g[i] = i
	}
	return g
}

func (g groups) find(i int) int {
	for g[i] != i {
		g[i] = g[g[i]]
		i = g[i]
	}
	return i
}

func (g groups) union(i, j int) {
	ri, rj := g.find(i), g.find(j)
	switch {
	case ri < rj:
		g[rj] = ri
	case rj < ri:
		g[ri] = rj
	}
}

// AngularSeparation returns the great-circle distance between two records
// in arcseconds. ok is false when either lacks a position.
func AngularSeparation(a, b types.SearchResultItem) (float64, bool) {
	if !a.HasCoordinates() || !b.HasCoordinates() {
		return 0, false
	}
	return astro.HaversineArcsec(*a.RA, *a.Dec, *b.RA, *b.Dec), true
}

func sameObject(a, b types.SearchResultItem, radiusArcsec float64) bool {
	if sep, ok := AngularSeparation(a, b); ok && sep <= radiusArcsec {
		return true
	}
	ka, kb := normalize.NameKey(a.Name), normalize.NameKey(b.Name)
	if ka == "" || kb == "" {
		return false
	}
	if ka == kb {
		return true
	}
	return slices.Contains(aliasKeys(a), kb) || slices.Contains(aliasKeys(b), ka)
}

// SplitAliases splits a comma-separated alias field.
func SplitAliases(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func aliasKeys(r types.SearchResultItem) []string {
	aliases := SplitAliases(r.AlternateNames)
	keys := make([]string, 0, len(aliases))
	for _, a := range aliases {
		keys = append(keys, normalize.NameKey(a))
	}
	return keys
}

// mergeInto unions src's names into dst's aliases and fills dst's missing
// fields from src without overwriting.
func mergeInto(dst *types.SearchResultItem, src types.SearchResultItem) {
	seen := map[string]bool{normalize.NameKey(dst.Name): true}
	aliases := SplitAliases(dst.AlternateNames)
	for _, a := range aliases {
		seen[normalize.NameKey(a)] = true
	}
	for _, a := range append([]string{src.Name}, SplitAliases(src.AlternateNames)...) {
		k := normalize.NameKey(a)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		aliases = append(aliases, a)
	}
	dst.AlternateNames = strings.Join(aliases, ", ")

	if !dst.HasCoordinates() && src.HasCoordinates() {
		dst.RA, dst.Dec = src.RA, src.Dec
	}
	if dst.Magnitude == nil {
		dst.Magnitude = src.Magnitude
	}
	if dst.Size == "" {
		dst.Size = src.Size
	}
	if dst.Type == "" {
		dst.Type = src.Type
	}
	if dst.Category == "" {
		dst.Category = src.Category
	}
	if dst.CanonicalID == "" {
		dst.CanonicalID = src.CanonicalID
	}
}
