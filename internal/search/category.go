// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/skyquery/pkg/types"
)

// objectTypes maps SIMBAD object-type codes to a display label and a coarse
// category. Codes not listed fall back to keyword matching in Categorize.
var objectTypes = map[string]struct {
	label    string
	category types.ObjectCategory
}{
	"*":   {"Star", types.CategoryStar},
	"**":  {"Double Star", types.CategoryStar},
	"V*":  {"Variable Star", types.CategoryStar},
	"PM*": {"High Proper Motion Star", types.CategoryStar},
	"HB*": {"Horizontal Branch Star", types.CategoryStar},
	"WD*": {"White Dwarf", types.CategoryStar},
	"C*":  {"Carbon Star", types.CategoryStar},
	"Be*": {"Be Star", types.CategoryStar},
	"EB*": {"Eclipsing Binary", types.CategoryStar},
	"SB*": {"Spectroscopic Binary", types.CategoryStar},
	"G":   {"Galaxy", types.CategoryDSO},
	"GiG": {"Galaxy in Group", types.CategoryDSO},
	"GiC": {"Galaxy in Cluster", types.CategoryDSO},
	"GiP": {"Galaxy in Pair", types.CategoryDSO},
	"IG":  {"Interacting Galaxies", types.CategoryDSO},
	"Sy2": {"Seyfert 2 Galaxy", types.CategoryDSO},
	"Sy1": {"Seyfert 1 Galaxy", types.CategoryDSO},
	"AGN": {"Active Galaxy Nucleus", types.CategoryDSO},
	"QSO": {"Quasar", types.CategoryDSO},
	"ClG": {"Galaxy Cluster", types.CategoryDSO},
	"GrG": {"Galaxy Group", types.CategoryDSO},
	"OpC": {"Open Cluster", types.CategoryDSO},
	"Cl*": {"Star Cluster", types.CategoryDSO},
	"GlC": {"Globular Cluster", types.CategoryDSO},
	"As*": {"Stellar Association", types.CategoryDSO},
	"PN":  {"Planetary Nebula", types.CategoryDSO},
	"HII": {"HII Region", types.CategoryDSO},
	"RNe": {"Reflection Nebula", types.CategoryDSO},
	"DNe": {"Dark Nebula", types.CategoryDSO},
	"SNR": {"Supernova Remnant", types.CategoryDSO},
	"ISM": {"Interstellar Matter", types.CategoryDSO},
	"MoC": {"Molecular Cloud", types.CategoryDSO},
	"Pl":  {"Planet", types.CategoryPlanet},
	"MPl": {"Asteroid", types.CategoryAsteroid},
	"Ast": {"Asteroid", types.CategoryAsteroid},
	"Com": {"Comet", types.CategoryComet},
	"Rad": {"Radio Source", types.CategoryOther},
	"X":   {"X-ray Source", types.CategoryOther},
	"IR":  {"Infrared Source", types.CategoryOther},
	"gam": {"Gamma-ray Source", types.CategoryOther},
}

// TypeLabel returns the display label for a SIMBAD object-type code, or the
// code itself when it is not known.
func TypeLabel(otype string) string {
	if t, ok := objectTypes[strings.TrimSpace(otype)]; ok {
		return t.label
	}
	return strings.TrimSpace(otype)
}

// Categorize derives the coarse category of an object type, accepting either
// a SIMBAD code ("GlC") or a free-text label ("Globular Cluster").
func Categorize(objectType string) types.ObjectCategory {
	objectType = strings.TrimSpace(objectType)
	if objectType == "" {
		return ""
	}
	if t, ok := objectTypes[objectType]; ok {
		return t.category
	}
	lower := strings.ToLower(objectType)
	switch {
	case strings.Contains(lower, "comet"):
		return types.CategoryComet
	case strings.Contains(lower, "asteroid"), strings.Contains(lower, "minor planet"),
		strings.Contains(lower, "near-earth"), strings.Contains(lower, "trans-neptunian"):
		return types.CategoryAsteroid
	case strings.Contains(lower, "planet") && !strings.Contains(lower, "nebula"):
		return types.CategoryPlanet
	case strings.Contains(lower, "galax"), strings.Contains(lower, "nebula"),
		strings.Contains(lower, "cluster"), strings.Contains(lower, "remnant"),
		strings.Contains(lower, "hii"), strings.Contains(lower, "quasar"):
		return types.CategoryDSO
	case strings.Contains(lower, "star"), strings.Contains(objectType, "*"):
		return types.CategoryStar
	}
	return types.CategoryOther
}

// FilterMinor drops asteroid and comet records unless include is set.
func FilterMinor(records []types.ProviderRecord, include bool) []types.ProviderRecord {
	if include {
		return records
	}
	out := make([]types.ProviderRecord, 0, len(records))
	for _, r := range records {
		cat := r.Category
		if cat == "" {
			cat = Categorize(r.Type)
		}
		if !cat.IsMinor() {
			out = append(out, r)
		}
	}
	return out
}
