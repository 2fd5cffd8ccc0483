// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Intent is the classified category of a search query.
type Intent string

const (
	IntentCoordinate Intent = "coordinate"
	IntentMinor      Intent = "minor"
	IntentCatalog    Intent = "catalog"
	IntentName       Intent = "name"
	IntentBatch      Intent = "batch"
)

// CoordinateFormat records how a coordinate was written. It is kept for
// diagnostics and never affects numeric identity.
type CoordinateFormat string

const (
	FormatDecimal      CoordinateFormat = "decimal"
	FormatSexagesimal  CoordinateFormat = "sexagesimal"
	FormatEmbeddedName CoordinateFormat = "embedded_name"
)

// Coordinate is a J2000 equatorial position in degrees.
type Coordinate struct {
	RA     float64          `json:"ra" yaml:"ra"`
	Dec    float64          `json:"dec" yaml:"dec"`
	Format CoordinateFormat `json:"format,omitempty" yaml:"format,omitempty"`
}

// MinorKind is the designation family of a minor planet or comet.
type MinorKind string

const (
	MinorNumbered          MinorKind = "numbered"
	MinorProvisional       MinorKind = "provisional"
	MinorPackedProvisional MinorKind = "packed_provisional"
	MinorSurvey            MinorKind = "survey"
	MinorPackedSurvey      MinorKind = "packed_survey"
	MinorComet             MinorKind = "comet"
	MinorOldStyle          MinorKind = "old_style"
)

// MinorCategory separates asteroids from comets.
type MinorCategory string

const (
	MinorAsteroid MinorCategory = "asteroid"
	MinorCometary MinorCategory = "comet"
)

// MinorDesignator is a parsed minor-planet or comet designation.
type MinorDesignator struct {
	Kind     MinorKind     `json:"kind"`
	Category MinorCategory `json:"category"`

	// Rule names the grammar that matched (e.g. "packed_comet").
	Rule string `json:"rule"`

	// NormalizedForm is the whitespace- and dash-normalized input.
	NormalizedForm string `json:"normalized_form"`

	// CanonicalID is stable across sources: "(1)" for both "1" and "(1)".
	CanonicalID string `json:"canonical_id"`

	// SequenceNumber is set for numbered objects and numbered comets.
	SequenceNumber *int `json:"sequence_number,omitempty"`
}

// ParsedQuery is the classifier's decision for one search input. Exactly one
// of Coordinate, Minor, CatalogID or BatchSubqueries is populated, matching
// Intent; a name query populates none of them.
type ParsedQuery struct {
	RawInput        string `json:"raw_input"`
	NormalizedInput string `json:"normalized_input"`
	Intent          Intent `json:"intent"`
	CanonicalID     string `json:"canonical_id"`

	Coordinate      *Coordinate      `json:"coordinate,omitempty"`
	Minor           *MinorDesignator `json:"minor,omitempty"`
	CatalogID       string           `json:"catalog_id,omitempty"`
	BatchSubqueries []string         `json:"batch_subqueries,omitempty"`

	// CatalogCoordinate is a secondary coordinate read from a catalog
	// identifier (e.g. a J-name). Context only.
	CatalogCoordinate *Coordinate `json:"catalog_coordinate,omitempty"`

	// ExplicitMinorObject overrides a "hide minor objects" filter policy.
	ExplicitMinorObject bool `json:"explicit_minor_object"`
}

// ContextCoordinate returns the coordinate a search should measure angular
// separations from, if any.
func (q ParsedQuery) ContextCoordinate() *Coordinate {
	if q.Coordinate != nil {
		return q.Coordinate
	}
	return q.CatalogCoordinate
}
