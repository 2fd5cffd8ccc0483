// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the skyquery pipeline:
// parsed queries, search results exchanged between providers and the merge
// engine, astronomy computation requests and responses, and configuration.
package types

// Source identifies where a search result came from. The merge engine ranks
// sources by SourcePriority when two records describe the same object.
type Source string

const (
	SourceMinorPlanetCenter Source = "minor_planet_center"
	SourceNameResolver      Source = "name_resolver"
	SourceObjectDatabase    Source = "object_database"
	SourceLargeCatalog      Source = "large_catalog"
	SourceNameService       Source = "name_service"
	SourceLocal             Source = "local"
	SourceUnknown           Source = "unknown"
)

// sourcePriority orders sources for merging; lower wins.
var sourcePriority = map[Source]int{
	SourceMinorPlanetCenter: 0,
	SourceNameResolver:      1,
	SourceObjectDatabase:    2,
	SourceLargeCatalog:      3,
	SourceNameService:       4,
	SourceLocal:             5,
	SourceUnknown:           6,
}

// Priority returns the merge priority of s. Unrecognized sources rank with
// SourceUnknown.
func (s Source) Priority() int {
	if p, ok := sourcePriority[s]; ok {
		return p
	}
	return sourcePriority[SourceUnknown]
}

// ObjectCategory is the coarse classification used by the minor-object
// inclusion filter.
type ObjectCategory string

const (
	CategoryStar     ObjectCategory = "star"
	CategoryDSO      ObjectCategory = "dso"
	CategoryPlanet   ObjectCategory = "planet"
	CategoryAsteroid ObjectCategory = "asteroid"
	CategoryComet    ObjectCategory = "comet"
	CategoryOther    ObjectCategory = "other"
)

// IsMinor reports whether the category covers asteroids or comets.
func (c ObjectCategory) IsMinor() bool {
	return c == CategoryAsteroid || c == CategoryComet
}

// SearchResultItem is the unit returned to callers after local search,
// provider search and merging.
type SearchResultItem struct {
	// ID is a stable identifier for the record within its source.
	ID string `json:"id" yaml:"id"`

	// Name is the primary display name (e.g. "M31", "Andromeda Galaxy").
	Name string `json:"name" yaml:"name"`

	// Type is the object-type classification reported by the source
	// (e.g. "Galaxy", "Open Cluster", "Asteroid").
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Category is the coarse classification derived from Type.
	Category ObjectCategory `json:"category,omitempty" yaml:"category,omitempty"`

	// RA and Dec are J2000 equatorial coordinates in degrees. Name-only
	// hits may lack them.
	RA  *float64 `json:"ra,omitempty" yaml:"ra,omitempty"`
	Dec *float64 `json:"dec,omitempty" yaml:"dec,omitempty"`

	// Magnitude is the visual magnitude, when known.
	Magnitude *float64 `json:"magnitude,omitempty" yaml:"magnitude,omitempty"`

	// Size is the angular size as reported by the source (e.g. "178x63 arcmin").
	Size string `json:"size,omitempty" yaml:"size,omitempty"`

	// AlternateNames is a comma-separated list of aliases.
	AlternateNames string `json:"alternate_names,omitempty" yaml:"alternate_names,omitempty"`

	// CanonicalID is the normalized identifier used for identity comparison.
	CanonicalID string `json:"canonical_id,omitempty" yaml:"canonical_id,omitempty"`

	// Source identifies which provider or local catalog produced the record.
	Source Source `json:"source" yaml:"source"`

	// SourcePriority is assigned during merging and used only for ordering.
	SourcePriority int `json:"source_priority" yaml:"source_priority"`

	// AngularSeparation is the distance in arcseconds from the query
	// coordinate, set during merging when a coordinate context was supplied.
	AngularSeparation *float64 `json:"angular_separation,omitempty" yaml:"angular_separation,omitempty"`
}

// HasCoordinates reports whether both RA and Dec are populated.
func (r SearchResultItem) HasCoordinates() bool {
	return r.RA != nil && r.Dec != nil
}

// ProviderRecord is a single hit returned by an online provider before it is
// converted to a SearchResultItem.
type ProviderRecord struct {
	Name        string   `json:"name"`
	CanonicalID string   `json:"canonical_id,omitempty"`
	Identifiers []string `json:"identifiers,omitempty"`
	Confidence  float64  `json:"confidence"`
	Type        string   `json:"type,omitempty"`

	Category  ObjectCategory `json:"category,omitempty"`
	RA        *float64       `json:"ra,omitempty"`
	Dec       *float64       `json:"dec,omitempty"`
	Magnitude *float64       `json:"magnitude,omitempty"`
	Size      string         `json:"size,omitempty"`
	Source    Source         `json:"source"`
}

// Float returns a pointer to v. Convenience for optional numeric fields.
func Float(v float64) *float64 {
	return &v
}
