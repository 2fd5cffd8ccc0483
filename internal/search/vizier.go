// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/pkg/types"
)

// vizierTAPBase is the VizieR TAP synchronous endpoint. Declared as a var so
// tests can substitute an httptest server.
var vizierTAPBase = "https://tapvizier.cds.unistra.fr/TAPVizieR/tap/sync"

// DefaultVizierTable is the Hipparcos new reduction, queried for cone
// searches when no table is configured.
const DefaultVizierTable = "I/311/hip2"

// Vizier runs cone searches against one VizieR catalog table. The table must
// expose the Hipparcos column names HIP, RArad, DErad and Hpmag.
type Vizier struct {
	c     client
	table string
}

// NewVizier returns a VizieR provider over table, or DefaultVizierTable.
func NewVizier(cfg ClientConfig, table string) *Vizier {
	if table == "" {
		table = DefaultVizierTable
	}
	return &Vizier{c: newClient(cfg), table: table}
}

// Name returns the provider identifier.
func (v *Vizier) Name() string { return "vizier" }

// Source implements Provider.
func (v *Vizier) Source() types.Source { return types.SourceLargeCatalog }

// SearchByName is not offered; VizieR tables are searched by position.
func (v *Vizier) SearchByName(context.Context, string, ProviderOptions) ([]types.ProviderRecord, error) {
	return nil, nil
}

// SearchByCoordinates returns catalog stars inside the cone, nearest first.
func (v *Vizier) SearchByCoordinates(ctx context.Context, cone ConeQuery, opts ProviderOptions) ([]types.ProviderRecord, error) {
	adql := fmt.Sprintf(`SELECT TOP %d "HIP", "RArad", "DErad", "Hpmag" FROM "%s" `+
		`WHERE 1 = CONTAINS(POINT('ICRS', "RArad", "DErad"), CIRCLE('ICRS', %.8f, %.8f, %.8f)) `+
		`ORDER BY DISTANCE(POINT('ICRS', "RArad", "DErad"), POINT('ICRS', %.8f, %.8f))`,
		limitOr(opts.Limit, 20), v.table, cone.RA, cone.Dec, cone.RadiusDeg, cone.RA, cone.Dec)

	rows, err := queryTAP(ctx, v.c, vizierTAPBase, adql)
	if err != nil {
		return nil, errors.Wrap(err, "VizieR query")
	}
	records := make([]types.ProviderRecord, 0, len(rows))
	for _, r := range rows {
		hip := r.str("HIP")
		if hip == "" {
			continue
		}
		name := "HIP " + hip
		records = append(records, types.ProviderRecord{
			Name:        name,
			CanonicalID: name,
			Confidence:  0.6,
			Type:        "Star",
			Category:    types.CategoryStar,
			RA:          r.floatPtr("RArad"),
			Dec:         r.floatPtr("DErad"),
			Magnitude:   r.floatPtr("Hpmag"),
			Source:      types.SourceLargeCatalog,
		})
	}
	return records, nil
}
