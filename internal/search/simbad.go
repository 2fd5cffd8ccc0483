// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/normalize"
	"github.com/pdiddy/skyquery/pkg/types"
)

// simbadTAPBase is the SIMBAD TAP synchronous endpoint. Declared as a var so
// tests can substitute an httptest server.
var simbadTAPBase = "https://simbad.cds.unistra.fr/simbad/sim-tap/sync"

const simbadColumns = `basic.main_id, basic.ra, basic.dec, basic.otype, allfluxes.V, basic.galdim_majaxis, basic.galdim_minaxis`

// Simbad queries the SIMBAD object database by identifier and by cone.
type Simbad struct {
	c client
}

// NewSimbad returns a SIMBAD provider.
func NewSimbad(cfg ClientConfig) *Simbad {
	return &Simbad{c: newClient(cfg)}
}

// Name returns the provider identifier.
func (s *Simbad) Name() string { return "simbad" }

// Source implements Provider.
func (s *Simbad) Source() types.Source { return types.SourceObjectDatabase }

// SearchByName looks query up in the identifier table.
func (s *Simbad) SearchByName(ctx context.Context, query string, opts ProviderOptions) ([]types.ProviderRecord, error) {
	query = normalize.Whitespace(query)
	if query == "" {
		return nil, errors.New("empty SIMBAD query")
	}
	adql := fmt.Sprintf(`SELECT TOP %d %s FROM basic JOIN ident ON ident.oidref = basic.oid `+
		`LEFT JOIN allfluxes ON allfluxes.oidref = basic.oid WHERE ident.id = %s`,
		limitOr(opts.Limit, 10), simbadColumns, adqlString(query))
	return s.run(ctx, adql, 1)
}

// SearchByCoordinates returns objects inside the cone, nearest first.
func (s *Simbad) SearchByCoordinates(ctx context.Context, cone ConeQuery, opts ProviderOptions) ([]types.ProviderRecord, error) {
	adql := fmt.Sprintf(`SELECT TOP %d %s FROM basic `+
		`LEFT JOIN allfluxes ON allfluxes.oidref = basic.oid `+
		`WHERE CONTAINS(POINT('ICRS', basic.ra, basic.dec), CIRCLE('ICRS', %.8f, %.8f, %.8f)) = 1 `+
		`ORDER BY DISTANCE(POINT('ICRS', basic.ra, basic.dec), POINT('ICRS', %.8f, %.8f))`,
		limitOr(opts.Limit, 20), simbadColumns, cone.RA, cone.Dec, cone.RadiusDeg, cone.RA, cone.Dec)
	return s.run(ctx, adql, 0.8)
}

func (s *Simbad) run(ctx context.Context, adql string, confidence float64) ([]types.ProviderRecord, error) {
	rows, err := queryTAP(ctx, s.c, simbadTAPBase, adql)
	if err != nil {
		return nil, errors.Wrap(err, "SIMBAD query")
	}
	records := make([]types.ProviderRecord, 0, len(rows))
	for _, r := range rows {
		name := normalize.Whitespace(r.str("main_id"))
		if name == "" {
			continue
		}
		otype := r.str("otype")
		rec := types.ProviderRecord{
			Name:        name,
			CanonicalID: normalize.CanonicalID(name),
			Confidence:  confidence,
			Type:        TypeLabel(otype),
			Category:    Categorize(otype),
			RA:          r.floatPtr("ra"),
			Dec:         r.floatPtr("dec"),
			Magnitude:   r.floatPtr("V"),
			Size:        galaxySize(r),
			Source:      types.SourceObjectDatabase,
		}
		records = append(records, rec)
	}
	return records, nil
}

// galaxySize renders the major/minor axes (arcmin) as "178x63 arcmin".
func galaxySize(r tapRow) string {
	maj, ok := r.float("galdim_majaxis")
	if !ok {
		return ""
	}
	if minAxis, ok := r.float("galdim_minaxis"); ok {
		return fmt.Sprintf("%gx%g arcmin", maj, minAxis)
	}
	return fmt.Sprintf("%g arcmin", maj)
}
