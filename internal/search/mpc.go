// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/minor"
	"github.com/pdiddy/skyquery/internal/normalize"
	"github.com/pdiddy/skyquery/pkg/types"
)

// mpcIdentifierBase is the Minor Planet Center identifier service. Declared
// as a var so tests can substitute an httptest server.
var mpcIdentifierBase = "https://data.minorplanetcenter.net/api/query-identifier"

// MPC resolves asteroid and comet designations and names through the Minor
// Planet Center.
type MPC struct {
	c client
}

// NewMPC returns a Minor Planet Center provider.
func NewMPC(cfg ClientConfig) *MPC {
	return &MPC{c: newClient(cfg)}
}

// Name returns the provider identifier.
func (m *MPC) Name() string { return "mpc" }

// Source implements Provider.
func (m *MPC) Source() types.Source { return types.SourceMinorPlanetCenter }

type mpcResponse struct {
	Found      int    `json:"found"`
	ObjectType []any  `json:"object_type"`
	PermID     string `json:"permid"`
	Name       string `json:"name"`
	Unpacked   string `json:"unpacked_primary_provisional_designation"`
	Packed     string `json:"packed_primary_provisional_designation"`
}

// SearchByName identifies query. The service takes the identifier as the
// request body of a GET.
func (m *MPC) SearchByName(ctx context.Context, query string, _ ProviderOptions) ([]types.ProviderRecord, error) {
	query = normalize.IdentifierToken(query)
	if query == "" {
		return nil, errors.New("empty MPC query")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mpcIdentifierBase, strings.NewReader(query))
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	body, err := m.c.fetch(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "MPC request")
	}

	var mr mpcResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return nil, errors.Wrap(err, "parsing MPC response")
	}
	if mr.Found == 0 {
		return nil, nil
	}
	return []types.ProviderRecord{mpcRecord(mr, query)}, nil
}

// SearchByCoordinates is not offered by the identifier service.
func (m *MPC) SearchByCoordinates(context.Context, ConeQuery, ProviderOptions) ([]types.ProviderRecord, error) {
	return nil, nil
}

func mpcRecord(mr mpcResponse, query string) types.ProviderRecord {
	rec := types.ProviderRecord{
		Confidence: 1,
		Type:       "Asteroid",
		Category:   types.CategoryAsteroid,
		Source:     types.SourceMinorPlanetCenter,
	}
	if len(mr.ObjectType) > 0 {
		if kind, ok := mr.ObjectType[0].(string); ok && strings.Contains(strings.ToLower(kind), "comet") {
			rec.Type, rec.Category = "Comet", types.CategoryComet
		}
	}

	switch {
	case mr.PermID != "" && mr.Name != "" && rec.Category == types.CategoryAsteroid:
		rec.Name = "(" + mr.PermID + ") " + mr.Name
	case mr.PermID != "" && mr.Name != "":
		rec.Name = mr.PermID + "/" + mr.Name
	case mr.PermID != "":
		rec.Name = mr.PermID
	case mr.Unpacked != "":
		rec.Name = mr.Unpacked
	default:
		rec.Name = query
	}

	rec.CanonicalID = minor.CanonicalID(rec.Name)
	if rec.CanonicalID == "" {
		rec.CanonicalID = normalize.CanonicalID(rec.Name)
	}

	packed := mr.Packed
	if packed == "" && mr.Unpacked != "" {
		packed, _ = minor.Pack(mr.Unpacked)
	}
	for _, id := range []string{mr.Name, mr.Unpacked, packed} {
		if id != "" && id != rec.Name {
			rec.Identifiers = append(rec.Identifiers, id)
		}
	}
	return rec
}
