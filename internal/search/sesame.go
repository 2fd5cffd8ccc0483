// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/normalize"
	"github.com/pdiddy/skyquery/pkg/types"
)

// sesameBase is the Sesame name resolver in plain-text identifier mode,
// asking SIMBAD, NED and VizieR in turn. Declared as a var so tests can
// substitute an httptest server.
var sesameBase = "https://cds.unistra.fr/cgi-bin/nph-sesame/-oI/SNV"

// Sesame resolves object names to positions through the CDS Sesame service.
type Sesame struct {
	c client
}

// NewSesame returns a Sesame provider.
func NewSesame(cfg ClientConfig) *Sesame {
	return &Sesame{c: newClient(cfg)}
}

// Name returns the provider identifier.
func (s *Sesame) Name() string { return "sesame" }

// Source implements Provider.
func (s *Sesame) Source() types.Source { return types.SourceNameResolver }

// SearchByName resolves query to at most one record.
func (s *Sesame) SearchByName(ctx context.Context, query string, _ ProviderOptions) ([]types.ProviderRecord, error) {
	query = normalize.Whitespace(query)
	if query == "" {
		return nil, errors.New("empty Sesame query")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sesameBase+"?"+url.QueryEscape(query), nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	body, err := s.c.fetch(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "Sesame request")
	}
	rec, ok := parseSesame(body)
	if !ok {
		return nil, nil
	}
	return []types.ProviderRecord{rec}, nil
}

// SearchByCoordinates is not offered by Sesame.
func (s *Sesame) SearchByCoordinates(context.Context, ConeQuery, ProviderOptions) ([]types.ProviderRecord, error) {
	return nil, nil
}

// parseSesame reads the first resolver block that carries a position.
// Fields from blocks without one are discarded.
// Lines of interest:
//
//	%I.0 M  31                       main identifier
//	%C.0 G                           object type
//	%J 10.68470833 +41.26875000 = …  J2000 position in degrees
//	%M.V 3.44 …                      V magnitude
//	%I NAME Andromeda Galaxy         alias
func parseSesame(body []byte) (types.ProviderRecord, bool) {
	var rec types.ProviderRecord
	found := false
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#=") {
			if found {
				break
			}
			rec = types.ProviderRecord{}
			continue
		}
		tag, rest, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		rest = normalize.Whitespace(rest)
		switch tag {
		case "%I.0":
			rec.Name = rest
		case "%I":
			rec.Identifiers = append(rec.Identifiers, strings.TrimPrefix(rest, "NAME "))
		case "%C.0":
			rec.Type = TypeLabel(rest)
			rec.Category = Categorize(rest)
		case "%M.V":
			if f := strings.Fields(rest); len(f) > 0 {
				if v, err := strconv.ParseFloat(f[0], 64); err == nil {
					rec.Magnitude = types.Float(v)
				}
			}
		case "%J":
			f := strings.Fields(rest)
			if len(f) < 2 {
				continue
			}
			ra, err1 := strconv.ParseFloat(f[0], 64)
			dec, err2 := strconv.ParseFloat(f[1], 64)
			if err1 == nil && err2 == nil {
				rec.RA, rec.Dec = types.Float(ra), types.Float(dec)
				found = true
			}
		}
	}
	if !found || rec.Name == "" {
		return types.ProviderRecord{}, false
	}
	rec.CanonicalID = normalize.CanonicalID(rec.Name)
	rec.Confidence = 1
	rec.Source = types.SourceNameResolver
	return rec, true
}
