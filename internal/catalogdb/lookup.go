// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogdb

import (
	"context"
	"database/sql"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/pdiddy/skyquery/internal/astro"
	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/normalize"
	"github.com/pdiddy/skyquery/internal/search"
	"github.com/pdiddy/skyquery/pkg/types"
)

const (
	defaultLimit  = 50
	defaultRadius = 0.1
)

const selectObject = `SELECT o.name, o.canonical_id, o.type, o.category, o.ra, o.dec, o.magnitude, o.size,
	(SELECT group_concat(a.alias, ', ') FROM aliases a WHERE a.object_id = o.id)
	FROM objects o`

// LocalSearch implements search.Local. Coordinate queries return objects
// within opts.RadiusDeg, nearest first. Identifier queries match the name
// or any alias exactly; plain name queries also match name and alias
// prefixes. A catalog identifier with no entry that encodes a position
// (a J-name) falls back to a cone search around it.
func (s *Store) LocalSearch(ctx context.Context, q types.ParsedQuery, opts search.LocalOptions) ([]types.SearchResultItem, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	radius := opts.RadiusDeg
	if radius <= 0 {
		radius = defaultRadius
	}

	switch q.Intent {
	case types.IntentCoordinate:
		return s.cone(ctx, *q.Coordinate, radius, limit)
	case types.IntentMinor:
		keys := []string{normalize.NameKey(q.CanonicalID)}
		if q.Minor != nil {
			keys = append(keys, normalize.NameKey(q.Minor.NormalizedForm))
		}
		return s.byName(ctx, keys, false, limit)
	case types.IntentCatalog:
		items, err := s.byName(ctx, []string{normalize.NameKey(q.CatalogID)}, false, limit)
		if err != nil || len(items) > 0 || q.CatalogCoordinate == nil {
			return items, err
		}
		return s.cone(ctx, *q.CatalogCoordinate, radius, limit)
	case types.IntentName:
		return s.byName(ctx, []string{normalize.NameKey(q.NormalizedInput)}, true, limit)
	}
	return nil, nil
}

// byName matches name and alias keys. With prefix set, keys also match as
// prefixes; exact matches sort first, then brighter objects.
func (s *Store) byName(ctx context.Context, keys []string, prefix bool, limit int) ([]types.SearchResultItem, error) {
	keys = dedupKeys(keys)
	if len(keys) == 0 {
		return nil, nil
	}

	var (
		where []string
		args  []any
	)
	for _, k := range keys {
		if prefix {
			where = append(where,
				`o.name_key LIKE ? ESCAPE '\'`,
				`o.id IN (SELECT object_id FROM aliases WHERE alias_key LIKE ? ESCAPE '\')`)
			p := escapeLike(k) + "%"
			args = append(args, p, p)
		} else {
			where = append(where,
				`o.name_key = ?`,
				`o.id IN (SELECT object_id FROM aliases WHERE alias_key = ?)`)
			args = append(args, k, k)
		}
	}

	query := selectObject + ` WHERE ` + strings.Join(where, " OR ") +
		` ORDER BY (o.name_key IN (` + placeholders(len(keys)) + `)) DESC,
			o.magnitude IS NULL, o.magnitude, o.name
		LIMIT ?`
	for _, k := range keys {
		args = append(args, k)
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying catalog by name")
	}
	return scanItems(rows)
}

// cone returns objects within radius degrees of c. A declination band and,
// away from the poles, a right-ascension window narrow the rows before the
// exact distance check.
func (s *Store) cone(ctx context.Context, c types.Coordinate, radius float64, limit int) ([]types.SearchResultItem, error) {
	query := selectObject + ` WHERE o.dec BETWEEN ? AND ?`
	args := []any{c.Dec - radius, c.Dec + radius}

	if maxDec := math.Abs(c.Dec) + radius; maxDec < 89 {
		dra := radius / math.Cos(maxDec*math.Pi/180)
		lo, hi := c.RA-dra, c.RA+dra
		switch {
		case lo < 0:
			query += ` AND (o.ra >= ? OR o.ra <= ?)`
			args = append(args, lo+360, hi)
		case hi >= 360:
			query += ` AND (o.ra >= ? OR o.ra <= ?)`
			args = append(args, lo, hi-360)
		default:
			query += ` AND o.ra BETWEEN ? AND ?`
			args = append(args, lo, hi)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying catalog by position")
	}
	candidates, err := scanItems(rows)
	if err != nil {
		return nil, err
	}

	type hit struct {
		item types.SearchResultItem
		sep  float64
	}
	var hits []hit
	for _, it := range candidates {
		sep := astro.HaversineArcsec(c.RA, c.Dec, *it.RA, *it.Dec)
		if sep <= radius*3600 {
			hits = append(hits, hit{it, sep})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].sep < hits[j].sep })

	items := make([]types.SearchResultItem, 0, min(len(hits), limit))
	for _, h := range hits[:min(len(hits), limit)] {
		items = append(items, h.item)
	}
	return items, nil
}

func scanItems(rows *sql.Rows) ([]types.SearchResultItem, error) {
	defer rows.Close()

	var items []types.SearchResultItem
	for rows.Next() {
		var (
			it                 types.SearchResultItem
			typ, cat, size     sql.NullString
			aliases            sql.NullString
			ra, dec, magnitude sql.NullFloat64
		)
		if err := rows.Scan(&it.Name, &it.CanonicalID, &typ, &cat, &ra, &dec, &magnitude, &size, &aliases); err != nil {
			return nil, errors.Wrap(err, "scanning catalog row")
		}
		it.ID = string(types.SourceLocal) + ":" + it.CanonicalID
		it.Source = types.SourceLocal
		it.Type = typ.String
		it.Category = types.ObjectCategory(cat.String)
		it.Size = size.String
		it.AlternateNames = aliases.String
		if ra.Valid && dec.Valid {
			it.RA, it.Dec = types.Float(ra.Float64), types.Float(dec.Float64)
		}
		if magnitude.Valid {
			it.Magnitude = types.Float(magnitude.Float64)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func dedupKeys(keys []string) []string {
	out := keys[:0:0]
	for _, k := range keys {
		if k != "" && !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
