// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogdb

import (
	"context"
	"encoding/json"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/search"
)

// Objects returns every catalog object ordered by name, in the layout
// Import reads.
func (s *Store) Objects(ctx context.Context) ([]Object, error) {
	rows, err := s.db.QueryContext(ctx, selectObject+` ORDER BY o.name`)
	if err != nil {
		return nil, errors.Wrap(err, "querying for export")
	}
	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}

	objects := make([]Object, len(items))
	for i, it := range items {
		objects[i] = Object{
			Name:      it.Name,
			Aliases:   search.SplitAliases(it.AlternateNames),
			RA:        it.RA,
			Dec:       it.Dec,
			Type:      it.Type,
			Category:  it.Category,
			Magnitude: it.Magnitude,
			Size:      it.Size,
		}
	}
	return objects, nil
}

// ExportYAML writes the catalog to w as a catalog file that Import accepts.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	objects, err := s.Objects(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(File{Objects: objects}); err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}
	return enc.Close()
}

// ExportJSON writes the catalog to w as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	objects, err := s.Objects(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(File{Objects: objects}); err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	return nil
}
