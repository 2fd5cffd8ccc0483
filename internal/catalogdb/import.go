// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogdb

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/normalize"
	"github.com/pdiddy/skyquery/internal/search"
	"github.com/pdiddy/skyquery/pkg/types"
)

// File is the YAML layout of a catalog file:
//
//	catalog: messier
//	objects:
//	  - name: M31
//	    aliases: [Andromeda Galaxy, NGC 224]
//	    ra: 10.6847
//	    dec: 41.2689
//	    type: Galaxy
//	    magnitude: 3.4
type File struct {
	Catalog string   `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	Objects []Object `json:"objects" yaml:"objects"`
}

// Object is one catalog entry. Category is derived from Type when empty.
type Object struct {
	Name      string               `json:"name" yaml:"name"`
	Aliases   []string             `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	RA        *float64             `json:"ra,omitempty" yaml:"ra,omitempty"`
	Dec       *float64             `json:"dec,omitempty" yaml:"dec,omitempty"`
	Type      string               `json:"type,omitempty" yaml:"type,omitempty"`
	Category  types.ObjectCategory `json:"category,omitempty" yaml:"category,omitempty"`
	Magnitude *float64             `json:"magnitude,omitempty" yaml:"magnitude,omitempty"`
	Size      string               `json:"size,omitempty" yaml:"size,omitempty"`
}

func (o Object) validate() error {
	if normalize.NameKey(o.Name) == "" {
		return errors.New("object has no name")
	}
	if (o.RA == nil) != (o.Dec == nil) {
		return errors.Newf("%s: ra and dec must be given together", o.Name)
	}
	if o.RA != nil && (*o.RA < 0 || *o.RA >= 360) {
		return errors.Newf("%s: ra %g outside [0, 360)", o.Name, *o.RA)
	}
	if o.Dec != nil && (*o.Dec < -90 || *o.Dec > 90) {
		return errors.Newf("%s: dec %g outside [-90, 90]", o.Name, *o.Dec)
	}
	return nil
}

// ImportSummary holds counts from an import run.
type ImportSummary struct {
	Imported int
	Updated  int
	Skipped  int
	Failed   int
	Objects  int
}

// Total returns the number of files processed.
func (s ImportSummary) Total() int {
	return s.Imported + s.Updated + s.Skipped + s.Failed
}

// Import loads a catalog file, or every *.yaml and *.yml file in a
// directory, into the store. A file whose modification time matches the
// last import is skipped; a changed file replaces the objects it brought in
// before. Progress lines go to w.
func (s *Store) Import(ctx context.Context, path string, w io.Writer) (ImportSummary, error) {
	files, err := catalogFiles(path)
	if err != nil {
		return ImportSummary{}, err
	}

	var summary ImportSummary
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		info, err := os.Stat(file)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", file, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var stored string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM import_status WHERE source_file = ?`, file,
		).Scan(&stored)
		if err == nil && stored == modTime {
			fmt.Fprintf(w, "skipped  %s\n", file)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		cat, err := readFile(file)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", file, err)
			summary.Failed++
			continue
		}

		n, rejected, err := s.importFile(ctx, file, cat, modTime)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", file, err)
			summary.Failed++
			continue
		}
		for _, r := range rejected {
			fmt.Fprintf(w, "  rejected %v\n", r)
		}
		summary.Objects += n

		if isUpdate {
			fmt.Fprintf(w, "updated  %s (%d objects)\n", file, n)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "imported %s (%d objects)\n", file, n)
			summary.Imported++
		}
		s.log.Info("catalog file imported", zap.String("file", file), zap.Int("objects", n), zap.Int("rejected", len(rejected)))
	}

	fmt.Fprintf(w, "\nimported: %d, updated: %d, skipped: %d, failed: %d, objects: %d\n",
		summary.Imported, summary.Updated, summary.Skipped, summary.Failed, summary.Objects)
	return summary, nil
}

func catalogFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog path %s", path)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog directory %s", path)
	}
	var files []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	return files, nil
}

func readFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, errors.Wrap(err, "parse error")
	}
	return f, nil
}

// importFile replaces the objects previously loaded from file with the
// contents of cat in one transaction. Invalid objects are skipped and
// returned as rejections.
func (s *Store) importFile(ctx context.Context, file string, cat File, modTime string) (int, []error, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM objects WHERE source_file = ?`, file); err != nil {
		return 0, nil, errors.Wrap(err, "deleting old objects")
	}

	var (
		n        int
		rejected []error
	)
	for _, obj := range cat.Objects {
		if err := obj.validate(); err != nil {
			rejected = append(rejected, err)
			continue
		}
		if err := upsertObject(ctx, tx, file, obj); err != nil {
			return 0, nil, errors.Wrapf(err, "inserting %s", obj.Name)
		}
		n++
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO import_status (source_file, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(source_file) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		file, modTime,
	)
	if err != nil {
		return 0, nil, errors.Wrap(err, "updating import status")
	}
	return n, rejected, tx.Commit()
}

// upsertObject writes obj keyed by its name. An object already present from
// another file is taken over by this one.
func upsertObject(ctx context.Context, tx *sql.Tx, file string, obj Object) error {
	name := normalize.Whitespace(obj.Name)
	category := obj.Category
	if category == "" {
		category = search.Categorize(obj.Type)
	}

	var id int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO objects (name_key, name, canonical_id, type, category, ra, dec, magnitude, size, source_file)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name_key) DO UPDATE SET
			name=excluded.name, canonical_id=excluded.canonical_id, type=excluded.type,
			category=excluded.category, ra=excluded.ra, dec=excluded.dec,
			magnitude=excluded.magnitude, size=excluded.size, source_file=excluded.source_file
		 RETURNING id`,
		normalize.NameKey(name), name, normalize.CanonicalID(name), obj.Type, string(category),
		obj.RA, obj.Dec, obj.Magnitude, obj.Size, file,
	).Scan(&id)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM aliases WHERE object_id = ?`, id); err != nil {
		return err
	}
	for _, alias := range obj.Aliases {
		alias = normalize.Whitespace(alias)
		key := normalize.NameKey(alias)
		if key == "" || key == normalize.NameKey(name) {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO aliases (object_id, alias, alias_key) VALUES (?, ?, ?)`,
			id, alias, key,
		); err != nil {
			return err
		}
	}
	return nil
}
