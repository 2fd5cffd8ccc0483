// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results, so a
// search can be saved and reloaded later without querying providers again.
type QueryFile struct {
	Query   QueryParams              `yaml:"query"`
	Results []types.SearchResultItem `yaml:"results"`
	Summary QuerySummary             `yaml:"summary"`
}

// QueryParams stores the search options in a serializable form. A batch
// query keeps its lines in Query as a block scalar.
type QueryParams struct {
	Query               string           `yaml:"query"`
	Mode                types.SearchMode `yaml:"mode,omitempty"`
	Sources             []string         `yaml:"sources,omitempty"`
	MaxResults          int              `yaml:"max_results,omitempty"`
	RadiusDeg           float64          `yaml:"radius_deg,omitempty"`
	IncludeMinorObjects *bool            `yaml:"include_minor_objects,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	RequestID string       `yaml:"request_id"`
	Intent    types.Intent `yaml:"intent"`
	Total     int          `yaml:"total"`
	Lines     int          `yaml:"lines,omitempty"`
	Errors    []string     `yaml:"errors,omitempty"`
	Timestamp time.Time    `yaml:"timestamp"`
}

// WriteQueryFile saves the options and output of a search to a YAML file.
func WriteQueryFile(path string, opts Options, out Output) error {
	qf := QueryFile{
		Query: QueryParams{
			Query:               opts.Query,
			Mode:                opts.Mode,
			Sources:             opts.Sources,
			MaxResults:          opts.MaxResults,
			RadiusDeg:           opts.RadiusDeg,
			IncludeMinorObjects: opts.IncludeMinorObjects,
		},
		Results: out.Results,
		Summary: QuerySummary{
			RequestID: out.RequestID,
			Intent:    out.Intent,
			Total:     len(out.Results),
			Lines:     len(out.BatchItems),
			Errors:    out.Errors,
			Timestamp: time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return errors.Wrap(err, "marshaling query file")
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading query file")
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, errors.Wrap(err, "parsing query file")
	}
	return &qf, nil
}

// ToOptions converts stored QueryParams back into search Options.
func (p QueryParams) ToOptions() (Options, error) {
	switch p.Mode {
	case "", types.ModeLocal, types.ModeOnline, types.ModeHybrid:
	default:
		return Options{}, errors.Mark(errors.Newf("invalid mode %q", p.Mode), errors.ErrInvalidInput)
	}
	return Options{
		Query:               p.Query,
		Mode:                p.Mode,
		Sources:             p.Sources,
		MaxResults:          p.MaxResults,
		RadiusDeg:           p.RadiusDeg,
		IncludeMinorObjects: p.IncludeMinorObjects,
	}, nil
}
