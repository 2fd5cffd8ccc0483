// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/search"
	"github.com/pdiddy/skyquery/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Resolve a sky object query against the catalog and online services",
	Long: `Search classifies the query (coordinates, minor-planet or comet designation,
catalog identifier, or name), asks the local catalog and the enabled online
services, and prints one merged, deduplicated result list.

Queries come from the arguments, from a file of one query per line (--file),
or from a saved query file (--from). Several lines run as a batch.`,
	Example: `  skyquery search M31
  skyquery search "10h42m44s +41d16m09s" --radius 0.2
  skyquery search "2007 TA418" --mode online
  skyquery search --file targets.txt --json`,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.String("mode", "", "search mode: local, online or hybrid (default from config)")
	f.StringSlice("sources", nil, "online providers to ask (sesame, simbad, mpc, vizier)")
	f.Int("max-results", 0, "maximum number of merged results")
	f.Float64("radius", 0, "cone radius in degrees for coordinate queries")
	f.Bool("minor", false, "keep asteroids and comets in provider results")
	f.String("file", "", "read queries from a file, one per line")
	f.String("from", "", "re-run the query stored in a saved query file")
	f.String("save", "", "save the query and results to a YAML file")
	f.Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	opts, err := searchOptions(cmd, args)
	if err != nil {
		return err
	}

	searcher, closeFn := openSearcher(cfg)
	defer closeFn()

	out, err := searcher.Search(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := search.WriteQueryFile(path, opts, out); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved", path)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return search.FormatJSON(out, cmd.OutOrStdout())
	}
	search.FormatTable(out, cmd.OutOrStdout())
	return nil
}

// searchOptions builds Options from a saved query file, a query file or
// the arguments, then applies flags that were set explicitly.
func searchOptions(cmd *cobra.Command, args []string) (search.Options, error) {
	f := cmd.Flags()
	var opts search.Options

	from, _ := f.GetString("from")
	file, _ := f.GetString("file")
	switch {
	case from != "":
		qf, err := search.ReadQueryFile(from)
		if err != nil {
			return opts, err
		}
		if opts, err = qf.Query.ToOptions(); err != nil {
			return opts, err
		}
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return opts, errors.Wrap(err, "reading query file")
		}
		opts.Query = string(data)
	default:
		opts.Query = strings.Join(args, " ")
	}
	if strings.TrimSpace(opts.Query) == "" {
		return opts, errors.WithHint(
			errors.Mark(errors.New("no query given"), errors.ErrInvalidInput),
			"pass a query argument, --file or --from")
	}

	if f.Changed("mode") {
		mode, _ := f.GetString("mode")
		opts.Mode = types.SearchMode(mode)
	}
	if f.Changed("sources") {
		opts.Sources, _ = f.GetStringSlice("sources")
	}
	if f.Changed("max-results") {
		opts.MaxResults, _ = f.GetInt("max-results")
	}
	if f.Changed("radius") {
		opts.RadiusDeg, _ = f.GetFloat64("radius")
	}
	if f.Changed("minor") {
		include, _ := f.GetBool("minor")
		opts.IncludeMinorObjects = &include
	}
	return opts, nil
}
