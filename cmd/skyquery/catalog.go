// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/skyquery/internal/catalogdb"
	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/logger"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local object catalog",
	Long: `Catalog manages the SQLite object catalog used by local searches. Catalog
files are YAML lists of objects with names, aliases, positions, types and
magnitudes.`,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file-or-dir>",
	Short: "Import YAML catalog files into the local catalog",
	Long: `Import loads a catalog file, or every .yaml/.yml file in a directory.
Files unchanged since their last import are skipped; a changed file replaces
the objects it brought in before.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		sum, err := store.Import(cmd.Context(), args[0], cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if sum.Failed > 0 {
			return errors.Newf("%d of %d catalog files failed", sum.Failed, sum.Total())
		}
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the local catalog as YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		var w io.Writer = cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("out"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return errors.Wrap(err, "creating export file")
			}
			defer f.Close()
			w = f
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return store.ExportJSON(cmd.Context(), w)
		}
		return store.ExportYAML(cmd.Context(), w)
	},
}

var catalogCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of objects in the local catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d objects in %s\n", n, store.Path())
		return nil
	},
}

func openCatalog() (*catalogdb.Store, error) {
	return catalogdb.Open(cfg.Catalog, logger.Base().Named("catalog"))
}

func init() {
	catalogExportCmd.Flags().Bool("json", false, "write JSON instead of YAML")
	catalogExportCmd.Flags().String("out", "", "write to a file instead of stdout")

	catalogCmd.AddCommand(catalogImportCmd, catalogExportCmd, catalogCountCmd)
	rootCmd.AddCommand(catalogCmd)
}
