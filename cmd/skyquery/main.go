// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the skyquery CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/skyquery/internal/config"
	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/logger"
	"github.com/pdiddy/skyquery/internal/metrics"
	"github.com/pdiddy/skyquery/internal/secrets"
	"github.com/pdiddy/skyquery/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is the configuration loaded before every command runs.
var cfg types.Config

// rootCmd is the base command for the skyquery CLI.
var rootCmd = &cobra.Command{
	Use:   "skyquery",
	Short: "Resolve sky object queries and compute positions and events",
	Long: `skyquery resolves free-form sky object queries (names, catalog numbers,
minor-planet and comet designations, coordinates) against a local catalog and
online astronomy services, and computes coordinates, ephemerides, rise/set
times, sky events and a daily almanac for an observer.

Searches merge results from every source into one deduplicated list. Several
lines of input run as a batch.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("secrets")
		s, err := secrets.Load(dir, logger.Base())
		if err != nil {
			return err
		}
		if used := secrets.Apply(&cfg, s); len(used) > 0 {
			logger.Logger.Debugw("secrets applied", "keys", used)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()
		if dump, _ := cmd.Flags().GetBool("metrics"); dump {
			return metrics.WriteText(os.Stderr, nil)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./skyquery.yaml or ~/.config/skyquery/skyquery.yaml)")
	pf.String("secrets", secrets.DefaultDir, "directory of secret files (native-token, provider-contact)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.Bool("log-json", false, "write logs as JSON")
	pf.Bool("metrics", false, "print collected metrics to stderr after the command")
	pf.Float64("lat", 0, "observer latitude in degrees, north positive")
	pf.Float64("lon", 0, "observer longitude in degrees, east positive")
	pf.Float64("elev", 0, "observer elevation in meters")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.json", pf.Lookup("log-json"))
	_ = viper.BindPFlag("observer.latitude", pf.Lookup("lat"))
	_ = viper.BindPFlag("observer.longitude", pf.Lookup("lon"))
	_ = viper.BindPFlag("observer.elevation", pf.Lookup("elev"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("skyquery")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "skyquery"))
		}
	}

	config.BindEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		for _, h := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "hint:", h)
		}
		os.Exit(1)
	}
}
