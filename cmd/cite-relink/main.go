// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cite-relink CLI.
//
// cite-relink repairs orphaned reference-manager citations in
// word-processor documents: it recovers citation fields from the
// document body, checks their item keys against a snapshot of the
// library catalog, re-identifies orphans by exact identifier and fuzzy
// matching, and can rewrite the document's citation links to point at
// the re-identified entries.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cite-relink/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedKeys holds web API credentials loaded from .secrets/ at startup.
var loadedKeys secrets.Keys

// rootCmd is the base command for the cite-relink CLI.
var rootCmd = &cobra.Command{
	Use:   "cite-relink",
	Short: "Relink orphaned reference-manager citations in documents",
	Long: `cite-relink repairs broken citation links in word-processor documents.

Citations embedded as field codes go stale when their library item keys no
longer exist, typically after a library re-sync. cite-relink finds those
orphaned citations, matches each against your library by DOI, ISBN, and
fuzzy title/author/year comparison, and reports (analyze) or rewrites
(relink) the document's citation links.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		keys, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedKeys = keys
		if !keys.IsZero() {
			fmt.Fprintln(os.Stderr, "Loaded web API credentials from .secrets/")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cite-relink.yaml or ~/.config/cite-relink/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cite-relink")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cite-relink"))
		}
	}

	viper.SetEnvPrefix("CITE_RELINK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
