// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cite-relink/internal/catalog"
	"github.com/pdiddy/cite-relink/internal/citation"
	"github.com/pdiddy/cite-relink/internal/docx"
	"github.com/pdiddy/cite-relink/internal/field"
	"github.com/pdiddy/cite-relink/internal/match"
	"github.com/pdiddy/cite-relink/pkg/types"
)

// catalogConfig resolves catalog settings from flags, falling back to the
// config file, then to credentials loaded from .secrets/.
func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	cfg := types.CatalogConfig{Source: types.SourceSQLite}

	if fromAPI, _ := cmd.Flags().GetBool("from-api"); fromAPI {
		cfg.Source = types.SourceWebAPI
	} else if s := viper.GetString("catalog.source"); s != "" {
		cfg.Source = types.CatalogSource(s)
	}

	cfg.Path, _ = cmd.Flags().GetString("zotero-path")
	if cfg.Path == "" {
		cfg.Path = viper.GetString("catalog.path")
	}

	cfg.UserID, _ = cmd.Flags().GetString("user-id")
	if cfg.UserID == "" {
		cfg.UserID = viper.GetString("catalog.user_id")
	}
	if cfg.UserID == "" {
		cfg.UserID = loadedKeys.UserID
	}

	cfg.APIKey = viper.GetString("catalog.api_key")
	if cfg.APIKey == "" {
		cfg.APIKey = loadedKeys.APIKey
	}

	return cfg
}

// matchThreshold resolves the composite fuzzy threshold from the flag,
// then the config file, then the default of 80.
func matchThreshold(cmd *cobra.Command) int {
	if cmd.Flags().Changed("threshold") {
		t, _ := cmd.Flags().GetInt("threshold")
		return t
	}
	if viper.IsSet("match.threshold") {
		return viper.GetInt("match.threshold")
	}
	return 80
}

// loadIndex materializes a catalog snapshot and builds the library index.
// An unavailable catalog is a hard failure: nothing downstream can
// produce a meaningful result without it.
func loadIndex(ctx context.Context, cfg types.CatalogConfig) (*catalog.Index, error) {
	src, err := catalog.NewSource(cfg)
	if err != nil {
		return nil, err
	}

	snap, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading library catalog: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Loaded %d items from library\n", len(snap.Records))
	return catalog.NewIndex(snap), nil
}

// analyzeDocument runs the read side of the pipeline: open the container,
// extract citation fields, parse payloads, classify orphans, and match
// orphaned items against the index.
func analyzeDocument(path string, idx *catalog.Index, threshold int) (*docx.Document, []types.Citation, error) {
	doc, err := docx.Open(path)
	if err != nil {
		return nil, nil, err
	}

	codes, err := field.ExtractString(doc.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("scanning document body: %w", err)
	}

	citations := citation.ParseAll(codes, os.Stderr)
	if len(citations) == 0 {
		return doc, nil, nil
	}
	fmt.Fprintf(os.Stderr, "Found %d citations\n", len(citations))

	match.ClassifyOrphans(citations, idx)
	match.MatchOrphans(citations, match.NewEngine(idx), threshold)
	return doc, citations, nil
}

// addCatalogFlags registers the catalog selection flags shared by
// subcommands that load the library.
func addCatalogFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("zotero-path", "z", "", "path to the Zotero data directory or zotero.sqlite")
	cmd.Flags().Bool("from-api", false, "load the library from the Zotero web API instead of the local database")
	cmd.Flags().String("user-id", "", "Zotero account ID for the web API source")
}
