// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Load the library catalog and list its records",
	Long: `Library loads the catalog the same way analyze and relink do and prints
the records it would match against. Useful for verifying that the catalog
source, path, and credentials are set up correctly before running a
document through the pipeline.`,
	RunE: runLibrary,
}

func runLibrary(cmd *cobra.Command, args []string) error {
	idx, err := loadIndex(context.Background(), catalogConfig(cmd))
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	records := idx.Records()
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-50s  %-25s  %s\n", "Key", "Title", "Authors", "Year")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))

	for _, r := range records {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		authors := r.AuthorString()
		if len(authors) > 25 {
			authors = authors[:22] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-10s  %-50s  %-25s  %s\n", r.Key, title, authors, r.Year)
	}

	fmt.Fprintf(os.Stdout, "\n%d of %d records\n", len(records), idx.Len())
	return nil
}

func init() {
	libraryCmd.Flags().Int("limit", 20, "maximum records to list (0 = all)")
	libraryCmd.Flags().Bool("json", false, "output records as JSON")
	addCatalogFlags(libraryCmd)

	rootCmd.AddCommand(libraryCmd)
}
