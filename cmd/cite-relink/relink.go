// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cite-relink/internal/report"
	"github.com/pdiddy/cite-relink/internal/rewrite"
)

var relinkCmd = &cobra.Command{
	Use:   "relink [document.docx]",
	Short: "Write a copy of the document with citation links repaired",
	Long: `Relink runs the same analysis as analyze, then rewrites the old citation
identifiers of every matched orphan to point at the matched library items
and writes a patched copy of the document to --output.

The rewrite is a literal text substitution over the document body: the
embedded citation payloads are never re-serialized, so everything except
the replaced identifier strings is preserved byte-for-byte. Verify the
result in the word processor with the reference-manager plugin running.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelink,
}

func runRelink(cmd *cobra.Command, args []string) error {
	docPath := args[0]
	outPath, _ := cmd.Flags().GetString("output")
	threshold := matchThreshold(cmd)

	idx, err := loadIndex(context.Background(), catalogConfig(cmd))
	if err != nil {
		return err
	}

	doc, citations, err := analyzeDocument(docPath, idx, threshold)
	if err != nil {
		return err
	}
	if len(citations) == 0 {
		fmt.Println("No citations found in the document.")
		return nil
	}

	s := report.Summarize(citations)
	fmt.Fprintf(os.Stderr, "Orphaned items: %d, matched: %d\n", s.OrphanedItems, s.Matched)

	replacements := rewrite.Replacements(citations, idx.Identity())
	if len(replacements) == 0 {
		fmt.Println("No matched citations to update.")
		return nil
	}

	patched, applied := rewrite.Apply(doc.Body, replacements)
	fmt.Fprintf(os.Stderr, "Replaced %d identifier(s) in document\n", applied)
	if applied == 0 {
		fmt.Println("No identifier replacements were applicable; document unchanged.")
		return nil
	}

	if err := doc.WritePatched(outPath, patched); err != nil {
		return err
	}
	fmt.Printf("Updated document saved to: %s\n", outPath)
	fmt.Println("Open it with the reference-manager plugin running and refresh to verify links.")
	return nil
}

func init() {
	relinkCmd.Flags().StringP("output", "o", "", "output path for the updated document")
	relinkCmd.Flags().IntP("threshold", "t", 80, "fuzzy match threshold (0-100)")
	relinkCmd.MarkFlagRequired("output")
	addCatalogFlags(relinkCmd)

	rootCmd.AddCommand(relinkCmd)
}
