// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cite-relink/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [document.docx]",
	Short: "Find orphaned citations and report potential library matches",
	Long: `Analyze extracts the citation fields from a document, checks each cited
item's key against the library, and matches orphaned items by DOI, ISBN,
and fuzzy title/author/year comparison.

The match report is printed and saved next to the document as
[stem]_relink_report.txt. Use --guide to also write step-by-step manual
relinking instructions, and --csl to export the matched records as
CSL-YAML.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	docPath := args[0]
	threshold := matchThreshold(cmd)

	idx, err := loadIndex(context.Background(), catalogConfig(cmd))
	if err != nil {
		return err
	}

	_, citations, err := analyzeDocument(docPath, idx, threshold)
	if err != nil {
		return err
	}
	if len(citations) == 0 {
		fmt.Println("No citations found in the document.")
		return nil
	}

	report.Write(os.Stdout, citations, threshold)

	reportPath, _ := cmd.Flags().GetString("report")
	if reportPath == "" {
		stem := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
		reportPath = stem + "_relink_report.txt"
	}
	if err := writeReportFile(reportPath, func(f *os.File) error {
		report.Write(f, citations, threshold)
		return nil
	}); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	fmt.Fprintf(os.Stderr, "\nReport saved to: %s\n", reportPath)

	if guidePath, _ := cmd.Flags().GetString("guide"); guidePath != "" {
		if err := writeReportFile(guidePath, func(f *os.File) error {
			report.WriteGuide(f, citations)
			return nil
		}); err != nil {
			return fmt.Errorf("saving guide: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Manual relinking guide saved to: %s\n", guidePath)
	}

	if cslPath, _ := cmd.Flags().GetString("csl"); cslPath != "" {
		if err := writeReportFile(cslPath, func(f *os.File) error {
			return report.WriteCSL(f, citations)
		}); err != nil {
			return fmt.Errorf("saving CSL export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "CSL export saved to: %s\n", cslPath)
	}

	return nil
}

func writeReportFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	analyzeCmd.Flags().IntP("threshold", "t", 80, "fuzzy match threshold (0-100)")
	analyzeCmd.Flags().String("report", "", "report output path (default: [stem]_relink_report.txt)")
	analyzeCmd.Flags().StringP("guide", "g", "", "write a manual relinking guide to this file")
	analyzeCmd.Flags().String("csl", "", "write matched records as CSL-YAML to this file")
	addCatalogFlags(analyzeCmd)

	rootCmd.AddCommand(analyzeCmd)
}
