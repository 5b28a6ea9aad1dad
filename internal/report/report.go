// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the run's results for people: the match report,
// the manual relinking guide, and a CSL export of matched records.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/cite-relink/pkg/types"
)

const lineWidth = 80

// Summary holds the counts a run reports.
type Summary struct {
	Citations     int
	Items         int
	OrphanedCites int
	OrphanedItems int
	Matched       int
	Unmatched     int
}

// Summarize tallies citations and their items after classification and
// matching.
func Summarize(citations []types.Citation) Summary {
	var s Summary
	s.Citations = len(citations)
	for _, c := range citations {
		s.Items += len(c.Items)
		if c.IsOrphaned {
			s.OrphanedCites++
		}
		for _, item := range c.Items {
			if !item.IsOrphaned {
				continue
			}
			s.OrphanedItems++
			if item.MatchedRecord != nil {
				s.Matched++
			} else {
				s.Unmatched++
			}
		}
	}
	return s
}

// Write renders the full match report: totals, one block per orphaned
// item with its potential match, and a closing summary.
func Write(w io.Writer, citations []types.Citation, threshold int) {
	rule := strings.Repeat("=", lineWidth)
	thinRule := strings.Repeat("-", lineWidth)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "CITATION RELINK REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	s := Summarize(citations)
	fmt.Fprintf(w, "Total citations in document: %d\n", s.Citations)
	fmt.Fprintf(w, "Total citation items: %d\n", s.Items)
	fmt.Fprintf(w, "Orphaned citations: %d\n", s.OrphanedCites)
	fmt.Fprintf(w, "Orphaned items: %d\n", s.OrphanedItems)
	fmt.Fprintln(w)

	if s.OrphanedCites == 0 {
		fmt.Fprintln(w, "[OK] No orphaned citations found. All citations are linked to the library.")
		return
	}

	fmt.Fprintln(w, thinRule)
	fmt.Fprintln(w, "ORPHANED CITATIONS AND POTENTIAL MATCHES")
	fmt.Fprintln(w, thinRule)
	fmt.Fprintln(w)

	citeNum := 0
	for _, c := range citations {
		if !c.IsOrphaned {
			continue
		}
		citeNum++
		for j, item := range c.Items {
			if !item.IsOrphaned {
				continue
			}
			writeOrphan(w, citeNum, j+1, item, threshold)
		}
	}

	fmt.Fprintln(w, thinRule)
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, thinRule)
	fmt.Fprintf(w, "Matches found:     %d\n", s.Matched)
	fmt.Fprintf(w, "No matches found:  %d\n", s.Unmatched)

	if s.Matched > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "To relink these citations, you can:")
		fmt.Fprintln(w, "1. Run the relink command to generate a document with updated links")
		fmt.Fprintln(w, "2. Manually update citations in the word processor with the reference-manager plugin")
	}
}

func writeOrphan(w io.Writer, citeNum, itemNum int, item types.CitedItem, threshold int) {
	fmt.Fprintf(w, "[%d.%d] ORPHANED CITATION:\n", citeNum, itemNum)
	fmt.Fprintf(w, "    Title:   %s\n", orDefault(item.Title, "(no title)"))
	fmt.Fprintf(w, "    Authors: %s\n", orDefault(item.AuthorString(), "(no authors)"))
	fmt.Fprintf(w, "    Year:    %s\n", orDefault(item.Year, "(no year)"))
	if item.DOI != "" {
		fmt.Fprintf(w, "    DOI:     %s\n", item.DOI)
	}
	fmt.Fprintln(w)

	rec := item.MatchedRecord
	if rec == nil {
		fmt.Fprintf(w, "    [NONE] NO MATCH FOUND (threshold: %d%%)\n", threshold)
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    [MATCH] POTENTIAL MATCH FOUND (%s, score: %d%%):\n", item.MatchMethod, item.MatchScore)
	fmt.Fprintf(w, "      Library Key: %s\n", rec.Key)
	fmt.Fprintf(w, "      Title:       %s\n", orDefault(rec.Title, "(no title)"))
	fmt.Fprintf(w, "      Authors:     %s\n", orDefault(rec.AuthorString(), "(no authors)"))
	fmt.Fprintf(w, "      Year:        %s\n", orDefault(rec.Year, "(no year)"))
	fmt.Fprintln(w)
}

// WriteGuide renders step-by-step manual relinking instructions for each
// orphaned item, with the matched record to search for when one exists.
func WriteGuide(w io.Writer, citations []types.Citation) {
	fmt.Fprintln(w, "MANUAL RELINKING GUIDE")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "For each orphaned citation below, follow these steps:")
	fmt.Fprintln(w, "1. Click on the citation in your document")
	fmt.Fprintln(w, "2. Open Add/Edit Citation in the reference-manager toolbar")
	fmt.Fprintln(w, "3. Delete the orphaned item")
	fmt.Fprintln(w, "4. Search for and add the matching item from your library")
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintln(w)

	for _, c := range citations {
		if !c.IsOrphaned {
			continue
		}
		for _, item := range c.Items {
			if !item.IsOrphaned {
				continue
			}
			fmt.Fprintf(w, "ORPHANED: %s\n", orDefault(item.Title, "(no title)"))
			fmt.Fprintf(w, "  Authors: %s\n", item.AuthorString())
			fmt.Fprintf(w, "  Year: %s\n", item.Year)
			if rec := item.MatchedRecord; rec != nil {
				fmt.Fprintf(w, "  -> SEARCH FOR: %q\n", rec.Title)
				fmt.Fprintf(w, "    Library Key: %s\n", rec.Key)
			} else {
				fmt.Fprintln(w, "  -> NO AUTOMATIC MATCH - Search manually")
			}
			fmt.Fprintln(w)
		}
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
