package report

import (
	"io"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cite-relink/pkg/types"
)

// CSLItem represents a matched library record in CSL (Citation Style
// Language) format. The field names follow the CSL-JSON/CSL-YAML schema
// so the export is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID     string    `yaml:"id"`
	Type   string    `yaml:"type"`
	Title  string    `yaml:"title"`
	Author []CSLName `yaml:"author,omitempty"`
	Issued *CSLDate  `yaml:"issued,omitempty"`
	DOI    string    `yaml:"DOI,omitempty"`
	ISBN   string    `yaml:"ISBN,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family string `yaml:"family,omitempty"`
	Given  string `yaml:"given,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// WriteCSL writes the matched library records as a CSL-YAML list to w.
// Each orphaned item that found a match contributes one entry keyed by
// its library item key; duplicates (several orphans matching one record)
// collapse to a single entry.
func WriteCSL(w io.Writer, citations []types.Citation) error {
	seen := make(map[string]bool)
	var items []CSLItem

	for _, c := range citations {
		for _, item := range c.Items {
			rec := item.MatchedRecord
			if rec == nil || seen[rec.Key] {
				continue
			}
			seen[rec.Key] = true
			items = append(items, toCSLItem(rec))
		}
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(rec *types.LibraryRecord) CSLItem {
	item := CSLItem{
		ID:    rec.Key,
		Type:  "article",
		Title: rec.Title,
		DOI:   rec.DOI,
		ISBN:  rec.ISBN,
	}
	for _, c := range rec.Creators {
		item.Author = append(item.Author, CSLName{Family: c.Family, Given: c.Given})
	}
	if year, err := strconv.Atoi(rec.Year); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{year}}}
	}
	return item
}
