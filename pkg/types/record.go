// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"regexp"
	"strings"
)

// yearRe matches the first 4-digit run in a raw date string.
var yearRe = regexp.MustCompile(`\d{4}`)

// isbnJunkRe matches everything an ISBN normalization strips.
var isbnJunkRe = regexp.MustCompile(`[^0-9X]`)

// Creator is one author or editor on a catalog record.
type Creator struct {
	Family string `json:"family" yaml:"family"`
	Given  string `json:"given" yaml:"given"`
}

// LibraryRecord is one catalog entry from the reference-manager library.
// Records are built once per run from a catalog snapshot and are immutable
// afterwards.
type LibraryRecord struct {
	// Key is the item key, unique within the library.
	Key string `json:"key" yaml:"key"`

	// Title is the record's title. May be empty.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Creators lists authors and editors in catalog order.
	Creators []Creator `json:"creators,omitempty" yaml:"creators,omitempty"`

	// Year is the first 4-digit run of the record's raw date. May be empty.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	// DOI is normalized: lower-cased and trimmed. May be empty.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// ISBN is normalized to digits and 'X' only, upper-cased. May be empty.
	ISBN string `json:"isbn,omitempty" yaml:"isbn,omitempty"`

	// SearchString is the precomputed composite fuzzy-match input:
	// title, creator family names, and year, space-joined.
	SearchString string `json:"-" yaml:"-"`
}

// NewLibraryRecord builds a record from raw catalog values, applying the
// normalizations the matching stages rely on.
func NewLibraryRecord(key, title, rawDate, doi, isbn string, creators []Creator) LibraryRecord {
	r := LibraryRecord{
		Key:      key,
		Title:    title,
		Creators: creators,
		Year:     YearFromDate(rawDate),
		DOI:      NormalizeDOI(doi),
		ISBN:     NormalizeISBN(isbn),
	}
	r.SearchString = r.composeSearchString()
	return r
}

func (r *LibraryRecord) composeSearchString() string {
	var parts []string
	if r.Title != "" {
		parts = append(parts, r.Title)
	}
	if s := r.AuthorString(); s != "" {
		parts = append(parts, s)
	}
	if r.Year != "" {
		parts = append(parts, r.Year)
	}
	return strings.Join(parts, " ")
}

// AuthorString returns the record's creator family names, space-joined.
func (r *LibraryRecord) AuthorString() string {
	parts := make([]string, 0, len(r.Creators))
	for _, c := range r.Creators {
		if c.Family != "" {
			parts = append(parts, c.Family)
		}
	}
	return strings.Join(parts, " ")
}

// YearFromDate extracts the first 4-digit run from a raw date string.
// Returns "" when the date has no 4-digit run.
func YearFromDate(date string) string {
	return yearRe.FindString(date)
}

// NormalizeDOI lower-cases and trims a DOI for exact lookup.
func NormalizeDOI(doi string) string {
	return strings.ToLower(strings.TrimSpace(doi))
}

// NormalizeISBN strips everything but digits and 'X' after upper-casing.
func NormalizeISBN(isbn string) string {
	return isbnJunkRe.ReplaceAllString(strings.ToUpper(isbn), "")
}
