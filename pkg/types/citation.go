// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the relinking pipeline:
// citations recovered from the document, catalog records, and stage
// configuration.
package types

import (
	"encoding/json"
	"strings"
)

// MatchMethod records how a cited item was matched against the catalog.
type MatchMethod string

const (
	MatchDOI       MatchMethod = "DOI"
	MatchISBN      MatchMethod = "ISBN"
	MatchFuzzy     MatchMethod = "fuzzy"
	MatchTitleOnly MatchMethod = "title_only"
	MatchNone      MatchMethod = "none"
)

// Author is one creator entry from a citation payload. Payloads carry
// either a structured {family, given} pair or a bare literal name, so the
// two shapes are kept as a tagged variant: Literal is set when the entry
// was a plain string or a {literal: ...} object, Family/Given otherwise.
type Author struct {
	Family  string `json:"family,omitempty" yaml:"family,omitempty"`
	Given   string `json:"given,omitempty" yaml:"given,omitempty"`
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
}

// IsLiteral reports whether the entry carries a literal name rather than
// a structured family/given pair.
func (a Author) IsLiteral() bool {
	return a.Literal != "" && a.Family == ""
}

// SearchName returns the component of the name used for matching: the
// family name for structured entries, the literal name otherwise.
func (a Author) SearchName() string {
	if a.Family != "" {
		return a.Family
	}
	return a.Literal
}

// UnmarshalJSON accepts both author shapes found in citation payloads:
// a JSON object with family/given/literal fields, or a bare string.
func (a *Author) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Author{Literal: s}
		return nil
	}

	type structured Author
	var v structured
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Author(v)
	return nil
}

// CitedItem is one bibliographic reference within a citation.
type CitedItem struct {
	// URIs are the external identifier strings from the payload, in
	// payload order.
	URIs []string `json:"uris" yaml:"uris"`

	// ItemKey is the library item key extracted from URIs: the trailing
	// /items/<key> segment of the first URI that has one. Empty when no
	// URI matches; never invented.
	ItemKey string `json:"item_key,omitempty" yaml:"item_key,omitempty"`

	// Title is the cited work's title. May be empty.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Authors lists the cited work's creators in payload order.
	Authors []Author `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the publication year as a string. Derived from the payload's
	// issued date-parts, falling back to the leading four characters of
	// the raw date string. May be empty.
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	// DOI and ISBN are as they appear in the payload, unnormalized.
	DOI  string `json:"doi,omitempty" yaml:"doi,omitempty"`
	ISBN string `json:"isbn,omitempty" yaml:"isbn,omitempty"`

	// RawItem is the item's original payload JSON, retained opaquely so
	// the rewrite path never re-serializes structured data.
	RawItem json.RawMessage `json:"-" yaml:"-"`

	// Match results, populated during classification and matching.
	IsOrphaned    bool           `json:"is_orphaned" yaml:"is_orphaned"`
	MatchedRecord *LibraryRecord `json:"matched_record,omitempty" yaml:"matched_record,omitempty"`
	MatchScore    int            `json:"match_score,omitempty" yaml:"match_score,omitempty"`
	MatchMethod   MatchMethod    `json:"match_method,omitempty" yaml:"match_method,omitempty"`
}

// AuthorString returns the item's authors as a space-joined search string
// of family names, falling back to literal names.
func (c *CitedItem) AuthorString() string {
	parts := make([]string, 0, len(c.Authors))
	for _, a := range c.Authors {
		if name := a.SearchName(); name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " ")
}

// SearchString combines title, authors, and year into one fuzzy-match
// input, dropping empty components.
func (c *CitedItem) SearchString() string {
	var parts []string
	for _, p := range []string{c.Title, c.AuthorString(), c.Year} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Citation is one field-code occurrence in the document.
type Citation struct {
	// FieldCode is the field's full accumulated instruction text.
	FieldCode string `json:"-" yaml:"-"`

	// Items are the cited items in document order.
	Items []CitedItem `json:"items" yaml:"items"`

	// FieldIndex is the citation's position among the document's
	// recognized citation fields.
	FieldIndex int `json:"field_index" yaml:"field_index"`

	// IsOrphaned is true iff at least one item is orphaned.
	IsOrphaned bool `json:"is_orphaned" yaml:"is_orphaned"`
}
