// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation decodes the structured payload embedded in a citation
// field's instruction text and builds the normalized in-memory model the
// matching stages operate on.
package citation

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/pdiddy/cite-relink/internal/field"
	"github.com/pdiddy/cite-relink/pkg/types"
)

// payloadRe isolates the JSON object following the citation marker.
// (?s) lets the match run through embedded newlines; the greedy body
// captures through the final closing brace of the payload.
var payloadRe = regexp.MustCompile(`(?s)ADDIN ZOTERO_ITEM CSL_CITATION\s*(\{.*\})`)

// itemKeyRe matches a library item key as the trailing path segment of an
// identifier: .../items/<alnum> at end of string.
var itemKeyRe = regexp.MustCompile(`/items/([A-Za-z0-9]+)$`)

// payload mirrors the recognized slice of the embedded citation schema.
// Unknown fields are ignored; the raw bytes of each item are retained
// separately so nothing is lost to this partial view.
type payload struct {
	CitationItems []json.RawMessage `json:"citationItems"`
}

type citedItem struct {
	URIs     []string `json:"uris"`
	ItemData itemData `json:"itemData"`
}

type itemData struct {
	Title  string         `json:"title"`
	Issued issuedDate     `json:"issued"`
	Date   string         `json:"date"`
	Author []types.Author `json:"author"`
	DOI    string         `json:"DOI"`
	ISBN   string         `json:"ISBN"`
}

type issuedDate struct {
	// Year entries appear as numbers or strings depending on the tool
	// that wrote the payload.
	DateParts [][]any `json:"date-parts"`
}

// Parse decodes one field's instruction text into a Citation. It returns
// (nil, nil) when the field carries no citation marker, and a non-nil
// error only when the payload after the marker fails to decode; callers
// treat both as a skip, not a failure.
func Parse(code field.Code) (*types.Citation, error) {
	m := payloadRe.FindStringSubmatch(code.Text)
	if m == nil {
		return nil, nil
	}

	var p payload
	if err := json.Unmarshal([]byte(m[1]), &p); err != nil {
		return nil, fmt.Errorf("decoding citation payload: %w", err)
	}

	c := &types.Citation{
		FieldCode:  code.Text,
		FieldIndex: code.Index,
	}
	for _, raw := range p.CitationItems {
		c.Items = append(c.Items, parseItem(raw))
	}
	return c, nil
}

// ParseAll runs Parse over every extracted field code, dropping fields
// whose payload is absent or malformed. Decode failures are reported to
// diag and processing continues; a damaged field never aborts recovery
// of the rest of the document.
func ParseAll(codes []field.Code, diag io.Writer) []types.Citation {
	var citations []types.Citation
	for _, code := range codes {
		c, err := Parse(code)
		if err != nil {
			fmt.Fprintf(diag, "warning: skipping field %d: %v\n", code.Index, err)
			continue
		}
		if c == nil || len(c.Items) == 0 {
			continue
		}
		c.FieldIndex = len(citations)
		citations = append(citations, *c)
	}
	return citations
}

// parseItem builds a CitedItem from one citationItems entry. Individual
// item decode failures degrade to an item with only its raw payload:
// such items carry no key and classify as orphaned with nothing to
// match on.
func parseItem(raw json.RawMessage) types.CitedItem {
	item := types.CitedItem{RawItem: raw}

	var ci citedItem
	if err := json.Unmarshal(raw, &ci); err != nil {
		return item
	}

	item.URIs = ci.URIs
	item.ItemKey = extractItemKey(ci.URIs)
	item.Title = ci.ItemData.Title
	item.Authors = ci.ItemData.Author
	item.DOI = ci.ItemData.DOI
	item.ISBN = ci.ItemData.ISBN
	item.Year = extractYear(ci.ItemData)
	return item
}

// extractItemKey returns the key from the first URI whose tail matches
// the /items/<key> pattern. URIs are tried in payload order; the first
// hit wins even if later URIs also carry keys.
func extractItemKey(uris []string) string {
	for _, uri := range uris {
		if m := itemKeyRe.FindStringSubmatch(uri); m != nil {
			return m[1]
		}
	}
	return ""
}

// extractYear takes the year from the structured issued date-parts,
// falling back to the leading four characters of the raw date string.
func extractYear(d itemData) string {
	if len(d.Issued.DateParts) > 0 && len(d.Issued.DateParts[0]) > 0 {
		switch y := d.Issued.DateParts[0][0].(type) {
		case float64:
			return strconv.Itoa(int(y))
		case string:
			if y != "" {
				return y
			}
		}
	}
	if len(d.Date) >= 4 {
		return d.Date[:4]
	}
	return d.Date
}
