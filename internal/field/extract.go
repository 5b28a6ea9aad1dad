// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package field recovers complex-field instruction text from a
// WordprocessingML body. Word represents a complex field as a run of
// elements bracketed by fldChar begin/end markers, with the field's
// instruction text spread over one or more instrText elements between
// them. Reference-manager citations embed their payload in that
// instruction text.
package field

import (
	"encoding/xml"
	"io"
	"strings"
)

// CitationMarker is the instruction-text token identifying a
// reference-manager citation field.
const CitationMarker = "ADDIN ZOTERO_ITEM"

// Code is one recovered citation field: its accumulated instruction text
// and its position among the document's recognized citation fields.
type Code struct {
	Text  string
	Index int
}

// extractor is the begin/end field state machine. A begin marker starts
// (or restarts) accumulation; an end marker closes it. End markers seen
// outside a field and fields left open at document end are tolerated,
// matching how word processors themselves recover from malformed field
// structure.
type extractor struct {
	inField bool
	buf     strings.Builder
	codes   []Code
}

// Extract scans a WordprocessingML stream and returns the instruction
// text of every complex field that contains the citation marker, in
// document order. Fields without the marker are discarded silently.
func Extract(r io.Reader) ([]Code, error) {
	dec := xml.NewDecoder(r)
	var ex extractor

	// Tracks whether character data belongs to an instrText element.
	inInstr := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "fldChar":
				ex.onFieldChar(charType(t))
			case "instrText":
				inInstr = true
			}
		case xml.EndElement:
			if t.Name.Local == "instrText" {
				inInstr = false
			}
		case xml.CharData:
			if inInstr && ex.inField {
				ex.buf.Write(t)
			}
		}
	}

	return ex.codes, nil
}

// ExtractString is Extract over an in-memory document body.
func ExtractString(body string) ([]Code, error) {
	return Extract(strings.NewReader(body))
}

func (ex *extractor) onFieldChar(kind string) {
	switch kind {
	case "begin":
		// A begin inside an open field abandons the partial buffer.
		ex.inField = true
		ex.buf.Reset()
	case "end":
		if !ex.inField {
			return
		}
		ex.inField = false
		text := ex.buf.String()
		ex.buf.Reset()
		if strings.Contains(text, CitationMarker) {
			ex.codes = append(ex.codes, Code{Text: text, Index: len(ex.codes)})
		}
	}
	// "separate" divides instruction from result text; accumulation
	// continues across it.
}

func charType(el xml.StartElement) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == "fldCharType" {
			return attr.Value
		}
	}
	return ""
}
