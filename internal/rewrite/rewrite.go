// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rewrite repoints matched citations at their new library items
// by literal substitution of identifier strings in the raw document
// markup. Working on raw text rather than re-serializing the payload
// keeps every unrelated byte, including the payload's own formatting,
// exactly as written.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/pdiddy/cite-relink/internal/catalog"
	"github.com/pdiddy/cite-relink/pkg/types"
)

// NewURI constructs the identifier for a relinked item key under the
// given account identity. Priority order: synced account URI, local
// library URI with the local user key, bare local URI.
func NewURI(id catalog.Identity, key string) string {
	switch {
	case id.UserID != "":
		return fmt.Sprintf("http://zotero.org/users/%s/items/%s", id.UserID, key)
	case id.LocalUserKey != "":
		return fmt.Sprintf("http://zotero.org/users/local/%s/items/%s", id.LocalUserKey, key)
	default:
		return fmt.Sprintf("http://zotero.org/users/local/items/%s", key)
	}
}

// Replacements builds the old-identifier to new-identifier map for every
// orphaned, matched cited item. All of an item's old identifiers map to
// the one new identifier for its matched record, so the mapping can be
// many-to-one.
func Replacements(citations []types.Citation, id catalog.Identity) map[string]string {
	repl := make(map[string]string)
	for _, c := range citations {
		if !c.IsOrphaned {
			continue
		}
		for _, item := range c.Items {
			if !item.IsOrphaned || item.MatchedRecord == nil {
				continue
			}
			newURI := NewURI(id, item.MatchedRecord.Key)
			for _, old := range item.URIs {
				repl[old] = newURI
			}
		}
	}
	return repl
}

// Apply replaces every occurrence of each old identifier in the raw
// markup with its new identifier and returns the patched markup plus the
// number of identifiers that actually occurred. Zero replacements is a
// valid outcome: the document comes back byte-identical and the caller
// reports it rather than erroring.
func Apply(markup string, replacements map[string]string) (string, int) {
	applied := 0
	for old, updated := range replacements {
		if !strings.Contains(markup, old) {
			continue
		}
		markup = strings.ReplaceAll(markup, old, updated)
		applied++
	}
	return markup, applied
}
