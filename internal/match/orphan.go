// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"github.com/pdiddy/cite-relink/internal/catalog"
	"github.com/pdiddy/cite-relink/pkg/types"
)

// ClassifyOrphans flags every cited item, and every citation, as orphaned
// or resolved against the index. An item is orphaned when it carries no
// key or its key is absent from the library; a citation is orphaned when
// any of its items is. The function only writes the two flags and is
// idempotent over the same inputs.
func ClassifyOrphans(citations []types.Citation, idx *catalog.Index) {
	for ci := range citations {
		c := &citations[ci]
		c.IsOrphaned = false
		for ii := range c.Items {
			item := &c.Items[ii]
			_, known := idx.ByKey(item.ItemKey)
			item.IsOrphaned = item.ItemKey == "" || !known
			if item.IsOrphaned {
				c.IsOrphaned = true
			}
		}
	}
}

// MatchOrphans runs the engine over every orphaned cited item at the
// given threshold and assigns the matched record. Resolved items are
// never queried.
func MatchOrphans(citations []types.Citation, engine *Engine, threshold int) {
	for ci := range citations {
		for ii := range citations[ci].Items {
			item := &citations[ci].Items[ii]
			if !item.IsOrphaned {
				continue
			}
			if rec := engine.FindMatch(item, threshold); rec != nil {
				item.MatchedRecord = rec
			}
		}
	}
}
