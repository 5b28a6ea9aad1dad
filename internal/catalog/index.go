// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"sort"

	"github.com/pdiddy/cite-relink/pkg/types"
)

// Index is the in-memory, query-optimized view over a catalog snapshot:
// constant-time lookup by key, normalized DOI, and normalized ISBN, plus
// the record collection in key order for fuzzy scanning. Read-only after
// construction.
type Index struct {
	records  []types.LibraryRecord
	byKey    map[string]*types.LibraryRecord
	byDOI    map[string]*types.LibraryRecord
	byISBN   map[string]*types.LibraryRecord
	identity Identity
}

// NewIndex builds an Index from a snapshot. Records are ordered by key so
// the fuzzy scan order, and therefore its first-at-best-score tie-break,
// is stable regardless of source ordering.
func NewIndex(snap *Snapshot) *Index {
	records := make([]types.LibraryRecord, len(snap.Records))
	copy(records, snap.Records)
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })

	idx := &Index{
		records:  records,
		byKey:    make(map[string]*types.LibraryRecord, len(records)),
		byDOI:    make(map[string]*types.LibraryRecord),
		byISBN:   make(map[string]*types.LibraryRecord),
		identity: snap.Identity,
	}
	for i := range records {
		r := &records[i]
		idx.byKey[r.Key] = r
		if r.DOI != "" {
			idx.byDOI[r.DOI] = r
		}
		if r.ISBN != "" {
			idx.byISBN[r.ISBN] = r
		}
	}
	return idx
}

// Len returns the number of records in the index.
func (idx *Index) Len() int { return len(idx.records) }

// Records returns the record collection in key order. Callers must not
// mutate it.
func (idx *Index) Records() []types.LibraryRecord { return idx.records }

// ByKey looks up a record by item key.
func (idx *Index) ByKey(key string) (*types.LibraryRecord, bool) {
	r, ok := idx.byKey[key]
	return r, ok
}

// ByDOI looks up a record by normalized DOI. The caller normalizes.
func (idx *Index) ByDOI(doi string) (*types.LibraryRecord, bool) {
	r, ok := idx.byDOI[doi]
	return r, ok
}

// ByISBN looks up a record by normalized ISBN. The caller normalizes.
func (idx *Index) ByISBN(isbn string) (*types.LibraryRecord, bool) {
	r, ok := idx.byISBN[isbn]
	return r, ok
}

// Identity returns the account identity captured with the snapshot.
func (idx *Index) Identity() Identity { return idx.identity }
