package catalog

import (
	"testing"

	"github.com/pdiddy/cite-relink/pkg/types"
)

func TestNewIndexSortsByKey(t *testing.T) {
	snap := &Snapshot{
		Records: []types.LibraryRecord{
			{Key: "CCC"},
			{Key: "AAA"},
			{Key: "BBB"},
		},
	}
	idx := NewIndex(snap)

	if idx.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", idx.Len())
	}
	var keys []string
	for _, r := range idx.Records() {
		keys = append(keys, r.Key)
	}
	for i, want := range []string{"AAA", "BBB", "CCC"} {
		if keys[i] != want {
			t.Errorf("records[%d].Key = %q, want %q", i, keys[i], want)
		}
	}
	// Source slice must stay untouched.
	if snap.Records[0].Key != "CCC" {
		t.Error("NewIndex reordered the snapshot's own slice")
	}
}

func TestIndexLookups(t *testing.T) {
	idx := NewIndex(&Snapshot{
		Records: []types.LibraryRecord{
			{Key: "AAA", DOI: "10.1/x", ISBN: "9780000000001"},
			{Key: "BBB"},
		},
		Identity: Identity{UserID: "42", LocalUserKey: "LK"},
	})

	if r, ok := idx.ByKey("AAA"); !ok || r.Key != "AAA" {
		t.Errorf("ByKey(AAA) = %+v, %v", r, ok)
	}
	if _, ok := idx.ByKey("ZZZ"); ok {
		t.Error("ByKey(ZZZ) must miss")
	}
	if r, ok := idx.ByDOI("10.1/x"); !ok || r.Key != "AAA" {
		t.Errorf("ByDOI = %+v, %v", r, ok)
	}
	if r, ok := idx.ByISBN("9780000000001"); !ok || r.Key != "AAA" {
		t.Errorf("ByISBN = %+v, %v", r, ok)
	}
	// Records without identifiers never enter the identifier maps.
	if _, ok := idx.ByDOI(""); ok {
		t.Error("empty DOI must not be indexed")
	}
	if _, ok := idx.ByISBN(""); ok {
		t.Error("empty ISBN must not be indexed")
	}

	if id := idx.Identity(); id.UserID != "42" || id.LocalUserKey != "LK" {
		t.Errorf("Identity() = %+v", id)
	}
}
