package match

import (
	"testing"

	"github.com/pdiddy/cite-relink/pkg/types"
)

func TestClassifyOrphans(t *testing.T) {
	idx := testIndex(
		record("GOOD", "Known Paper", "2020", "", "", "Smith"),
	)

	citations := []types.Citation{
		{Items: []types.CitedItem{
			{ItemKey: "GOOD"},
		}},
		{Items: []types.CitedItem{
			{ItemKey: "GOOD"},
			{ItemKey: "GONE"},
		}},
		{Items: []types.CitedItem{
			{ItemKey: ""},
		}},
	}

	ClassifyOrphans(citations, idx)

	if citations[0].IsOrphaned || citations[0].Items[0].IsOrphaned {
		t.Error("citation with only known keys must not be orphaned")
	}
	if !citations[1].IsOrphaned {
		t.Error("citation with one unknown key must be orphaned")
	}
	if citations[1].Items[0].IsOrphaned {
		t.Error("known item in a mixed citation must stay resolved")
	}
	if !citations[1].Items[1].IsOrphaned {
		t.Error("unknown key must orphan its item")
	}
	if !citations[2].IsOrphaned || !citations[2].Items[0].IsOrphaned {
		t.Error("empty key must orphan item and citation")
	}
}

func TestClassifyOrphansIdempotent(t *testing.T) {
	idx := testIndex(record("GOOD", "Known Paper", "2020", "", ""))

	citations := []types.Citation{
		{Items: []types.CitedItem{{ItemKey: "GOOD"}, {ItemKey: "GONE"}}},
	}

	ClassifyOrphans(citations, idx)
	ClassifyOrphans(citations, idx)

	if !citations[0].IsOrphaned {
		t.Error("orphan flag lost on second pass")
	}
	if citations[0].Items[0].IsOrphaned {
		t.Error("resolved item flipped on second pass")
	}
}

func TestClassifyOrphansResetsStaleFlags(t *testing.T) {
	idx := testIndex(record("GOOD", "Known Paper", "2020", "", ""))

	citations := []types.Citation{
		{IsOrphaned: true, Items: []types.CitedItem{
			{ItemKey: "GOOD", IsOrphaned: true},
		}},
	}

	ClassifyOrphans(citations, idx)

	if citations[0].IsOrphaned || citations[0].Items[0].IsOrphaned {
		t.Error("stale orphan flags must be cleared when the key is known")
	}
}

func TestMatchOrphansAssignsOnlyOrphans(t *testing.T) {
	idx := testIndex(
		record("GOOD", "Known Paper", "2020", "", "", "Smith"),
		record("NEWK", "Lost Paper", "2019", "", "", "Jones"),
	)
	engine := NewEngine(idx)

	citations := []types.Citation{
		{Items: []types.CitedItem{
			{ItemKey: "GOOD", Title: "Known Paper"},
			{ItemKey: "GONE", Title: "Lost Paper", Year: "2019",
				Authors: []types.Author{{Family: "Jones"}}},
		}},
	}

	ClassifyOrphans(citations, idx)
	MatchOrphans(citations, engine, 80)

	resolved := &citations[0].Items[0]
	orphan := &citations[0].Items[1]

	if resolved.MatchedRecord != nil {
		t.Error("resolved item must never be queried")
	}
	if resolved.MatchMethod != "" {
		t.Errorf("resolved item method = %q, want untouched", resolved.MatchMethod)
	}
	if orphan.MatchedRecord == nil || orphan.MatchedRecord.Key != "NEWK" {
		t.Fatalf("orphan matched %+v, want NEWK", orphan.MatchedRecord)
	}
	if orphan.MatchMethod != types.MatchFuzzy {
		t.Errorf("orphan method = %q, want fuzzy", orphan.MatchMethod)
	}
}

func TestMatchOrphansNoCandidate(t *testing.T) {
	idx := testIndex(record("GOOD", "Known Paper", "2020", "", ""))
	engine := NewEngine(idx)

	citations := []types.Citation{
		{Items: []types.CitedItem{
			{ItemKey: "GONE", Title: "qwzx vbnm asdf"},
		}},
	}

	ClassifyOrphans(citations, idx)
	MatchOrphans(citations, engine, 95)

	item := &citations[0].Items[0]
	if item.MatchedRecord != nil {
		t.Fatalf("matched %+v, want none", item.MatchedRecord)
	}
	if item.MatchMethod != types.MatchNone {
		t.Errorf("method = %q, want none", item.MatchMethod)
	}
}
