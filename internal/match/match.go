// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"github.com/pdiddy/cite-relink/internal/catalog"
	"github.com/pdiddy/cite-relink/pkg/types"
)

// titleOnlyThreshold is the fixed acceptance bar for the title-only fuzzy
// stage, independent of the caller's composite threshold. Title-only
// evidence is weaker, so the bar is higher.
const titleOnlyThreshold = 90

// Engine runs the ordered matching strategy for one orphaned cited item
// against a library index. It is query-like: it records the method and
// score on the item as an audit trail but never assigns the matched
// record — that stays with the caller.
type Engine struct {
	idx    *catalog.Index
	scorer Scorer
}

// NewEngine builds an Engine over idx using the default token-set scorer.
func NewEngine(idx *catalog.Index) *Engine {
	return &Engine{idx: idx, scorer: TokenSetRatio}
}

// NewEngineWithScorer builds an Engine with a caller-supplied scorer.
func NewEngineWithScorer(idx *catalog.Index, scorer Scorer) *Engine {
	return &Engine{idx: idx, scorer: scorer}
}

// FindMatch returns the best catalog record for item, or nil when no
// stage succeeds. Stages run in strict order, first success wins:
// exact DOI, exact ISBN, composite fuzzy at threshold, title-only fuzzy
// at the fixed higher bar. Fuzzy ties keep the first record at the best
// score in index (key) order.
func (e *Engine) FindMatch(item *types.CitedItem, threshold int) *types.LibraryRecord {
	if item.DOI != "" {
		if rec, ok := e.idx.ByDOI(types.NormalizeDOI(item.DOI)); ok {
			item.MatchMethod = types.MatchDOI
			item.MatchScore = 100
			return rec
		}
	}

	if item.ISBN != "" {
		if rec, ok := e.idx.ByISBN(types.NormalizeISBN(item.ISBN)); ok {
			item.MatchMethod = types.MatchISBN
			item.MatchScore = 100
			return rec
		}
	}

	if search := item.SearchString(); search != "" {
		rec, score := e.bestScan(search, func(r *types.LibraryRecord) string {
			return r.SearchString
		})
		if rec != nil && score >= threshold {
			item.MatchMethod = types.MatchFuzzy
			item.MatchScore = score
			return rec
		}
	}

	if item.Title != "" {
		rec, score := e.bestScan(item.Title, func(r *types.LibraryRecord) string {
			return r.Title
		})
		if rec != nil && score >= titleOnlyThreshold {
			item.MatchMethod = types.MatchTitleOnly
			item.MatchScore = score
			return rec
		}
	}

	item.MatchMethod = types.MatchNone
	item.MatchScore = 0
	return nil
}

// bestScan scores target against every record's candidate string and
// returns the single best record with its score. Records with an empty
// candidate string do not compete. A strict greater-than keeps the first
// record at the maximal score.
func (e *Engine) bestScan(target string, candidate func(*types.LibraryRecord) string) (*types.LibraryRecord, int) {
	records := e.idx.Records()

	var best *types.LibraryRecord
	bestScore := -1
	for i := range records {
		rec := &records[i]
		c := candidate(rec)
		if c == "" {
			continue
		}
		if score := e.scorer(target, c); score > bestScore {
			best = rec
			bestScore = score
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestScore
}
