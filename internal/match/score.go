// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match finds catalog records for orphaned cited items: exact
// identifier lookups first, then token-set fuzzy scoring over the
// library's composite search strings.
package match

import (
	"sort"
	"strings"
)

// Scorer rates the similarity of two strings from 0 to 100. The matching
// engine takes it as a parameter so the strategy is testable with a stub.
type Scorer func(a, b string) int

// TokenSetRatio is the default Scorer: an order-insensitive similarity
// over the unique word-token sets of the two inputs. Tokens are
// case-folded and whitespace-delimited. Identical token sets score 100,
// as does one set containing the other; otherwise the score is the best
// pairwise similarity among the shared-token string and the two
// shared-plus-remainder strings.
func TokenSetRatio(a, b string) int {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var inter, onlyA, onlyB []string
	for tok := range ta {
		if tb[tok] {
			inter = append(inter, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tb {
		if !ta[tok] {
			onlyB = append(onlyB, tok)
		}
	}

	// One side fully contained in the other.
	if len(inter) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	shared := strings.Join(inter, " ")
	full1 := joinNonEmpty(shared, strings.Join(onlyA, " "))
	full2 := joinNonEmpty(shared, strings.Join(onlyB, " "))

	best := indelRatio(shared, full1)
	if r := indelRatio(shared, full2); r > best {
		best = r
	}
	if r := indelRatio(full1, full2); r > best {
		best = r
	}
	return best
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = true
	}
	return set
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

// indelRatio is the normalized insert/delete similarity of two strings,
// scaled to 0-100: 100*(lenA+lenB-dist)/(lenA+lenB), where dist counts
// character inserts and deletes (no substitutions).
func indelRatio(a, b string) int {
	if a == "" && b == "" {
		return 0
	}
	total := len(a) + len(b)
	dist := total - 2*lcsLength(a, b)
	return (100*(total-dist) + total/2) / total
}

// lcsLength computes the longest-common-subsequence length with a
// two-row table.
func lcsLength(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
