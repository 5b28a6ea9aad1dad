package match

import "testing"

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{
			name: "identical strings",
			a:    "Smith Theory 2020",
			b:    "Smith Theory 2020",
			want: 100,
		},
		{
			name: "reordered tokens",
			a:    "Smith Theory 2020",
			b:    "Theory Smith 2020",
			want: 100,
		},
		{
			name: "case folded",
			a:    "smith theory 2020",
			b:    "Theory SMITH 2020",
			want: 100,
		},
		{
			name: "subset",
			a:    "Theory",
			b:    "A General Theory of Relativity",
			want: 100,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 0,
		},
		{
			name: "one empty",
			a:    "Smith",
			b:    "",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenSetRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("TokenSetRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenSetRatioPartialOverlap(t *testing.T) {
	// Mostly-shared token sets score high, unrelated ones low; the exact
	// value depends on the indel arithmetic, so assert ranges.
	high := TokenSetRatio("Quantum Field Theory Smith 2019", "Quantum Field Theory Smyth 2019")
	if high < 85 {
		t.Errorf("near-identical sets scored %d, want >= 85", high)
	}

	low := TokenSetRatio("Quantum Field Theory", "Medieval Basket Weaving")
	if low >= 70 {
		t.Errorf("unrelated sets scored %d, want < 70", low)
	}

	if high <= low {
		t.Errorf("ordering violated: %d <= %d", high, low)
	}
}

func TestTokenSetRatioSymmetric(t *testing.T) {
	a, b := "Smith Jones Theory 2020", "Jones Review 2020"
	if TokenSetRatio(a, b) != TokenSetRatio(b, a) {
		t.Errorf("scorer not symmetric for %q / %q", a, b)
	}
}

func TestTokenSetRatioDuplicateTokens(t *testing.T) {
	// Duplicate tokens collapse into the set.
	if got := TokenSetRatio("theory theory theory", "theory"); got != 100 {
		t.Errorf("duplicate collapse scored %d, want 100", got)
	}
}

func TestIndelRatio(t *testing.T) {
	if got := indelRatio("abc", "abc"); got != 100 {
		t.Errorf("identical indelRatio = %d, want 100", got)
	}
	if got := indelRatio("abc", "xyz"); got != 0 {
		t.Errorf("disjoint indelRatio = %d, want 0", got)
	}
	// "ab" vs "abcd": lcs 2, total 6, dist 2 -> 100*4/6 rounds to 67.
	if got := indelRatio("ab", "abcd"); got != 67 {
		t.Errorf("indelRatio(ab, abcd) = %d, want 67", got)
	}
}

func TestLCSLength(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 0},
		{"abc", "abc", 3},
		{"abc", "axc", 2},
		{"abcdef", "abdf", 4},
	}
	for _, tt := range tests {
		if got := lcsLength(tt.a, tt.b); got != tt.want {
			t.Errorf("lcsLength(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
