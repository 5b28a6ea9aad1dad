package types

import (
	"encoding/json"
	"testing"
)

func TestAuthorUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Author
	}{
		{
			name: "structured pair",
			data: `{"family": "Smith", "given": "Jane"}`,
			want: Author{Family: "Smith", Given: "Jane"},
		},
		{
			name: "literal object",
			data: `{"literal": "World Health Organization"}`,
			want: Author{Literal: "World Health Organization"},
		},
		{
			name: "bare string",
			data: `"Ancient Chronicler"`,
			want: Author{Literal: "Ancient Chronicler"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Author
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.data, err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAuthorSearchName(t *testing.T) {
	if got := (Author{Family: "Smith", Given: "Jane"}).SearchName(); got != "Smith" {
		t.Errorf("structured SearchName = %q, want Smith", got)
	}
	if got := (Author{Literal: "UNESCO"}).SearchName(); got != "UNESCO" {
		t.Errorf("literal SearchName = %q, want UNESCO", got)
	}
}

func TestCitedItemSearchString(t *testing.T) {
	tests := []struct {
		name string
		item CitedItem
		want string
	}{
		{
			name: "all components",
			item: CitedItem{
				Title:   "A Theory of Everything",
				Authors: []Author{{Family: "Smith"}, {Family: "Jones"}},
				Year:    "2020",
			},
			want: "A Theory of Everything Smith Jones 2020",
		},
		{
			name: "empty components dropped",
			item: CitedItem{Title: "Untitled Work"},
			want: "Untitled Work",
		},
		{
			name: "literal author fallback",
			item: CitedItem{
				Authors: []Author{{Literal: "The Royal Society"}},
				Year:    "1887",
			},
			want: "The Royal Society 1887",
		},
		{
			name: "fully empty",
			item: CitedItem{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.SearchString(); got != tt.want {
				t.Errorf("SearchString() = %q, want %q", got, tt.want)
			}
		})
	}
}
