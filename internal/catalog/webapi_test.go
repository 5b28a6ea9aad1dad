package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/pdiddy/cite-relink/pkg/types"
)

func setWebAPIBase(t *testing.T, base string) {
	t.Helper()
	old := webAPIBase
	webAPIBase = base
	t.Cleanup(func() { webAPIBase = old })
}

func apiItemJSON(key, itemType, title string) map[string]any {
	return map[string]any{
		"key": key,
		"data": map[string]any{
			"itemType": itemType,
			"title":    title,
		},
	}
}

func TestNewWebSourceRequiresUserID(t *testing.T) {
	if _, err := NewWebSource(types.CatalogConfig{}); err == nil {
		t.Fatal("expected error without a user ID")
	}
}

func TestWebSourceLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/42/items" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Zotero-API-Version"); got != "3" {
			t.Errorf("Zotero-API-Version = %q", got)
		}
		if got := r.Header.Get("Zotero-API-Key"); got != "sekrit" {
			t.Errorf("Zotero-API-Key = %q", got)
		}

		items := []map[string]any{
			{
				"key": "ARTKEY01",
				"data": map[string]any{
					"itemType": "journalArticle",
					"title":    "Attention Is All You Need",
					"date":     "2017-06-12",
					"DOI":      "10.1000/ATTENTION",
					"creators": []map[string]any{
						{"creatorType": "author", "lastName": "Vaswani", "firstName": "Ashish"},
						{"creatorType": "translator", "lastName": "Doe"},
						{"creatorType": "author", "name": "DeepMind Team"},
					},
				},
			},
			apiItemJSON("ATTKEY01", "attachment", "paper.pdf"),
			apiItemJSON("NOTEKEY1", "note", ""),
			{
				"key": "TRASHED1",
				"data": map[string]any{
					"itemType": "book",
					"title":    "Gone",
					"deleted":  1,
				},
			},
		}
		json.NewEncoder(w).Encode(items)
	}))
	defer srv.Close()
	setWebAPIBase(t, srv.URL)

	src, err := NewWebSource(types.CatalogConfig{UserID: "42", APIKey: "sekrit"})
	if err != nil {
		t.Fatal(err)
	}
	snap, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if snap.Identity.UserID != "42" || snap.Identity.LocalUserKey != "" {
		t.Errorf("identity = %+v", snap.Identity)
	}
	if len(snap.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(snap.Records))
	}

	rec := snap.Records[0]
	if rec.Key != "ARTKEY01" || rec.Year != "2017" {
		t.Errorf("record = %+v", rec)
	}
	if rec.DOI != "10.1000/attention" {
		t.Errorf("doi = %q, want normalized lower case", rec.DOI)
	}
	if len(rec.Creators) != 2 {
		t.Fatalf("creators = %+v, want author and single-field author only", rec.Creators)
	}
	if rec.Creators[0].Family != "Vaswani" || rec.Creators[1].Family != "DeepMind Team" {
		t.Errorf("creators = %+v", rec.Creators)
	}
}

func TestWebSourceLoadPaginates(t *testing.T) {
	var starts []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		starts = append(starts, start)

		// One full page then a short one.
		n := pageSize
		if start > 0 {
			n = 3
		}
		items := make([]map[string]any, n)
		for i := range items {
			items[i] = apiItemJSON(fmt.Sprintf("KEY%05d", start+i), "book", "Title")
		}
		json.NewEncoder(w).Encode(items)
	}))
	defer srv.Close()
	setWebAPIBase(t, srv.URL)

	src, err := NewWebSource(types.CatalogConfig{UserID: "42"})
	if err != nil {
		t.Fatal(err)
	}
	snap, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(snap.Records) != pageSize+3 {
		t.Errorf("got %d records, want %d", len(snap.Records), pageSize+3)
	}
	if len(starts) != 2 || starts[0] != 0 || starts[1] != pageSize {
		t.Errorf("starts = %v", starts)
	}
}

func TestWebSourceLoadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	setWebAPIBase(t, srv.URL)

	src, err := NewWebSource(types.CatalogConfig{UserID: "42"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error on HTTP 500")
	}
}
