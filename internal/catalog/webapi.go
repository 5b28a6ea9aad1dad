// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pdiddy/cite-relink/internal/httputil"
	"github.com/pdiddy/cite-relink/pkg/types"
)

// webAPIBase is the Zotero web API root. Declared as a var so tests can
// substitute an httptest server.
var webAPIBase = "https://api.zotero.org"

// pageSize is the API's maximum items-per-request.
const pageSize = 100

// WebSource pages through a synced library's item listing on the Zotero
// web API (v3). The full listing is materialized into a snapshot before
// matching begins, same as the sqlite source.
type WebSource struct {
	client     *http.Client
	userID     string
	apiKey     string
	maxRetries int
}

// NewWebSource builds a web API source from config. The user ID is
// required; the API key is only needed for private libraries.
func NewWebSource(cfg types.CatalogConfig) (*WebSource, error) {
	if cfg.UserID == "" {
		return nil, fmt.Errorf("webapi catalog source requires a user ID: set --user-id or the zotero-user-id secret")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WebSource{
		client:     &http.Client{Timeout: timeout},
		userID:     cfg.UserID,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
	}, nil
}

// apiItem mirrors the slice of the API's item JSON the snapshot needs.
type apiItem struct {
	Key  string `json:"key"`
	Data struct {
		ItemType string `json:"itemType"`
		Title    string `json:"title"`
		Date     string `json:"date"`
		DOI      string `json:"DOI"`
		ISBN     string `json:"ISBN"`
		Deleted  int    `json:"deleted"`
		Creators []struct {
			CreatorType string `json:"creatorType"`
			LastName    string `json:"lastName"`
			FirstName   string `json:"firstName"`
			Name        string `json:"name"`
		} `json:"creators"`
	} `json:"data"`
}

// Load pages through /users/{id}/items until a short page, building the
// same record collection the sqlite source produces. The web API has no
// localUserKey; identity carries the user ID only.
func (s *WebSource) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Identity: Identity{UserID: s.userID}}

	for start := 0; ; start += pageSize {
		items, err := s.fetchPage(ctx, start)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if rec, ok := toRecord(it); ok {
				snap.Records = append(snap.Records, rec)
			}
		}
		if len(items) < pageSize {
			return snap, nil
		}
	}
}

func (s *WebSource) fetchPage(ctx context.Context, start int) ([]apiItem, error) {
	params := url.Values{
		"format": {"json"},
		"limit":  {strconv.Itoa(pageSize)},
		"start":  {strconv.Itoa(start)},
	}
	reqURL := fmt.Sprintf("%s/users/%s/items?%s", webAPIBase, s.userID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Zotero-API-Version", "3")
	if s.apiKey != "" {
		req.Header.Set("Zotero-API-Key", s.apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, s.client, req, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("library API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("library API returned HTTP %d for start=%d", resp.StatusCode, start)
	}

	var items []apiItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing library API response: %w", err)
	}
	return items, nil
}

// toRecord converts an API item, applying the same exclusions as the
// sqlite source: attachments, notes, and trashed items are dropped, and
// only author/editor creators are kept. Single-field creators (the API's
// "name" shape) match on the whole name as the family component.
func toRecord(it apiItem) (types.LibraryRecord, bool) {
	switch it.Data.ItemType {
	case "attachment", "note":
		return types.LibraryRecord{}, false
	}
	if it.Data.Deleted != 0 {
		return types.LibraryRecord{}, false
	}

	var creators []types.Creator
	for _, c := range it.Data.Creators {
		if c.CreatorType != "author" && c.CreatorType != "editor" {
			continue
		}
		if c.LastName == "" && c.Name != "" {
			creators = append(creators, types.Creator{Family: c.Name})
			continue
		}
		creators = append(creators, types.Creator{Family: c.LastName, Given: c.FirstName})
	}

	return types.NewLibraryRecord(
		it.Key, it.Data.Title, it.Data.Date, it.Data.DOI, it.Data.ISBN, creators,
	), true
}
