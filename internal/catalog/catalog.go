// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads a snapshot of the reference-manager library and
// builds the query-optimized index the matching stages run against.
// Two sources produce the same snapshot shape: a copy of the local
// zotero.sqlite, and the Zotero web API's item listing.
package catalog

import (
	"context"
	"fmt"

	"github.com/pdiddy/cite-relink/pkg/types"
)

// Identity is the account information used to construct rewritten
// identifiers. Either field may be empty; the rewriter falls back
// accordingly.
type Identity struct {
	// UserID is the numeric account ID for synced libraries.
	UserID string

	// LocalUserKey identifies a never-synced local library.
	LocalUserKey string
}

// Snapshot is one materialized read of the catalog: the full record
// collection plus the account identity. A snapshot is taken once per run
// and never mutated afterwards.
type Snapshot struct {
	Records  []types.LibraryRecord
	Identity Identity
}

// Source produces a catalog snapshot.
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// NewSource builds the configured catalog source.
func NewSource(cfg types.CatalogConfig) (Source, error) {
	switch cfg.Source {
	case types.SourceWebAPI:
		return NewWebSource(cfg)
	case types.SourceSQLite, "":
		return NewSQLiteSource(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q: use sqlite or webapi", cfg.Source)
	}
}
