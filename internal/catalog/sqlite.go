// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cite-relink/pkg/types"
)

const dbFile = "zotero.sqlite"

// SQLiteSource reads the local reference-manager database. The live
// database may be locked or mid-write while the manager is running, so
// Load copies it to a temporary file and reads the copy; the snapshot is
// consistent and the live file is never opened.
type SQLiteSource struct {
	// path is a zotero.sqlite file or a data directory containing one.
	// Empty means discover well-known locations.
	path string
}

// NewSQLiteSource builds a source for the given path. Resolution and
// existence checks happen at Load time.
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

// Load snapshots the database and materializes all non-deleted,
// non-attachment, non-note items with their author and editor creators.
func (s *SQLiteSource) Load(ctx context.Context) (*Snapshot, error) {
	dbPath, err := s.findDatabase()
	if err != nil {
		return nil, err
	}

	tmpPath, err := snapshotFile(dbPath)
	if err != nil {
		return nil, fmt.Errorf("snapshotting database: %w", err)
	}
	defer os.Remove(tmpPath)

	db, err := sql.Open("sqlite3", tmpPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening database snapshot: %w", err)
	}
	defer db.Close()

	snap := &Snapshot{}
	if snap.Identity, err = loadIdentity(ctx, db); err != nil {
		return nil, err
	}
	if snap.Records, err = loadRecords(ctx, db); err != nil {
		return nil, err
	}
	return snap, nil
}

// findDatabase resolves the configured path, or probes the locations the
// reference manager installs to by default.
func (s *SQLiteSource) findDatabase() (string, error) {
	if s.path != "" {
		info, err := os.Stat(s.path)
		if err != nil {
			return "", fmt.Errorf("catalog path %s: %w", s.path, err)
		}
		if !info.IsDir() {
			return s.path, nil
		}
		p := filepath.Join(s.path, dbFile)
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("no %s in %s: %w", dbFile, s.path, err)
		}
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	candidates := []string{
		filepath.Join(home, "Zotero", dbFile),
		filepath.Join(home, ".zotero", "zotero", dbFile),
		filepath.Join(home, "snap", "zotero-snap", "common", "Zotero", dbFile),
		filepath.Join(home, "Library", "Application Support", "Zotero", dbFile),
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		candidates = append(candidates, filepath.Join(appData, "Zotero", "Zotero", dbFile))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no %s found in default locations; set --zotero-path", dbFile)
}

// snapshotFile copies src to a temp file and returns its path. The caller
// removes it.
func snapshotFile(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.CreateTemp("", "cite-relink-*.sqlite")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	return out.Name(), nil
}

// loadIdentity reads the account settings used for identifier
// construction. Missing settings are not an error; the rewriter has a
// fallback for each.
func loadIdentity(ctx context.Context, db *sql.DB) (Identity, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT key, value FROM settings WHERE setting = 'account'`)
	if err != nil {
		return Identity{}, fmt.Errorf("reading account settings: %w", err)
	}
	defer rows.Close()

	var id Identity
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Identity{}, fmt.Errorf("scanning account setting: %w", err)
		}
		switch key {
		case "userID":
			id.UserID = value
		case "localUserKey":
			id.LocalUserKey = value
		}
	}
	return id, rows.Err()
}

// itemsQuery pulls every regular item with its matching-relevant fields.
// Attachments, notes, and trashed items are not citable and are excluded.
const itemsQuery = `
SELECT
	i.itemID,
	i.key,
	COALESCE((SELECT value FROM itemDataValues idv
		JOIN itemData id ON idv.valueID = id.valueID
		JOIN fields f ON id.fieldID = f.fieldID
		WHERE id.itemID = i.itemID AND f.fieldName = 'title'), '') AS title,
	COALESCE((SELECT value FROM itemDataValues idv
		JOIN itemData id ON idv.valueID = id.valueID
		JOIN fields f ON id.fieldID = f.fieldID
		WHERE id.itemID = i.itemID AND f.fieldName = 'date'), '') AS date,
	COALESCE((SELECT value FROM itemDataValues idv
		JOIN itemData id ON idv.valueID = id.valueID
		JOIN fields f ON id.fieldID = f.fieldID
		WHERE id.itemID = i.itemID AND f.fieldName = 'DOI'), '') AS doi,
	COALESCE((SELECT value FROM itemDataValues idv
		JOIN itemData id ON idv.valueID = id.valueID
		JOIN fields f ON id.fieldID = f.fieldID
		WHERE id.itemID = i.itemID AND f.fieldName = 'ISBN'), '') AS isbn
FROM items i
JOIN itemTypes it ON i.itemTypeID = it.itemTypeID
WHERE i.itemID NOT IN (SELECT itemID FROM deletedItems)
	AND it.typeName NOT IN ('attachment', 'note')
ORDER BY i.key`

// creatorsQuery pulls author and editor creators for all items in display
// order. Other creator roles (translator, contributor, ...) do not take
// part in matching.
const creatorsQuery = `
SELECT ic.itemID, COALESCE(c.lastName, ''), COALESCE(c.firstName, '')
FROM itemCreators ic
JOIN creators c ON ic.creatorID = c.creatorID
JOIN creatorTypes ct ON ic.creatorTypeID = ct.creatorTypeID
WHERE ct.creatorType IN ('author', 'editor')
ORDER BY ic.itemID, ic.orderIndex`

func loadRecords(ctx context.Context, db *sql.DB) ([]types.LibraryRecord, error) {
	creators, err := loadCreators(ctx, db)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, itemsQuery)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var records []types.LibraryRecord
	for rows.Next() {
		var (
			itemID                      int64
			key, title, date, doi, isbn string
		)
		if err := rows.Scan(&itemID, &key, &title, &date, &doi, &isbn); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		records = append(records,
			types.NewLibraryRecord(key, title, date, doi, isbn, creators[itemID]))
	}
	return records, rows.Err()
}

func loadCreators(ctx context.Context, db *sql.DB) (map[int64][]types.Creator, error) {
	rows, err := db.QueryContext(ctx, creatorsQuery)
	if err != nil {
		return nil, fmt.Errorf("querying creators: %w", err)
	}
	defer rows.Close()

	creators := make(map[int64][]types.Creator)
	for rows.Next() {
		var (
			itemID        int64
			family, given string
		)
		if err := rows.Scan(&itemID, &family, &given); err != nil {
			return nil, fmt.Errorf("scanning creator row: %w", err)
		}
		creators[itemID] = append(creators[itemID], types.Creator{Family: family, Given: given})
	}
	return creators, rows.Err()
}
