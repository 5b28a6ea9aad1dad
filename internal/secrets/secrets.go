// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads web API credentials from a directory of
// plain-text files. Each file holds one secret: the filename is the key
// name and the file contents (trimmed) are the value.
//
// Supported key files: zotero-api-key, zotero-user-id.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Key file names.
const (
	apiKeyFile = "zotero-api-key"
	userIDFile = "zotero-user-id"
)

// Keys holds the credentials the web catalog source can use.
type Keys struct {
	// APIKey authenticates web API requests to private libraries.
	APIKey string

	// UserID is the numeric account ID of the library to page through.
	UserID string
}

// IsZero reports whether no credentials were found.
func (k Keys) IsZero() bool {
	return k.APIKey == "" && k.UserID == ""
}

// Load reads the recognized key files from dir. A missing directory or
// missing files are not errors; Load returns zero-valued Keys.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (Keys, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Keys{}, nil
		}
		return Keys{}, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	var keys Keys
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		var field *string
		switch entry.Name() {
		case apiKeyFile:
			field = &keys.APIKey
		case userIDFile:
			field = &keys.UserID
		default:
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}
		*field = strings.TrimSpace(string(data))
	}

	return keys, nil
}
