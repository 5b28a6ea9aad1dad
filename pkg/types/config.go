package types

import "time"

// CatalogSource selects where the library snapshot comes from.
type CatalogSource string

const (
	// SourceSQLite reads a snapshot copy of the local zotero.sqlite.
	SourceSQLite CatalogSource = "sqlite"

	// SourceWebAPI pages through the Zotero web API's item listing.
	SourceWebAPI CatalogSource = "webapi"
)

// CatalogConfig holds settings for loading the library catalog.
type CatalogConfig struct {
	// Source selects the catalog backend: sqlite or webapi.
	Source CatalogSource `json:"source" yaml:"source"`

	// Path is the Zotero data directory or zotero.sqlite file for the
	// sqlite source. Empty means discover well-known locations.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// UserID is the Zotero account ID, required by the webapi source and
	// used for rewritten identifier construction.
	UserID string `json:"user_id,omitempty" yaml:"user_id,omitempty"`

	// APIKey authenticates webapi requests.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout is the HTTP request timeout for the webapi source.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the retry budget for rate-limited webapi requests
	// (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// MatchConfig holds settings for the matching stage.
type MatchConfig struct {
	// Threshold is the minimum composite fuzzy score to accept a match
	// (0-100, default 80). The title-only stage always uses 90.
	Threshold int `json:"threshold" yaml:"threshold"`
}

// OutputConfig holds settings for report and document outputs.
type OutputConfig struct {
	// ReportPath overrides the default <document stem>_relink_report.txt.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`

	// GuidePath, when set, writes a manual relinking guide.
	GuidePath string `json:"guide_path,omitempty" yaml:"guide_path,omitempty"`

	// CSLPath, when set, writes matched records as a CSL-YAML list.
	CSLPath string `json:"csl_path,omitempty" yaml:"csl_path,omitempty"`

	// DocumentPath, when set, writes a patched copy of the document.
	DocumentPath string `json:"document_path,omitempty" yaml:"document_path,omitempty"`
}

// RelinkConfig groups all stage configurations for a run.
type RelinkConfig struct {
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Match   MatchConfig   `json:"match" yaml:"match"`
	Output  OutputConfig  `json:"output" yaml:"output"`
}
