package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	ioutils "github.com/tryp/album-table/internal/io"
)

// Page size limits shared by the table, the TUI form and the CLI flags.
const (
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 1000

	appName = "album-table"
)

// Environment variables that override file settings.
const (
	EnvTerm         = "ALBUM_TABLE_TERM"
	EnvPageSize     = "ALBUM_TABLE_PAGE_SIZE"
	EnvLocale       = "ALBUM_TABLE_LOCALE"
	EnvLogLevel     = "ALBUM_TABLE_LOG_LEVEL"
	EnvLogFile      = "ALBUM_TABLE_LOG_FILE"
	EnvCacheEnabled = "ALBUM_TABLE_CACHE_ENABLED"
	EnvCacheDir     = "ALBUM_TABLE_CACHE_DIR"
)

// Validation errors.
var (
	ErrInvalidPageSize   = fmt.Errorf("page size must be between %d and %d", MinPageSize, MaxPageSize)
	ErrInvalidLimit      = errors.New("result limit must be between 0 and 200")
	ErrInvalidTTL        = errors.New("cache ttl must be positive")
	ErrInvalidConcurrent = errors.New("artwork concurrency must be at least 1")
	ErrInvalidExport     = errors.New("export format must be one of csv, json, m3u, pls")
)

// Settings holds all configuration options.
type Settings struct {
	// Search settings
	Term    string `yaml:"term"`
	Limit   int    `yaml:"limit"`
	Country string `yaml:"country"`

	// Table settings
	PageSize    int    `yaml:"page_size"`
	Paginated   bool   `yaml:"paginated"`
	Sortable    bool   `yaml:"sortable"`
	FuzzyFilter bool   `yaml:"fuzzy_filter"`
	Locale      string `yaml:"locale"`

	// HTTP settings
	HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds"`
	UserAgent          string `yaml:"user_agent"`

	Cache   CacheSettings   `yaml:"cache"`
	Artwork ArtworkSettings `yaml:"artwork"`
	Export  ExportSettings  `yaml:"export"`
	Log     LogSettings     `yaml:"log"`
}

// CacheSettings configures the search response cache.
type CacheSettings struct {
	Enabled    bool   `yaml:"enabled"`
	Directory  string `yaml:"directory"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// ArtworkSettings configures artwork downloads for the detail pane.
type ArtworkSettings struct {
	Enabled       bool    `yaml:"enabled"`
	MaxConcurrent int     `yaml:"max_concurrent"`
	MaxRetries    int     `yaml:"max_retries"`
	RetryCooldown float64 `yaml:"retry_cooldown"` // seconds
	Size          int     `yaml:"size"`           // requested square size in pixels
	Columns       int     `yaml:"columns"`        // thumbnail width in terminal cells
}

// ExportSettings configures table exports.
type ExportSettings struct {
	Directory   string `yaml:"directory"`
	Format      string `yaml:"format"` // csv, json, m3u, pls
	M3UExtended bool   `yaml:"m3u_extended"`
}

// LogSettings configures the application log.
type LogSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	homeDir, _ := os.UserHomeDir()

	return &Settings{
		Term:    "michael jackson",
		Limit:   0,
		Country: "",

		PageSize:    DefaultPageSize,
		Paginated:   true,
		Sortable:    true,
		FuzzyFilter: false,
		Locale:      "",

		HTTPTimeoutSeconds: 30,
		UserAgent:          "AlbumTable",

		Cache: CacheSettings{
			Enabled:    true,
			Directory:  filepath.Join(cacheDir, appName),
			TTLSeconds: 3600,
		},
		Artwork: ArtworkSettings{
			Enabled:       true,
			MaxConcurrent: 4,
			MaxRetries:    3,
			RetryCooldown: 0.2,
			Size:          100,
			Columns:       20,
		},
		Export: ExportSettings{
			Directory:   filepath.Join(homeDir, "Music", appName),
			Format:      "csv",
			M3UExtended: true,
		},
		Log: LogSettings{
			Level: "info",
			File:  filepath.Join(cacheDir, appName, appName+".log"),
		},
	}
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return appName + ".yaml"
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// Load reads settings from a YAML file on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return ioutils.WriteFile(path, data)
}

// ApplyEnv overrides settings from ALBUM_TABLE_* environment variables.
// lookup is usually os.LookupEnv.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTerm); ok && strings.TrimSpace(v) != "" {
		s.Term = v
	}
	if v, ok := lookup(EnvPageSize); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		s.PageSize = n
	}
	if v, ok := lookup(EnvLocale); ok {
		s.Locale = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		s.Log.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		s.Log.File = v
	}
	if v, ok := lookup(EnvCacheEnabled); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheEnabled, err)
		}
		s.Cache.Enabled = enabled
	}
	if v, ok := lookup(EnvCacheDir); ok && v != "" {
		s.Cache.Directory = v
	}
	return nil
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	var errs []error

	if s.PageSize < MinPageSize || s.PageSize > MaxPageSize {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidPageSize, s.PageSize))
	}
	if s.Limit < 0 || s.Limit > 200 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidLimit, s.Limit))
	}
	if s.Cache.Enabled && s.Cache.TTLSeconds <= 0 {
		errs = append(errs, ErrInvalidTTL)
	}
	if s.Artwork.Enabled && s.Artwork.MaxConcurrent < 1 {
		errs = append(errs, ErrInvalidConcurrent)
	}
	switch strings.ToLower(s.Export.Format) {
	case "csv", "json", "m3u", "pls":
	default:
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidExport, s.Export.Format))
	}

	return errors.Join(errs...)
}

// HTTPTimeout returns the HTTP timeout as a duration.
func (s *Settings) HTTPTimeout() time.Duration {
	return time.Duration(s.HTTPTimeoutSeconds) * time.Second
}

// CacheTTL returns the cache TTL as a duration.
func (s *Settings) CacheTTL() time.Duration {
	return time.Duration(s.Cache.TTLSeconds) * time.Second
}

// RetryDelay returns the initial artwork retry delay.
func (a ArtworkSettings) RetryDelay() time.Duration {
	return time.Duration(a.RetryCooldown * float64(time.Second))
}
