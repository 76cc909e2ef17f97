package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jvmrepo/jvmrepo/src/internal/catalog"
	"github.com/jvmrepo/jvmrepo/src/internal/runtime"
)

// DefaultDownloadWorkers is how many catalog files are fetched at once.
const DefaultDownloadWorkers = 8

// Settings is the user configuration read from config.yaml.
type Settings struct {
	CatalogURL      string        `yaml:"catalog_url"`
	CatalogFile     string        `yaml:"catalog_file,omitempty"` // Local index used when the URL cannot be reached
	CatalogCacheTTL time.Duration `yaml:"catalog_cache_ttl"`
	HTTPTimeout     time.Duration `yaml:"http_timeout"`
	ProbeTimeout    time.Duration `yaml:"probe_timeout"`
	DownloadWorkers int           `yaml:"download_workers"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		CatalogURL:      catalog.DefaultIndexURL,
		CatalogCacheTTL: catalog.DefaultCacheTTL,
		HTTPTimeout:     catalog.DefaultHTTPTimeout,
		ProbeTimeout:    runtime.DefaultProbeTimeout,
		DownloadWorkers: DefaultDownloadWorkers,
	}
}

// LoadSettings reads the settings file at path.
// A missing file yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	s.ApplyDefaults()

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// ApplyDefaults fills zero fields with their defaults.
func (s *Settings) ApplyDefaults() {
	d := DefaultSettings()
	if s.CatalogURL == "" {
		s.CatalogURL = d.CatalogURL
	}
	if s.CatalogCacheTTL == 0 {
		s.CatalogCacheTTL = d.CatalogCacheTTL
	}
	if s.HTTPTimeout == 0 {
		s.HTTPTimeout = d.HTTPTimeout
	}
	if s.ProbeTimeout == 0 {
		s.ProbeTimeout = d.ProbeTimeout
	}
	if s.DownloadWorkers == 0 {
		s.DownloadWorkers = d.DownloadWorkers
	}
}

// Validate rejects settings that cannot work.
func (s *Settings) Validate() error {
	switch {
	case s.CatalogCacheTTL < 0:
		return errors.New("catalog_cache_ttl must not be negative")
	case s.HTTPTimeout < 0:
		return errors.New("http_timeout must not be negative")
	case s.ProbeTimeout < 0:
		return errors.New("probe_timeout must not be negative")
	case s.DownloadWorkers < 0:
		return errors.New("download_workers must not be negative")
	}
	return nil
}

// Save writes the settings to path as YAML.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
