package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".trendwatch"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file schema. Every field is optional;
// zero values leave the corresponding Config default untouched.
type File struct {
	// TrendingURL overrides the scraped page URL.
	TrendingURL string `yaml:"trending_url"`

	// BaseURL overrides the link-resolution and health-probe origin.
	BaseURL string `yaml:"base_url"`

	// CacheTTL overrides the cache freshness window, as a Go duration
	// string such as "1h" or "30m".
	CacheTTL string `yaml:"cache_ttl"`

	// ReportDir overrides the report directory.
	ReportDir string `yaml:"report_dir"`

	// Retention overrides how many reports to keep.
	Retention int `yaml:"retention"`

	// Timezone overrides the scheduler time zone.
	Timezone string `yaml:"timezone"`

	// ReportAt overrides the daily report trigger time (HH:MM).
	ReportAt string `yaml:"report_at"`

	// ReminderAt overrides the daily reminder trigger time (HH:MM).
	ReminderAt string `yaml:"reminder_at"`

	// Port overrides the HTTP listen port.
	Port int `yaml:"port"`
}

// LoadConfigFile loads overrides from a YAML file. A missing file yields
// ErrConfigNotFound so callers can distinguish "no file" from a broken one.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Apply copies non-zero file values onto the Config. It returns an error
// only for values that cannot be interpreted at all (a malformed duration);
// range checks stay in Config.Validate.
func (f *File) Apply(c *Config) error {
	if f.TrendingURL != "" {
		c.TrendingURL = f.TrendingURL
	}
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.CacheTTL != "" {
		ttl, err := time.ParseDuration(f.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache_ttl %q: %w", f.CacheTTL, err)
		}
		c.CacheTTL = ttl
	}
	if f.ReportDir != "" {
		c.ReportDir = f.ReportDir
	}
	if f.Retention != 0 {
		c.Retention = f.Retention
	}
	if f.Timezone != "" {
		c.Timezone = f.Timezone
	}
	if f.ReportAt != "" {
		c.ReportAt = f.ReportAt
	}
	if f.ReminderAt != "" {
		c.ReminderAt = f.ReminderAt
	}
	if f.Port != 0 {
		c.Port = f.Port
	}
	return nil
}

// FindConfigFile searches for the configuration file:
//  1. the explicit path, when given
//  2. .trendwatch in the current directory
//  3. .trendwatch in the user's home directory
//
// Returns the path of the first file found, or "" when none exists.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
