package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. Where the original deployment had fixed
// behavior (cache TTL, trigger times, retention), the same values are the
// defaults here.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "trendwatch"

	// DefaultTrendingURL is the public page listing trending repositories.
	DefaultTrendingURL = "https://github.com/trending"

	// DefaultBaseURL is the origin used both for resolving relative
	// repository links and for the health probe.
	DefaultBaseURL = "https://github.com"

	// DefaultCacheTTL is the trending cache freshness window.
	DefaultCacheTTL = time.Hour

	// DefaultFetchTimeout bounds a trending page fetch. The page is
	// large and occasionally slow; 30 seconds is generous but finite.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultHealthTimeout bounds the reachability probe. Short on
	// purpose: the probe answers "is the origin up", not "fetch the page".
	DefaultHealthTimeout = 5 * time.Second

	// DefaultRetention is how many daily reports to keep on disk.
	DefaultRetention = 7

	// DefaultTimezone is the IANA zone the daily triggers fire in.
	DefaultTimezone = "Asia/Shanghai"

	// DefaultReportAt is the civil time of the daily report trigger.
	DefaultReportAt = "08:30"

	// DefaultReminderAt is the civil time of the daily reminder trigger.
	DefaultReminderAt = "09:30"

	// DefaultPort is the HTTP listen port.
	DefaultPort = 3000
)

// Config holds all configuration options for trendwatch.
// A single flat struct keeps the option count manageable; it is built
// once at startup and handed to components that need it.
type Config struct {
	// TrendingURL is the page to scrape.
	TrendingURL string

	// BaseURL is the origin for link resolution and health probing.
	BaseURL string

	// CacheTTL is the trending cache freshness window.
	CacheTTL time.Duration

	// FetchTimeout bounds each trending page fetch.
	FetchTimeout time.Duration

	// HealthTimeout bounds each reachability probe.
	HealthTimeout time.Duration

	// ReportDir is the directory holding generated report documents.
	// Defaults to the XDG data directory for trendwatch.
	ReportDir string

	// Retention is how many daily reports to keep when pruning.
	Retention int

	// Timezone is the IANA zone name the daily triggers are evaluated in.
	// The triggers fire at fixed local civil times, not UTC offsets.
	Timezone string

	// ReportAt is the daily report trigger time in HH:MM form.
	ReportAt string

	// ReminderAt is the daily reminder trigger time in HH:MM form.
	ReminderAt string

	// Port is the HTTP listen port for the serve command.
	Port int

	// Verbose enables debug-level log output.
	Verbose bool

	// ConfigFilePath is an explicit config file path. When empty, the
	// default locations are searched.
	ConfigFilePath string
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so relying on zero values would be error-prone; this also
// documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		TrendingURL:   DefaultTrendingURL,
		BaseURL:       DefaultBaseURL,
		CacheTTL:      DefaultCacheTTL,
		FetchTimeout:  DefaultFetchTimeout,
		HealthTimeout: DefaultHealthTimeout,
		ReportDir:     XDGReportDir(),
		Retention:     DefaultRetention,
		Timezone:      DefaultTimezone,
		ReportAt:      DefaultReportAt,
		ReminderAt:    DefaultReminderAt,
		Port:          DefaultPort,
	}
}

// XDGReportDir returns the default report directory following the XDG
// Base Directory Specification.
// On Linux: ~/.local/share/trendwatch/reports
// On macOS: ~/Library/Application Support/trendwatch/reports
func XDGReportDir() string {
	return filepath.Join(xdg.DataHome, AppName, "reports")
}

// Validate checks the configuration and returns the first problem found.
// Called once after flag and file loading, before any component starts.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if c.CacheTTL <= 0 {
		return ErrInvalidCacheTTL
	}
	if c.FetchTimeout <= 0 {
		return ErrInvalidFetchTimeout
	}
	if c.HealthTimeout <= 0 {
		return ErrInvalidHealthTimeout
	}
	if c.Retention <= 0 {
		return ErrInvalidRetention
	}
	if _, _, err := ParseClockTime(c.ReportAt); err != nil {
		return fmt.Errorf("report trigger: %w", err)
	}
	if _, _, err := ParseClockTime(c.ReminderAt); err != nil {
		return fmt.Errorf("reminder trigger: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timezone)
	}
	return nil
}

// Location resolves the configured time zone. Validate must have passed.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// ParseClockTime parses a civil time of day in "HH:MM" form.
func ParseClockTime(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	return hour, minute, nil
}
