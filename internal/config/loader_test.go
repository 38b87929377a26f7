package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "trendwatch.yaml")
		content := `trending_url: https://example.com/trending
cache_ttl: 30m
retention: 14
timezone: UTC
report_at: "07:00"
port: 8080
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if f.TrendingURL != "https://example.com/trending" {
			t.Errorf("TrendingURL = %q, want the file value", f.TrendingURL)
		}
		if f.CacheTTL != "30m" {
			t.Errorf("CacheTTL = %q, want 30m", f.CacheTTL)
		}
		if f.Retention != 14 {
			t.Errorf("Retention = %d, want 14", f.Retention)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfigFile() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("broken yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "broken.yaml")
		if err := os.WriteFile(path, []byte("port: [not a number"), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("LoadConfigFile() error = nil, want parse error")
		}
	})
}

func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("non-zero values override", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		f := &File{
			CacheTTL:  "45m",
			Retention: 3,
			Timezone:  "UTC",
			Port:      8080,
		}
		if err := f.Apply(cfg); err != nil {
			t.Fatal(err)
		}
		if cfg.CacheTTL != 45*time.Minute {
			t.Errorf("CacheTTL = %v, want 45m", cfg.CacheTTL)
		}
		if cfg.Retention != 3 {
			t.Errorf("Retention = %d, want 3", cfg.Retention)
		}
		if cfg.Timezone != "UTC" {
			t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
		}
		if cfg.Port != 8080 {
			t.Errorf("Port = %d, want 8080", cfg.Port)
		}
	})

	t.Run("zero values keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := (&File{}).Apply(cfg); err != nil {
			t.Fatal(err)
		}
		if cfg.CacheTTL != DefaultCacheTTL {
			t.Errorf("CacheTTL = %v, want default %v", cfg.CacheTTL, DefaultCacheTTL)
		}
		if cfg.Timezone != DefaultTimezone {
			t.Errorf("Timezone = %q, want default %q", cfg.Timezone, DefaultTimezone)
		}
		if cfg.Port != DefaultPort {
			t.Errorf("Port = %d, want default %d", cfg.Port, DefaultPort)
		}
	})

	t.Run("malformed duration is an error", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := (&File{CacheTTL: "soon"}).Apply(cfg); err == nil {
			t.Error("Apply() error = nil, want duration parse error")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("port: 8080\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("explicit missing path yields nothing", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "absent")); got != "" {
			t.Errorf("FindConfigFile() = %q, want empty", got)
		}
	})
}
