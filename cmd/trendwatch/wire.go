package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nao1215/trendwatch/internal/config"
	"github.com/nao1215/trendwatch/internal/report"
	"github.com/nao1215/trendwatch/internal/scheduler"
	"github.com/nao1215/trendwatch/internal/trending"
)

// buildConfig assembles a Config from defaults, the optional YAML file,
// and CLI flags, in increasing order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly specified config file must exist; the default
	// locations are allowed to be absent.
	explicit := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := file.Apply(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("reports-dir") {
		if cfg.ReportDir, err = cmd.Flags().GetString("reports-dir"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timezone") {
		if cfg.Timezone, err = cmd.Flags().GetString("timezone"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("retention") {
		if cfg.Retention, err = cmd.Flags().GetInt("retention"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// addCommonFlags registers the flags shared by serve and generate.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .trendwatch in current or home directory)")
	cmd.Flags().StringP("reports-dir", "r", config.XDGReportDir(),
		"Directory for generated report documents")
	cmd.Flags().String("timezone", config.DefaultTimezone,
		"IANA time zone for the daily triggers")
	cmd.Flags().IntP("retention", "k", config.DefaultRetention,
		"Number of daily reports to keep when pruning")
}

// components holds the wired core pipeline.
type components struct {
	client *trending.Client
	guard  *trending.Guard
	store  *report.Store
	sched  *scheduler.Scheduler
}

// buildComponents constructs the core pipeline from a validated config.
func buildComponents(cfg *config.Config, logger *slog.Logger) (*components, error) {
	extractor, err := trending.NewExtractor(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	client := trending.NewClient(extractor,
		trending.WithTrendingURL(cfg.TrendingURL),
		trending.WithHealthURL(cfg.BaseURL),
		trending.WithFetchTimeout(cfg.FetchTimeout),
		trending.WithHealthTimeout(cfg.HealthTimeout),
	)
	guard := trending.NewGuard(client, logger, trending.WithTTL(cfg.CacheTTL))

	store, err := report.NewStore(cfg.ReportDir, logger)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	reportHour, reportMinute, err := config.ParseClockTime(cfg.ReportAt)
	if err != nil {
		return nil, err
	}
	remindHour, remindMinute, err := config.ParseClockTime(cfg.ReminderAt)
	if err != nil {
		return nil, err
	}

	sched := scheduler.New(guard, report.NewBuilder(), store, loc, logger,
		scheduler.WithReportAt(scheduler.ClockTime{Hour: reportHour, Minute: reportMinute}),
		scheduler.WithReminderAt(scheduler.ClockTime{Hour: remindHour, Minute: remindMinute}),
		scheduler.WithRetention(cfg.Retention),
	)

	return &components{
		client: client,
		guard:  guard,
		store:  store,
		sched:  sched,
	}, nil
}

// portFromEnv parses a PORT environment value, returning fallback when
// the value is empty or malformed.
func portFromEnv(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	port, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return port
}
