package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a trending report once and exit",
		Long: `Generate fetches the current trending projects, renders a Markdown
report for today, saves it to the report directory, and prunes old
reports beyond the retention count.

If the fetch fails the report is built from cached or fallback data, so
this command only fails when the report cannot be written.

Examples:
  # Generate into the default report directory
  trendwatch generate

  # Generate into a specific directory keeping 14 reports
  trendwatch generate --reports-dir ./reports --retention 14`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	addCommonFlags(cmd)
	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	comps, err := buildComponents(cfg, logger)
	if err != nil {
		return err
	}

	if err := comps.sched.GenerateNow(context.Background()); err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s report generated in %s\n", green("✓"), comps.store.Dir())
	return nil
}
