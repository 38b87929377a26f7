package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nao1215/trendwatch/internal/report"
)

// NewReportsCmd creates the reports command.
func NewReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List stored reports or print one",
		Long: `Reports lists the stored report documents, newest first.

With --read, prints the content of one report instead.

Examples:
  # List stored reports
  trendwatch reports

  # Print one report
  trendwatch reports --read trending-2026-08-28.md`,
		Args: cobra.NoArgs,
		RunE: runReportsCmd,
	}

	addCommonFlags(cmd)
	cmd.Flags().String("read", "", "Print the content of the named report")
	return cmd
}

// runReportsCmd executes the reports command.
func runReportsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	store, err := report.NewStore(cfg.ReportDir, logger)
	if err != nil {
		return err
	}

	fileName, err := cmd.Flags().GetString("read")
	if err != nil {
		return err
	}
	if fileName != "" {
		content, err := store.Read(fileName)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	reports := store.List()
	if len(reports) == 0 {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%s no reports found in %s\n", yellow("!"), store.Dir())
		return nil
	}

	table := tablewriter.NewTable(cmd.OutOrStdout())
	table.Header([]string{"File", "Modified", "Size"})
	for _, r := range reports {
		_ = table.Append([]string{
			r.FileName,
			r.ModifiedAt.Format("2006-01-02 15:04:05"),
			strconv.FormatInt(r.Size, 10),
		})
	}
	_ = table.Render()
	return nil
}
