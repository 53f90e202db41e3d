package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/edudebug/gotcha/pkg/history"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Command flags need to be global for cobra
var (
	historyLimit int
)

// historyCmd represents the history command group
//
//nolint:gochecknoglobals // Cobra commands are typically global
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded runs",
	Long: `Commands for browsing the local run history. Recording is off by default;
enable it with history.enabled in the config file.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Keep history commands quiet unless a level was asked for explicitly
		if !cmd.Flags().Changed("log-level") {
			logger.SetLevel(logrus.ErrorLevel)
		}
		return nil
	},
}

// historyListCmd lists recent runs
//
//nolint:gochecknoglobals // Cobra commands are typically global
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE:  runHistoryList,
}

// historyStatsCmd summarizes recorded runs
//
//nolint:gochecknoglobals // Cobra commands are typically global
var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded runs and the rules that explained failures",
	RunE:  runHistoryStats,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)

	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list")
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// Load configuration
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.WithError(closeErr).Error("Failed to close history store")
		}
	}()

	ctx := context.Background()

	runs, err := store.List(ctx, historyLimit)
	if err != nil {
		return err
	}

	// Print table
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "WHEN\tENGINE\tOUTCOME\tRULE\tEXIT\tMESSAGE")
	for i := range runs {
		run := &runs[i]

		rule := run.Rule
		if rule == "" {
			rule = "-"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			run.CreatedAt.Local().Format(time.DateTime), run.Engine, run.Outcome,
			rule, run.ExitCode, truncateMessage(run.Message, 60))
	}
	_ = w.Flush()

	return nil
}

func runHistoryStats(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// Load configuration
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.WithError(closeErr).Error("Failed to close history store")
		}
	}()

	ctx := context.Background()

	stats, err := store.GetStats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Total runs: %d\n", stats.Total)
	fmt.Printf("Successes:  %d\n", stats.Successes)
	fmt.Printf("Failures:   %d\n", stats.Failures)

	if len(stats.ByRule) == 0 {
		return nil
	}

	fmt.Println("\nFailures by rule:")

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RULE\tCOUNT")
	for _, rc := range stats.ByRule {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", rc.Rule, rc.Count)
	}
	_ = w.Flush()

	return nil
}

func truncateMessage(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	return s[:maxLen-3] + "..."
}
