package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/edudebug/gotcha/pkg/runner"
	"github.com/edudebug/gotcha/pkg/watch"
	"github.com/spf13/cobra"
)

// watchCmd reruns the target script on every change
//
//nolint:gochecknoglobals // Cobra commands are typically global
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rerun the target script whenever it changes",
	Long: `Watch runs the target script, then reruns it each time the file is saved,
printing a fresh diagnosis for every failing run. An optional schedule
(watch.interval) also reruns it periodically. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// Load configuration
	config, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	log, err := commandLogger(cmd, config.Logging)
	if err != nil {
		return err
	}

	svc, err := runner.NewService(log, config)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := svc.Close(); closeErr != nil {
			log.WithError(closeErr).Error("Failed to close runner")
		}
	}()

	watcher, err := watch.NewService(log, &config.Watch, svc.Target(), svc)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	// First diagnosis shouldn't wait for a save
	if err := svc.Run(ctx); err != nil {
		return err
	}

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	return watcher.Stop()
}
