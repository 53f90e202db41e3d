package cmd

import (
	"github.com/edudebug/gotcha/pkg/runner"
	"github.com/spf13/cobra"
)

// runCmd executes the target script once
//
//nolint:gochecknoglobals // Cobra commands are typically global
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the target script once and explain any failure",
	Long: `Run executes the configured target script. When the script fails, the
raw error message is printed together with a plain-language explanation of
the likely cause, and the command still exits 0: a broken script is the
expected input, not a tool failure. A clean run prints nothing.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
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

	return svc.Run(cmd.Context())
}
