// Package cmd contains the CLI commands for gotcha
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Global vars needed for cobra CLI
var (
	cfgFile string
	logger  *logrus.Logger
)

// rootCmd represents the base command
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rootCmd = &cobra.Command{
	Use:   "gotcha",
	Short: "Run a script and explain its errors in plain language",
	Long: `gotcha runs a fixed target script (test.py by default), catches whatever
error it produces and prints the raw message together with a plain-language
explanation of the likely cause. A clean run prints nothing.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./gotcha.yaml)")
	rootCmd.PersistentFlags().String("log-level", "error", "log level (debug, info, warn, error, fatal, panic)")

	// Initialize logger
	logger = logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "./gotcha.yaml"
	}

	// Set log level. Defaults to error so diagnoses stay the only output.
	logLevel, err := rootCmd.PersistentFlags().GetString("log-level")
	if err != nil {
		logLevel = "error"
	}
	level, parseErr := logrus.ParseLevel(logLevel)
	if parseErr != nil {
		logger.WithError(parseErr).Warn("Invalid log level, defaulting to error")
		level = logrus.ErrorLevel
	}
	logger.SetLevel(level)
}

// commandLogger builds the logger for service commands: level from the
// config file, overridden by an explicit --log-level flag.
func commandLogger(cmd *cobra.Command, logging string) (*logrus.Logger, error) {
	if cmd.Flags().Changed("log-level") {
		flagLevel, err := cmd.Flags().GetString("log-level")
		if err == nil {
			logging = flagLevel
		}
	}

	level, err := logrus.ParseLevel(logging)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(level)

	return log, nil
}
