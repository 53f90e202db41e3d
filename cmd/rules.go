package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/edudebug/gotcha/pkg/rules"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rulesCmd represents the rules command group
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage and inspect classification rules",
	Long:  `Commands for listing the effective rule order and validating rule packs.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Keep rules commands quiet unless a level was asked for explicitly
		if !cmd.Flags().Changed("log-level") {
			logger.SetLevel(logrus.ErrorLevel)
		}
		return nil
	},
}

// rulesListCmd lists the effective rules in match order
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the effective rules in match order",
	Long: `List the rules the active pack applies to failure messages, in the order
they are tried. The final catch-all rule always matches.`,
	RunE: runRulesList,
}

// rulesValidateCmd validates all discovered rule packs
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate discovered rule packs",
	Long:  `Validate every discovered rule pack file, including extends relationships.`,
	RunE:  runRulesValidate,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// Load configuration
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	svc, err := rules.NewService(logger, &cfg.Rules)
	if err != nil {
		return err
	}

	if err := svc.Start(); err != nil {
		return err
	}

	// Print table
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tMATCH\tPATTERN\tEXPLANATION")
	for _, rule := range svc.EffectiveRules() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%q\t%s\n",
			rule.Name, rule.Match, rule.Pattern, rule.Explanation)
	}
	_ = w.Flush()

	return nil
}

func runRulesValidate(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// Load configuration
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	files, err := rules.DiscoverPacks(cfg.Rules.Paths)
	if err != nil {
		return err
	}

	packs := make(map[string]*rules.Pack)

	validCount := 0
	errorCount := 0

	for _, file := range files {
		pack, parseErr := rules.ParsePack(file.Content, file.FilePath)
		if parseErr != nil {
			fmt.Printf("✗ %s: %v\n", file.FilePath, parseErr)
			errorCount++

			continue
		}

		if validateErr := pack.Validate(); validateErr != nil {
			fmt.Printf("✗ %s: %v\n", file.FilePath, validateErr)
			errorCount++

			continue
		}

		if existing, exists := packs[pack.Name]; exists {
			fmt.Printf("✗ %s: %v: %s also defined in %s\n",
				file.FilePath, rules.ErrDuplicatePackName, pack.Name, existing.FilePath)
			errorCount++

			continue
		}

		packs[pack.Name] = pack

		fmt.Printf("✓ %s: valid\n", pack.Name)
		validCount++
	}

	// Extends relationships are only checkable across the whole set
	if _, resolveErr := rules.ResolveExtends(packs); resolveErr != nil {
		fmt.Printf("✗ extends: %v\n", resolveErr)
		errorCount++
	}

	// Summary
	fmt.Printf("\n%d valid, %d errors\n", validCount, errorCount)

	if errorCount > 0 {
		return fmt.Errorf("%w: %d errors", rules.ErrValidationFailed, errorCount)
	}

	return nil
}
