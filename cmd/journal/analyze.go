package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Attach AI summaries and mood scores to pending entries",
	Long: `Run AI analysis over every entry that does not have a summary yet.
Entries that fail are reported and stay pending, so a later run can
retry them.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := a.manager.AnalyzeAll(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Analyzed %d entries.\n", len(res.Analyzed))
	if len(res.Failures) > 0 {
		fmt.Printf("%d entries failed:\n", len(res.Failures))
		for _, f := range res.Failures {
			fmt.Printf("  entry #%d: %v\n", f.ID, f.Err)
		}
		return fmt.Errorf("%d entries could not be analyzed", len(res.Failures))
	}
	return nil
}
