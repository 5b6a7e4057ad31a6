package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"journal/internal/journal"
	"journal/internal/spark"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mood statistics and trend",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := a.manager.ListAll()
	if err != nil {
		return err
	}

	st := journal.Stats(entries)
	fmt.Printf("Entries:      %d (%d analyzed)\n", st.Entries, st.Analyzed)
	if st.Analyzed == 0 {
		fmt.Println("No analyzed entries yet — run 'journal analyze' first.")
		return nil
	}
	fmt.Printf("Average mood: %.1f\n", st.Average)
	fmt.Printf("Best:         %d\n", st.Best)
	fmt.Printf("Worst:        %d\n", st.Worst)
	fmt.Printf("Trend:        %s\n", spark.Line(st.Moods))
	return nil
}
