package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"journal/internal/journal"
)

var (
	listFrom       string
	listTo         string
	listContains   string
	listUnanalyzed bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long: `List entries in chronological order, newest last.

Examples:
  journal list
  journal list --from 2024-03-01 --to 2024-03-31
  journal list --contains park
  journal list --unanalyzed`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "Earliest date to include, YYYY-MM-DD (inclusive)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Latest date to include, YYYY-MM-DD (inclusive)")
	listCmd.Flags().StringVar(&listContains, "contains", "", "Case-insensitive substring filter")
	listCmd.Flags().BoolVar(&listUnanalyzed, "unanalyzed", false, "Only entries without an AI summary")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	opts := journal.FilterOptions{
		Substring:      listContains,
		OnlyUnanalyzed: listUnanalyzed,
	}
	var err error
	if opts.From, err = parseDateFlag(listFrom); err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	if opts.To, err = parseDateFlag(listTo); err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	all, err := a.manager.ListAll()
	if err != nil {
		return err
	}

	entries := journal.Filter(all, opts)
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("#%d  %s\n", e.ID, e.Timestamp)
		for _, line := range strings.Split(e.Text, "\n") {
			fmt.Printf("    %s\n", line)
		}
		if e.Analyzed() {
			fmt.Printf("    [mood %d/10] %s\n", *e.Mood, *e.Summary)
		}
		fmt.Println()
	}
	return nil
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
