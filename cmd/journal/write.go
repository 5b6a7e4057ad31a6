package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var writeCmd = &cobra.Command{
	Use:   "write <text>...",
	Short: "Save a new journal entry",
	Long: `Save a new journal entry with the current timestamp. All arguments are
joined into one entry body, so quoting is optional:

  journal write "Had a great day at the park."
  journal write Had a great day at the park.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrite,
}

func init() {
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	e, err := a.manager.Create(strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Printf("Saved entry #%d at %s.\n", e.ID, e.Timestamp)
	return nil
}
