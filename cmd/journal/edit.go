package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id> <text>...",
	Short: "Replace the text of an existing entry",
	Long: `Replace the text of an entry by id. A summary and mood already
attached to the entry are kept as-is; re-run analysis only if you want
them refreshed.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry id %q", args[0])
	}

	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := a.manager.EditText(id, strings.Join(args[1:], " ")); err != nil {
		return err
	}

	fmt.Printf("Updated entry #%d.\n", id)
	return nil
}
