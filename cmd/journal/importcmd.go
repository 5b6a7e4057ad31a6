package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"journal/internal/markdown"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import entries from an exported Markdown file",
	Long: `Parse a Markdown file produced by 'journal export' and insert its
entries. Entries whose timestamp already exists are skipped, so
importing the same file twice adds nothing the second time.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := markdown.Import(a.store, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d new entries (%d duplicates skipped).\n", res.Added, res.Duplicates)
	return nil
}
