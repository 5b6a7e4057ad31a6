package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"journal/internal/markdown"
	"journal/internal/tools"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all entries to a Markdown file",
	Long: `Write every entry to a Markdown file that 'journal import' can read
back. A .md extension is added if the given path lacks one.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	path := tools.EnsureMDExt(args[0])
	if err := markdown.Export(a.store, path); err != nil {
		return err
	}

	fmt.Printf("Exported journal to %s.\n", path)
	return nil
}
