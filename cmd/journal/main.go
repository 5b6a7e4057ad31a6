// journal: a personal AI journaling CLI and MCP server.
//
// Entries are plain text with a timestamp; an AI pass can attach a
// short summary and a 1-10 mood score to each. The journal exports to
// and re-imports from Markdown, skipping duplicates by timestamp.
//
// Usage:
//
//	journal write "Had a great day!"
//	journal analyze
//	journal stats
//	journal serve    # MCP server on stdio
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
