package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"journal/internal/config"
	"journal/internal/logging"
	jserver "journal/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Expose the journal as an MCP server over stdio, for use from AI
tools. Add to the tool's MCP config:

  {
    "mcpServers": {
      "journal": {
        "command": "journal",
        "args": ["serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	// Logs go to stderr so they never interfere with the MCP stdio
	// transport on stdout.
	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	s, cleanup, err := jserver.New(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	return server.ServeStdio(s)
}
