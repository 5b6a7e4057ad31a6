// Package server wires all journal components and creates the MCP
// server instance.
//
// This is the composition root: it builds the concrete store, the AI
// client, and the lifecycle manager, and injects them into the tool
// handlers. No business logic lives here — only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"journal/internal/ai"
	"journal/internal/config"
	"journal/internal/journal"
	"journal/internal/logging"
	"journal/internal/store"
	"journal/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all journal tools
// registered.
//
// The returned cleanup function closes the store and must be called on
// shutdown (typically via defer). It is always non-nil and safe to
// call even when New fails.
func New(cfg *config.Config, log logging.Logger) (*server.MCPServer, func(), error) {
	if log == nil {
		log = logging.Nop()
	}

	st, err := NewStore(cfg)
	if err != nil {
		return nil, noop, fmt.Errorf("opening store: %w", err)
	}
	cleanup := func() { _ = st.Close() }

	analyzer := ai.NewClient(ai.Config{
		BaseURL:         cfg.AI.BaseURL,
		APIKey:          cfg.AI.APIKey,
		Model:           cfg.AI.Model,
		TranscribeModel: cfg.AI.TranscribeModel,
		RequestTimeout:  cfg.AI.RequestTimeout,
	}, log)

	manager := journal.New(st, analyzer, log)

	s := server.NewMCPServer(
		"journal",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	writeTool := tools.NewWriteTool(manager)
	s.AddTool(writeTool.Definition(), writeTool.Handle)

	listTool := tools.NewListTool(manager)
	s.AddTool(listTool.Definition(), listTool.Handle)

	analyzeTool := tools.NewAnalyzeTool(manager)
	s.AddTool(analyzeTool.Definition(), analyzeTool.Handle)

	statsTool := tools.NewStatsTool(manager)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	exportTool := tools.NewExportTool(manager)
	s.AddTool(exportTool.Definition(), exportTool.Handle)

	importTool := tools.NewImportTool(manager)
	s.AddTool(importTool.Definition(), importTool.Handle)

	return s, cleanup, nil
}

// NewStore opens the persistence backend selected by the config.
func NewStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store {
	case "file":
		return store.NewFile(cfg.FilePath())
	default:
		return store.NewSQLite(cfg.DBPath())
	}
}

func noop() {}

func serverInstructions() string {
	return `This server is a personal journal. Save entries with journal_write,
browse them with journal_list, and run journal_analyze to attach an AI
summary and a 1-10 mood score to entries that do not have one yet.
journal_stats shows the mood trend; journal_export and journal_import
move the whole journal through a Markdown file, skipping entries that
already exist.`
}
