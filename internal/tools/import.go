package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"journal/internal/journal"
	"journal/internal/markdown"
)

// ImportTool handles the journal_import MCP tool.
type ImportTool struct {
	manager *journal.Manager
}

// NewImportTool creates an ImportTool with the given lifecycle manager.
func NewImportTool(m *journal.Manager) *ImportTool {
	return &ImportTool{manager: m}
}

// Definition returns the MCP tool definition for journal_import.
func (t *ImportTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_import",
		mcp.WithDescription(
			"Import entries from a Markdown file produced by journal_export. "+
				"Entries whose timestamp already exists are skipped, so importing "+
				"the same file twice is safe.",
		),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the exported .md file"),
		),
	)
}

// Handle processes the journal_import tool call.
func (t *ImportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := strArg(req, "file", "")
	if path == "" {
		return mcp.NewToolResultError("'file' is required"), nil
	}

	res, err := markdown.Import(t.manager.Store(), path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("import failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Imported %d new entries (%d duplicates skipped).", res.Added, res.Duplicates)), nil
}
