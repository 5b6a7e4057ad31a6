package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"journal/internal/journal"
	"journal/internal/markdown"
)

// ExportTool handles the journal_export MCP tool.
type ExportTool struct {
	manager *journal.Manager
}

// NewExportTool creates an ExportTool with the given lifecycle manager.
func NewExportTool(m *journal.Manager) *ExportTool {
	return &ExportTool{manager: m}
}

// Definition returns the MCP tool definition for journal_export.
func (t *ExportTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_export",
		mcp.WithDescription(
			"Export all journal entries to a Markdown file. The file can be "+
				"re-imported later with journal_import; entries already present "+
				"are skipped by timestamp.",
		),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Destination path; a .md extension is added if missing"),
		),
	)
}

// Handle processes the journal_export tool call.
func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := strArg(req, "file", "")
	if path == "" {
		return mcp.NewToolResultError("'file' is required"), nil
	}
	path = EnsureMDExt(path)

	if err := markdown.Export(t.manager.Store(), path); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Exported journal to %s.", path)), nil
}

// EnsureMDExt appends .md to a path missing that extension.
func EnsureMDExt(path string) string {
	if strings.HasSuffix(path, ".md") {
		return path
	}
	return path + ".md"
}
