package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"journal/internal/journal"
)

// WriteTool handles the journal_write MCP tool.
type WriteTool struct {
	manager *journal.Manager
}

// NewWriteTool creates a WriteTool with the given lifecycle manager.
func NewWriteTool(m *journal.Manager) *WriteTool {
	return &WriteTool{manager: m}
}

// Definition returns the MCP tool definition for journal_write.
func (t *WriteTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_write",
		mcp.WithDescription(
			"Save a new journal entry. The entry is stored with the current "+
				"local timestamp and no analysis; run journal_analyze later to "+
				"attach an AI summary and mood score.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The journal entry body"),
		),
	)
}

// Handle processes the journal_write tool call.
func (t *WriteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := strArg(req, "text", "")

	e, err := t.manager.Create(text)
	if err != nil {
		if errors.Is(err, journal.ErrEmptyText) {
			return mcp.NewToolResultError("'text' must not be empty"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to save entry: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Saved entry #%d at %s.", e.ID, e.Timestamp)), nil
}
