package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"journal/internal/journal"
)

// AnalyzeTool handles the journal_analyze MCP tool.
type AnalyzeTool struct {
	manager *journal.Manager
}

// NewAnalyzeTool creates an AnalyzeTool with the given lifecycle manager.
func NewAnalyzeTool(m *journal.Manager) *AnalyzeTool {
	return &AnalyzeTool{manager: m}
}

// Definition returns the MCP tool definition for journal_analyze.
func (t *AnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_analyze",
		mcp.WithDescription(
			"Run AI analysis over every journal entry that does not have a "+
				"summary yet. Each entry gets a 2-3 sentence summary and a mood "+
				"score from 1 to 10. Entries that fail are reported and left "+
				"unanalyzed so a later run can retry them.",
		),
	)
}

// Handle processes the journal_analyze tool call.
func (t *AnalyzeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.manager.AnalyzeAll(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %d entries.\n", len(res.Analyzed))
	if len(res.Failures) > 0 {
		fmt.Fprintf(&b, "\n%d entries failed:\n", len(res.Failures))
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "- entry #%d: %v\n", f.ID, f.Err)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
