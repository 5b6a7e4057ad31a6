package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"journal/internal/journal"
	"journal/internal/spark"
)

// StatsTool handles the journal_stats MCP tool.
type StatsTool struct {
	manager *journal.Manager
}

// NewStatsTool creates a StatsTool with the given lifecycle manager.
func NewStatsTool(m *journal.Manager) *StatsTool {
	return &StatsTool{manager: m}
}

// Definition returns the MCP tool definition for journal_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_stats",
		mcp.WithDescription(
			"Show mood statistics over all analyzed entries: count, average, "+
				"best, worst, and a sparkline of the mood trend.",
		),
	)
}

// Handle processes the journal_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := t.manager.ListAll()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read entries: %v", err)), nil
	}

	st := journal.Stats(entries)

	var b strings.Builder
	fmt.Fprintf(&b, "Entries: %d (%d analyzed)\n", st.Entries, st.Analyzed)
	if st.Analyzed > 0 {
		fmt.Fprintf(&b, "Average mood: %.1f\n", st.Average)
		fmt.Fprintf(&b, "Best: %d  Worst: %d\n", st.Best, st.Worst)
		fmt.Fprintf(&b, "Trend: %s\n", spark.Line(st.Moods))
	}
	return mcp.NewToolResultText(b.String()), nil
}
