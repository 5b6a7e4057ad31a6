package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"journal/internal/journal"
	"journal/internal/store"
)

// ListTool handles the journal_list MCP tool.
type ListTool struct {
	manager *journal.Manager
}

// NewListTool creates a ListTool with the given lifecycle manager.
func NewListTool(m *journal.Manager) *ListTool {
	return &ListTool{manager: m}
}

// Definition returns the MCP tool definition for journal_list.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_list",
		mcp.WithDescription(
			"List journal entries in chronological order, optionally filtered "+
				"by date range, text substring, or analysis state.",
		),
		mcp.WithString("from",
			mcp.Description("Earliest date to include, YYYY-MM-DD (inclusive)"),
		),
		mcp.WithString("to",
			mcp.Description("Latest date to include, YYYY-MM-DD (inclusive)"),
		),
		mcp.WithString("contains",
			mcp.Description("Case-insensitive substring the entry text must contain"),
		),
		mcp.WithBoolean("unanalyzed_only",
			mcp.Description("Only entries without an AI summary (default: false)"),
		),
	)
}

// Handle processes the journal_list tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := journal.FilterOptions{
		Substring:      strArg(req, "contains", ""),
		OnlyUnanalyzed: boolArg(req, "unanalyzed_only", false),
	}

	if s := strArg(req, "from", ""); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("'from' must be YYYY-MM-DD: %v", err)), nil
		}
		opts.From = d
	}
	if s := strArg(req, "to", ""); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("'to' must be YYYY-MM-DD: %v", err)), nil
		}
		opts.To = d
	}

	all, err := t.manager.ListAll()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list entries: %v", err)), nil
	}

	entries := journal.Filter(all, opts)
	return mcp.NewToolResultText(formatEntries(entries)), nil
}

// formatEntries renders entries as readable markdown.
func formatEntries(entries []store.Entry) string {
	if len(entries) == 0 {
		return "No entries found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Journal (%d entries)\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "## #%d — %s\n\n%s\n\n", e.ID, e.Timestamp, e.Text)
		if e.Analyzed() {
			fmt.Fprintf(&b, "**Mood %d/10** — %s\n\n", *e.Mood, *e.Summary)
		}
	}
	return b.String()
}
