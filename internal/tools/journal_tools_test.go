package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"journal/internal/ai"
	"journal/internal/journal"
	"journal/internal/store"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

type stubAnalyzer struct {
	analysis ai.Analysis
	err      error
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ string) (ai.Analysis, error) {
	return s.analysis, s.err
}

// newTestManager creates a Manager over a temp SQLite store.
func newTestManager(t *testing.T, analyzer ai.Analyzer) *journal.Manager {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return journal.New(st, analyzer, nil)
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// ─── WriteTool Tests ─────────────────────────────────────────────────────────

func TestWriteTool_Definition(t *testing.T) {
	def := NewWriteTool(nil).Definition()

	if def.Name != "journal_write" {
		t.Errorf("tool name = %q, want %q", def.Name, "journal_write")
	}
	if _, ok := def.InputSchema.Properties["text"]; !ok {
		t.Error("missing 'text' parameter")
	}
}

func TestWriteTool_SavesEntry(t *testing.T) {
	m := newTestManager(t, nil)
	tool := NewWriteTool(m)

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"text": "Had a great day!",
	}))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(res))
	}
	if !strings.Contains(resultText(res), "Saved entry #1") {
		t.Errorf("result = %q, want saved confirmation", resultText(res))
	}

	all, err := m.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 || all[0].Text != "Had a great day!" {
		t.Errorf("stored entries = %+v", all)
	}
}

func TestWriteTool_RejectsEmptyText(t *testing.T) {
	m := newTestManager(t, nil)
	tool := NewWriteTool(m)

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"text": "   ",
	}))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if !res.IsError {
		t.Error("expected a tool-result error for empty text")
	}

	all, _ := m.ListAll()
	if len(all) != 0 {
		t.Errorf("store should stay empty, got %d entries", len(all))
	}
}

// ─── ListTool Tests ──────────────────────────────────────────────────────────

func TestListTool_Empty(t *testing.T) {
	tool := NewListTool(newTestManager(t, nil))

	res, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if got := resultText(res); got != "No entries found." {
		t.Errorf("result = %q", got)
	}
}

func TestListTool_Filters(t *testing.T) {
	m := newTestManager(t, nil)
	if _, err := m.Create("walk in the park"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Create("rainy commute"); err != nil {
		t.Fatal(err)
	}
	tool := NewListTool(m)

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"contains": "PARK",
	}))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	got := resultText(res)
	if !strings.Contains(got, "walk in the park") {
		t.Errorf("result missing matched entry: %q", got)
	}
	if strings.Contains(got, "rainy commute") {
		t.Errorf("result contains filtered-out entry: %q", got)
	}
}

func TestListTool_BadDate(t *testing.T) {
	tool := NewListTool(newTestManager(t, nil))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"from": "yesterday",
	}))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if !res.IsError {
		t.Error("expected a tool-result error for a bad date")
	}
}

// ─── AnalyzeTool Tests ───────────────────────────────────────────────────────

func TestAnalyzeTool_AnalyzesPending(t *testing.T) {
	m := newTestManager(t, &stubAnalyzer{analysis: ai.Analysis{Summary: "A positive day.", Mood: 9}})
	if _, err := m.Create("Had a great day!"); err != nil {
		t.Fatal(err)
	}
	tool := NewAnalyzeTool(m)

	res, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if !strings.Contains(resultText(res), "Analyzed 1 entries.") {
		t.Errorf("result = %q", resultText(res))
	}

	all, _ := m.ListAll()
	if all[0].Summary == nil || *all[0].Summary != "A positive day." {
		t.Errorf("summary not persisted: %+v", all[0])
	}
}

// ─── StatsTool Tests ─────────────────────────────────────────────────────────

func TestStatsTool_ReportsTrend(t *testing.T) {
	m := newTestManager(t, nil)
	e1, _ := m.Create("low")
	e2, _ := m.Create("high")
	_ = m.Store().UpdateAnalysis(e1.ID, "s1", 2)
	_ = m.Store().UpdateAnalysis(e2.ID, "s2", 9)
	tool := NewStatsTool(m)

	res, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	got := resultText(res)
	if !strings.Contains(got, "Entries: 2 (2 analyzed)") {
		t.Errorf("result = %q", got)
	}
	if !strings.Contains(got, "Trend: ▁█") {
		t.Errorf("missing sparkline in %q", got)
	}
}

// ─── Export / Import Tests ───────────────────────────────────────────────────

func TestExportImportTools_RoundTrip(t *testing.T) {
	src := newTestManager(t, nil)
	if _, err := src.Create("round trip me"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "journal")
	res, err := NewExportTool(src).Handle(context.Background(), makeReq(map[string]interface{}{
		"file": path,
	}))
	if err != nil {
		t.Fatalf("export Handle: %v", err)
	}
	if res.IsError {
		t.Fatalf("export error: %s", resultText(res))
	}
	if _, err := os.Stat(path + ".md"); err != nil {
		t.Fatalf("missing .md extension enforcement: %v", err)
	}

	dst := newTestManager(t, nil)
	res, err = NewImportTool(dst).Handle(context.Background(), makeReq(map[string]interface{}{
		"file": path + ".md",
	}))
	if err != nil {
		t.Fatalf("import Handle: %v", err)
	}
	if !strings.Contains(resultText(res), "Imported 1 new entries") {
		t.Errorf("result = %q", resultText(res))
	}

	all, _ := dst.ListAll()
	if len(all) != 1 || all[0].Text != "round trip me" {
		t.Errorf("imported entries = %+v", all)
	}
}

func TestImportTool_MissingFile(t *testing.T) {
	tool := NewImportTool(newTestManager(t, nil))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"file": filepath.Join(t.TempDir(), "nope.md"),
	}))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if !res.IsError {
		t.Error("expected a tool-result error for a missing file")
	}
}
