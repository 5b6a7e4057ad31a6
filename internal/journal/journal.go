// Package journal owns the entry lifecycle: creating entries, editing
// their text, and driving AI analysis over the record store.
//
// An entry is either Unanalyzed (summary and mood nil) or Analyzed;
// the only transition is the atomic analysis update. Editing the text
// of an analyzed entry deliberately keeps the existing analysis — this
// is a product decision, not an oversight.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"journal/internal/ai"
	"journal/internal/logging"
	"journal/internal/store"
)

// ErrEmptyText rejects entries whose text is empty after trimming.
var ErrEmptyText = errors.New("entry text is empty")

// Manager orchestrates all entry operations. Construct one per
// process and inject it where needed; it holds the only store handle.
type Manager struct {
	store    store.Store
	analyzer ai.Analyzer
	log      logging.Logger

	// now is injected for deterministic timestamps in tests.
	now func() time.Time
}

// New creates a Manager. analyzer may be nil for flows that never
// analyze (AnalyzeAll then fails fast).
func New(st store.Store, analyzer ai.Analyzer, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		store:    st,
		analyzer: analyzer,
		log:      log,
		now:      time.Now,
	}
}

// Store exposes the underlying record store for the export and import
// engines, which operate on it directly.
func (m *Manager) Store() store.Store {
	return m.store
}

// Create inserts a new entry with the current local timestamp and no
// analysis. Whitespace-only text is rejected before touching the
// store.
func (m *Manager) Create(text string) (*store.Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	e := store.Entry{
		Timestamp: m.now().Format(time.RFC3339),
		Text:      text,
	}
	id, err := m.store.Insert(e)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	e.ID = id
	return &e, nil
}

// EditText replaces only the text of an entry. A prior analysis is
// kept as-is regardless of how much the text changed.
func (m *Manager) EditText(id int64, newText string) error {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return ErrEmptyText
	}
	return m.store.UpdateText(id, newText)
}

// ListAll returns every entry in id order, which matches chronological
// order under normal operation.
func (m *Manager) ListAll() ([]store.Entry, error) {
	return m.store.All()
}

// FindUnanalyzed returns the entries still waiting for analysis.
func (m *Manager) FindUnanalyzed() ([]store.Entry, error) {
	all, err := m.store.All()
	if err != nil {
		return nil, err
	}
	var pending []store.Entry
	for _, e := range all {
		if !e.Analyzed() {
			pending = append(pending, e)
		}
	}
	return pending, nil
}

// EntryFailure records one entry that could not be analyzed.
type EntryFailure struct {
	ID  int64
	Err error
}

// BatchResult reports the outcome of an analysis batch.
type BatchResult struct {
	Analyzed []int64
	Failures []EntryFailure
}

// AnalyzeAll analyzes every unanalyzed entry in ascending id order.
// A failure on one entry does not abort the batch: it is recorded and
// the loop moves on. Results are persisted atomically per entry,
// correlated strictly by id. Only context cancellation stops the run
// early.
func (m *Manager) AnalyzeAll(ctx context.Context) (*BatchResult, error) {
	if m.analyzer == nil {
		return nil, errors.New("no analyzer configured")
	}

	pending, err := m.FindUnanalyzed()
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for _, e := range pending {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		a, err := m.analyzer.Analyze(ctx, e.Text)
		if err != nil {
			m.log.Warn(ctx, "entry analysis failed", "id", e.ID, "err", err)
			result.Failures = append(result.Failures, EntryFailure{ID: e.ID, Err: err})
			continue
		}
		if err := m.store.UpdateAnalysis(e.ID, a.Summary, a.Mood); err != nil {
			m.log.Error(ctx, "persisting analysis failed", "id", e.ID, "err", err)
			result.Failures = append(result.Failures, EntryFailure{ID: e.ID, Err: err})
			continue
		}
		result.Analyzed = append(result.Analyzed, e.ID)
	}
	return result, nil
}
