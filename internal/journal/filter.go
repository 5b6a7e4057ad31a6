package journal

import (
	"strings"
	"time"

	"journal/internal/store"
)

// FilterOptions narrows an entry snapshot. Zero values disable the
// corresponding predicate. The date range is inclusive on both ends
// and compares calendar dates only; time of day is ignored.
type FilterOptions struct {
	From           time.Time
	To             time.Time
	Substring      string
	OnlyUnanalyzed bool
}

// Filter applies the options to an in-memory snapshot. It is a pure
// function: the input slice is not modified.
func Filter(entries []store.Entry, opts FilterOptions) []store.Entry {
	needle := strings.ToLower(opts.Substring)

	var out []store.Entry
	for _, e := range entries {
		if opts.OnlyUnanalyzed && e.Analyzed() {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(e.Text), needle) {
			continue
		}
		if !opts.From.IsZero() || !opts.To.IsZero() {
			day, ok := entryDate(e.Timestamp)
			if !ok {
				continue
			}
			if !opts.From.IsZero() && day.Before(dateOnly(opts.From)) {
				continue
			}
			if !opts.To.IsZero() && day.After(dateOnly(opts.To)) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// entryDate extracts the calendar date from a stored timestamp.
// Imported timestamps are stored verbatim, so fall back to the leading
// YYYY-MM-DD when full RFC 3339 parsing fails.
func entryDate(ts string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return dateOnly(t), true
	}
	if len(ts) >= 10 {
		if t, err := time.Parse("2006-01-02", ts[:10]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
