// Package store implements the persistent entry store for the journal.
//
// Two backends are provided: a SQLite database (the default) and a
// flat JSON file. Both satisfy the Store interface and are selected by
// configuration; callers never depend on a concrete backend.
package store

import "errors"

// ErrNotFound is returned by updates and lookups referencing an id
// that does not exist in the store.
var ErrNotFound = errors.New("entry not found")

// Entry is a single journal record. Summary and Mood are nil until the
// entry has been analyzed; they are always set together.
type Entry struct {
	ID        int64   `json:"id"`
	Timestamp string  `json:"timestamp"`
	Text      string  `json:"text"`
	Summary   *string `json:"summary,omitempty"`
	Mood      *int    `json:"mood,omitempty"`
}

// Analyzed reports whether the entry carries an AI analysis.
func (e Entry) Analyzed() bool {
	return e.Summary != nil
}

// Store is the persistence boundary for journal entries.
//
// Implementations must assign ids monotonically on Insert, keep
// timestamp and text non-null, and tolerate concurrent use from a
// single process. There is no delete operation.
type Store interface {
	// Insert persists a new entry and returns its assigned id.
	// The ID field of the argument is ignored.
	Insert(e Entry) (int64, error)

	// UpdateText replaces only the text of an entry. Summary and mood
	// are left untouched whatever their current value.
	UpdateText(id int64, text string) error

	// UpdateAnalysis sets summary and mood atomically. The pair is
	// never written independently.
	UpdateAnalysis(id int64, summary string, mood int) error

	// Get returns a single entry by id.
	Get(id int64) (*Entry, error)

	// ExistsTimestamp reports whether any entry carries the exact
	// timestamp string. Used by import deduplication.
	ExistsTimestamp(timestamp string) (bool, error)

	// All returns every entry ordered by id ascending.
	All() ([]Entry, error)

	Close() error
}
