package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLiteStore is the database-backed entry store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the journal database at dbPath, applies
// pragmas, and runs migrations. The parent directory is created if
// needed.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT    NOT NULL,
			text      TEXT    NOT NULL,
			summary   TEXT,
			mood      INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Insert persists a new entry and returns the assigned id.
func (s *SQLiteStore) Insert(e Entry) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO entries (timestamp, text, summary, mood) VALUES (?, ?, ?, ?)`,
		e.Timestamp, e.Text, e.Summary, e.Mood,
	)
	if err != nil {
		return 0, fmt.Errorf("store: insert: %w", err)
	}
	return res.LastInsertId()
}

// UpdateText replaces the text of an entry, leaving analysis untouched.
func (s *SQLiteStore) UpdateText(id int64, text string) error {
	res, err := s.db.Exec(`UPDATE entries SET text = ? WHERE id = ?`, text, id)
	if err != nil {
		return fmt.Errorf("store: update text: %w", err)
	}
	return requireRow(res, id)
}

// UpdateAnalysis sets summary and mood in a single statement so the
// pair is always written together.
func (s *SQLiteStore) UpdateAnalysis(id int64, summary string, mood int) error {
	res, err := s.db.Exec(
		`UPDATE entries SET summary = ?, mood = ? WHERE id = ?`,
		summary, mood, id,
	)
	if err != nil {
		return fmt.Errorf("store: update analysis: %w", err)
	}
	return requireRow(res, id)
}

// Get retrieves a single entry by id.
func (s *SQLiteStore) Get(id int64) (*Entry, error) {
	row := s.db.QueryRow(
		`SELECT id, timestamp, text, summary, mood FROM entries WHERE id = ?`, id,
	)
	var e Entry
	if err := row.Scan(&e.ID, &e.Timestamp, &e.Text, &e.Summary, &e.Mood); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get %d: %w", id, err)
	}
	return &e, nil
}

// ExistsTimestamp reports whether an entry with the exact timestamp
// string exists.
func (s *SQLiteStore) ExistsTimestamp(timestamp string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM entries WHERE timestamp = ? LIMIT 1`, timestamp,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: exists: %w", err)
	}
	return true, nil
}

// All returns every entry ordered by id ascending.
func (s *SQLiteStore) All() ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, timestamp, text, summary, mood FROM entries ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: scan: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Text, &e.Summary, &e.Mood); err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	return nil
}
