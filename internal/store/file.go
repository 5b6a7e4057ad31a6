package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileDocument is the on-disk shape of the JSON backend: the entry
// list plus the next id to assign.
type fileDocument struct {
	NextID  int64   `json:"next_id"`
	Entries []Entry `json:"entries"`
}

// FileStore is the flat-file entry store. The whole journal lives in a
// single JSON document which is rewritten atomically on every mutation
// (temp file + rename). A mutex serializes access within the process.
type FileStore struct {
	path string

	mu  sync.Mutex
	doc fileDocument
}

// NewFile opens (or creates) the JSON journal at path. A missing file
// starts an empty journal; a malformed one is an error rather than a
// silent reset.
func NewFile(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}

	fs := &FileStore{path: path, doc: fileDocument{NextID: 1}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &fs.doc); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", path, err)
	}
	if fs.doc.NextID < 1 {
		fs.doc.NextID = 1
	}
	// Guard against documents written before next_id existed.
	for _, e := range fs.doc.Entries {
		if e.ID >= fs.doc.NextID {
			fs.doc.NextID = e.ID + 1
		}
	}
	return fs, nil
}

// Close is a no-op for the file backend; every mutation is already
// flushed to disk.
func (fs *FileStore) Close() error {
	return nil
}

// Insert persists a new entry and returns the assigned id.
func (fs *FileStore) Insert(e Entry) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	e.ID = fs.doc.NextID
	fs.doc.NextID++
	fs.doc.Entries = append(fs.doc.Entries, e)

	if err := fs.persist(); err != nil {
		// Roll back the in-memory change so a failed write leaves no
		// phantom entry.
		fs.doc.Entries = fs.doc.Entries[:len(fs.doc.Entries)-1]
		fs.doc.NextID--
		return 0, err
	}
	return e.ID, nil
}

// UpdateText replaces the text of an entry, leaving analysis untouched.
func (fs *FileStore) UpdateText(id int64, text string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	i := fs.index(id)
	if i < 0 {
		return fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	prev := fs.doc.Entries[i].Text
	fs.doc.Entries[i].Text = text
	if err := fs.persist(); err != nil {
		fs.doc.Entries[i].Text = prev
		return err
	}
	return nil
}

// UpdateAnalysis sets summary and mood together.
func (fs *FileStore) UpdateAnalysis(id int64, summary string, mood int) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	i := fs.index(id)
	if i < 0 {
		return fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	prevSummary, prevMood := fs.doc.Entries[i].Summary, fs.doc.Entries[i].Mood
	fs.doc.Entries[i].Summary = &summary
	fs.doc.Entries[i].Mood = &mood
	if err := fs.persist(); err != nil {
		fs.doc.Entries[i].Summary, fs.doc.Entries[i].Mood = prevSummary, prevMood
		return err
	}
	return nil
}

// Get retrieves a single entry by id.
func (fs *FileStore) Get(id int64) (*Entry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	i := fs.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	e := fs.doc.Entries[i]
	return &e, nil
}

// ExistsTimestamp reports whether an entry with the exact timestamp
// string exists.
func (fs *FileStore) ExistsTimestamp(timestamp string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for _, e := range fs.doc.Entries {
		if e.Timestamp == timestamp {
			return true, nil
		}
	}
	return false, nil
}

// All returns every entry ordered by id ascending.
func (fs *FileStore) All() ([]Entry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	out := make([]Entry, len(fs.doc.Entries))
	copy(out, fs.doc.Entries)
	return out, nil
}

// index returns the slice position of id, or -1. Entries are appended
// in id order so a linear scan is fine at journal scale.
func (fs *FileStore) index(id int64) int {
	for i, e := range fs.doc.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// persist rewrites the document atomically: write a temp file in the
// same directory, then rename over the target.
func (fs *FileStore) persist() error {
	data, err := json.MarshalIndent(fs.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	dir := filepath.Dir(fs.path)
	tmp, err := os.CreateTemp(dir, ".journal-*.tmp")
	if err != nil {
		return fmt.Errorf("store: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close temp: %w", err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: rename: %w", err)
	}
	return nil
}
