// Package markdown serializes journal entries to a flat Markdown-like
// document and parses that document back. Export and Import share one
// grammar; a file is only guaranteed to round-trip through this
// package's own parser, not through a general Markdown renderer.
//
// Grammar, per entry in id order:
//
//	## <timestamp>
//
//	<text, possibly multi-line>
//
//	> **AI Summary (mood M/10)**
//	> <summary>
//
// The summary block is present only for analyzed entries. Lines of
// user text that would collide with the grammar (leading '#', '>' or
// '\') are escaped with a leading backslash at export time and
// unescaped on import.
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"journal/internal/store"
)

const title = "# AI Chat Journal Export"

// Export writes every entry to a UTF-8 document at path. The file is
// written to a temp file first and renamed into place, so a failed
// export never leaves a truncated file behind.
func Export(st store.Store, path string) error {
	entries, err := st.All()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	lines := []string{title, "", fmt.Sprintf("_Total entries: %d_", len(entries)), ""}
	for _, e := range entries {
		lines = append(lines, "## "+e.Timestamp, "")
		for _, l := range strings.Split(e.Text, "\n") {
			lines = append(lines, escapeLine(l))
		}
		lines = append(lines, "")
		if e.Analyzed() {
			lines = append(lines,
				fmt.Sprintf("> **AI Summary (mood %d/10)**", *e.Mood),
				"> "+*e.Summary,
				"")
		}
	}

	return writeFileAtomic(path, []byte(strings.Join(lines, "\n")))
}

// escapeLine protects user text lines that would otherwise be read as
// grammar: headings, summary blocks, or an escape already present.
func escapeLine(l string) string {
	if strings.HasPrefix(l, "#") || strings.HasPrefix(l, ">") || strings.HasPrefix(l, `\`) {
		return `\` + l
	}
	return l
}

// unescapeLine reverses escapeLine.
func unescapeLine(l string) string {
	if strings.HasPrefix(l, `\#`) || strings.HasPrefix(l, `\>`) || strings.HasPrefix(l, `\\`) {
		return l[1:]
	}
	return l
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
