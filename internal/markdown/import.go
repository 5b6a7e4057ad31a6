package markdown

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"journal/internal/ai"
	"journal/internal/store"
)

var (
	headingRE = regexp.MustCompile(`^## (.+)$`)
	summaryRE = regexp.MustCompile(`^> \*\*AI Summary \(mood (\d+)/10\)\*\*$`)
)

// ImportResult reports what an import actually did.
type ImportResult struct {
	// Added is the number of newly inserted entries.
	Added int
	// Duplicates is the number of records skipped because an entry
	// with the same timestamp already existed.
	Duplicates int
}

// Import parses a document produced by Export and inserts every record
// whose timestamp is not already present in the store. Duplicates are
// skipped silently, so importing the same file twice adds nothing the
// second time. Records parsed before a malformed region are still
// committed; the store is never rolled back mid-import.
func Import(st store.Store, path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	res := &ImportResult{}

	i := 0
	for i < len(lines) {
		m := headingRE.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}

		timestamp := strings.TrimSpace(m[1])
		i++ // past the heading
		if i < len(lines) && lines[i] == "" {
			i++ // blank line after heading
		}

		var textLines []string
		for i < len(lines) && !strings.HasPrefix(lines[i], "##") && !strings.HasPrefix(lines[i], ">") {
			textLines = append(textLines, unescapeLine(lines[i]))
			i++
		}
		text := strings.TrimSpace(strings.Join(trimRight(textLines), "\n"))

		var summary *string
		var mood *int
		if i < len(lines) {
			if sm := summaryRE.FindStringSubmatch(lines[i]); sm != nil {
				n, _ := strconv.Atoi(sm[1])
				n = ai.ClampMood(n)
				i++
				s := ""
				if i < len(lines) && strings.HasPrefix(lines[i], "> ") {
					s = strings.TrimSpace(lines[i][2:])
					i++
				}
				summary, mood = &s, &n
				// skip the rest of the block, if any
				for i < len(lines) && lines[i] != "" {
					i++
				}
			}
		}
		for i < len(lines) && lines[i] == "" {
			i++
		}

		exists, err := st.ExistsTimestamp(timestamp)
		if err != nil {
			return res, fmt.Errorf("import: %w", err)
		}
		if exists {
			res.Duplicates++
			continue
		}

		e := store.Entry{Timestamp: timestamp, Text: text, Summary: summary, Mood: mood}
		if _, err := st.Insert(e); err != nil {
			return res, fmt.Errorf("import %q: %w", timestamp, err)
		}
		res.Added++
	}

	return res, nil
}

func trimRight(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRight(l, " \t")
	}
	return out
}
