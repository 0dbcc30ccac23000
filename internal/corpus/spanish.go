package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// spanishBook is one book entry of the whole-Bible translation JSON:
// chapters as arrays of verse strings.
type spanishBook struct {
	Abbrev   string     `json:"abbrev"`
	Name     string     `json:"name"`
	Chapters [][]string `json:"chapters"`
}

// ParseSpanishBible decodes the translation source and returns texts for the
// NT books only, keyed by canonical book name.
func ParseSpanishBible(data []byte) (map[string]BookText, error) {
	// The source file ships with a UTF-8 BOM.
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var bible []spanishBook
	if err := json.Unmarshal(data, &bible); err != nil {
		return nil, fmt.Errorf("decode translation source: %w", err)
	}

	books := make(map[string]BookText, len(SpanishBookIndices))
	for idx, bookName := range SpanishBookIndices {
		if idx >= len(bible) {
			continue
		}
		book := BookText{}
		for chapterIdx, chapterVerses := range bible[idx].Chapters {
			chapter := chapterIdx + 1
			book[chapter] = make(map[int]string, len(chapterVerses))
			for verseIdx, text := range chapterVerses {
				book[chapter][verseIdx+1] = strings.TrimSpace(text)
			}
		}
		books[bookName] = book
	}
	return books, nil
}

// LoadSpanishBooks reads and parses the translation source file.
func LoadSpanishBooks(path string) (map[string]BookText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseSpanishBible(data)
}
