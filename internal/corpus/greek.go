package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// BookText maps chapter -> verse -> verse text for a single book.
type BookText map[int]map[int]string

// ParseMorphGNT reads one annotated-word file and reassembles verse texts.
// Each line carries a 6-digit BBCCVV code (book/chapter/verse), two
// morphology columns and the word columns; the first word token of the
// fourth field is the inflected surface form.
func ParseMorphGNT(r io.Reader) (BookText, error) {
	book := BookText{}

	var (
		currentChapter int
		currentVerse   int
		words          []string
	)
	flush := func() {
		if currentChapter < 1 || currentVerse < 1 {
			return
		}
		if book[currentChapter] == nil {
			book[currentChapter] = map[int]string{}
		}
		book[currentChapter][currentVerse] = strings.TrimSpace(strings.Join(words, " "))
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := splitFields(line, 4)
		if len(parts) < 4 {
			continue
		}

		code := parts[0]
		if len(code) != 6 || !allDigits(code) {
			continue
		}
		chapter, _ := strconv.Atoi(code[2:4])
		verse, _ := strconv.Atoi(code[4:6])

		wordFields := strings.Fields(parts[3])
		if len(wordFields) == 0 {
			continue
		}
		word := wordFields[0]

		if chapter != currentChapter || verse != currentVerse {
			flush()
			currentChapter = chapter
			currentVerse = verse
			words = []string{word}
		} else {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read morphgnt lines: %w", err)
	}
	flush()

	return book, nil
}

// LoadGreekBooks parses every known annotated-word file found in dir.
// Missing files are skipped: partial corpora are usable for testing.
func LoadGreekBooks(dir string) (map[string]BookText, error) {
	books := make(map[string]BookText)
	for filename, bookName := range GreekFileBooks {
		path := filepath.Join(dir, filename)
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("open %s: %w", path, err)
		}

		book, err := ParseMorphGNT(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}
		books[bookName] = book
	}
	return books, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// splitFields splits on any whitespace into at most n fields, the last field
// keeping its internal spacing collapsed.
func splitFields(line string, n int) []string {
	fields := strings.Fields(line)
	if len(fields) <= n {
		return fields
	}
	out := make([]string, n)
	copy(out, fields[:n-1])
	out[n-1] = strings.Join(fields[n-1:], " ")
	return out
}
