package services

import (
	"fmt"

	"github.com/koine-verse-search-api/internal/models"
)

// Section labels of the formatted context block. The layout is a stable
// contract with the generative backend's prompt and must not change shape.
const (
	labelBook        = "LIBRO:"
	labelChapter     = "CAPÍTULO:"
	labelVerse       = "VERSÍCULO:"
	labelOriginal    = "TEXTO ORIGINAL (Griego Koiné):"
	labelTranslation = "TRADUCCIÓN (Reina-Valera 1960):"
)

// FormatContext renders a pair into the fixed textual block handed to the
// generative backend. Pure function; no store or network access.
func FormatContext(pair models.VersePair) string {
	return fmt.Sprintf(`%s %s
%s %d
%s %d

%s
%s

%s
%s`,
		labelBook, pair.Book,
		labelChapter, pair.Chapter,
		labelVerse, pair.Verse,
		labelOriginal, pair.OriginalText,
		labelTranslation, pair.TranslationText,
	)
}
