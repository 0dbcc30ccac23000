package models

import (
	"errors"
	"fmt"
)

// ErrVerseNotFound is returned when no complete bilingual pair exists for a
// location. It marks a normal miss, not a fault.
var ErrVerseNotFound = errors.New("verse not found")

// LanguageRole identifies which side of a bilingual pair a document holds.
type LanguageRole string

const (
	RoleOriginal    LanguageRole = "original"    // Koine Greek source text
	RoleTranslation LanguageRole = "translation" // Reina-Valera 1960 Spanish
)

// Roles lists both language roles in storage order.
var Roles = []LanguageRole{RoleOriginal, RoleTranslation}

// Location identifies a verse by book display name, chapter and verse number.
type Location struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s %d:%d", l.Book, l.Chapter, l.Verse)
}

// Valid reports whether the location carries all three fields.
func (l Location) Valid() bool {
	return l.Book != "" && l.Chapter >= 1 && l.Verse >= 1
}

// DocumentMetadata is the fixed metadata record stored with every document.
// Chapter and verse are integers so stores can filter numerically.
type DocumentMetadata struct {
	Book    string       `json:"book" db:"book"`
	Chapter int          `json:"chapter" db:"chapter"`
	Verse   int          `json:"verse" db:"verse"`
	Role    LanguageRole `json:"language_role" db:"language_role"`
}

// Location returns the canonical location key of the metadata.
func (m DocumentMetadata) Location() Location {
	return Location{Book: m.Book, Chapter: m.Chapter, Verse: m.Verse}
}

// Document is one stored (verse, language) entry.
type Document struct {
	ID        string           `json:"id" db:"id"`
	Text      string           `json:"text" db:"text"`
	Embedding []float32        `json:"-" db:"-"`
	Metadata  DocumentMetadata `json:"metadata"`
}

// DocumentID derives the deterministic store id for a location and role.
// Chapter and verse are bare integers and role names are fixed tokens, so the
// underscore-joined tuple is collision-free over the canonical book names.
func DocumentID(book string, chapter, verse int, role LanguageRole) string {
	return fmt.Sprintf("%s_%d_%d_%s", book, chapter, verse, role)
}

// PairIDs returns the two document ids a complete pair occupies.
func PairIDs(loc Location) (original, translation string) {
	original = DocumentID(loc.Book, loc.Chapter, loc.Verse, RoleOriginal)
	translation = DocumentID(loc.Book, loc.Chapter, loc.Verse, RoleTranslation)
	return
}

// VersePair is the retrievable unit: one location with both language texts.
// A pair is complete iff both texts are non-empty; incomplete pairs are never
// returned by the resolvers.
type VersePair struct {
	Book            string `json:"book"`
	Chapter         int    `json:"chapter"`
	Verse           int    `json:"verse"`
	OriginalText    string `json:"original_text"`
	TranslationText string `json:"translation_text"`
}

// Location returns the pair's location key.
func (p VersePair) Location() Location {
	return Location{Book: p.Book, Chapter: p.Chapter, Verse: p.Verse}
}

// Complete reports whether both language texts are present.
func (p VersePair) Complete() bool {
	return p.OriginalText != "" && p.TranslationText != ""
}

// ConceptSearchRequest is the request for semantic concept search.
type ConceptSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// ConceptSearchResponse is the response for semantic concept search.
type ConceptSearchResponse struct {
	Query   string      `json:"query"`
	Results []VersePair `json:"results"`
}

// CompareRequest asks for a verse plus its linguistic comparison.
type CompareRequest struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

// CompareResponse carries the resolved pair and, when the generative backend
// is reachable, its comparison text. The pair stands alone: AnalysisError is
// set instead of failing the request when generation is unavailable.
type CompareResponse struct {
	Verse         VersePair `json:"verse"`
	Analysis      string    `json:"analysis,omitempty"`
	AnalysisError string    `json:"analysis_error,omitempty"`
}

// IngestRecord is one record of the unified ingestion input. Field names
// follow the corpus assembly output.
type IngestRecord struct {
	Libro     string `json:"libro"`
	Capitulo  int    `json:"capitulo"`
	Versiculo int    `json:"versiculo"`
	Griego    string `json:"griego"`
	Espanol   string `json:"espanol"`
}
