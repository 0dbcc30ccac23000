package repository

import (
	"context"

	"github.com/koine-verse-search-api/internal/models"
)

// VerseFilter is an exact-match filter over the structured metadata fields.
type VerseFilter struct {
	Book    string
	Chapter int
	Verse   int
}

// Matches reports whether the metadata record satisfies the filter.
func (f VerseFilter) Matches(m models.DocumentMetadata) bool {
	return m.Book == f.Book && m.Chapter == f.Chapter && m.Verse == f.Verse
}

// ScoredDocument is a vector-query hit: metadata plus distance to the query
// vector. Text and embedding payloads are not carried at this stage.
type ScoredDocument struct {
	Metadata models.DocumentMetadata
	Distance float64
}

// VerseStore defines the storage operations the resolvers depend on.
//
// The store is append-mostly: Add runs during single-writer batch ingestion
// and everything else is a pure read.
type VerseStore interface {
	// GetByIDs returns the documents for the given ids. Absent ids are
	// omitted from the result, not reported as errors.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Document, error)

	// QueryByFilter returns all documents whose metadata exactly matches the
	// filter. An empty result is not an error.
	QueryByFilter(ctx context.Context, f VerseFilter) ([]models.Document, error)

	// QueryByVector returns the k nearest documents to vec, sorted by
	// ascending distance. k is clamped to the store's current size.
	QueryByVector(ctx context.Context, vec []float32, k int) ([]ScoredDocument, error)

	// List returns every stored document's metadata and text. It backs the
	// defensive client-side scan and the export tooling.
	List(ctx context.Context) ([]models.Document, error)

	// Count returns the total number of stored documents.
	Count(ctx context.Context) (int, error)

	// Add inserts a document. Inserting an id that already exists is an
	// error; ingestion assigns ids deterministically and runs once.
	Add(ctx context.Context, doc models.Document) error
}
