// Package memory provides an in-process VerseStore using brute-force cosine
// distance. It backs local development and tests; the Postgres store is the
// persistent backend.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/koine-verse-search-api/internal/models"
	"github.com/koine-verse-search-api/internal/repository"
)

// VerseStore is a mutex-guarded in-memory implementation of
// repository.VerseStore.
type VerseStore struct {
	mu    sync.RWMutex
	docs  map[string]models.Document
	order []string // insertion order, keeps List and scans deterministic
}

var _ repository.VerseStore = (*VerseStore)(nil)

// NewVerseStore creates an empty in-memory verse store.
func NewVerseStore() *VerseStore {
	return &VerseStore{docs: make(map[string]models.Document)}
}

// GetByIDs returns the documents for the given ids; absent ids are omitted.
func (s *VerseStore) GetByIDs(ctx context.Context, ids []string) (map[string]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.Document, len(ids))
	for _, id := range ids {
		if doc, ok := s.docs[id]; ok {
			out[id] = doc
		}
	}
	return out, nil
}

// QueryByFilter returns all documents whose metadata matches the filter.
func (s *VerseStore) QueryByFilter(ctx context.Context, f repository.VerseFilter) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Document
	for _, id := range s.order {
		if doc := s.docs[id]; f.Matches(doc.Metadata) {
			out = append(out, doc)
		}
	}
	return out, nil
}

// QueryByVector scores every embedded document against vec by cosine distance
// and returns the k nearest, ascending. k is clamped to the store size.
func (s *VerseStore) QueryByVector(ctx context.Context, vec []float32, k int) ([]repository.ScoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if k < 1 {
		return []repository.ScoredDocument{}, nil
	}

	scored := make([]repository.ScoredDocument, 0, len(s.order))
	for _, id := range s.order {
		doc := s.docs[id]
		if len(doc.Embedding) == 0 {
			continue
		}
		scored = append(scored, repository.ScoredDocument{
			Metadata: doc.Metadata,
			Distance: cosineDistance(vec, doc.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Distance < scored[j].Distance
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// List returns every stored document in insertion order.
func (s *VerseStore) List(ctx context.Context) ([]models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.docs[id])
	}
	return out, nil
}

// Count returns the total number of stored documents.
func (s *VerseStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs), nil
}

// Add inserts a document; a duplicate id is an error.
func (s *VerseStore) Add(ctx context.Context, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[doc.ID]; exists {
		return fmt.Errorf("insert verse %s: id already exists", doc.ID)
	}
	s.docs[doc.ID] = doc
	s.order = append(s.order, doc.ID)
	return nil
}

// cosineDistance returns 1 - cosine similarity, matching pgvector's <=>
// operator so ordering agrees across backends.
func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
