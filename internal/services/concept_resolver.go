package services

import (
	"context"
	"log"
	"strings"

	"github.com/koine-verse-search-api/internal/models"
	"github.com/koine-verse-search-api/internal/repository"
)

// minOverfetch is the floor of the nearest-neighbor over-fetch. Each logical
// pair occupies two documents and both roles may independently land near the
// query vector, so the raw neighbor list over-represents locations.
const minOverfetch = 20

// QueryEmbedder encodes free-text queries into the corpus vector space.
// *services.EmbeddingsService from pkg/schema satisfies it.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

// ConceptResolver answers semantic concept search over the verse corpus.
type ConceptResolver struct {
	store    repository.VerseStore
	embedder QueryEmbedder
	resolver *ReferenceResolver
}

// NewConceptResolver creates a concept resolver. Materialization of result
// pairs goes through the given reference resolver so concept search inherits
// the same completeness guarantee as exact lookup.
func NewConceptResolver(store repository.VerseStore, embedder QueryEmbedder, resolver *ReferenceResolver) *ConceptResolver {
	return &ConceptResolver{
		store:    store,
		embedder: embedder,
		resolver: resolver,
	}
}

// ResolveByConcept returns up to topK complete pairs ranked by semantic
// relevance to query, deduplicated across language roles and locations.
//
// Embedding or vector-query failure degrades to an empty result rather than
// an error: operators see the log line, users see no matches.
func (c *ConceptResolver) ResolveByConcept(ctx context.Context, query string, topK int) ([]models.VersePair, error) {
	query = strings.TrimSpace(query)
	if query == "" || topK < 1 {
		return []models.VersePair{}, nil
	}

	vec, err := c.embedder.EmbedQuery(ctx, query)
	if err != nil {
		log.Printf("concept search: embedding failed: %v", err)
		return []models.VersePair{}, nil
	}

	count, err := c.store.Count(ctx)
	if err != nil {
		log.Printf("concept search: store count failed: %v", err)
		return []models.VersePair{}, nil
	}

	n := 2 * topK
	if n < minOverfetch {
		n = minOverfetch
	}
	if n > count {
		n = count
	}
	if n < 1 {
		return []models.VersePair{}, nil
	}

	neighbors, err := c.store.QueryByVector(ctx, vec, n)
	if err != nil {
		log.Printf("concept search: vector query failed: %v", err)
		return []models.VersePair{}, nil
	}

	// Walk nearest-first; the first occurrence of a location fixes its rank,
	// later hits on the other language role or duplicate neighbors are
	// skipped.
	seen := make(map[models.Location]struct{}, topK)
	keys := make([]models.Location, 0, topK)
	for _, hit := range neighbors {
		loc := hit.Metadata.Location()
		if !loc.Valid() {
			continue
		}
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		keys = append(keys, loc)
		if len(keys) >= topK {
			break
		}
	}

	pairs := make([]models.VersePair, 0, len(keys))
	for _, loc := range keys {
		pair, err := c.resolver.Resolve(ctx, loc)
		if err != nil {
			// One-sided or vanished locations are dropped, never surfaced
			// as partial records.
			continue
		}
		pairs = append(pairs, *pair)
	}
	return pairs, nil
}
