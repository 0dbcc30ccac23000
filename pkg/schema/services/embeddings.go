package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/koine-verse-search-api/pkg/schema/config"
)

// EmbeddingsService is the process-wide handle to the embedding backend.
// The backend is expensive to construct, so it is built lazily on first use:
// concurrent first calls are single-flighted through sync.Once and observe
// exactly one instance (or the one cached construction error). Exact
// reference lookup never touches this service.
type EmbeddingsService struct {
	cfg *config.Config

	once     sync.Once
	embedder Embedder
	initErr  error
}

// NewEmbeddingsService creates an embeddings handle for the given config.
// The handle is injected into the components that need it rather than kept
// as a package global, so callers can substitute a fake in tests.
func NewEmbeddingsService(cfg *config.Config) *EmbeddingsService {
	return &EmbeddingsService{cfg: cfg}
}

// NewEmbeddingsServiceWith wraps an already-constructed embedder, bypassing
// lazy initialization. Used by tests and by callers that manage the backend
// lifecycle themselves.
func NewEmbeddingsServiceWith(embedder Embedder) *EmbeddingsService {
	s := &EmbeddingsService{}
	s.once.Do(func() { s.embedder = embedder })
	return s
}

func (s *EmbeddingsService) instance(ctx context.Context) (Embedder, error) {
	s.once.Do(func() {
		switch s.cfg.EmbeddingProvider {
		case "vertex":
			embedder, err := NewVertexEmbedder(ctx, s.cfg)
			if err != nil {
				s.initErr = fmt.Errorf("failed to create Vertex AI embedder: %w", err)
				return
			}
			s.embedder = embedder
		default:
			s.embedder = NewCustomEmbedder(s.cfg)
		}
	})
	if s.initErr != nil {
		return nil, s.initErr
	}
	return s.embedder, nil
}

// EmbedQuery embeds a query for retrieval
func (s *EmbeddingsService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	embedder, err := s.instance(ctx)
	if err != nil {
		return nil, err
	}
	return embedder.Embed(ctx, query, TaskTypeQuery)
}

// EmbedVerse embeds a verse text as a document for retrieval
func (s *EmbeddingsService) EmbedVerse(ctx context.Context, text string) ([]float32, error) {
	embedder, err := s.instance(ctx)
	if err != nil {
		return nil, err
	}
	return embedder.Embed(ctx, text, TaskTypeDocument)
}

// EmbedVerseBatch embeds verse texts as documents for retrieval
func (s *EmbeddingsService) EmbedVerseBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embedder, err := s.instance(ctx)
	if err != nil {
		return nil, err
	}
	return embedder.EmbedBatch(ctx, texts, TaskTypeDocument)
}
