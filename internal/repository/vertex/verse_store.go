// Package vertex implements the vector-query side of the verse store on
// Vertex AI Vector Search. Point lookups, filters and ingestion stay on
// Postgres; only nearest-neighbor queries go to the deployed index.
package vertex

import (
	"context"
	"fmt"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/api/option"

	"github.com/koine-verse-search-api/internal/repository"
	"github.com/koine-verse-search-api/internal/repository/postgres"
)

// Config holds Vertex AI Vector Search settings.
type Config struct {
	ProjectID            string
	Location             string // e.g. "us-central1"
	IndexEndpointID      string
	DeployedIndexID      string
	PublicEndpointDomain string // e.g. "123.us-central1-456.vdb.vertexai.goog"
}

// VerseStore delegates everything except QueryByVector to a Postgres store.
type VerseStore struct {
	*postgres.VerseStore

	config      Config
	matchClient *aiplatform.MatchClient
}

var _ repository.VerseStore = (*VerseStore)(nil)

// NewVerseStore creates a Vertex-backed verse store on top of the given
// Postgres store.
func NewVerseStore(ctx context.Context, config Config, pg *postgres.VerseStore) (*VerseStore, error) {
	var endpoint string
	if config.PublicEndpointDomain != "" {
		endpoint = fmt.Sprintf("%s:443", config.PublicEndpointDomain)
	} else {
		endpoint = fmt.Sprintf("%s-aiplatform.googleapis.com:443", config.Location)
	}

	matchClient, err := aiplatform.NewMatchClient(ctx, option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("create match client: %w", err)
	}

	return &VerseStore{
		VerseStore:  pg,
		config:      config,
		matchClient: matchClient,
	}, nil
}

// Close closes the Vertex AI client.
func (s *VerseStore) Close() error {
	if s.matchClient != nil {
		return s.matchClient.Close()
	}
	return nil
}

// QueryByVector queries the deployed index, then resolves the returned
// datapoint ids to metadata through Postgres, preserving neighbor order.
func (s *VerseStore) QueryByVector(ctx context.Context, vec []float32, k int) ([]repository.ScoredDocument, error) {
	if k < 1 {
		return []repository.ScoredDocument{}, nil
	}
	if n, err := s.VerseStore.Count(ctx); err == nil && k > n {
		k = n
	}

	indexEndpoint := fmt.Sprintf(
		"projects/%s/locations/%s/indexEndpoints/%s",
		s.config.ProjectID, s.config.Location, s.config.IndexEndpointID,
	)

	req := &aiplatformpb.FindNeighborsRequest{
		IndexEndpoint:   indexEndpoint,
		DeployedIndexId: s.config.DeployedIndexID,
		Queries: []*aiplatformpb.FindNeighborsRequest_Query{
			{
				Datapoint:     &aiplatformpb.IndexDatapoint{FeatureVector: vec},
				NeighborCount: int32(k),
			},
		},
	}

	resp, err := s.matchClient.FindNeighbors(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("find neighbors: %w", err)
	}

	if len(resp.NearestNeighbors) == 0 || len(resp.NearestNeighbors[0].Neighbors) == 0 {
		return []repository.ScoredDocument{}, nil
	}
	neighbors := resp.NearestNeighbors[0].Neighbors

	ids := make([]string, len(neighbors))
	for i, n := range neighbors {
		ids[i] = n.Datapoint.DatapointId
	}

	docs, err := s.VerseStore.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve neighbor metadata: %w", err)
	}

	results := make([]repository.ScoredDocument, 0, len(neighbors))
	for _, n := range neighbors {
		doc, ok := docs[n.Datapoint.DatapointId]
		if !ok {
			// Index entry with no row behind it; skip rather than fabricate
			// metadata.
			continue
		}
		results = append(results, repository.ScoredDocument{
			Metadata: doc.Metadata,
			Distance: float64(n.Distance),
		})
	}
	return results, nil
}
