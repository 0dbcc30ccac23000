// ingest_corpus.go
//
// This script ingests the unified verse record set into the verse store.
// Each record becomes two documents (original and translation role) with
// deterministic ids and embeddings from the configured embedding provider.
//
// Ingestion is a single-writer batch job and is expected to run exactly once
// per corpus: re-ingesting the same records fails on the primary key, since
// ids are recomputed identically.
//
// Environment variables:
//   POSTGRES_URI, EMBEDDING_PROVIDER, EMBEDDING_SERVICE_URL, ...
//   (see pkg/schema/config)
//
// Usage:
//   go run ./scripts/ingest -input data/nt_verses.json

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/koine-verse-search-api/internal/models"
	"github.com/koine-verse-search-api/internal/repository/postgres"
	schemaconfig "github.com/koine-verse-search-api/pkg/schema/config"
	"github.com/koine-verse-search-api/pkg/schema/db"
	pkgservices "github.com/koine-verse-search-api/pkg/schema/services"
)

const progressEvery = 100

func main() {
	inputPath := flag.String("input", "data/nt_verses.json", "Unified verse records JSON file")
	flag.Parse()

	godotenv.Load()

	records, err := loadRecords(*inputPath)
	if err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}
	log.Printf("Loaded %d verse records from %s", len(records), *inputPath)

	ctx := context.Background()
	if err := db.InitPostgres(ctx); err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	defer db.ClosePostgres()

	store := postgres.NewVerseStore(db.GetPostgres())
	embeddings := pkgservices.NewEmbeddingsService(schemaconfig.GetConfig())

	ingested, failed := 0, 0
	for i, rec := range records {
		if err := ingestRecord(ctx, store, embeddings, rec); err != nil {
			log.Printf("Warning: %s %d:%d: %v", rec.Libro, rec.Capitulo, rec.Versiculo, err)
			failed++
			continue
		}
		ingested++
		if (i+1)%progressEvery == 0 {
			log.Printf("Processed %d/%d records", i+1, len(records))
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count documents: %v", err)
	}
	log.Printf("Ingestion complete: %d records ingested, %d failed", ingested, failed)
	log.Printf("Total documents in store: %d (%d verse pairs)", count, count/2)
}

func loadRecords(path string) ([]models.IngestRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []models.IngestRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func ingestRecord(ctx context.Context, store *postgres.VerseStore, embeddings *pkgservices.EmbeddingsService, rec models.IngestRecord) error {
	vectors, err := embeddings.EmbedVerseBatch(ctx, []string{rec.Griego, rec.Espanol})
	if err != nil {
		return err
	}
	if len(vectors) != 2 {
		return fmt.Errorf("embedding provider returned %d vectors for 2 texts", len(vectors))
	}

	texts := map[models.LanguageRole]string{
		models.RoleOriginal:    rec.Griego,
		models.RoleTranslation: rec.Espanol,
	}
	for i, role := range models.Roles {
		doc := models.Document{
			ID:        models.DocumentID(rec.Libro, rec.Capitulo, rec.Versiculo, role),
			Text:      texts[role],
			Embedding: vectors[i],
			Metadata: models.DocumentMetadata{
				Book:    rec.Libro,
				Chapter: rec.Capitulo,
				Verse:   rec.Versiculo,
				Role:    role,
			},
		}
		if err := store.Add(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}
