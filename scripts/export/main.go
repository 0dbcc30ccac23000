// export_embeddings.go
//
// This script exports verse embeddings from PostgreSQL to a JSONL file
// formatted for Vertex AI Vector Search.
//
// Usage:
//   go run ./scripts/export -output embeddings.jsonl
//
// The output format is one JSON object per line:
//   {"id": "Juan_3_16_original", "embedding": [0.1, ...], "restricts": [{"namespace": "book", "allow": ["Juan"]}]}
//
// After running this script:
// 1. Upload the file to Cloud Storage:
//    gsutil cp embeddings.jsonl gs://YOUR_BUCKET/embeddings/
// 2. Create the Vertex AI index using the console, pointing at the bucket

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// DataPoint represents a single embedding for Vertex AI Vector Search
type DataPoint struct {
	ID        string     `json:"id"`
	Embedding []float32  `json:"embedding"`
	Restricts []Restrict `json:"restricts,omitempty"`
}

// Restrict defines a token-based filter
type Restrict struct {
	Namespace string   `json:"namespace"`
	Allow     []string `json:"allow"`
}

func main() {
	outputFile := flag.String("output", "embeddings.jsonl", "Output JSONL file path")
	flag.Parse()

	godotenv.Load()

	postgresURI := os.Getenv("POSTGRES_URI")
	if postgresURI == "" {
		log.Fatal("POSTGRES_URI environment variable is required")
	}

	ctx := context.Background()
	db, err := sqlx.ConnectContext(ctx, "postgres", postgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	rows, err := db.QueryxContext(ctx, `
		SELECT id, book, embedding::text AS embedding_text
		FROM verses
		WHERE embedding IS NOT NULL
		ORDER BY book, chapter, verse, language_role
	`)
	if err != nil {
		log.Fatalf("Failed to query verses: %v", err)
	}
	defer rows.Close()

	out, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	defer w.Flush()

	enc := json.NewEncoder(w)
	count := 0
	for rows.Next() {
		var id, book, embeddingText string
		if err := rows.Scan(&id, &book, &embeddingText); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}

		embedding, err := parseEmbedding(embeddingText)
		if err != nil {
			log.Printf("Warning: failed to parse embedding for %s: %v", id, err)
			continue
		}

		dp := DataPoint{
			ID:        id,
			Embedding: embedding,
			Restricts: []Restrict{{Namespace: "book", Allow: []string{book}}},
		}
		if err := enc.Encode(dp); err != nil {
			log.Fatalf("Failed to write datapoint: %v", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Error iterating rows: %v", err)
	}

	log.Printf("Exported %d embeddings to %s", count, *outputFile)
}

// parseEmbedding parses pgvector's text representation "[0.1,0.2,...]"
func parseEmbedding(text string) ([]float32, error) {
	text = strings.Trim(strings.TrimSpace(text), "[]")
	if text == "" {
		return nil, nil
	}
	parts := strings.Split(text, ",")
	embedding := make([]float32, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, err
		}
		embedding[i] = float32(v)
	}
	return embedding, nil
}
