// setup_schema.go
//
// This script creates the Postgres schema for the verse store: the pgvector
// extension, the verses table and its metadata index.
//
// Environment variables:
//   POSTGRES_URI          - PostgreSQL connection string
//   EMBEDDING_DIMENSIONS  - Vector column width (default: 384)
//
// Usage:
//   go run ./scripts/setup
//   go run ./scripts/setup -drop   (drop and recreate the table)

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	drop := flag.Bool("drop", false, "Drop the verses table before creating it")
	flag.Parse()

	godotenv.Load()

	postgresURI := os.Getenv("POSTGRES_URI")
	if postgresURI == "" {
		log.Fatal("POSTGRES_URI environment variable is required")
	}

	dimensions := 384
	if v := os.Getenv("EMBEDDING_DIMENSIONS"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 1 {
			log.Fatalf("Invalid EMBEDDING_DIMENSIONS: %q", v)
		}
		dimensions = d
	}

	ctx := context.Background()
	db, err := sqlx.ConnectContext(ctx, "postgres", postgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		log.Fatalf("Failed to create vector extension: %v", err)
	}

	if *drop {
		log.Println("Dropping verses table...")
		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS verses`); err != nil {
			log.Fatalf("Failed to drop verses table: %v", err)
		}
	}

	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS verses (
			id            TEXT PRIMARY KEY,
			book          TEXT NOT NULL,
			chapter       INT  NOT NULL CHECK (chapter >= 1),
			verse         INT  NOT NULL CHECK (verse >= 1),
			language_role TEXT NOT NULL CHECK (language_role IN ('original', 'translation')),
			text          TEXT NOT NULL CHECK (text <> ''),
			embedding     vector(%d)
		)`, dimensions)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create verses table: %v", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_verses_location
		ON verses (book, chapter, verse)
	`); err != nil {
		log.Fatalf("Failed to create location index: %v", err)
	}

	log.Printf("Schema ready (embedding dimensions: %d)", dimensions)
}
