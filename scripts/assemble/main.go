// assemble_corpus.go
//
// This script merges the two source corpora into the unified ingestion
// record set:
//   - the Reina-Valera 1960 translation (one whole-Bible JSON file, NT books
//     at indices 39-65)
//   - the Koine Greek annotated-word files (one per book, BBCCVV-coded lines)
//
// Usage:
//   go run ./scripts/assemble -spanish data/es_rvr/es_rvr.json -greek data/greek_nt -output data/nt_verses.json

package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/koine-verse-search-api/internal/corpus"
)

func main() {
	spanishPath := flag.String("spanish", "data/es_rvr/es_rvr.json", "Translation source JSON file")
	greekDir := flag.String("greek", "data/greek_nt", "Directory with annotated Greek word files")
	outputPath := flag.String("output", "data/nt_verses.json", "Output JSON file")
	flag.Parse()

	godotenv.Load()

	spanish, err := corpus.LoadSpanishBooks(*spanishPath)
	if err != nil {
		log.Fatalf("Failed to load translation source: %v", err)
	}
	log.Printf("Loaded %d translation books", len(spanish))

	greek, err := corpus.LoadGreekBooks(*greekDir)
	if err != nil {
		log.Fatalf("Failed to load Greek source: %v", err)
	}
	log.Printf("Loaded %d Greek books", len(greek))

	records := corpus.Assemble(greek, spanish)
	if len(records) == 0 {
		log.Fatal("Assembly produced no records; check source paths")
	}

	out, err := os.Create(*outputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		log.Fatalf("Failed to write records: %v", err)
	}

	books := map[string]bool{}
	for _, r := range records {
		books[r.Libro] = true
	}
	log.Printf("Wrote %d verse records across %d books to %s", len(records), len(books), *outputPath)
}
