package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"github.com/koine-verse-search-api/internal/models"
	"github.com/koine-verse-search-api/internal/repository"
)

// VerseStore implements repository.VerseStore on PostgreSQL with pgvector.
type VerseStore struct {
	db *sqlx.DB
}

var _ repository.VerseStore = (*VerseStore)(nil)

// NewVerseStore creates a PostgreSQL-backed verse store.
func NewVerseStore(db *sqlx.DB) *VerseStore {
	return &VerseStore{db: db}
}

// DB exposes the underlying handle for backends that delegate payload
// lookups to Postgres.
func (s *VerseStore) DB() *sqlx.DB {
	return s.db
}

type verseRow struct {
	ID      string `db:"id"`
	Book    string `db:"book"`
	Chapter int    `db:"chapter"`
	Verse   int    `db:"verse"`
	Role    string `db:"language_role"`
	Text    string `db:"text"`
}

func (r verseRow) document() models.Document {
	return models.Document{
		ID:   r.ID,
		Text: r.Text,
		Metadata: models.DocumentMetadata{
			Book:    r.Book,
			Chapter: r.Chapter,
			Verse:   r.Verse,
			Role:    models.LanguageRole(r.Role),
		},
	}
}

// GetByIDs returns the documents for the given ids; absent ids are omitted.
func (s *VerseStore) GetByIDs(ctx context.Context, ids []string) (map[string]models.Document, error) {
	if len(ids) == 0 {
		return map[string]models.Document{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, book, chapter, verse, language_role, text
		FROM verses
		WHERE id IN (?)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("build id lookup: %w", err)
	}
	query = s.db.Rebind(query)

	var rows []verseRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get verses by id: %w", err)
	}

	out := make(map[string]models.Document, len(rows))
	for _, r := range rows {
		out[r.ID] = r.document()
	}
	return out, nil
}

// QueryByFilter returns all documents matching the location filter exactly.
func (s *VerseStore) QueryByFilter(ctx context.Context, f repository.VerseFilter) ([]models.Document, error) {
	var rows []verseRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, book, chapter, verse, language_role, text
		FROM verses
		WHERE book = $1 AND chapter = $2 AND verse = $3
		ORDER BY language_role
	`, f.Book, f.Chapter, f.Verse)
	if err != nil {
		return nil, fmt.Errorf("filter verses: %w", err)
	}

	docs := make([]models.Document, len(rows))
	for i, r := range rows {
		docs[i] = r.document()
	}
	return docs, nil
}

// QueryByVector runs a cosine-distance nearest-neighbor query. Results carry
// metadata only, ordered nearest first. k is clamped to the store size by the
// LIMIT itself.
func (s *VerseStore) QueryByVector(ctx context.Context, vec []float32, k int) ([]repository.ScoredDocument, error) {
	if k < 1 {
		return []repository.ScoredDocument{}, nil
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT book, chapter, verse, language_role,
		       embedding <=> $1::vector AS distance
		FROM verses
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1::vector
		LIMIT $2
	`, pgvector.NewVector(vec), k)
	if err != nil {
		return nil, fmt.Errorf("vector search verses: %w", err)
	}
	defer rows.Close()

	var results []repository.ScoredDocument
	for rows.Next() {
		var (
			m        models.DocumentMetadata
			role     string
			distance float64
		)
		if err := rows.Scan(&m.Book, &m.Chapter, &m.Verse, &role, &distance); err != nil {
			return nil, fmt.Errorf("scan vector result: %w", err)
		}
		m.Role = models.LanguageRole(role)
		results = append(results, repository.ScoredDocument{Metadata: m, Distance: distance})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vector results: %w", err)
	}

	if results == nil {
		results = []repository.ScoredDocument{}
	}
	return results, nil
}

// List returns every stored document, used for the defensive client-side
// scan and the export script.
func (s *VerseStore) List(ctx context.Context) ([]models.Document, error) {
	var rows []verseRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, book, chapter, verse, language_role, text
		FROM verses
		ORDER BY book, chapter, verse, language_role
	`)
	if err != nil {
		return nil, fmt.Errorf("list verses: %w", err)
	}

	docs := make([]models.Document, len(rows))
	for i, r := range rows {
		docs[i] = r.document()
	}
	return docs, nil
}

// Count returns the total number of stored documents.
func (s *VerseStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM verses`); err != nil {
		return 0, fmt.Errorf("count verses: %w", err)
	}
	return n, nil
}

// Add inserts a document. A duplicate id violates the primary key and is
// surfaced as an error.
func (s *VerseStore) Add(ctx context.Context, doc models.Document) error {
	var embedding interface{}
	if len(doc.Embedding) > 0 {
		embedding = pgvector.NewVector(doc.Embedding)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO verses (id, book, chapter, verse, language_role, text, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, doc.ID, doc.Metadata.Book, doc.Metadata.Chapter, doc.Metadata.Verse,
		string(doc.Metadata.Role), doc.Text, embedding)
	if err != nil {
		return fmt.Errorf("insert verse %s: %w", doc.ID, err)
	}
	return nil
}
