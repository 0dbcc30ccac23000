package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koine-verse-search-api/internal/models"
	"github.com/koine-verse-search-api/internal/repository"
)

func doc(book string, chapter, verse int, role models.LanguageRole, text string, vec []float32) models.Document {
	return models.Document{
		ID:        models.DocumentID(book, chapter, verse, role),
		Text:      text,
		Embedding: vec,
		Metadata: models.DocumentMetadata{
			Book: book, Chapter: chapter, Verse: verse, Role: role,
		},
	}
}

func TestVerseStore_GetByIDs(t *testing.T) {
	store := NewVerseStore()
	ctx := context.Background()

	d := doc("Juan", 1, 1, models.RoleOriginal, "Ἐν ἀρχῇ ἦν ὁ λόγος", nil)
	require.NoError(t, store.Add(ctx, d))

	got, err := store.GetByIDs(ctx, []string{d.ID, "Juan_1_2_original"})
	require.NoError(t, err)

	// Absent ids are omitted, not errors.
	require.Len(t, got, 1)
	assert.Equal(t, d.Text, got[d.ID].Text)
	assert.Equal(t, "Juan", got[d.ID].Metadata.Book)
}

func TestVerseStore_DuplicateAddFails(t *testing.T) {
	store := NewVerseStore()
	ctx := context.Background()

	d := doc("Juan", 1, 1, models.RoleOriginal, "Ἐν ἀρχῇ ἦν ὁ λόγος", nil)
	require.NoError(t, store.Add(ctx, d))
	assert.Error(t, store.Add(ctx, d))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestVerseStore_QueryByFilter(t *testing.T) {
	store := NewVerseStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, doc("Juan", 1, 1, models.RoleOriginal, "griego", nil)))
	require.NoError(t, store.Add(ctx, doc("Juan", 1, 1, models.RoleTranslation, "español", nil)))
	require.NoError(t, store.Add(ctx, doc("Juan", 1, 2, models.RoleOriginal, "otro", nil)))

	got, err := store.QueryByFilter(ctx, repository.VerseFilter{Book: "Juan", Chapter: 1, Verse: 1})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.QueryByFilter(ctx, repository.VerseFilter{Book: "Marcos", Chapter: 1, Verse: 1})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVerseStore_QueryByVectorOrdering(t *testing.T) {
	store := NewVerseStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, doc("Mateo", 1, 1, models.RoleOriginal, "a", []float32{0, 1, 0})))
	require.NoError(t, store.Add(ctx, doc("Marcos", 1, 1, models.RoleOriginal, "b", []float32{1, 0, 0})))
	require.NoError(t, store.Add(ctx, doc("Lucas", 1, 1, models.RoleOriginal, "c", []float32{0.7, 0.7, 0})))

	got, err := store.QueryByVector(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Marcos", got[0].Metadata.Book)
	assert.Equal(t, "Lucas", got[1].Metadata.Book)
	assert.Equal(t, "Mateo", got[2].Metadata.Book)
	assert.Less(t, got[0].Distance, got[1].Distance)
	assert.Less(t, got[1].Distance, got[2].Distance)
}

func TestVerseStore_QueryByVectorClampsK(t *testing.T) {
	store := NewVerseStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, doc("Mateo", 1, 1, models.RoleOriginal, "a", []float32{1, 0, 0})))

	got, err := store.QueryByVector(ctx, []float32{1, 0, 0}, 50)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = store.QueryByVector(ctx, []float32{1, 0, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVerseStore_QueryByVectorSkipsUnembedded(t *testing.T) {
	store := NewVerseStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, doc("Mateo", 1, 1, models.RoleOriginal, "a", nil)))
	require.NoError(t, store.Add(ctx, doc("Marcos", 1, 1, models.RoleOriginal, "b", []float32{1, 0, 0})))

	got, err := store.QueryByVector(ctx, []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Marcos", got[0].Metadata.Book)
}

func TestVerseStore_List(t *testing.T) {
	store := NewVerseStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, doc("Juan", 3, 16, models.RoleOriginal, "griego", nil)))
	require.NoError(t, store.Add(ctx, doc("Juan", 3, 16, models.RoleTranslation, "español", nil)))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, models.RoleOriginal, all[0].Metadata.Role)
	assert.Equal(t, models.RoleTranslation, all[1].Metadata.Role)
}
