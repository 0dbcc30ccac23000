package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koine-verse-search-api/internal/models"
	"github.com/koine-verse-search-api/internal/repository"
	"github.com/koine-verse-search-api/internal/repository/memory"
)

// faultyStore wraps a real store and fails selected operations, to force the
// resolver down its fallback chain.
type faultyStore struct {
	repository.VerseStore

	failGetByIDs bool
	failFilter   bool
	failList     bool
}

var errInjected = errors.New("injected backend failure")

func (s *faultyStore) GetByIDs(ctx context.Context, ids []string) (map[string]models.Document, error) {
	if s.failGetByIDs {
		return nil, errInjected
	}
	return s.VerseStore.GetByIDs(ctx, ids)
}

func (s *faultyStore) QueryByFilter(ctx context.Context, f repository.VerseFilter) ([]models.Document, error) {
	if s.failFilter {
		return nil, errInjected
	}
	return s.VerseStore.QueryByFilter(ctx, f)
}

func (s *faultyStore) List(ctx context.Context) ([]models.Document, error) {
	if s.failList {
		return nil, errInjected
	}
	return s.VerseStore.List(ctx)
}

func addPair(t *testing.T, store repository.VerseStore, book string, chapter, verse int, original, translation string) {
	t.Helper()
	texts := map[models.LanguageRole]string{
		models.RoleOriginal:    original,
		models.RoleTranslation: translation,
	}
	for role, text := range texts {
		err := store.Add(context.Background(), models.Document{
			ID:   models.DocumentID(book, chapter, verse, role),
			Text: text,
			Metadata: models.DocumentMetadata{
				Book:    book,
				Chapter: chapter,
				Verse:   verse,
				Role:    role,
			},
		})
		require.NoError(t, err)
	}
}

const (
	juan316Greek   = "ούτως γάρ ἠγάπησεν ὁ θεὸς τὸν κόσμον"
	juan316Spanish = "Porque de tal manera amó Dios al mundo"
)

func TestResolve_ByDeterministicIDs(t *testing.T) {
	store := memory.NewVerseStore()
	addPair(t, store, "Juan", 3, 16, juan316Greek, juan316Spanish)

	resolver := NewReferenceResolver(store)
	pair, err := resolver.Resolve(context.Background(), models.Location{Book: "Juan", Chapter: 3, Verse: 16})
	require.NoError(t, err)

	assert.Equal(t, "Juan", pair.Book)
	assert.Equal(t, 3, pair.Chapter)
	assert.Equal(t, 16, pair.Verse)
	assert.Equal(t, juan316Greek, pair.OriginalText)
	assert.Equal(t, juan316Spanish, pair.TranslationText)
}

func TestResolve_MissingVerse(t *testing.T) {
	store := memory.NewVerseStore()
	addPair(t, store, "Juan", 3, 16, juan316Greek, juan316Spanish)

	resolver := NewReferenceResolver(store)
	pair, err := resolver.Resolve(context.Background(), models.Location{Book: "Juan", Chapter: 3, Verse: 17})
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, models.ErrVerseNotFound)
}

func TestResolve_FallsBackToFilterQuery(t *testing.T) {
	store := memory.NewVerseStore()
	addPair(t, store, "Mateo", 5, 3, "Μακάριοι οἱ πτωχοὶ τῷ πνεύματι", "Bienaventurados los pobres en espíritu")

	resolver := NewReferenceResolver(&faultyStore{VerseStore: store, failGetByIDs: true})
	pair, err := resolver.Resolve(context.Background(), models.Location{Book: "Mateo", Chapter: 5, Verse: 3})
	require.NoError(t, err)
	assert.Equal(t, "Mateo", pair.Book)
	assert.True(t, pair.Complete())
}

func TestResolve_FallsBackToClientSideScan(t *testing.T) {
	store := memory.NewVerseStore()
	addPair(t, store, "Marcos", 1, 1, "Ἀρχὴ τοῦ εὐαγγελίου", "Principio del evangelio")

	resolver := NewReferenceResolver(&faultyStore{VerseStore: store, failGetByIDs: true, failFilter: true})
	pair, err := resolver.Resolve(context.Background(), models.Location{Book: "Marcos", Chapter: 1, Verse: 1})
	require.NoError(t, err)
	assert.Equal(t, "Marcos", pair.Book)
	assert.True(t, pair.Complete())
}

func TestResolve_AllStrategiesFailing(t *testing.T) {
	store := memory.NewVerseStore()
	addPair(t, store, "Marcos", 1, 1, "Ἀρχὴ τοῦ εὐαγγελίου", "Principio del evangelio")

	resolver := NewReferenceResolver(&faultyStore{
		VerseStore: store, failGetByIDs: true, failFilter: true, failList: true,
	})
	_, err := resolver.Resolve(context.Background(), models.Location{Book: "Marcos", Chapter: 1, Verse: 1})
	assert.ErrorIs(t, err, models.ErrVerseNotFound)
}

func TestResolve_OneSidedPairIsNotFound(t *testing.T) {
	store := memory.NewVerseStore()
	err := store.Add(context.Background(), models.Document{
		ID:   models.DocumentID("Lucas", 2, 1, models.RoleOriginal),
		Text: "Ἐγένετο δὲ ἐν ταῖς ἡμέραις ἐκείναις",
		Metadata: models.DocumentMetadata{
			Book: "Lucas", Chapter: 2, Verse: 1, Role: models.RoleOriginal,
		},
	})
	require.NoError(t, err)

	resolver := NewReferenceResolver(store)
	_, err = resolver.Resolve(context.Background(), models.Location{Book: "Lucas", Chapter: 2, Verse: 1})
	assert.ErrorIs(t, err, models.ErrVerseNotFound)

	// The fallback strategies must not surface the partial pair either.
	resolver = NewReferenceResolver(&faultyStore{VerseStore: store, failGetByIDs: true})
	_, err = resolver.Resolve(context.Background(), models.Location{Book: "Lucas", Chapter: 2, Verse: 1})
	assert.ErrorIs(t, err, models.ErrVerseNotFound)
}

func TestResolve_EmptyTextIsNotFound(t *testing.T) {
	store := memory.NewVerseStore()
	addPair(t, store, "Tito", 1, 1, "Παῦλος δοῦλος θεοῦ", "")

	resolver := NewReferenceResolver(store)
	_, err := resolver.Resolve(context.Background(), models.Location{Book: "Tito", Chapter: 1, Verse: 1})
	assert.ErrorIs(t, err, models.ErrVerseNotFound)
}

func TestResolve_InvalidLocation(t *testing.T) {
	resolver := NewReferenceResolver(memory.NewVerseStore())
	_, err := resolver.Resolve(context.Background(), models.Location{Book: "", Chapter: 0, Verse: 0})
	assert.ErrorIs(t, err, models.ErrVerseNotFound)
}
