package services

import (
	"context"
	"errors"
	"log"

	"github.com/koine-verse-search-api/internal/models"
	"github.com/koine-verse-search-api/internal/repository"
)

// ReferenceResolver resolves an exact (book, chapter, verse) reference to a
// complete bilingual pair.
//
// Resolution runs an ordered list of strategies sharing one signature; the
// first complete pair wins. A strategy error is swallowed and the next
// strategy runs, so a degraded backend path (a filter query the engine no
// longer supports, for instance) only costs a fallback, never the request.
type ReferenceResolver struct {
	store      repository.VerseStore
	strategies []resolveStrategy
}

// resolveStrategy attempts one lookup approach. It returns ErrVerseNotFound
// both for a clean miss and for any location where only one language role is
// present; partial pairs never leave a strategy.
type resolveStrategy func(ctx context.Context, loc models.Location) (*models.VersePair, error)

// NewReferenceResolver creates a resolver over the given store.
func NewReferenceResolver(store repository.VerseStore) *ReferenceResolver {
	r := &ReferenceResolver{store: store}
	r.strategies = []resolveStrategy{
		r.resolveByIDs,
		r.resolveByFilter,
		r.resolveByScan,
	}
	return r
}

// Resolve returns the complete pair for the location, or ErrVerseNotFound.
func (r *ReferenceResolver) Resolve(ctx context.Context, loc models.Location) (*models.VersePair, error) {
	if !loc.Valid() {
		return nil, models.ErrVerseNotFound
	}

	for _, strategy := range r.strategies {
		pair, err := strategy(ctx, loc)
		if err == nil {
			return pair, nil
		}
		if !errors.Is(err, models.ErrVerseNotFound) {
			log.Printf("verse lookup strategy failed for %s: %v", loc, err)
		}
	}
	return nil, models.ErrVerseNotFound
}

// resolveByIDs looks both role documents up by their deterministic ids.
func (r *ReferenceResolver) resolveByIDs(ctx context.Context, loc models.Location) (*models.VersePair, error) {
	originalID, translationID := models.PairIDs(loc)

	docs, err := r.store.GetByIDs(ctx, []string{originalID, translationID})
	if err != nil {
		return nil, err
	}

	original, okO := docs[originalID]
	translation, okT := docs[translationID]
	if !okO || !okT {
		return nil, models.ErrVerseNotFound
	}
	return pairFromTexts(loc, original.Text, translation.Text)
}

// resolveByFilter queries the structured metadata fields directly.
func (r *ReferenceResolver) resolveByFilter(ctx context.Context, loc models.Location) (*models.VersePair, error) {
	docs, err := r.store.QueryByFilter(ctx, repository.VerseFilter{
		Book:    loc.Book,
		Chapter: loc.Chapter,
		Verse:   loc.Verse,
	})
	if err != nil {
		return nil, err
	}
	if len(docs) < 2 {
		return nil, models.ErrVerseNotFound
	}
	return pairFromDocuments(loc, docs)
}

// resolveByScan fetches everything and filters client-side. Last resort for
// stores whose metadata filtering is unsupported or degraded.
func (r *ReferenceResolver) resolveByScan(ctx context.Context, loc models.Location) (*models.VersePair, error) {
	all, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}

	filter := repository.VerseFilter{Book: loc.Book, Chapter: loc.Chapter, Verse: loc.Verse}
	var matches []models.Document
	for _, doc := range all {
		if filter.Matches(doc.Metadata) {
			matches = append(matches, doc)
		}
	}
	if len(matches) < 2 {
		return nil, models.ErrVerseNotFound
	}
	return pairFromDocuments(loc, matches)
}

// pairFromDocuments partitions matches by language role and accepts only an
// exactly-one-per-role, both-non-empty outcome.
func pairFromDocuments(loc models.Location, docs []models.Document) (*models.VersePair, error) {
	var originalText, translationText string
	var originals, translations int
	for _, doc := range docs {
		switch doc.Metadata.Role {
		case models.RoleOriginal:
			originals++
			originalText = doc.Text
		case models.RoleTranslation:
			translations++
			translationText = doc.Text
		}
	}
	if originals != 1 || translations != 1 {
		return nil, models.ErrVerseNotFound
	}
	return pairFromTexts(loc, originalText, translationText)
}

func pairFromTexts(loc models.Location, originalText, translationText string) (*models.VersePair, error) {
	pair := &models.VersePair{
		Book:            loc.Book,
		Chapter:         loc.Chapter,
		Verse:           loc.Verse,
		OriginalText:    originalText,
		TranslationText: translationText,
	}
	if !pair.Complete() {
		return nil, models.ErrVerseNotFound
	}
	return pair, nil
}
