package corpus

import (
	"sort"

	"github.com/koine-verse-search-api/internal/models"
)

// Assemble merges the two per-language corpora into the unified ingestion
// record set. Only locations present in both sources with non-empty texts
// are emitted; records come out in canonical book order, then by chapter and
// verse.
func Assemble(greek, spanish map[string]BookText) []models.IngestRecord {
	var records []models.IngestRecord

	for _, bookName := range Books {
		greekBook, okG := greek[bookName]
		spanishBook, okS := spanish[bookName]
		if !okG || !okS {
			continue
		}

		for _, chapter := range sortedKeys(greekBook) {
			spanishChapter, ok := spanishBook[chapter]
			if !ok {
				continue
			}
			greekChapter := greekBook[chapter]

			for _, verse := range sortedKeys2(greekChapter) {
				greekText := greekChapter[verse]
				spanishText := spanishChapter[verse]
				if greekText == "" || spanishText == "" {
					continue
				}
				records = append(records, models.IngestRecord{
					Libro:     bookName,
					Capitulo:  chapter,
					Versiculo: verse,
					Griego:    greekText,
					Espanol:   spanishText,
				})
			}
		}
	}
	return records
}

func sortedKeys(m map[int]map[int]string) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sortedKeys2(m map[int]string) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
