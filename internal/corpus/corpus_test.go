package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const morphgntSample = `640316 C- -------- ούτως ούτως ούτως ούτως
640316 C- -------- γάρ γάρ γάρ γάρ
640316 V- 3AAI-S-- ἠγάπησεν ἠγάπησεν ἠγαπάω ἀγαπάω
640317 D- -------- οὐ οὐ οὐ οὐ
640317 C- -------- γάρ γάρ γάρ γάρ
640401 C- -------- Ὡς Ὡς ὡς ὡς
`

func TestParseMorphGNT(t *testing.T) {
	book, err := ParseMorphGNT(strings.NewReader(morphgntSample))
	require.NoError(t, err)

	require.Contains(t, book, 3)
	require.Contains(t, book, 4)

	assert.Equal(t, "ούτως γάρ ἠγάπησεν", book[3][16])
	assert.Equal(t, "οὐ γάρ", book[3][17])
	assert.Equal(t, "Ὡς", book[4][1])
}

func TestParseMorphGNT_SkipsMalformedLines(t *testing.T) {
	input := `not a data line
64031 C- -------- demasiado corto
640316 V- 3AAI-S-- λόγος λόγος λόγος λόγος
`
	book, err := ParseMorphGNT(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, book, 1)
	assert.Equal(t, "λόγος", book[3][16])
}

func TestParseSpanishBible(t *testing.T) {
	// A whole-Bible array: the NT starts at index 39, so pad with empty
	// books and place Mateo there.
	var sb strings.Builder
	sb.WriteString("\xef\xbb\xbf[")
	for i := 0; i < 39; i++ {
		sb.WriteString(`{"abbrev":"x","chapters":[]},`)
	}
	sb.WriteString(`{"abbrev":"mt","chapters":[["Libro de la genealogía de Jesucristo "," Abraham engendró a Isaac "]]}]`)

	books, err := ParseSpanishBible([]byte(sb.String()))
	require.NoError(t, err)

	mateo, ok := books["Mateo"]
	require.True(t, ok)
	assert.Equal(t, "Libro de la genealogía de Jesucristo", mateo[1][1])
	assert.Equal(t, "Abraham engendró a Isaac", mateo[1][2])
}

func TestAssemble_OnlyCompleteLocations(t *testing.T) {
	greek := map[string]BookText{
		"Mateo": {
			1: {1: "Βίβλος γενέσεως", 2: "Ἀβραὰμ ἐγέννησεν"},
			2: {1: "Τοῦ δὲ Ἰησοῦ"},
		},
		"Judas": {1: {1: "Ἰούδας"}},
	}
	spanish := map[string]BookText{
		"Mateo": {
			1: {1: "Libro de la genealogía"}, // verse 2 missing
			// chapter 2 missing entirely
		},
		// Judas missing entirely
	}

	records := Assemble(greek, spanish)
	require.Len(t, records, 1)
	assert.Equal(t, "Mateo", records[0].Libro)
	assert.Equal(t, 1, records[0].Capitulo)
	assert.Equal(t, 1, records[0].Versiculo)
	assert.Equal(t, "Βίβλος γενέσεως", records[0].Griego)
	assert.Equal(t, "Libro de la genealogía", records[0].Espanol)
}

func TestAssemble_CanonicalOrder(t *testing.T) {
	greek := map[string]BookText{
		"Juan":  {3: {16: "g1"}},
		"Mateo": {1: {1: "g2"}},
	}
	spanish := map[string]BookText{
		"Juan":  {3: {16: "s1"}},
		"Mateo": {1: {1: "s2"}},
	}

	records := Assemble(greek, spanish)
	require.Len(t, records, 2)
	assert.Equal(t, "Mateo", records[0].Libro)
	assert.Equal(t, "Juan", records[1].Libro)
}

func TestBookTables(t *testing.T) {
	assert.Len(t, Books, 27)
	assert.Len(t, SpanishBookIndices, 27)
	assert.Len(t, GreekFileBooks, 27)

	for _, name := range SpanishBookIndices {
		assert.Truef(t, IsCanonicalBook(name), "index table book %q not canonical", name)
	}
	for _, name := range GreekFileBooks {
		assert.Truef(t, IsCanonicalBook(name), "greek table book %q not canonical", name)
	}
	assert.False(t, IsCanonicalBook("Génesis"))
}
