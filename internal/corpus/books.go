// Package corpus holds the New Testament book tables and the one-time
// assembly transform that merges the two source corpora into the unified
// ingestion record set.
package corpus

// Books is the canonical list of New Testament book display names, in
// canonical order. Stored book metadata always uses these literal names.
var Books = []string{
	"Mateo",
	"Marcos",
	"Lucas",
	"Juan",
	"Hechos",
	"Romanos",
	"1 Corintios",
	"2 Corintios",
	"Gálatas",
	"Efesios",
	"Filipenses",
	"Colosenses",
	"1 Tesalonicenses",
	"2 Tesalonicenses",
	"1 Timoteo",
	"2 Timoteo",
	"Tito",
	"Filemón",
	"Hebreos",
	"Santiago",
	"1 Pedro",
	"2 Pedro",
	"1 Juan",
	"2 Juan",
	"3 Juan",
	"Judas",
	"Apocalipsis",
}

var bookSet = func() map[string]bool {
	m := make(map[string]bool, len(Books))
	for _, b := range Books {
		m[b] = true
	}
	return m
}()

// IsCanonicalBook reports whether name is one of the 27 NT book names.
func IsCanonicalBook(name string) bool {
	return bookSet[name]
}

// SpanishBookIndices maps whole-Bible JSON array indices to NT book names.
// The translation source file carries all 66 books; the NT occupies indices
// 39 through 65.
var SpanishBookIndices = map[int]string{
	39: "Mateo",
	40: "Marcos",
	41: "Lucas",
	42: "Juan",
	43: "Hechos",
	44: "Romanos",
	45: "1 Corintios",
	46: "2 Corintios",
	47: "Gálatas",
	48: "Efesios",
	49: "Filipenses",
	50: "Colosenses",
	51: "1 Tesalonicenses",
	52: "2 Tesalonicenses",
	53: "1 Timoteo",
	54: "2 Timoteo",
	55: "Tito",
	56: "Filemón",
	57: "Hebreos",
	58: "Santiago",
	59: "1 Pedro",
	60: "2 Pedro",
	61: "1 Juan",
	62: "2 Juan",
	63: "3 Juan",
	64: "Judas",
	65: "Apocalipsis",
}

// GreekFileBooks maps the annotated-word source filenames to book names.
var GreekFileBooks = map[string]string{
	"61-Mt-morphgnt.txt":  "Mateo",
	"62-Mk-morphgnt.txt":  "Marcos",
	"63-Lk-morphgnt.txt":  "Lucas",
	"64-Jn-morphgnt.txt":  "Juan",
	"65-Ac-morphgnt.txt":  "Hechos",
	"66-Ro-morphgnt.txt":  "Romanos",
	"67-1Co-morphgnt.txt": "1 Corintios",
	"68-2Co-morphgnt.txt": "2 Corintios",
	"69-Ga-morphgnt.txt":  "Gálatas",
	"70-Eph-morphgnt.txt": "Efesios",
	"71-Php-morphgnt.txt": "Filipenses",
	"72-Col-morphgnt.txt": "Colosenses",
	"73-1Th-morphgnt.txt": "1 Tesalonicenses",
	"74-2Th-morphgnt.txt": "2 Tesalonicenses",
	"75-1Ti-morphgnt.txt": "1 Timoteo",
	"76-2Ti-morphgnt.txt": "2 Timoteo",
	"77-Tit-morphgnt.txt": "Tito",
	"78-Phm-morphgnt.txt": "Filemón",
	"79-Heb-morphgnt.txt": "Hebreos",
	"80-Jas-morphgnt.txt": "Santiago",
	"81-1Pe-morphgnt.txt": "1 Pedro",
	"82-2Pe-morphgnt.txt": "2 Pedro",
	"83-1Jn-morphgnt.txt": "1 Juan",
	"84-2Jn-morphgnt.txt": "2 Juan",
	"85-3Jn-morphgnt.txt": "3 Juan",
	"86-Jud-morphgnt.txt": "Judas",
	"87-Re-morphgnt.txt":  "Apocalipsis",
}
