package judge

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Similarity returns the fraction of the expected answer's characters that
// the answer matches at the same position. Extra trailing characters in the
// answer are not penalised.
func Similarity(answer, expected string) float64 {
	a := []rune(normalize(answer))
	e := []rune(normalize(expected))
	if len(e) == 0 {
		return 0
	}

	n := min(len(a), len(e))
	match := 0
	for i := 0; i < n; i++ {
		if a[i] == e[i] {
			match++
		}
	}
	return float64(match) / float64(len(e))
}

// normalize trims, strips combining marks ("Brasília" -> "Brasilia") and
// case folds s.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	// Transformers are stateful; build a fresh chain per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}
