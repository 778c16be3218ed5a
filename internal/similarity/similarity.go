// Package similarity scores chunk text against search snippets and extracts
// the literal phrases they share.
package similarity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scoring constants. They reproduce the original heuristic exactly.
const (
	// WordWeight is the weight of shared-word similarity in the final score.
	WordWeight = 0.7

	// LengthWeight is the weight of length similarity in the final score.
	LengthWeight = 0.3

	// MinSharedWordLength is the rune length a shared word must exceed to count.
	MinSharedWordLength = 3

	// MinPhraseWords is the shortest n-gram considered a phrase.
	MinPhraseWords = 3

	// MinPhraseLength is the shortest phrase, in characters, that is reported.
	MinPhraseLength = 15
)

// Score returns a similarity in [0,1] between a and b.
//
// Both inputs are lower-cased with whitespace collapsed. Empty input scores 0,
// equal input scores 1, and containment scores shorter/longer length. Anything
// else is WordWeight*shared-word ratio + LengthWeight*length ratio.
func Score(a, b string) float64 {
	na, nb := normalise(a), normalise(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	lengthFactor := lengthRatio(na, nb)
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return lengthFactor
	}

	wa, wb := wordSet(na), wordSet(nb)

	matching, shared := 0, 0
	for w := range wa {
		if _, ok := wb[w]; !ok {
			continue
		}
		shared++
		if utf8.RuneCountInString(w) > MinSharedWordLength {
			matching++
		}
	}

	union := len(wa) + len(wb) - shared
	wordSimilarity := 0.0
	if union > 0 {
		wordSimilarity = float64(matching) / float64(union)
	}

	return WordWeight*wordSimilarity + LengthWeight*lengthFactor
}

func normalise(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func lengthRatio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la > lb {
		la, lb = lb, la
	}
	if lb == 0 {
		return 0
	}
	return float64(la) / float64(lb)
}

// wordSet returns the distinct words of s with surrounding punctuation trimmed.
func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, unicode.IsPunct)
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
