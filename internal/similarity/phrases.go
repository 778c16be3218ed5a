package similarity

import (
	"strings"
	"unicode/utf8"
)

// MatchedPhrases returns the word n-grams of snippet (at least MinPhraseWords
// words and MinPhraseLength characters) that occur in chunkText, ignoring case.
//
// Longer phrases are tried first and earlier ones win ties, so a phrase that
// sits inside an already reported phrase is not reported again. Each result is
// the substring as written in chunkText. Results are unique.
func MatchedPhrases(chunkText, snippet string) []string {
	words := strings.Fields(snippet)
	if len(words) < MinPhraseWords || chunkText == "" {
		return nil
	}

	finder := newFoldFinder(chunkText)

	var phrases []string
	var accepted []string // lower-cased forms of phrases
	seen := make(map[string]struct{})

	for n := len(words); n >= MinPhraseWords; n-- {
		for i := 0; i+n <= len(words); i++ {
			candidate := strings.Join(words[i:i+n], " ")
			if utf8.RuneCountInString(candidate) < MinPhraseLength {
				continue
			}

			lower := strings.ToLower(candidate)
			if subsumed(lower, accepted) {
				continue
			}

			found, ok := finder.find(candidate)
			if !ok {
				continue
			}
			if _, dup := seen[found]; dup {
				continue
			}

			seen[found] = struct{}{}
			accepted = append(accepted, lower)
			phrases = append(phrases, found)
		}
	}

	return phrases
}

func subsumed(lower string, accepted []string) bool {
	for _, a := range accepted {
		if strings.Contains(a, lower) {
			return true
		}
	}
	return false
}

// foldFinder locates case-insensitive matches and returns the original text.
type foldFinder struct {
	text  string
	lower string
	// aligned is true when lower-casing did not change any byte offsets.
	aligned bool
}

func newFoldFinder(text string) *foldFinder {
	lower := strings.ToLower(text)
	return &foldFinder{
		text:    text,
		lower:   lower,
		aligned: len(lower) == len(text),
	}
}

func (f *foldFinder) find(needle string) (string, bool) {
	if f.aligned {
		lowerNeedle := strings.ToLower(needle)
		idx := strings.Index(f.lower, lowerNeedle)
		if idx < 0 || idx+len(lowerNeedle) > len(f.text) {
			return "", false
		}
		found := f.text[idx : idx+len(lowerNeedle)]
		if strings.EqualFold(found, needle) {
			return found, true
		}
	}

	// Slow path: compare rune windows with EqualFold.
	want := utf8.RuneCountInString(needle)
	for i := range f.text {
		end, n := i, 0
		for end < len(f.text) && n < want {
			_, size := utf8.DecodeRuneInString(f.text[end:])
			end += size
			n++
		}
		if n < want {
			break
		}
		if strings.EqualFold(f.text[i:end], needle) {
			return f.text[i:end], true
		}
	}
	return "", false
}
