// Package sentence normalises extracted document text into sentences and tokens.
package sentence

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/verity/internal/core/domain"
)

var (
	// disallowed matches anything outside word characters, whitespace and .,?!;:'"()-
	disallowed = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s.,?!;:'"()\-]`)

	// boundary matches a run of terminal punctuation followed by whitespace.
	boundary = regexp.MustCompile(`[.!?]+\s+`)

	// punctuation matches everything a token may not contain.
	punctuation = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]`)
)

// Normaliser splits text into sentences and per-sentence tokens.
type Normaliser struct {
	stopwords map[string]struct{}
}

// Option configures the normaliser.
type Option func(*Normaliser)

// WithStopwords replaces the default English stopword set.
func WithStopwords(words []string) Option {
	return func(n *Normaliser) {
		n.stopwords = make(map[string]struct{}, len(words))
		for _, w := range words {
			n.stopwords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// New creates a normaliser with the given options.
func New(opts ...Option) *Normaliser {
	n := &Normaliser{stopwords: defaultStopwords}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalise normalises text with the default stopword set.
func Normalise(text string, removeStopwords bool) domain.NormalisedText {
	return New().Normalise(text, removeStopwords)
}

// Normalise cleans text, splits it into sentences and tokenises each sentence.
// Empty input yields an empty result. Stopword removal only affects tokens,
// never the sentence list.
func (n *Normaliser) Normalise(text string, removeStopwords bool) domain.NormalisedText {
	cleaned := Clean(text)
	if cleaned == "" {
		return domain.NormalisedText{}
	}

	sentences := splitSentences(cleaned)
	tokens := make([][]string, len(sentences))
	for i, s := range sentences {
		tokens[i] = n.Tokenise(string(s), removeStopwords)
	}

	return domain.NormalisedText{
		Sentences: sentences,
		Tokens:    tokens,
	}
}

// Clean collapses whitespace, strips unsupported characters and lower-cases text.
func Clean(text string) string {
	text = collapse(norm.NFC.String(text))
	text = disallowed.ReplaceAllString(text, "")
	return strings.ToLower(collapse(text))
}

// Tokenise strips punctuation and splits a sentence into lower-cased words.
func (n *Normaliser) Tokenise(sentence string, removeStopwords bool) []string {
	fields := strings.Fields(strings.ToLower(punctuation.ReplaceAllString(sentence, "")))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if removeStopwords && n.IsStopword(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// IsStopword reports whether word is in the stopword set, ignoring case.
func (n *Normaliser) IsStopword(word string) bool {
	_, ok := n.stopwords[strings.ToLower(word)]
	return ok
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// splitSentences cuts cleaned text after each terminal punctuation run
// that is followed by whitespace. The punctuation stays with its sentence.
func splitSentences(text string) []domain.Sentence {
	var sentences []domain.Sentence

	start := 0
	for _, loc := range boundary.FindAllStringIndex(text, -1) {
		if s, ok := finishSentence(text[start:loc[1]]); ok {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if s, ok := finishSentence(text[start:]); ok {
		sentences = append(sentences, s)
	}

	return sentences
}

func finishSentence(fragment string) (domain.Sentence, bool) {
	s := strings.TrimSpace(fragment)
	if s == "" {
		return "", false
	}
	if !EndsWithTerminal(s) {
		s += "."
	}
	return domain.Sentence(capitalise(s)), true
}

// EndsWithTerminal reports whether s ends in '.', '!' or '?'.
func EndsWithTerminal(s string) bool {
	if s == "" {
		return false
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return true
	default:
		return false
	}
}

func capitalise(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
