package domain

import "strings"

// Sentence is a normalised, capitalised, punctuation-terminated sentence.
type Sentence string

// String returns the sentence text.
func (s Sentence) String() string {
	return string(s)
}

// NormalisedText is the output of the normaliser.
// Sentences and Tokens always have the same length; Tokens[i] belongs to Sentences[i].
type NormalisedText struct {
	// Sentences is the ordered sentence list.
	Sentences []Sentence

	// Tokens holds lower-cased word tokens per sentence.
	// A sentence may have an empty token list after stopword removal.
	Tokens [][]string
}

// Chunk is an ordered run of consecutive sentences submitted as one search.
// Chunks produced for a document partition its sentence list.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Position is the ordinal position within the document.
	Position int

	// Start is the index of the first sentence (inclusive).
	Start int

	// End is the index after the last sentence (exclusive).
	End int

	// Sentences are the sentences making up the chunk.
	Sentences []Sentence

	// Text is the sentences joined by a single space.
	Text string
}

// SentenceCount returns the number of sentences in the chunk.
func (c Chunk) SentenceCount() int {
	return len(c.Sentences)
}

// JoinSentences concatenates sentences with single spaces.
func JoinSentences(sentences []Sentence) string {
	parts := make([]string, len(sentences))
	for i, s := range sentences {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}
