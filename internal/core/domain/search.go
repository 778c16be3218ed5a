package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxQueryLength is the number of characters of chunk text used as a query.
const MaxQueryLength = 150

// SearchQuery is the text submitted to the search provider for one chunk.
type SearchQuery struct {
	// ChunkID links the query to its chunk.
	ChunkID string

	// Text is the query string.
	Text string
}

// NewSearchQuery derives a query from the first MaxQueryLength characters of a chunk.
// A cut that lands inside a word backs up to the previous space.
func NewSearchQuery(chunk Chunk) SearchQuery {
	text := strings.TrimSpace(chunk.Text)
	if utf8.RuneCountInString(text) <= MaxQueryLength {
		return SearchQuery{ChunkID: chunk.ID, Text: text}
	}

	runes := []rune(text)
	cut := string(runes[:MaxQueryLength])
	if runes[MaxQueryLength] != ' ' {
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
	}

	return SearchQuery{ChunkID: chunk.ID, Text: strings.TrimSpace(cut)}
}

// SearchCandidate is a single result returned by the search provider.
type SearchCandidate struct {
	// Title is the result page title.
	Title string `json:"title" yaml:"title"`

	// URL is the result link.
	URL string `json:"url" yaml:"url"`

	// Snippet is the provider's excerpt of the matching page.
	Snippet string `json:"snippet" yaml:"snippet"`

	// DisplayName is the optional human-readable site name.
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
}

// ChunkSearchResult is the outcome of searching one chunk.
// Err and a non-empty Candidates list are mutually exclusive.
type ChunkSearchResult struct {
	// Chunk is the searched chunk.
	Chunk Chunk

	// Query is the query that was issued.
	Query SearchQuery

	// Candidates are the provider results, possibly empty.
	Candidates []SearchCandidate

	// Err marks a failed search; Candidates is empty when set.
	Err error
}

// Failed returns true if the search for this chunk failed.
func (r ChunkSearchResult) Failed() bool {
	return r.Err != nil
}
