// Package chunker groups normalised sentences into search-sized chunks.
package chunker

import (
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/verity/internal/core/domain"
)

// Chunker partitions a sentence list into chunks of MinSize..MaxSize sentences.
// Every sentence ends up in exactly one chunk, in order.
type Chunker struct {
	minSize int
	maxSize int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMinSize sets the minimum number of sentences per chunk.
func WithMinSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.minSize = size
		}
	}
}

// WithMaxSize sets the maximum number of sentences per chunk.
func WithMaxSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.maxSize = size
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		minSize: domain.DefaultMinChunkSize,
		maxSize: domain.DefaultMaxChunkSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure max never drops below min
	if c.maxSize < c.minSize {
		c.maxSize = c.minSize
	}

	return c
}

// Chunk groups sentences into chunks.
//
// A list no longer than MaxSize becomes a single chunk. Otherwise sentences
// accumulate until the chunk is full, the input ends, or the chunk has MinSize
// sentences and the next sentence looks like a paragraph start. A short final
// chunk is merged into the one before it.
func (c *Chunker) Chunk(sentences []domain.Sentence) []domain.Chunk {
	if len(sentences) == 0 {
		return nil
	}

	if len(sentences) <= c.maxSize {
		return []domain.Chunk{newChunk(0, 0, sentences)}
	}

	var bounds [][2]int
	start := 0
	for i := range sentences {
		size := i - start + 1
		last := i == len(sentences)-1

		if last || size >= c.maxSize ||
			(size >= c.minSize && startsParagraph(sentences[i], sentences[i+1])) {
			bounds = append(bounds, [2]int{start, i + 1})
			start = i + 1
		}
	}

	// Fold an undersized tail into the previous chunk
	if n := len(bounds); n > 1 && bounds[n-1][1]-bounds[n-1][0] < c.minSize {
		bounds[n-2][1] = bounds[n-1][1]
		bounds = bounds[:n-1]
	}

	chunks := make([]domain.Chunk, len(bounds))
	for i, b := range bounds {
		chunks[i] = newChunk(i, b[0], sentences[b[0]:b[1]])
	}

	return chunks
}

// startsParagraph is the paragraph heuristic: the previous sentence ends
// with a period and the next one starts with an upper-case letter.
func startsParagraph(prev, next domain.Sentence) bool {
	if prev == "" || next == "" || prev[len(prev)-1] != '.' {
		return false
	}
	r, _ := utf8.DecodeRuneInString(string(next))
	return unicode.IsUpper(r)
}

func newChunk(position, start int, sentences []domain.Sentence) domain.Chunk {
	owned := make([]domain.Sentence, len(sentences))
	copy(owned, sentences)

	return domain.Chunk{
		ID:        uuid.New().String(),
		Position:  position,
		Start:     start,
		End:       start + len(owned),
		Sentences: owned,
		Text:      domain.JoinSentences(owned),
	}
}
