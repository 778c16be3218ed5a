package chunker

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/verity/internal/core/domain"
)

func statements(n int) []domain.Sentence {
	out := make([]domain.Sentence, n)
	for i := range out {
		out[i] = domain.Sentence(fmt.Sprintf("Sentence number %d.", i))
	}
	return out
}

func questions(n int) []domain.Sentence {
	out := make([]domain.Sentence, n)
	for i := range out {
		out[i] = domain.Sentence(fmt.Sprintf("Is this question %d?", i))
	}
	return out
}

func sizes(chunks []domain.Chunk) []int {
	out := make([]int, len(chunks))
	for i, c := range chunks {
		out[i] = c.SentenceCount()
	}
	return out
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		assert.Equal(t, 3, c.minSize)
		assert.Equal(t, 5, c.maxSize)
	})

	t.Run("custom sizes", func(t *testing.T) {
		c := New(WithMinSize(2), WithMaxSize(8))
		assert.Equal(t, 2, c.minSize)
		assert.Equal(t, 8, c.maxSize)
	})

	t.Run("max below min is raised", func(t *testing.T) {
		c := New(WithMinSize(6), WithMaxSize(4))
		assert.Equal(t, 6, c.maxSize)
	})

	t.Run("zero values ignored", func(t *testing.T) {
		c := New(WithMinSize(0), WithMaxSize(-1))
		assert.Equal(t, 3, c.minSize)
		assert.Equal(t, 5, c.maxSize)
	})
}

func TestChunk_Empty(t *testing.T) {
	assert.Empty(t, New().Chunk(nil))
}

func TestChunk_SmallInputIsOneChunk(t *testing.T) {
	for n := 1; n <= 5; n++ {
		chunks := New().Chunk(statements(n))
		require.Len(t, chunks, 1, "n=%d", n)
		assert.Equal(t, n, chunks[0].SentenceCount())
		assert.Equal(t, 0, chunks[0].Start)
		assert.Equal(t, n, chunks[0].End)
	}
}

func TestChunk_ParagraphBoundaryClosesAtMinSize(t *testing.T) {
	chunks := New().Chunk(statements(9))
	assert.Equal(t, []int{3, 3, 3}, sizes(chunks))
}

func TestChunk_ShortTailMerges(t *testing.T) {
	chunks := New().Chunk(statements(7))
	assert.Equal(t, []int{3, 4}, sizes(chunks))
	assert.Equal(t, 3, chunks[1].Start)
	assert.Equal(t, 7, chunks[1].End)
}

func TestChunk_NoParagraphClosesAtMaxSize(t *testing.T) {
	chunks := New().Chunk(questions(15))
	assert.Equal(t, []int{5, 5, 5}, sizes(chunks))
}

func TestChunk_MaxSizeWithShortTail(t *testing.T) {
	chunks := New().Chunk(questions(12))
	assert.Equal(t, []int{5, 7}, sizes(chunks))
}

func TestChunk_LowercaseNextSentenceIsNotParagraph(t *testing.T) {
	in := []domain.Sentence{
		"A one.", "A two.", "A three.", "and four.",
		"And five.", "And six.", "And seven.", "And eight.",
	}
	chunks := New().Chunk(in)
	assert.Equal(t, []int{4, 4}, sizes(chunks))
}

func TestChunk_TextAndMetadata(t *testing.T) {
	chunks := New().Chunk(statements(6))
	require.Len(t, chunks, 2)

	for i, c := range chunks {
		assert.Equal(t, i, c.Position)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, domain.JoinSentences(c.Sentences), c.Text)
	}
	assert.NotEqual(t, chunks[0].ID, chunks[1].ID)
}

func TestChunk_Partition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(40)
		in := make([]domain.Sentence, n)
		for i := range in {
			switch rng.Intn(3) {
			case 0:
				in[i] = domain.Sentence(fmt.Sprintf("Upper %d.", i))
			case 1:
				in[i] = domain.Sentence(fmt.Sprintf("lower %d.", i))
			default:
				in[i] = domain.Sentence(fmt.Sprintf("Ask %d?", i))
			}
		}

		minSize := 1 + rng.Intn(4)
		maxSize := minSize + rng.Intn(4)
		chunks := New(WithMinSize(minSize), WithMaxSize(maxSize)).Chunk(in)

		var rebuilt []domain.Sentence
		next := 0
		for _, c := range chunks {
			assert.Equal(t, next, c.Start)
			assert.Equal(t, c.Start+c.SentenceCount(), c.End)
			rebuilt = append(rebuilt, c.Sentences...)
			next = c.End
		}
		assert.Equal(t, len(in), len(rebuilt))
		if n > 0 {
			assert.Equal(t, in, rebuilt)
		}
		if n > 0 && n <= maxSize {
			assert.Len(t, chunks, 1)
		}
	}
}
