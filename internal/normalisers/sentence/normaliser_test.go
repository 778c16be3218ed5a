package sentence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/verity/internal/core/domain"
)

func TestNormalise_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\r\n\t", "###"} {
		got := Normalise(in, true)
		assert.Empty(t, got.Sentences, "input %q", in)
		assert.Empty(t, got.Tokens, "input %q", in)
	}
}

func TestNormalise_SplitsAndCapitalises(t *testing.T) {
	got := Normalise("The quick brown fox jumps over the lazy dog. It was a sunny day.", false)

	require.Len(t, got.Sentences, 2)
	assert.Equal(t, domain.Sentence("The quick brown fox jumps over the lazy dog."), got.Sentences[0])
	assert.Equal(t, domain.Sentence("It was a sunny day."), got.Sentences[1])
}

func TestNormalise_CollapsesLineBreaks(t *testing.T) {
	got := Normalise("First line\r\ncontinues here.\n\nSecond   paragraph\tstarts!", false)

	require.Len(t, got.Sentences, 2)
	assert.Equal(t, domain.Sentence("First line continues here."), got.Sentences[0])
	assert.Equal(t, domain.Sentence("Second paragraph starts!"), got.Sentences[1])
}

func TestNormalise_AppendsPeriod(t *testing.T) {
	got := Normalise("no terminal punctuation here", false)

	require.Len(t, got.Sentences, 1)
	assert.Equal(t, domain.Sentence("No terminal punctuation here."), got.Sentences[0])
}

func TestNormalise_KeepsQuestionAndExclamation(t *testing.T) {
	got := Normalise("Is this real? Yes it is! Wow...  done", false)

	require.Len(t, got.Sentences, 4)
	assert.Equal(t, domain.Sentence("Is this real?"), got.Sentences[0])
	assert.Equal(t, domain.Sentence("Yes it is!"), got.Sentences[1])
	assert.Equal(t, domain.Sentence("Wow..."), got.Sentences[2])
	assert.Equal(t, domain.Sentence("Done."), got.Sentences[3])
}

func TestNormalise_StripsUnsupportedCharacters(t *testing.T) {
	got := Normalise("Price: $40 & rising (fast) — \"really\".", false)

	require.Len(t, got.Sentences, 1)
	assert.Equal(t, domain.Sentence("Price: 40 rising (fast) \"really\"."), got.Sentences[0])
}

func TestNormalise_KeepsNonASCIILetters(t *testing.T) {
	got := Normalise("Café au lait est délicieux.", false)

	require.Len(t, got.Sentences, 1)
	assert.Equal(t, domain.Sentence("Café au lait est délicieux."), got.Sentences[0])
}

func TestNormalise_Tokens(t *testing.T) {
	got := Normalise("The cat sat on the mat. Dogs, however, barked!", false)

	require.Len(t, got.Tokens, 2)
	assert.Equal(t, []string{"the", "cat", "sat", "on", "the", "mat"}, got.Tokens[0])
	assert.Equal(t, []string{"dogs", "however", "barked"}, got.Tokens[1])
}

func TestNormalise_StopwordsOnlyAffectTokens(t *testing.T) {
	got := Normalise("It is what it is. The cat sat.", true)

	require.Len(t, got.Sentences, 2)
	require.Len(t, got.Tokens, 2)
	assert.Empty(t, got.Tokens[0])
	assert.Equal(t, []string{"cat", "sat"}, got.Tokens[1])
}

func TestNormalise_SentenceAndTokenCountsMatch(t *testing.T) {
	inputs := []string{
		"",
		"One.",
		"One. Two. Three",
		"a! b? c. d",
		"Multiple...   dots... here",
		"Tabs\tand\nnewlines.\r\nEverywhere!",
		"?!",
	}

	for _, in := range inputs {
		for _, remove := range []bool{true, false} {
			got := Normalise(in, remove)
			assert.Equal(t, len(got.Sentences), len(got.Tokens), "input %q", in)
			for _, s := range got.Sentences {
				assert.True(t, EndsWithTerminal(string(s)), "sentence %q", s)
			}
		}
	}
}

func TestNormalise_Idempotent(t *testing.T) {
	in := "Researchers argue that AI must be fair.\nThe potential is significant!  Is it? maybe not"
	first := Normalise(in, true)
	second := Normalise(domain.JoinSentences(first.Sentences), true)

	assert.Equal(t, first.Sentences, second.Sentences)
}

func TestNew_WithStopwords(t *testing.T) {
	n := New(WithStopwords([]string{"CAT"}))

	assert.True(t, n.IsStopword("cat"))
	assert.False(t, n.IsStopword("the"))
	assert.Equal(t, []string{"the", "sat"}, n.Tokenise("The cat sat.", true))
}

func TestStopwords(t *testing.T) {
	words := Stopwords()
	assert.Greater(t, len(words), 100)

	n := New()
	for _, w := range words {
		assert.True(t, n.IsStopword(strings.ToUpper(w)))
	}
}

func TestEndsWithTerminal(t *testing.T) {
	assert.True(t, EndsWithTerminal("a."))
	assert.True(t, EndsWithTerminal("a!"))
	assert.True(t, EndsWithTerminal("a?"))
	assert.False(t, EndsWithTerminal("a"))
	assert.False(t, EndsWithTerminal(""))
}
