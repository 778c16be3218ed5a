package scoring

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/verity/internal/core/domain"
)

func chunk(id, text string) domain.Chunk {
	return domain.Chunk{ID: id, Text: text}
}

func TestAggregate_NoCandidates(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog. It was a sunny day."
	results := []domain.ChunkSearchResult{{Chunk: chunk("c1", text)}}

	report := Aggregate(results, text, DefaultPolicy())

	assert.Equal(t, 100, report.OriginalityScore)
	assert.Equal(t, 0, report.OverlapPercent)
	assert.Empty(t, report.Sources)
	assert.Equal(t, 1, report.Stats.Chunks)
}

func TestAggregate_EmptyInput(t *testing.T) {
	report := Aggregate(nil, "", DefaultPolicy())

	assert.Equal(t, 100, report.OriginalityScore)
	assert.Empty(t, report.Sources)
}

func TestAggregate_IdenticalSnippet(t *testing.T) {
	text := "Researchers argue that responsible development of AI systems must include fairness."
	results := []domain.ChunkSearchResult{{
		Chunk: chunk("c1", text),
		Candidates: []domain.SearchCandidate{{
			Title: "Ethics", URL: "https://example.org/ethics", Snippet: text,
		}},
	}}

	full := text + " " + strings.Repeat("x", len(text)-1)
	report := Aggregate(results, full, DefaultPolicy())

	require.Len(t, report.Sources, 1)
	src := report.Sources[0]
	assert.Equal(t, 100, src.MatchPercent)
	require.Len(t, src.Segments, 1)
	assert.Equal(t, text, src.Segments[0].Text)
	assert.Equal(t, "c1", src.Segments[0].ChunkID)
	assert.Equal(t, 50, report.OverlapPercent)
	assert.Equal(t, 50, report.OriginalityScore)
}

func TestAggregate_FloorApplies(t *testing.T) {
	text := "Every single word of this chunk was copied verbatim."
	results := []domain.ChunkSearchResult{{
		Chunk:      chunk("c1", text),
		Candidates: []domain.SearchCandidate{{URL: "u", Snippet: text}},
	}}

	report := Aggregate(results, text, DefaultPolicy())
	assert.Equal(t, 100, report.OverlapPercent)
	assert.Equal(t, 5, report.OriginalityScore)

	report = Aggregate(results, text, Policy{ThresholdPercent: 3, MinOriginality: 20})
	assert.Equal(t, 20, report.OriginalityScore)
}

func TestAggregate_ThresholdFiltersWeakPairs(t *testing.T) {
	text := strings.Repeat("abcdefghi ", 10)
	results := []domain.ChunkSearchResult{{
		Chunk:      chunk("c1", text),
		Candidates: []domain.SearchCandidate{{URL: "u", Title: "weak", Snippet: "zz"}},
	}}

	report := Aggregate(results, text, DefaultPolicy())
	assert.Empty(t, report.Sources)
	assert.Equal(t, 100, report.OriginalityScore)
	assert.Equal(t, 1, report.Stats.Candidates)

	report = Aggregate(results, text, Policy{ThresholdPercent: 0, MinOriginality: 5})
	require.Len(t, report.Sources, 1)
	assert.Equal(t, []string{"zz"}, report.Sources[0].SegmentTexts(), "falls back to snippet")
}

func TestAggregate_FailedChunksContributeNothing(t *testing.T) {
	text := "Alpha beta gamma delta epsilon."
	results := []domain.ChunkSearchResult{
		{Chunk: chunk("c1", text), Err: errors.New("boom")},
		{Chunk: chunk("c2", text)},
	}

	report := Aggregate(results, text, DefaultPolicy())
	assert.Equal(t, 1, report.Stats.FailedChunks)
	assert.Equal(t, 2, report.Stats.Chunks)
	assert.Equal(t, 100, report.OriginalityScore)
}

func TestAggregate_MergesSourcesByURL(t *testing.T) {
	a := "The ethical implications of artificial intelligence are important to consider."
	b := "Responsible development of artificial intelligence systems requires transparency."
	results := []domain.ChunkSearchResult{
		{
			Chunk: chunk("c1", a),
			Candidates: []domain.SearchCandidate{
				{Title: "AI Ethics", URL: "https://x/ethics", Snippet: a},
				{Title: "Other", URL: "https://y/other", Snippet: "implications of artificial intelligence are discussed widely"},
			},
		},
		{
			Chunk: chunk("c2", b),
			Candidates: []domain.SearchCandidate{
				{Title: "AI Ethics", URL: "https://x/ethics", Snippet: "development of artificial intelligence systems requires care"},
			},
		},
	}

	report := Aggregate(results, a+" "+b, DefaultPolicy())

	require.Len(t, report.Sources, 2)
	first := report.Sources[0]
	assert.Equal(t, "https://x/ethics", first.URL)
	assert.Equal(t, 100, first.MatchPercent)
	assert.ElementsMatch(t, []string{a, "development of artificial intelligence systems requires"}, first.SegmentTexts())
	assert.Equal(t, "https://y/other", report.Sources[1].URL)
	assert.Less(t, report.Sources[1].MatchPercent, 100)
}

func TestAggregate_DoubleCountsAcrossChunks(t *testing.T) {
	text := "Identical passage that appears in two chunks verbatim."
	results := []domain.ChunkSearchResult{
		{Chunk: chunk("c1", text), Candidates: []domain.SearchCandidate{{URL: "u", Snippet: text}}},
		{Chunk: chunk("c2", text), Candidates: []domain.SearchCandidate{{URL: "u", Snippet: text}}},
	}

	full := text + strings.Repeat(" pad", len(text)) // 5x the chunk length
	report := Aggregate(results, full, DefaultPolicy())

	assert.Equal(t, 40, report.OverlapPercent)
	require.Len(t, report.Sources, 1)
	assert.Len(t, report.Sources[0].Segments, 1)
}

func TestAggregate_ScoreAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	words := []string{"alpha", "beta", "gamma", "delta", "the", "of", "systems", "fair"}
	sentence := func() string {
		n := 1 + rng.Intn(10)
		out := make([]string, n)
		for i := range out {
			out[i] = words[rng.Intn(len(words))]
		}
		return strings.Join(out, " ")
	}

	for trial := 0; trial < 100; trial++ {
		var results []domain.ChunkSearchResult
		var parts []string
		for c := 0; c < 1+rng.Intn(5); c++ {
			text := sentence()
			parts = append(parts, text)
			r := domain.ChunkSearchResult{Chunk: chunk("c", text)}
			for k := 0; k < rng.Intn(4); k++ {
				r.Candidates = append(r.Candidates, domain.SearchCandidate{URL: sentence(), Snippet: sentence()})
			}
			results = append(results, r)
		}

		report := Aggregate(results, strings.Join(parts, " "), DefaultPolicy())
		assert.GreaterOrEqual(t, report.OriginalityScore, 5)
		assert.LessOrEqual(t, report.OriginalityScore, 100)
		for _, s := range report.Sources {
			assert.GreaterOrEqual(t, s.MatchPercent, 0)
			assert.LessOrEqual(t, s.MatchPercent, 100)
		}
	}
}

func TestOverlapPercent(t *testing.T) {
	assert.Equal(t, 0, OverlapPercent(10, 0))
	assert.Equal(t, 0, OverlapPercent(0, 10))
	assert.Equal(t, 25, OverlapPercent(25, 100))
	assert.Equal(t, 100, OverlapPercent(250, 100))
}

func TestOriginality(t *testing.T) {
	assert.Equal(t, 100, Originality(0, 5))
	assert.Equal(t, 60, Originality(40, 5))
	assert.Equal(t, 5, Originality(100, 5))
	assert.Equal(t, 5, Originality(97, 5))
}

func TestPolicyFromSettings(t *testing.T) {
	p := PolicyFromSettings(domain.ScoringSettings{ThresholdPercent: 7, MinOriginality: 10})
	assert.InDelta(t, 7.0, p.ThresholdPercent, 0)
	assert.Equal(t, 10, p.MinOriginality)
}
