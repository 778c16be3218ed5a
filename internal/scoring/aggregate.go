// Package scoring aggregates per-chunk search results into an originality
// score and a ranked list of matched sources.
package scoring

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/similarity"
)

// Policy holds the aggregation constants.
type Policy struct {
	// ThresholdPercent is the similarity percent a pair must exceed to count.
	ThresholdPercent float64

	// MinOriginality is the lowest originality score ever reported.
	MinOriginality int
}

// DefaultPolicy returns the policy matching the original heuristic.
func DefaultPolicy() Policy {
	return Policy{
		ThresholdPercent: domain.DefaultThresholdPercent,
		MinOriginality:   domain.DefaultMinOriginality,
	}
}

// PolicyFromSettings builds a policy from scoring settings.
func PolicyFromSettings(s domain.ScoringSettings) Policy {
	return Policy{
		ThresholdPercent: s.ThresholdPercent,
		MinOriginality:   s.MinOriginality,
	}
}

// sourceAcc accumulates one source across chunks.
type sourceAcc struct {
	source domain.Source
	best   float64
	seen   map[string]struct{}
}

// Aggregate scores every (chunk, candidate) pair and folds the results into a report.
//
// Pairs at or below the threshold are ignored. Each remaining pair adds
// len(chunk)*score to the matched length; the total is not de-duplicated across
// chunks, so overlapping matches can be counted twice. The overlap percent is
// capped at 100 and the originality score floored at MinOriginality.
//
// ID, DocumentID, Filename, CreatedAt and Stats.Sentences are left for the caller.
func Aggregate(results []domain.ChunkSearchResult, fullText string, policy Policy) domain.Report {
	stats := domain.ReportStats{Chunks: len(results)}

	var order []string
	sources := make(map[string]*sourceAcc)
	total := 0.0

	for _, r := range results {
		if r.Failed() {
			stats.FailedChunks++
			continue
		}

		chunkLen := float64(utf8.RuneCountInString(r.Chunk.Text))
		for _, c := range r.Candidates {
			stats.Candidates++

			score := similarity.Score(r.Chunk.Text, c.Snippet)
			if score*100 <= policy.ThresholdPercent {
				continue
			}
			total += chunkLen * score

			key := sourceKey(c)
			acc, ok := sources[key]
			if !ok {
				acc = &sourceAcc{
					source: domain.Source{
						Title:       c.Title,
						URL:         c.URL,
						DisplayName: c.DisplayName,
					},
					best: -1,
					seen: make(map[string]struct{}),
				}
				sources[key] = acc
				order = append(order, key)
			}
			if score > acc.best {
				acc.best = score
				acc.source.MatchPercent = clampPercent(math.Round(score * 100))
			}

			phrases := similarity.MatchedPhrases(r.Chunk.Text, c.Snippet)
			if len(phrases) == 0 {
				phrases = []string{c.Snippet}
			}
			for _, p := range phrases {
				if _, dup := acc.seen[p]; dup {
					continue
				}
				acc.seen[p] = struct{}{}
				acc.source.Segments = append(acc.source.Segments, domain.MatchedSegment{
					Text:    p,
					ChunkID: r.Chunk.ID,
				})
			}
		}
	}

	ranked := make([]domain.Source, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, sources[key].source)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchPercent != ranked[j].MatchPercent {
			return ranked[i].MatchPercent > ranked[j].MatchPercent
		}
		return ranked[i].Title < ranked[j].Title
	})

	overlap := OverlapPercent(total, utf8.RuneCountInString(fullText))

	return domain.Report{
		OriginalityScore: Originality(overlap, policy.MinOriginality),
		OverlapPercent:   overlap,
		Sources:          ranked,
		Stats:            stats,
	}
}

// OverlapPercent converts a matched length into a percentage of the text, capped at 100.
func OverlapPercent(matchedLength float64, textLength int) int {
	if textLength <= 0 || matchedLength <= 0 {
		return 0
	}
	return clampPercent(math.Round(100 * matchedLength / float64(textLength)))
}

// Originality returns 100-overlap, never below floor.
func Originality(overlapPercent, floor int) int {
	score := 100 - overlapPercent
	if score < floor {
		return floor
	}
	return score
}

func clampPercent(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}

// sourceKey de-duplicates candidates by link, falling back to title and snippet.
func sourceKey(c domain.SearchCandidate) string {
	if c.URL != "" {
		return c.URL
	}
	return c.Title + "\x00" + c.Snippet
}
