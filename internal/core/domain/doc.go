// Package domain defines the core entities of the originality pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Sentence, NormalisedText: normaliser output
//   - Chunk: a run of consecutive sentences sized for one search query
//   - SearchQuery, SearchCandidate, ChunkSearchResult: dispatcher I/O
//   - MatchedSegment, Source, Report: aggregated results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Lifecycle
//
// Every value is created fresh for a single analysis run and is not
// mutated after the stage that produced it returns.
package domain
