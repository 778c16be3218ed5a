package domain

import "time"

// MatchedSegment is a literal span of the analysed text that overlaps a candidate snippet.
type MatchedSegment struct {
	// Text is the matched text as it appears in the chunk.
	Text string `json:"text" yaml:"text"`

	// ChunkID is the chunk the segment was found in.
	ChunkID string `json:"chunk_id" yaml:"chunk_id"`
}

// Source is a candidate page aggregated across all chunks that matched it.
type Source struct {
	// Title is the page title.
	Title string `json:"title" yaml:"title"`

	// URL is the page link and the aggregation key.
	URL string `json:"url" yaml:"url"`

	// DisplayName is the site name reported by the provider.
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`

	// MatchPercent is the best chunk similarity for this source, 0-100.
	MatchPercent int `json:"match_percent" yaml:"match_percent"`

	// Segments are the matched spans attributed to this source.
	Segments []MatchedSegment `json:"segments" yaml:"segments"`
}

// SegmentTexts returns the text of every matched segment.
func (s Source) SegmentTexts() []string {
	texts := make([]string, len(s.Segments))
	for i, seg := range s.Segments {
		texts[i] = seg.Text
	}
	return texts
}

// ReportStats summarises a run for display.
type ReportStats struct {
	Sentences    int `json:"sentences" yaml:"sentences"`
	Chunks       int `json:"chunks" yaml:"chunks"`
	FailedChunks int `json:"failed_chunks" yaml:"failed_chunks"`
	Candidates   int `json:"candidates" yaml:"candidates"`
}

// Report is the result of one analysis run.
// It is recreated wholesale on every run.
type Report struct {
	// ID is the unique identifier for the run.
	ID string `json:"id" yaml:"id"`

	// DocumentID is the external document record, if any.
	DocumentID string `json:"document_id,omitempty" yaml:"document_id,omitempty"`

	// Filename is the original file name supplied by the caller.
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`

	// OriginalityScore is 100 minus the estimated overlap, floored by policy.
	OriginalityScore int `json:"originality_score" yaml:"originality_score"`

	// OverlapPercent is the estimated share of the text found elsewhere.
	OverlapPercent int `json:"overlap_percent" yaml:"overlap_percent"`

	// Sources are the matched sources, best match first.
	Sources []Source `json:"sources" yaml:"sources"`

	// Stats summarises the pipeline stages.
	Stats ReportStats `json:"stats" yaml:"stats"`

	// CreatedAt is when the run finished.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// DocumentRef identifies the external document record a score is written back to.
type DocumentRef struct {
	// ID is the document identifier in the record store.
	ID string

	// Credential authorises the write-back.
	Credential string
}

// AnalysisRequest is the input to an analysis run.
type AnalysisRequest struct {
	// Text is the extracted document text.
	Text string

	// Filename is the original filename, opaque to the pipeline.
	Filename string

	// Document optionally identifies the record to update with the score.
	Document DocumentRef

	// RemoveStopwords controls stopword filtering in sentence tokens.
	RemoveStopwords bool

	// Save stores the report in the history when a report store is configured.
	Save bool
}
